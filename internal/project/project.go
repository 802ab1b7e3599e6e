// Package project persists projects, the application config, saved templates
// and backups. Every document is JSON unless its path ends in .yaml or .yml.
package project

import (
	"fmt"
	"os"

	"github.com/piwi3910/shelfpack/internal/model"
)

// FileExtension is the default extension for saved projects.
const FileExtension = ".json"

// Save writes a project to path.
func Save(path string, proj model.Project) error {
	return writeFile(path, "project file", proj)
}

// Load reads a project saved by Save. Hand-written files may omit the
// algorithm, item IDs and quantities; they are filled in with defaults.
func Load(path string) (model.Project, error) {
	proj := model.NewProject()
	if err := readFile(path, "project file", &proj); err != nil {
		if os.IsNotExist(err) {
			return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
		}
		return model.Project{}, err
	}

	if proj.Settings.Algorithm == "" {
		proj.Settings.Algorithm = model.AlgorithmShelf
	}
	if proj.Items == nil {
		proj.Items = []model.Item{}
	}
	for i := range proj.Items {
		it := &proj.Items[i]
		if it.ID == "" {
			it.ID = model.NewID()
		}
		if it.Quantity == 0 {
			it.Quantity = 1
		}
	}
	return proj, nil
}
