package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/shelfpack/internal/model"
)

// DefaultTemplatePath returns ~/.shelfpack/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store to path.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeFile(path, "templates", store)
}

// LoadTemplates reads the template store at path. A missing file yields an
// empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	store := model.NewTemplateStore()
	if err := readFile(path, "templates", &store); err != nil {
		if os.IsNotExist(err) {
			return model.NewTemplateStore(), nil
		}
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.ProjectTemplate{}
	}
	return store, nil
}
