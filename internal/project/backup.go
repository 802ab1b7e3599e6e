package project

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/shelfpack/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// ErrInvalidBackup is returned for backup files without a version.
var ErrInvalidBackup = errors.New("invalid backup file: missing version field")

// BackupData bundles the config and the template store into one document.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Config    model.AppConfig     `json:"config"`
	Templates model.TemplateStore `json:"templates"`
}

// ExportAllData writes config and templates to a single backup file.
func ExportAllData(exportPath string, config model.AppConfig, templates model.TemplateStore) error {
	return writeFile(exportPath, "backup file", BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Templates: templates,
	})
}

// ImportAllData reads a backup written by ExportAllData. The caller decides
// where to apply the contained config and templates.
func ImportAllData(importPath string) (BackupData, error) {
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := readFile(importPath, "backup file", &backup); err != nil {
		if os.IsNotExist(err) {
			return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
		}
		return BackupData{}, err
	}
	if backup.Version == "" {
		return BackupData{}, ErrInvalidBackup
	}
	if backup.Config.RecentProjects == nil {
		backup.Config.RecentProjects = []string{}
	}
	if backup.Templates.Templates == nil {
		backup.Templates.Templates = []model.ProjectTemplate{}
	}
	return backup, nil
}
