package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/shelfpack/internal/model"
)

// MaxRecentProjects caps the recent project list kept in the config.
const MaxRecentProjects = 10

// DefaultConfigDir returns ~/.shelfpack, or ./.shelfpack when the home
// directory is unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".shelfpack")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig writes config to path, creating parent directories.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeFile(path, "config", config)
}

// LoadAppConfig reads the config at path. A missing file yields
// DefaultAppConfig; fields missing from the file keep their defaults.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	if err := readFile(path, "config", &config); err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

// RememberProject moves path to the front of the recent list stored in the
// config at configPath.
func RememberProject(configPath, path string) error {
	config, err := LoadAppConfig(configPath)
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	config.AddRecentProject(path, MaxRecentProjects)
	return SaveAppConfig(configPath, config)
}
