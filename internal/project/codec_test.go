package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/shelfpack/internal/model"
)

func TestConfigFollowsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := model.DefaultAppConfig()
	cfg.DefaultSortKey = model.SortWidth
	cfg.Theme = "dark"
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		t.Errorf("expected YAML output, got %s", data)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if loaded.DefaultSortKey != model.SortWidth || loaded.Theme != "dark" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestReadFileMissingIsNotExist(t *testing.T) {
	var v struct{}
	err := readFile(filepath.Join(t.TempDir(), "none.json"), "thing", &v)
	if !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestReadFileNamesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	var v struct{}
	err := readFile(path, "thing", &v)
	if err == nil || !strings.Contains(err.Error(), "failed to parse thing") {
		t.Errorf("expected a parse error naming the document, got %v", err)
	}
}
