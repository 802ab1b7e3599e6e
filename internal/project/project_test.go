package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/shelfpack/internal/model"
)

func sampleProject() model.Project {
	proj := model.NewProject()
	proj.Name = "Shelf"
	proj.Container = model.NewSize(100, 50)
	proj.Items = []model.Item{
		model.NewItem("A", 40, 20, 2),
		model.NewItem("B", 10, 10, 1),
	}
	proj.Settings.SortKey = model.SortArea
	proj.Result = &model.PackResult{
		Container:  proj.Container,
		Placements: []model.Placement{{Item: proj.Items[0], X: 0, Y: 0}},
		Overflow:   []model.Item{proj.Items[1]},
	}
	return proj
}

func TestSaveAndLoadProject(t *testing.T) {
	for _, name := range []string{"proj.json", "proj.yaml", "proj.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			proj := sampleProject()

			if err := Save(path, proj); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if loaded.Name != "Shelf" {
				t.Errorf("expected name Shelf, got %q", loaded.Name)
			}
			if loaded.Container != proj.Container {
				t.Errorf("expected container %v, got %v", proj.Container, loaded.Container)
			}
			if len(loaded.Items) != 2 || loaded.Items[0].ID != proj.Items[0].ID {
				t.Errorf("items not preserved: %+v", loaded.Items)
			}
			if loaded.Settings.SortKey != model.SortArea {
				t.Errorf("expected sort key area, got %s", loaded.Settings.SortKey)
			}
			if loaded.Result == nil || len(loaded.Result.Placements) != 1 || len(loaded.Result.Overflow) != 1 {
				t.Errorf("result not preserved: %+v", loaded.Result)
			}
		})
	}
}

func TestSaveYAMLIsReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proj.yaml")
	if err := Save(path, sampleProject()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if data[0] == '{' {
		t.Error("expected YAML output, got JSON")
	}
}

func TestLoadHandWrittenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hand.yaml")
	data := []byte(`name: Boxes
container:
  width: 20
  height: 10
settings:
  sort_key: width
items:
  - label: Big
    width: 10
    height: 10
  - label: Small
    width: 5
    height: 5
    quantity: 3
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	proj, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if proj.Settings.SortKey != model.SortWidth {
		t.Errorf("expected sort key width, got %s", proj.Settings.SortKey)
	}
	if proj.Settings.Algorithm != model.AlgorithmShelf {
		t.Errorf("missing algorithm should default to shelf, got %q", proj.Settings.Algorithm)
	}
	if len(proj.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(proj.Items))
	}
	if proj.Items[0].Quantity != 1 {
		t.Errorf("missing quantity should default to 1, got %d", proj.Items[0].Quantity)
	}
	if proj.Items[0].ID == "" {
		t.Error("missing IDs should be generated")
	}
	if proj.Items[1].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", proj.Items[1].Quantity)
	}
}

func TestLoadMissingProject(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing project file")
	}
}

func TestLoadInvalidProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"items": "nope"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
