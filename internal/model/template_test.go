package model

import (
	"testing"
)

func TestNewProjectTemplate(t *testing.T) {
	items := []Item{
		NewItem("Side", 600, 400, 2),
		NewItem("Top", 500, 300, 1),
	}
	settings := DefaultSettings()

	tmpl := NewProjectTemplate("Cabinet", "Standard cabinet template", NewSize(2440, 1220), items, settings)

	if tmpl.Name != "Cabinet" {
		t.Errorf("expected name 'Cabinet', got %q", tmpl.Name)
	}
	if tmpl.ID == "" {
		t.Error("expected non-empty ID")
	}
	if tmpl.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if len(tmpl.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(tmpl.Items))
	}

	// Mutating the source slice must not leak into the template.
	items[0].Label = "Changed"
	if tmpl.Items[0].Label != "Side" {
		t.Errorf("template items should be copied, got %q", tmpl.Items[0].Label)
	}
}

func TestProjectTemplate_ToProject(t *testing.T) {
	items := []Item{NewItem("Side", 600, 400, 2)}
	tmpl := NewProjectTemplate("Cabinet", "", NewSize(2440, 1220), items, DefaultSettings())

	proj := tmpl.ToProject("Kitchen")

	if proj.Name != "Kitchen" {
		t.Errorf("expected project name 'Kitchen', got %q", proj.Name)
	}
	if proj.Container != NewSize(2440, 1220) {
		t.Errorf("unexpected container %v", proj.Container)
	}
	if len(proj.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(proj.Items))
	}
	if proj.Items[0].ID == tmpl.Items[0].ID {
		t.Error("project items should get fresh IDs")
	}
	if proj.Items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", proj.Items[0].Quantity)
	}
	if proj.Result != nil {
		t.Error("new project should not carry a result")
	}
}

func TestTemplateStore(t *testing.T) {
	store := NewTemplateStore()
	a := NewProjectTemplate("A", "", NewSize(10, 10), nil, DefaultSettings())
	b := NewProjectTemplate("B", "", NewSize(20, 20), nil, DefaultSettings())
	store.Add(a)
	store.Add(b)

	if names := store.Names(); len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("unexpected names %v", names)
	}
	if found := store.FindByName("B"); found == nil || found.Container != NewSize(20, 20) {
		t.Errorf("FindByName(B) = %v", found)
	}
	if store.FindByName("missing") != nil {
		t.Error("expected nil for missing template")
	}
	if !store.Remove(a.ID) {
		t.Error("expected Remove to succeed")
	}
	if store.Remove(a.ID) {
		t.Error("second Remove should report false")
	}
	if len(store.Templates) != 1 {
		t.Errorf("expected 1 template left, got %d", len(store.Templates))
	}
}

func TestTemplateStorePutReplacesByName(t *testing.T) {
	store := NewTemplateStore()
	first := NewProjectTemplate("Shelf", "v1", NewSize(10, 10), nil, DefaultSettings())
	store.Put(first)
	store.Put(NewProjectTemplate("Other", "", NewSize(1, 1), nil, DefaultSettings()))

	store.Put(NewProjectTemplate("Shelf", "v2", NewSize(30, 30), nil, DefaultSettings()))

	if len(store.Templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(store.Templates))
	}
	got := store.FindByName("Shelf")
	if got.Description != "v2" || got.Container != NewSize(30, 30) {
		t.Errorf("template not replaced: %+v", got)
	}
	if got.ID != first.ID || got.CreatedAt != first.CreatedAt {
		t.Error("replacement should keep the original ID and creation time")
	}
	if names := store.Names(); names[0] != "Shelf" {
		t.Errorf("replacement should keep its position, got %v", names)
	}
}
