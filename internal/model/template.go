package model

import (
	"slices"
	"time"
)

// ProjectTemplate is a named starting point for new projects: a container,
// an item list and packing settings. Results are never stored.
type ProjectTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Container   Size         `json:"container"`
	Items       []Item       `json:"items"`
	Settings    PackSettings `json:"settings"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NewProjectTemplate captures container, items and settings under name.
// The item slice is copied.
func NewProjectTemplate(name, description string, container Size, items []Item, settings PackSettings) ProjectTemplate {
	now := timestamp()
	if items == nil {
		items = []Item{}
	}
	return ProjectTemplate{
		ID:          NewID(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Container:   container,
		Items:       slices.Clone(items),
		Settings:    settings,
	}
}

// ToProject starts a project from the template. Items get fresh IDs.
func (t ProjectTemplate) ToProject(projectName string) Project {
	proj := NewProject()
	proj.Name = projectName
	proj.Container = t.Container
	proj.Settings = t.Settings
	proj.Items = make([]Item, 0, len(t.Items))
	for _, it := range t.Items {
		proj.Items = append(proj.Items, NewItem(it.Label, it.Width, it.Height, it.Quantity))
	}
	return proj
}

// TemplateStore is the saved template collection, in insertion order.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []ProjectTemplate{}}
}

// Add appends t.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Put stores t, replacing a template of the same name in place. The
// replaced template keeps its ID and creation time.
func (ts *TemplateStore) Put(t ProjectTemplate) {
	if old := ts.FindByName(t.Name); old != nil {
		t.ID, t.CreatedAt, t.UpdatedAt = old.ID, old.CreatedAt, timestamp()
		*old = t
		return
	}
	ts.Add(t)
}

// Remove deletes the template with the given ID and reports whether it existed.
func (ts *TemplateStore) Remove(id string) bool {
	i := slices.IndexFunc(ts.Templates, func(t ProjectTemplate) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	ts.Templates = slices.Delete(ts.Templates, i, i+1)
	return true
}

// FindByName returns the first template called name, or nil. The pointer
// aliases the store.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	i := slices.IndexFunc(ts.Templates, func(t ProjectTemplate) bool { return t.Name == name })
	if i < 0 {
		return nil
	}
	return &ts.Templates[i]
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, 0, len(ts.Templates))
	for _, t := range ts.Templates {
		names = append(names, t.Name)
	}
	return names
}
