package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/project"
)

// boundEntry is a text entry that writes every edit through set. set reports
// whether the text parsed; the form refuses to save while it does not.
func boundEntry(text string, set func(string) bool) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(text)
	e.OnChanged = func(s string) { set(s) }
	e.Validator = func(s string) error {
		if !set(s) {
			return fmt.Errorf("invalid value %q", s)
		}
		return nil
	}
	return e
}

func lengthEntry(v *float64) *widget.Entry {
	return boundEntry(strconv.FormatFloat(*v, 'f', -1, 64), func(s string) bool {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 {
			return false
		}
		*v = f
		return true
	})
}

// choice is a select preset to current that reports picks through set.
func choice(options []string, current string, set func(string)) *widget.Select {
	s := widget.NewSelect(options, set)
	s.SetSelected(current)
	return s
}

func sortKeyNames() []string {
	var names []string
	for _, k := range model.SortKeys() {
		names = append(names, k.String())
	}
	return names
}

// showSettingsDialog edits a copy of the app config and saves it on confirm.
func (a *App) showSettingsDialog() {
	cfg := a.config

	fields := []*widget.FormItem{
		widget.NewFormItem("Theme", choice([]string{"system", "light", "dark"}, cfg.Theme, func(s string) {
			cfg.Theme = s
		})),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Sort Key", choice(sortKeyNames(), cfg.DefaultSortKey.String(), func(s string) {
			if k, err := model.ParseSortKey(s); err == nil {
				cfg.DefaultSortKey = k
			}
		})),
		widget.NewFormItem("Default Algorithm", choice(
			[]string{string(model.AlgorithmShelf), string(model.AlgorithmGenetic)},
			string(cfg.DefaultAlgorithm),
			func(s string) { cfg.DefaultAlgorithm = model.Algorithm(s) },
		)),
		widget.NewFormItem("Default Seed", boundEntry(strconv.FormatInt(cfg.DefaultSeed, 10), func(s string) bool {
			n, err := strconv.ParseInt(s, 10, 64)
			if err == nil {
				cfg.DefaultSeed = n
			}
			return err == nil
		})),
		widget.NewFormItem("Default Container Width", lengthEntry(&cfg.DefaultContainer.Width)),
		widget.NewFormItem("Default Container Height", lengthEntry(&cfg.DefaultContainer.Height)),
	}

	d := dialog.NewForm("Preferences", "Save", "Cancel", fields, func(ok bool) {
		if !ok {
			return
		}
		a.config = cfg
		a.theme.setName(cfg.Theme)
		a.app.Settings().SetTheme(a.theme)
		if err := a.saveConfig(); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
		}
	}, a.window)
	d.Resize(fyne.NewSize(450, 400))
	d.Show()
}

// showImportExportDialog offers writing and restoring a backup of the config
// and the template store.
func (a *App) showImportExportDialog() {
	content := container.NewVBox(
		widget.NewLabel("Back up preferences and templates to one file,\nor restore them from an earlier backup."),
		widget.NewSeparator(),
		widget.NewButton("Export All Data...", a.exportBackup),
		widget.NewButton("Import All Data...", func() {
			dialog.ShowConfirm("Import Data",
				"Importing replaces your current preferences and templates. Continue?",
				func(ok bool) {
					if ok {
						a.importBackup()
					}
				}, a.window)
		}),
	)
	d := dialog.NewCustom("Backup / Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

func (a *App) exportBackup() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		w.Close()
		path := w.URI().Path()
		if err := project.ExportAllData(path, a.config, a.templates); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", "Backup written to:\n"+path, a.window)
	}, a.window)
	d.SetFileName("shelfpack-backup.json")
	d.Show()
}

func (a *App) importBackup() {
	dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		r.Close()
		backup, err := project.ImportAllData(r.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.config, a.templates = backup.Config, backup.Templates
		for _, save := range []func() error{a.saveConfig, a.saveTemplates} {
			if err := save(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to apply backup: %w", err), a.window)
				return
			}
		}
		dialog.ShowInformation("Import Complete", "Restored backup from "+backup.CreatedAt+".", a.window)
	}, a.window)
}

// saveAsTemplate stores the current container, items and settings under a
// name, replacing any template of the same name.
func (a *App) saveAsTemplate() {
	name := widget.NewEntry()
	name.SetText(a.project.Name)
	desc := widget.NewEntry()

	dialog.ShowForm("Save as Template", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", name), widget.NewFormItem("Description", desc)},
		func(ok bool) {
			if !ok || name.Text == "" {
				return
			}
			p := a.project
			a.templates.Put(model.NewProjectTemplate(name.Text, desc.Text, p.Container, p.Items, p.Settings))
			if err := a.saveTemplates(); err != nil {
				dialog.ShowError(err, a.window)
			}
		}, a.window)
}

// showTemplatePicker starts a new project from a saved template.
func (a *App) showTemplatePicker() {
	names := a.templates.Names()
	if len(names) == 0 {
		dialog.ShowInformation("No templates", "Use File > Save as Template first.", a.window)
		return
	}
	picker := choice(names, names[0], nil)

	dialog.ShowForm("New from Template", "Create", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Template", picker)},
		func(ok bool) {
			if !ok {
				return
			}
			if t := a.templates.FindByName(picker.Selected); t != nil {
				a.SetProject(t.ToProject(t.Name), "")
			}
		}, a.window)
}

func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}

func (a *App) saveTemplates() error {
	return project.SaveTemplates(project.DefaultTemplatePath(), a.templates)
}
