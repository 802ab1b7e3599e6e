package ui

import (
	"fmt"
	"log"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/piwi3910/shelfpack/internal/dsl"
	"github.com/piwi3910/shelfpack/internal/importer"
	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/project"
)

// pickSavePath asks for a destination and hands its path to use. The picker's
// writer is closed first because every writer here creates the file itself.
func (a *App) pickSavePath(suggested string, use func(path string) error) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		w.Close()
		if err := use(w.URI().Path()); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(suggested)
	d.Show()
}

// pickOpenPath asks for an existing file and hands its path to use.
func (a *App) pickOpenPath(use func(path string) error) {
	dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		r.Close()
		if err := use(r.URI().Path()); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
}

func (a *App) saveProject() {
	a.pickSavePath(a.project.Name+project.FileExtension, func(path string) error {
		if err := project.Save(path, a.project); err != nil {
			return err
		}
		a.projectPath = path
		a.window.SetTitle(windowTitle(path))
		a.rememberProject(path)
		return nil
	})
}

func (a *App) loadProject() {
	a.pickOpenPath(func(path string) error {
		proj, err := project.Load(path)
		if err != nil {
			return err
		}
		a.SetProject(proj, path)
		a.rememberProject(path)
		return nil
	})
}

func (a *App) rememberProject(path string) {
	a.config.AddRecentProject(path, project.MaxRecentProjects)
	if err := a.saveConfig(); err != nil {
		log.Printf("Failed to record recent project: %v", err)
	}
}

// exportResult writes the current result through write to a chosen path.
func (a *App) exportResult(suggested string, write func(path string, r model.PackResult) error) {
	if a.project.Result == nil {
		dialog.ShowInformation("No results", "Run Pack first before exporting.", a.window)
		return
	}
	result := *a.project.Result
	a.pickSavePath(suggested, func(path string) error {
		if err := write(path, result); err != nil {
			return err
		}
		dialog.ShowInformation("Export Complete", "Saved to "+path, a.window)
		return nil
	})
}

// importFile appends the items read by load from a chosen file.
func (a *App) importFile(load func(path string) importer.ImportResult) {
	a.pickOpenPath(func(path string) error {
		a.addImported(load(path))
		return nil
	})
}

// importItemList appends the items of a .pack item list. Its container and
// settings are ignored.
func (a *App) importItemList() {
	a.pickOpenPath(func(path string) error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		proj, err := dsl.LoadProject(f)
		if err != nil {
			return err
		}
		a.addImported(importer.ImportResult{Items: proj.Items})
		return nil
	})
}

// addImported appends the good rows as one undoable step and reports the
// rows that were skipped.
func (a *App) addImported(result importer.ImportResult) {
	for _, w := range result.Warnings {
		log.Printf("Import warning: %s", w)
	}

	var msg strings.Builder
	if n := len(result.Items); n > 0 {
		a.record("Import Items")
		a.project.Items = append(a.project.Items, result.Items...)
		a.refreshItemsList()
		fmt.Fprintf(&msg, "Imported %d items.", n)
	}
	if len(result.Errors) > 0 {
		if msg.Len() > 0 {
			msg.WriteString("\n\n")
		}
		fmt.Fprintf(&msg, "%d rows were skipped:\n%s", len(result.Errors), strings.Join(result.Errors, "\n"))
		dialog.ShowError(fmt.Errorf("%s", msg.String()), a.window)
		return
	}
	if msg.Len() == 0 {
		msg.WriteString("The file held no items.")
	}
	dialog.ShowInformation("Import Complete", msg.String(), a.window)
}
