// Package ui provides the shelfpack desktop viewer and editor.
package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/export"
	"github.com/piwi3910/shelfpack/internal/importer"
	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/project"
	"github.com/piwi3910/shelfpack/internal/render"
	"github.com/piwi3910/shelfpack/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	app         fyne.App
	window      fyne.Window
	project     model.Project
	projectPath string
	config      model.AppConfig
	templates   model.TemplateStore
	history     *History
	theme       *compactTheme
	tabs        *container.AppTabs

	// UI references for dynamic updates
	itemsContainer    *fyne.Container
	settingsContainer *fyne.Container
	resultContainer   *fyne.Container
}

// NewApp loads the app config and templates and applies the configured theme.
// Load failures fall back to defaults and are logged.
func NewApp(application fyne.App, window fyne.Window) *App {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Printf("Using default config: %v", err)
		config = model.DefaultAppConfig()
	}
	templates, err := project.LoadTemplates(project.DefaultTemplatePath())
	if err != nil {
		log.Printf("Ignoring templates: %v", err)
		templates = model.NewTemplateStore()
	}

	a := &App{
		app:       application,
		window:    window,
		config:    config,
		templates: templates,
		history:   NewHistory(),
		theme:     newCompactTheme(config.Theme),
	}
	a.project = a.newProject()
	application.Settings().SetTheme(a.theme)
	return a
}

// newProject returns an empty project seeded with the configured defaults.
func (a *App) newProject() model.Project {
	proj := model.NewProject()
	proj.Container = a.config.DefaultContainer
	a.config.ApplyToSettings(&proj.Settings)
	return proj
}

// SetProject replaces the open project. path may be empty for unsaved input.
func (a *App) SetProject(proj model.Project, path string) {
	a.project = proj
	a.projectPath = path
	a.window.SetTitle(windowTitle(path))
	a.history.Clear()
	a.refreshAll()
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.SetProject(a.newProject(), "")
		}),
		fyne.NewMenuItem("New from Template...", a.showTemplatePicker),
		fyne.NewMenuItem("Open Project...", a.loadProject),
		fyne.NewMenuItem("Save Project...", a.saveProject),
		fyne.NewMenuItem("Save as Template...", a.saveAsTemplate),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Items from CSV...", func() {
			a.importFile(importer.ImportCSV)
		}),
		fyne.NewMenuItem("Import Items from Excel...", func() {
			a.importFile(importer.ImportExcel)
		}),
		fyne.NewMenuItem("Import Items from DXF...", func() {
			a.importFile(importer.ImportDXF)
		}),
		fyne.NewMenuItem("Import Items from Item List...", a.importItemList),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Report...", func() {
			a.exportResult("layout.pdf", func(path string, r model.PackResult) error {
				return export.ExportPDF(path, a.project.Name, r, a.project.Settings)
			})
		}),
		fyne.NewMenuItem("Export Labels...", func() {
			a.exportResult("labels.pdf", export.ExportLabels)
		}),
		fyne.NewMenuItem("Export Excel...", func() {
			a.exportResult("layout.xlsx", export.ExportExcel)
		}),
		fyne.NewMenuItem("Export DXF...", func() {
			a.exportResult("layout.dxf", export.ExportDXF)
		}),
		fyne.NewMenuItem("Export SVG...", func() {
			a.exportResult("layout.svg", func(path string, r model.PackResult) error {
				return render.RenderFile(path, r, render.DefaultOptions())
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Items", func() {
			a.record("Clear Items")
			a.project.Items = nil
			a.refreshItemsList()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Pack", func() {
			a.runPack()
			a.tabs.SelectIndex(2) // Results tab
		}),
		fyne.NewMenuItem("Compare Strategies...", a.showCompareDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", a.showSettingsDialog),
		fyne.NewMenuItem("Backup / Restore...", a.showImportExportDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About shelfpack",
		"shelfpack: 2D rectangle packing\n\n"+
			"Places rectangular items into a fixed container using\n"+
			"a shelf/guillotine split tree or a genetic order search.",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	itemsTab := container.NewTabItem("Items", a.buildItemsPanel())
	settingsTab := container.NewTabItem("Settings", a.buildSettingsPanel())
	resultsTab := container.NewTabItem("Results", a.buildResultsPanel())

	a.tabs = container.NewAppTabs(itemsTab, settingsTab, resultsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return a.tabs
}

func (a *App) refreshAll() {
	if a.itemsContainer == nil {
		return
	}
	a.refreshItemsList()
	a.refreshSettings()
	a.refreshResults()
}

// record pushes the current state before a modification.
func (a *App) record(label string) {
	a.history.Push(MakeSnapshot(a.project, label))
}

func (a *App) undo() {
	s, ok := a.history.Undo(MakeSnapshot(a.project, "undo"))
	if !ok {
		return
	}
	s.Apply(&a.project)
	a.refreshAll()
}

func (a *App) redo() {
	s, ok := a.history.Redo(MakeSnapshot(a.project, "redo"))
	if !ok {
		return
	}
	s.Apply(&a.project)
	a.refreshAll()
}

func (a *App) buildItemsPanel() fyne.CanvasObject {
	a.itemsContainer = container.NewVBox()
	a.refreshItemsList()

	addBtn := widget.NewButtonWithIcon("Add Item", theme.ContentAddIcon(), func() {
		a.showItemDialog(-1)
	})
	packBtn := widget.NewButtonWithIcon("Pack", theme.MediaPlayIcon(), func() {
		a.runPack()
		a.tabs.SelectIndex(2)
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Items", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
			packBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.itemsContainer),
	)
}

func (a *App) refreshItemsList() {
	a.itemsContainer.RemoveAll()

	if len(a.project.Items) == 0 {
		a.itemsContainer.Add(widget.NewLabel("No items added yet. Click 'Add Item' to begin."))
		return
	}

	header := container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Label", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Width", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Height", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Qty", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(""),
		widget.NewLabel(""),
	)
	a.itemsContainer.Add(header)
	a.itemsContainer.Add(widget.NewSeparator())

	for i := range a.project.Items {
		idx := i
		it := a.project.Items[idx]
		row := container.NewGridWithColumns(6,
			widget.NewLabel(it.Label),
			widget.NewLabel(strconv.FormatFloat(it.Width, 'f', -1, 64)),
			widget.NewLabel(strconv.FormatFloat(it.Height, 'f', -1, 64)),
			widget.NewLabel(strconv.Itoa(it.Quantity)),
			rowAction(theme.DocumentCreateIcon(), "Edit", it.Label, func() {
				a.showItemDialog(idx)
			}),
			rowAction(theme.DeleteIcon(), "Delete", it.Label, func() {
				a.record("Delete Item")
				a.project.Items = append(a.project.Items[:idx], a.project.Items[idx+1:]...)
				a.refreshItemsList()
			}),
		)
		a.itemsContainer.Add(row)
	}
}

// showItemDialog adds a new item when idx is negative, otherwise edits it.
func (a *App) showItemDialog(idx int) {
	current := model.NewItem(fmt.Sprintf("Item %d", len(a.project.Items)+1), 0, 0, 1)
	title, confirm := "Add Item", "Add"
	if idx >= 0 {
		current = a.project.Items[idx]
		title, confirm = "Edit Item", "Save"
	}

	labelEntry := widget.NewEntry()
	labelEntry.SetPlaceHolder("Item name")
	labelEntry.SetText(current.Label)

	widthEntry := widget.NewEntry()
	heightEntry := widget.NewEntry()
	if idx >= 0 {
		widthEntry.SetText(strconv.FormatFloat(current.Width, 'f', -1, 64))
		heightEntry.SetText(strconv.FormatFloat(current.Height, 'f', -1, 64))
	}

	qtyEntry := widget.NewEntry()
	qtyEntry.SetText(strconv.Itoa(current.Quantity))

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Label", labelEntry),
			widget.NewFormItem("Width", widthEntry),
			widget.NewFormItem("Height", heightEntry),
			widget.NewFormItem("Quantity", qtyEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, errW := strconv.ParseFloat(widthEntry.Text, 64)
			h, errH := strconv.ParseFloat(heightEntry.Text, 64)
			q, errQ := strconv.Atoi(qtyEntry.Text)
			if errW != nil || errH != nil || errQ != nil || w < 0 || h < 0 || q < 1 {
				dialog.ShowError(fmt.Errorf("width and height must be >= 0 and quantity >= 1"), a.window)
				return
			}

			current.Label = labelEntry.Text
			current.Width, current.Height, current.Quantity = w, h, q

			a.record(title)
			if idx >= 0 {
				a.project.Items[idx] = current
			} else {
				a.project.Items = append(a.project.Items, current)
			}
			a.refreshItemsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	a.settingsContainer = container.NewVBox()
	a.refreshSettings()
	return container.NewVScroll(a.settingsContainer)
}

func (a *App) refreshSettings() {
	a.settingsContainer.RemoveAll()
	s := &a.project.Settings

	floatEntry := func(val *float64, label string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
		e.OnSubmitted = func(text string) {
			v, err := strconv.ParseFloat(text, 64)
			if err != nil || v < 0 {
				dialog.ShowError(fmt.Errorf("%s must be a number >= 0", label), a.window)
				return
			}
			a.record("Change " + label)
			*val = v
		}
		return e
	}

	keyNames := make([]string, 0, len(model.SortKeys()))
	for _, k := range model.SortKeys() {
		keyNames = append(keyNames, k.String())
	}
	sortSelect := widget.NewSelect(keyNames, func(selected string) {
		if key, err := model.ParseSortKey(selected); err == nil && key != s.SortKey {
			a.record("Change Sort Key")
			s.SortKey = key
		}
	})
	sortSelect.SetSelected(s.SortKey.String())

	algorithmSelect := widget.NewSelect([]string{"Shelf (Fast)", "Genetic Algorithm (Better)"}, func(selected string) {
		alg := model.AlgorithmShelf
		if selected == "Genetic Algorithm (Better)" {
			alg = model.AlgorithmGenetic
		}
		if alg != s.Algorithm {
			a.record("Change Algorithm")
			s.Algorithm = alg
		}
	})
	if s.Algorithm == model.AlgorithmGenetic {
		algorithmSelect.SetSelected("Genetic Algorithm (Better)")
	} else {
		algorithmSelect.SetSelected("Shelf (Fast)")
	}

	seedEntry := widget.NewEntry()
	seedEntry.SetText(strconv.FormatInt(s.Seed, 10))
	seedEntry.OnSubmitted = func(text string) {
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			dialog.ShowError(fmt.Errorf("seed must be an integer"), a.window)
			return
		}
		a.record("Change Seed")
		s.Seed = v
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.project.Name)
	nameEntry.OnChanged = func(text string) { a.project.Name = text }

	a.settingsContainer.Add(widget.NewCard("Project", "", container.NewGridWithColumns(2,
		widget.NewLabel("Name"), nameEntry,
	)))
	a.settingsContainer.Add(widget.NewCard("Container", "Press Enter to apply a value", container.NewGridWithColumns(2,
		widget.NewLabel("Width"), floatEntry(&a.project.Container.Width, "container width"),
		widget.NewLabel("Height"), floatEntry(&a.project.Container.Height, "container height"),
	)))
	a.settingsContainer.Add(widget.NewCard("Packing", "", container.NewGridWithColumns(2,
		widget.NewLabel("Sort Key"), sortSelect,
		widget.NewLabel("Algorithm"), algorithmSelect,
		widget.NewLabel("Seed"), seedEntry,
	)))
}

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.resultContainer = container.NewStack()
	a.refreshResults()
	return a.resultContainer
}

func (a *App) refreshResults() {
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderResult(a.project.Result))
	a.resultContainer.Refresh()
}

func (a *App) runPack() {
	if len(a.project.Items) == 0 {
		dialog.ShowInformation("Nothing to pack", "Add at least one item first.", a.window)
		return
	}
	if a.project.Container.Area() <= 0 {
		dialog.ShowInformation("No container", "Set a container size in Settings first.", a.window)
		return
	}

	result, err := engine.New(a.project.Settings).Optimize(a.project.Items, a.project.Container)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.project.Result = &result
	a.refreshResults()
}

func (a *App) showCompareDialog() {
	if len(a.project.Items) == 0 || a.project.Container.Area() <= 0 {
		dialog.ShowInformation("Nothing to compare", "Add items and a container first.", a.window)
		return
	}

	scenarios := engine.BuildDefaultScenarios(a.project.Settings)
	results, err := engine.CompareScenarios(scenarios, a.project.Items, a.project.Container)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	best := engine.BestResult(results)

	grid := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Placed", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Overflow", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Efficiency", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(""),
	)
	for i, r := range results {
		idx := i
		name := r.Scenario.Name
		if idx == best {
			name += " (best)"
		}
		grid.Add(widget.NewLabel(name))
		grid.Add(widget.NewLabel(strconv.Itoa(r.Placed)))
		grid.Add(widget.NewLabel(strconv.Itoa(r.Overflow)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.1f%%", r.Efficiency)))
		grid.Add(widget.NewButton("Use", func() {
			a.record("Apply Scenario")
			a.project.Settings = results[idx].Scenario.Settings
			result := results[idx].Result
			a.project.Result = &result
			a.refreshSettings()
			a.refreshResults()
		}))
	}

	d := dialog.NewCustom("Compare Strategies", "Close", container.NewVScroll(grid), a.window)
	d.Resize(fyne.NewSize(650, 350))
	d.Show()
}

// windowTitle names the window after the open file.
func windowTitle(path string) string {
	if path == "" {
		return "shelfpack"
	}
	return "shelfpack - " + filepath.Base(path)
}

// Run opens the viewer on proj and blocks until the window closes.
func Run(application fyne.App, proj model.Project, path string) {
	window := application.NewWindow(windowTitle(path))

	a := NewApp(application, window)
	a.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(a.Build(), window.Canvas()))
	a.SetProject(proj, path)
	if proj.Result == nil && len(proj.Items) > 0 && proj.Container.Area() > 0 {
		a.runPack()
		a.tabs.SelectIndex(2)
	}

	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
