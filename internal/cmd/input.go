package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/shelfpack/internal/dsl"
	"github.com/piwi3910/shelfpack/internal/importer"
	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/project"
)

// isProjectFile reports whether path is a saved project rather than an item list.
func isProjectFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// loadInput reads an item source into a project. Item lists without their
// own container or settings take them from cfg.
func loadInput(path string, cfg model.AppConfig) (model.Project, error) {
	if isProjectFile(path) {
		return project.Load(path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".pack" {
		return loadPackFile(path, cfg)
	}

	var res importer.ImportResult
	switch ext {
	case ".csv", ".tsv", ".txt":
		res = importer.ImportCSV(path)
	case ".xlsx":
		res = importer.ImportExcel(path)
	case ".dxf":
		res = importer.ImportDXF(path)
	default:
		return model.Project{}, fmt.Errorf("unsupported input format %q", ext)
	}

	for _, w := range res.Warnings {
		log.Printf("%s: %s", filepath.Base(path), w)
	}
	if len(res.Items) == 0 {
		if len(res.Errors) > 0 {
			return model.Project{}, fmt.Errorf("failed to import %s: %s", path, strings.Join(res.Errors, "; "))
		}
		return model.Project{}, fmt.Errorf("no items found in %s", path)
	}
	for _, e := range res.Errors {
		log.Printf("%s: skipped: %s", filepath.Base(path), e)
	}

	proj := model.NewProject()
	proj.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	proj.Items = res.Items
	proj.Container = cfg.DefaultContainer
	cfg.ApplyToSettings(&proj.Settings)
	return proj, nil
}

func loadPackFile(path string, cfg model.AppConfig) (model.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to open item list: %w", err)
	}
	defer f.Close()

	proj, err := dsl.LoadProject(f)
	if err != nil {
		return model.Project{}, fmt.Errorf("%s: %w", path, err)
	}
	if proj.Container.Area() == 0 {
		proj.Container = cfg.DefaultContainer
	}
	return proj, nil
}

// settingsFlags are the packing overrides shared by the packing commands.
type settingsFlags struct {
	container string
	sortKey   string
	algorithm string
	seed      int64
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.container, "container", "c", "", "Container size as WIDTHxHEIGHT")
	cmd.Flags().StringVarP(&f.sortKey, "sort", "s", "", "Sort key: height, width, area or perimeter")
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "Packing algorithm: shelf or genetic")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Random seed for the genetic search")
}

// apply overrides proj with every flag the user set.
func (f *settingsFlags) apply(cmd *cobra.Command, proj *model.Project) error {
	if f.container != "" {
		w, h, err := dsl.ParseDimensions(f.container)
		if err != nil {
			return err
		}
		size := model.NewSize(w, h)
		if err := size.Validate(); err != nil {
			return fmt.Errorf("invalid container: %w", err)
		}
		proj.Container = size
	}
	if f.sortKey != "" {
		key, err := model.ParseSortKey(f.sortKey)
		if err != nil {
			return err
		}
		proj.Settings.SortKey = key
	}
	if f.algorithm != "" {
		algo, err := model.ParseAlgorithm(f.algorithm)
		if err != nil {
			return err
		}
		proj.Settings.Algorithm = algo
	}
	if cmd.Flags().Changed("seed") {
		proj.Settings.Seed = f.seed
	}
	return nil
}

// loadConfig reads the config file named by the persistent --config flag.
func loadConfig(cmd *cobra.Command) (model.AppConfig, string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(path)
	if err != nil {
		return model.AppConfig{}, path, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, path, nil
}

// prepareProject loads FILE and applies the settings flags.
func prepareProject(cmd *cobra.Command, path string, flags *settingsFlags) (model.Project, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return model.Project{}, err
	}
	proj, err := loadInput(path, cfg)
	if err != nil {
		return model.Project{}, err
	}
	if err := flags.apply(cmd, &proj); err != nil {
		return model.Project{}, err
	}
	return proj, nil
}
