package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/project"
)

// execute runs the root command with an isolated config file.
func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", configPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPackCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	input := writeFile(t, dir, "boxes.csv", "Label,Width,Height,Qty\nBox,60,30,2\nCrate,40,80,1\n")
	out := filepath.Join(dir, "packed.json")

	stdout, err := execute(t, cfgPath, "pack", input, "--container", "100x100", "--out", out)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Container: 100x100")
	assert.Contains(t, stdout, "Placed: 3 of 3")
	assert.NotContains(t, stdout, "Overflow")

	saved, err := project.Load(out)
	require.NoError(t, err)
	require.NotNil(t, saved.Result)
	assert.Len(t, saved.Result.Placements, 3)

	cfg, err := project.LoadAppConfig(cfgPath)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.RecentProjects)
	assert.Equal(t, "packed.json", filepath.Base(cfg.RecentProjects[0]))
}

func TestPackCommandReportsOverflow(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "big.pack", "container 50x50\nitem \"Wide\" 60x30\nitem \"Small\" 10x10\n")

	stdout, err := execute(t, filepath.Join(dir, "config.json"), "pack", input)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Placed: 1 of 2")
	assert.Contains(t, stdout, "Overflow (1):")
	assert.Contains(t, stdout, "Wide (60 x 30)")
}

func TestPackCommandErrors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")

	_, err := execute(t, cfgPath, "pack")
	assert.Error(t, err, "FILE is required")

	_, err = execute(t, cfgPath, "pack", filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	input := writeFile(t, dir, "a.pack", "item \"A\" 1x1\n")
	_, err = execute(t, cfgPath, "pack", input, "--sort", "diagonal")
	assert.ErrorContains(t, err, "unknown sort key")
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "a.pack", "container 100x100\nitem \"A\" 50x50 qty 4\n")

	stdout, err := execute(t, filepath.Join(dir, "config.json"), "compare", input)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Current Settings")
	assert.Contains(t, stdout, "Sort by width")
	assert.Contains(t, stdout, "Genetic Algorithm")
	assert.Contains(t, stdout, "*")
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	input := writeFile(t, dir, "a.pack", "container 100x80\nitem \"A\" 40x40 qty 2\n")
	out := filepath.Join(dir, "layout.svg")

	_, err := execute(t, cfgPath, "render", input, "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	_, err = execute(t, cfgPath, "render", input)
	assert.ErrorContains(t, err, "--out")

	_, err = execute(t, cfgPath, "render", input, "--out", filepath.Join(dir, "layout.bmp"))
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	input := writeFile(t, dir, "a.pack", "project \"Export\"\ncontainer 200x100\nitem \"A\" 40x40 qty 2\nitem \"B\" 60x20\n")

	paths := map[string]string{
		"--pdf":    filepath.Join(dir, "report.pdf"),
		"--xlsx":   filepath.Join(dir, "layout.xlsx"),
		"--dxf":    filepath.Join(dir, "layout.dxf"),
		"--labels": filepath.Join(dir, "labels.pdf"),
	}
	args := []string{"export", input}
	for flag, path := range paths {
		args = append(args, flag, path)
	}

	_, err := execute(t, cfgPath, args...)
	require.NoError(t, err)

	for flag, path := range paths {
		info, err := os.Stat(path)
		require.NoError(t, err, flag)
		assert.Positive(t, info.Size(), flag)
	}

	_, err = execute(t, cfgPath, "export", input)
	assert.ErrorContains(t, err, "at least one")
}

func TestExportReusesSavedResult(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")

	proj := model.NewProject()
	proj.Container = model.NewSize(100, 100)
	proj.Items = []model.Item{model.NewItem("A", 10, 10, 1)}
	proj.Result = &model.PackResult{
		Container:  proj.Container,
		Placements: []model.Placement{{Item: proj.Items[0], X: 90, Y: 90}},
	}
	input := filepath.Join(dir, "saved.json")
	require.NoError(t, project.Save(input, proj))

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--config", cfgPath, "export", input, "--xlsx", filepath.Join(dir, "out.xlsx")})
	require.NoError(t, cmd.Execute())

	exportCmd, _, err := cmd.Find([]string{"export"})
	require.NoError(t, err)
	result, err := resultFor(exportCmd, proj)
	require.NoError(t, err)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, 90.0, result.Placements[0].X, "stored placement is kept when no setting changed")
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "conf", "config.json")

	_, err := execute(t, cfgPath, "config", "set-sort", "perimeter")
	require.NoError(t, err)
	_, err = execute(t, cfgPath, "config", "set-algorithm", "genetic")
	require.NoError(t, err)
	_, err = execute(t, cfgPath, "config", "set-container", "2440x1220")
	require.NoError(t, err)

	cfg, err := project.LoadAppConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, model.SortPerimeter, cfg.DefaultSortKey)
	assert.Equal(t, model.AlgorithmGenetic, cfg.DefaultAlgorithm)
	assert.Equal(t, model.NewSize(2440, 1220), cfg.DefaultContainer)

	stdout, err := execute(t, cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"default_sort_key": "perimeter"`)

	_, err = execute(t, cfgPath, "config", "set-sort", "diagonal")
	assert.Error(t, err)
	_, err = execute(t, cfgPath, "config", "set-container", "-1x5")
	assert.Error(t, err)
}

func TestConfigBackupRestore(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "a", "config.json")
	backup := filepath.Join(dir, "backup.json")

	_, err := execute(t, cfgPath, "config", "set-container", "300x200")
	require.NoError(t, err)

	store := model.NewTemplateStore()
	store.Add(model.NewProjectTemplate("Shelf", "", model.NewSize(300, 200), nil, model.DefaultSettings()))
	require.NoError(t, project.SaveTemplates(templatePathFor(cfgPath), store))

	_, err = execute(t, cfgPath, "config", "backup", backup)
	require.NoError(t, err)

	otherPath := filepath.Join(dir, "b", "config.json")
	_, err = execute(t, otherPath, "config", "restore", backup)
	require.NoError(t, err)

	cfg, err := project.LoadAppConfig(otherPath)
	require.NoError(t, err)
	assert.Equal(t, model.NewSize(300, 200), cfg.DefaultContainer)

	restored, err := project.LoadTemplates(templatePathFor(otherPath))
	require.NoError(t, err)
	assert.Equal(t, []string{"Shelf"}, restored.Names())
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, filepath.Join(t.TempDir(), "config.json"), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "shelfpack version")
}

func TestTemplatePathFor(t *testing.T) {
	assert.Equal(t, filepath.Join("x", "templates.json"), templatePathFor(filepath.Join("x", "config.json")))
}
