package cmd

import (
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/ui"
)

// AppID identifies the desktop viewer to fyne for preferences storage.
const AppID = "com.piwi3910.shelfpack"

// NewViewCmd creates the view subcommand, which opens FILE in the desktop
// viewer. Without FILE an empty project is opened.
func NewViewCmd() *cobra.Command {
	var flags settingsFlags

	cmd := &cobra.Command{
		Use:   "view [FILE]",
		Short: "Open the desktop viewer",
		Long: `Open the desktop viewer and editor. When FILE is given its items are
loaded and packed immediately. Saved projects keep their file path so that
File > Save Project writes back to them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				proj model.Project
				path string
			)
			if len(args) == 1 {
				p, err := prepareProject(cmd, args[0], &flags)
				if err != nil {
					return err
				}
				proj = p
				if isProjectFile(args[0]) {
					path = args[0]
				}
			} else {
				cfg, _, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				proj = model.NewProject()
				proj.Container = cfg.DefaultContainer
				cfg.ApplyToSettings(&proj.Settings)
				if err := flags.apply(cmd, &proj); err != nil {
					return err
				}
			}

			ui.Run(app.NewWithID(AppID), proj, path)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
