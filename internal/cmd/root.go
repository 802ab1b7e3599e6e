package cmd

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/shelfpack/internal/version"
)

// NewRootCmd creates and returns the root cobra command for the shelfpack CLI.
// It sets up all subcommands, command groups, and the shared --config flag.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shelfpack",
		Short: "shelfpack - 2D rectangle packing into a fixed container",
		Long: `shelfpack places rectangular items into a single fixed-size container.

Items are fed largest first into a shelf/guillotine split tree; anything that
does not fit is reported as overflow. A seeded genetic search over the feed
order is available for denser layouts.

Use subcommands to perform different operations:
  - pack: Pack an item list and print the placements
  - compare: Compare sort keys and algorithms side by side
  - render: Draw the layout as SVG or PDF
  - export: Write PDF, Excel, DXF or label output
  - view: Open the desktop viewer
  - config: Show or change the default settings`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	groupPacking := "packing"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupPacking,
		Title: "Packing Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.shelfpack/config.json)")

	packCmd := NewPackCmd()
	compareCmd := NewCompareCmd()
	renderCmd := NewRenderCmd()
	exportCmd := NewExportCmd()
	viewCmd := NewViewCmd()
	configCmd := NewConfigCmd()
	versionCmd := NewVersionCmd()

	packCmd.GroupID = groupPacking
	compareCmd.GroupID = groupPacking
	renderCmd.GroupID = groupPacking
	exportCmd.GroupID = groupPacking
	viewCmd.GroupID = groupPacking
	configCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(packCmd, compareCmd, renderCmd, exportCmd, viewCmd, configCmd, versionCmd)

	return rootCmd
}
