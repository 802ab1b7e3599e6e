package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/shelfpack/internal/engine"
)

// NewCompareCmd creates the compare subcommand. It packs FILE once per
// default scenario and prints one row per scenario.
func NewCompareCmd() *cobra.Command {
	var flags settingsFlags

	cmd := &cobra.Command{
		Use:   "compare FILE",
		Short: "Compare sort keys and algorithms for FILE",
		Long: `Pack FILE with the current settings, with every other sort key and with
the other algorithm. The best scenario (fewest overflow copies, then highest
efficiency) is marked with an asterisk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := prepareProject(cmd, args[0], &flags)
			if err != nil {
				return err
			}

			results, err := engine.CompareScenariosContext(cmd.Context(), engine.BuildDefaultScenarios(proj.Settings), proj.Items, proj.Container)
			if err != nil {
				return fmt.Errorf("failed to compare: %w", err)
			}
			best := engine.BestResult(results)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "\tSCENARIO\tALGORITHM\tSORT\tPLACED\tOVERFLOW\tEFFICIENCY")
			for i, r := range results {
				mark := ""
				if i == best {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%.1f%%\n", mark, r.Scenario.Name,
					r.Scenario.Settings.Algorithm, r.Scenario.Settings.SortKey,
					r.Placed, r.Overflow, r.Efficiency)
			}
			return tw.Flush()
		},
	}

	flags.register(cmd)
	return cmd
}
