package cmd

import (
	"fmt"
	"io"
	"log"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/project"
)

// NewPackCmd creates the pack subcommand, which places the items of FILE
// into the container and prints the placements and overflow.
func NewPackCmd() *cobra.Command {
	var (
		flags settingsFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "pack FILE",
		Short: "Pack the items of FILE into a container",
		Long: `Pack every item copy listed in FILE into a single container.

Copies that do not fit are reported as overflow. With --out the project,
including the packing result, is saved as JSON or YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := prepareProject(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			result, err := runPacking(cmd, proj)
			if err != nil {
				return err
			}
			proj.Result = &result
			printResult(cmd.OutOrStdout(), result)

			if out == "" {
				return nil
			}
			if err := project.Save(out, proj); err != nil {
				return err
			}
			log.Printf("Saved project to %s", out)
			if _, cfgPath, err := loadConfig(cmd); err == nil {
				if err := project.RememberProject(cfgPath, out); err != nil {
					log.Printf("Could not update recent projects: %v", err)
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Save the packed project to this .json or .yaml file")

	return cmd
}

// runPacking packs proj with its own settings and logs a one-line summary.
func runPacking(cmd *cobra.Command, proj model.Project) (model.PackResult, error) {
	log.Printf("Packing %d item kinds into %s (%s, sort by %s)",
		len(proj.Items), proj.Container, proj.Settings.Algorithm, proj.Settings.SortKey)

	result, err := engine.New(proj.Settings).OptimizeContext(cmd.Context(), proj.Items, proj.Container)
	if err != nil {
		return model.PackResult{}, fmt.Errorf("failed to pack: %w", err)
	}
	return result, nil
}

// printResult writes the placement table and the overflow list.
func printResult(w io.Writer, result model.PackResult) {
	total := len(result.Placements) + len(result.Overflow)
	fmt.Fprintf(w, "Container: %s\n", result.Container)
	fmt.Fprintf(w, "Placed: %d of %d  Efficiency: %.1f%%\n\n", len(result.Placements), total, result.Efficiency())

	if len(result.Placements) > 0 {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tLABEL\tWIDTH\tHEIGHT\tX\tY")
		for i, p := range result.Placements {
			fmt.Fprintf(tw, "%d\t%s\t%g\t%g\t%g\t%g\n", i+1, p.Item.Label, p.Item.Width, p.Item.Height, p.X, p.Y)
		}
		tw.Flush()
	}

	if !result.AllPlaced() {
		fmt.Fprintf(w, "\nOverflow (%d):\n", len(result.Overflow))
		for _, it := range result.Overflow {
			fmt.Fprintf(w, "  %s (%g x %g)\n", it.Label, it.Width, it.Height)
		}
	}
}
