package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/piwi3910/shelfpack/internal/render"
)

// NewRenderCmd creates the render subcommand, which draws the packed layout
// of FILE as SVG or PDF.
func NewRenderCmd() *cobra.Command {
	var (
		flags settingsFlags
		out   string
		opts  = render.DefaultOptions()
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Draw the packed layout as SVG or PDF",
		Long: `Pack FILE and draw the container with every placed item as a coloured
rectangle. The output format follows the extension of --out (.svg or .pdf).
Projects that already hold a result are drawn without repacking.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			result, err := packedResult(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			if err := render.RenderFile(out, result, opts); err != nil {
				return err
			}
			log.Printf("Rendered %d placements to %s", len(result.Placements), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (.svg or .pdf)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "Millimetres of output per container unit")
	cmd.Flags().Float64Var(&opts.Margin, "margin", opts.Margin, "Blank border around the container in millimetres")
	cmd.Flags().Float64Var(&opts.StrokeWidth, "stroke", opts.StrokeWidth, "Outline width")

	return cmd
}
