package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/piwi3910/shelfpack/internal/export"
	"github.com/piwi3910/shelfpack/internal/model"
)

// NewExportCmd creates the export subcommand. Each format flag names an
// output file; several formats can be written in one run.
func NewExportCmd() *cobra.Command {
	var (
		flags                      settingsFlags
		pdfPath, xlsxPath, dxfPath string
		labelsPath                 string
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export the packed layout as PDF, Excel, DXF or labels",
		Long: `Pack FILE and write the result in one or more formats:

  --pdf     layout drawing plus a placement summary
  --xlsx    placement, overflow and summary sheets
  --dxf     container and item outlines for CAD
  --labels  Avery 5160 label sheets with a QR code per placed copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pdfPath == "" && xlsxPath == "" && dxfPath == "" && labelsPath == "" {
				return errors.New("at least one of --pdf, --xlsx, --dxf or --labels is required")
			}
			proj, err := prepareProject(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			result, err := resultFor(cmd, proj)
			if err != nil {
				return err
			}

			writers := []struct {
				path  string
				write func(string) error
			}{
				{pdfPath, func(p string) error { return export.ExportPDF(p, proj.Name, result, proj.Settings) }},
				{xlsxPath, func(p string) error { return export.ExportExcel(p, result) }},
				{dxfPath, func(p string) error { return export.ExportDXF(p, result) }},
				{labelsPath, func(p string) error { return export.ExportLabels(p, result) }},
			}
			for _, w := range writers {
				if w.path == "" {
					continue
				}
				if err := w.write(w.path); err != nil {
					return err
				}
				log.Printf("Exported %s", w.path)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Write a PDF report to this path")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write an Excel workbook to this path")
	cmd.Flags().StringVar(&dxfPath, "dxf", "", "Write a DXF drawing to this path")
	cmd.Flags().StringVar(&labelsPath, "labels", "", "Write a PDF label sheet to this path")

	return cmd
}

// packedResult loads FILE and returns its packing result.
func packedResult(cmd *cobra.Command, path string, flags *settingsFlags) (model.PackResult, error) {
	proj, err := prepareProject(cmd, path, flags)
	if err != nil {
		return model.PackResult{}, err
	}
	return resultFor(cmd, proj)
}

// resultFor reuses the result stored in a saved project unless a settings
// flag changed the inputs it was computed from.
func resultFor(cmd *cobra.Command, proj model.Project) (model.PackResult, error) {
	if proj.Result != nil && !settingsChanged(cmd) {
		return *proj.Result, nil
	}
	return runPacking(cmd, proj)
}

func settingsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"container", "sort", "algorithm", "seed"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
