package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"erdraw/export"
	"erdraw/tui"
)

func exportCmd() *cobra.Command {
	var (
		format  string
		output  string
		scale   float64
		padding float64
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Render a diagram file to PNG or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			g, err := tui.LoadGraphFile(args[0])
			if err != nil {
				return err
			}
			if g == nil {
				return fmt.Errorf("no such file: %s", args[0])
			}

			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			var exporter export.Exporter
			if f == export.FormatPNG {
				opts := export.DefaultRasterOptions()
				opts.Scale = cfg.Export.Scale
				opts.Padding = cfg.Export.Padding
				if cmd.Flags().Changed("scale") {
					opts.Scale = scale
				}
				if cmd.Flags().Changed("padding") {
					opts.Padding = padding
				}
				exporter = export.NewPNGExporter(opts)
			} else {
				exporter, err = export.NewExporter(f)
				if err != nil {
					return err
				}
			}

			data, err := exporter.Export(g)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			out := output
			if out == "" {
				out = strings.TrimSuffix(args[0], ".json") + "." + exporter.FileExtension()
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return err
			}
			good.Printf("wrote %s (%s, %d bytes)\n", out, exporter.FormatName(), len(data))
			return nil
		},
	}

	formats := make([]string, 0, len(export.AvailableFormats()))
	for _, f := range export.AvailableFormats() {
		formats = append(formats, string(f))
	}
	cmd.Flags().StringVarP(&format, "format", "f", "png", "Output format: "+strings.Join(formats, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default input name with new extension)")
	cmd.Flags().Float64Var(&scale, "scale", 1, "Raster scale factor")
	cmd.Flags().Float64Var(&padding, "padding", 40, "Raster padding in canvas units")
	return cmd
}
