package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kartoza/presetify/internal/fetcher"
	"github.com/kartoza/presetify/internal/imageinfo"
	"github.com/kartoza/presetify/internal/models"
	"github.com/kartoza/presetify/internal/tonecurve"
	"github.com/kartoza/presetify/internal/xmp"
	"github.com/spf13/cobra"
)

var jsonOutput bool

// inspectResult is the JSON form of one inspected image
type inspectResult struct {
	File           string              `json:"file"`
	Image          *imageinfo.Info     `json:"image,omitempty"`
	HasAdjustments bool                `json:"has_adjustments"`
	Adjustments    *models.Adjustments `json:"adjustments"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <images or URLs...>",
	Short: "Print the Lightroom adjustments stored in images",
	Long:  `Read the develop settings of each image and print them without starting the viewer.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		f := fetcher.New(cfg.FetchTimeout.Std())
		defer f.Cleanup()

		images, err := resolveImages(ctx, args, f, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		if err := checkRequiredDeps(); err != nil {
			return err
		}
		extractor, err := newExtractor()
		if err != nil {
			return err
		}

		results := make([]inspectResult, 0, len(images))
		for _, path := range images {
			adj := extractor.Extract(ctx, path)
			info, _ := imageinfo.Read(path)
			results = append(results, inspectResult{
				File:           path,
				Image:          info,
				HasAdjustments: adj.HasAdjustments(),
				Adjustments:    adj,
			})
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printInspect(out, r)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output adjustments as JSON")
}

// printInspect writes the text report for one image
func printInspect(out io.Writer, r inspectResult) {
	fmt.Fprintf(out, "File:        %s\n", r.File)
	if r.Image != nil {
		if summary := r.Image.Summary(); summary != "" {
			fmt.Fprintf(out, "Image:       %s\n", summary)
		}
	}

	adj := r.Adjustments
	if adj.Count() == 0 {
		fmt.Fprintln(out, "No Lightroom adjustments found")
		return
	}
	fmt.Fprintf(out, "Values:      %d\n", adj.Count())

	fmt.Fprintln(out)
	for _, field := range models.ScalarFields {
		if !field.IsSet(adj) {
			continue
		}
		var value string
		if field.Float != nil {
			value = xmp.FormatFloat(**field.Float(adj))
		} else {
			value = fmt.Sprintf("%+d", **field.Int(adj))
		}
		fmt.Fprintf(out, "  %-26s %s\n", field.Name, value)
	}

	if adj.HasColorBandAdjustments() {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  %-10s %6s %6s %6s\n", "Band", "Hue", "Sat", "Lum")
		for _, band := range models.ColorBands() {
			h, hok := adj.HueAdjustments[band]
			s, sok := adj.SaturationAdjustments[band]
			l, lok := adj.LuminanceAdjustments[band]
			if !hok && !sok && !lok {
				continue
			}
			fmt.Fprintf(out, "  %-10s %6s %6s %6s\n", band.Title(), bandCell(h, hok), bandCell(s, sok), bandCell(l, lok))
		}
	}

	if !adj.ToneCurve.Empty() {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Tone curve: %s\n", adj.ToneCurve.String())
		for _, line := range strings.Split(tonecurve.Render(adj.ToneCurve), "\n") {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}

	if !r.HasAdjustments {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Only color band, noise reduction or effects values were found; use 'presetify export --force' to export them.")
	}
}

func bandCell(v int, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%+d", v)
}
