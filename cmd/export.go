package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/kartoza/presetify/internal/fetcher"
	"github.com/kartoza/presetify/internal/metadata"
	"github.com/kartoza/presetify/internal/models"
	"github.com/kartoza/presetify/internal/notify"
	"github.com/kartoza/presetify/internal/xmp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	exportOutputDir string
	exportForce     bool
)

// exportOutcome is what happened to one image during a headless export
type exportOutcome struct {
	Source  string
	Preset  string
	Skipped bool
	Err     error
}

var exportCmd = &cobra.Command{
	Use:   "export <images or URLs...>",
	Short: "Export a preset for each image without starting the viewer",
	Long: `Read the develop settings of each image and write <name>_preset.xmp.

Presets are written beside each source image unless --output-dir (or the
output_dir config setting) names a directory. Images without basic, color,
presence or tone curve values are skipped unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		outputDir := cfg.OutputDir
		if exportOutputDir != "" {
			outputDir = exportOutputDir
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

		outcomes := exportAll(ctx, extractor, xmp.NewGenerator(), images, outputDir, exportForce)
		failed := printOutcomes(cmd.OutOrStdout(), outcomes)

		if cfg.NotifyOnExport {
			for _, o := range outcomes {
				notifyOutcome(o)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d presets failed to export", failed, len(outcomes))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutputDir, "output-dir", "o", "", "Directory for the presets (default: beside each image)")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "Export even when no basic adjustments were found")
}

// exportAll writes one preset per image
func exportAll(ctx context.Context, extractor *metadata.Extractor, gen *xmp.Generator, images []string, outputDir string, force bool) []exportOutcome {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			err = fmt.Errorf("failed to create output directory: %w", err)
			outcomes := make([]exportOutcome, len(images))
			for i, path := range images {
				outcomes[i] = exportOutcome{Source: path, Err: err}
			}
			return outcomes
		}
	}

	outcomes := make([]exportOutcome, 0, len(images))
	for _, path := range images {
		adj := extractor.Extract(ctx, path)
		outcome := exportOutcome{Source: path}

		if !adj.HasAdjustments() && !(force && adj.Count() > 0) {
			outcome.Skipped = true
			outcomes = append(outcomes, outcome)
			continue
		}

		outcome.Preset = models.PresetPath(path, outputDir)
		outcome.Err = gen.Generate(adj, models.NewPresetMetadata(path), outcome.Preset)
		if outcome.Err != nil {
			logrus.WithError(outcome.Err).WithField("source", path).Error("Preset export failed")
		} else {
			logrus.WithFields(logrus.Fields{"source": path, "preset": outcome.Preset}).Info("Preset exported")
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// printOutcomes reports each outcome and returns the number of failures
func printOutcomes(out io.Writer, outcomes []exportOutcome) int {
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("#E95420"))
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("#9A9EA0"))

	failed := 0
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", red.Render("✗"), o.Source, o.Err)
		case o.Skipped:
			fmt.Fprintf(out, "%s %s: no adjustments to export\n", gray.Render("○"), o.Source)
		default:
			fmt.Fprintf(out, "%s %s -> %s\n", green.Render("✓"), o.Source, o.Preset)
		}
	}
	return failed
}

func notifyOutcome(o exportOutcome) {
	var err error
	switch {
	case o.Skipped:
		return
	case o.Err != nil:
		err = notify.ExportFailed(o.Source, o.Err)
	default:
		err = notify.PresetExported(o.Preset)
	}
	if err != nil {
		logrus.WithError(err).Debug("Desktop notification failed")
	}
}
