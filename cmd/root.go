package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kartoza/presetify/internal/config"
	"github.com/kartoza/presetify/internal/fetcher"
	"github.com/kartoza/presetify/internal/imageinfo"
	"github.com/kartoza/presetify/internal/logging"
	"github.com/kartoza/presetify/internal/metadata"
	"github.com/kartoza/presetify/internal/tui"
	"github.com/kartoza/presetify/internal/xmp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	debugMode bool
	configDir string

	cfg       *config.Config
	logCloser io.Closer
)

// SetVersion sets the application version (called from main)
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "presetify [images or URLs...]",
	Short: "Extract Lightroom develop settings into reusable presets",
	Long: `Presetify reads the Lightroom develop settings stored in edited JPEG images
and turns them into Lightroom presets (.xmp).

It supports:
  - Basic, color, presence, detail and effects adjustments
  - HSL color band adjustments with before/after swatches
  - Tone curve preview in the terminal
  - Images given as local paths, glob patterns or http(s) URLs

Run without a subcommand to browse the images in the interactive viewer.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		f := fetcher.New(cfg.FetchTimeout.Std())
		defer f.Cleanup()

		paths, err := resolveArgs(ctx, args, f)
		if err != nil {
			return err
		}

		extractor, err := newExtractor()
		if err != nil {
			return err
		}

		return tui.Run(ctx, paths, tui.Options{
			Config:    cfg,
			Extractor: extractor,
			Generator: xmp.NewGenerator(),
			Fetcher:   f,
			Previewer: imageinfo.NewPreviewer(cfg.ShowPreview && imageinfo.KittySupported()),
			Version:   version,
		})
	},
}

// Execute runs the root command
func Execute() {
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (default: ~/.config/presetify)")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the config and starts file logging before any command runs
func setup(cmd *cobra.Command, args []string) error {
	if configDir != "" {
		config.SetConfigDir(configDir)
	}
	if err := config.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	closer, err := logging.Setup(cfg.GetLogFile(), debugMode)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	logCloser = closer

	logrus.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"version": version,
		"reader":  cfg.MetadataReader,
	}).Debug("Starting")
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if logCloser != nil {
		_ = logCloser.Close()
	}
}

// newExtractor builds the extractor for the configured metadata reader
func newExtractor() (*metadata.Extractor, error) {
	reader, err := metadata.NewReader(cfg.MetadataReader, cfg.ExifToolPath, cfg.ExifToolTimeout.Std())
	if err != nil {
		return nil, err
	}
	return metadata.NewExtractor(reader), nil
}
