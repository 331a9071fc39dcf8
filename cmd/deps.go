package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kartoza/presetify/internal/config"
	"github.com/kartoza/presetify/internal/deps"
	"github.com/spf13/cobra"
)

var depsPlain bool

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check for required dependencies",
	Long:  `Check if the external programs presetify uses are installed and available.`,
	Run: func(cmd *cobra.Command, args []string) {
		required, optional := deps.CheckAll(cfg)

		if depsPlain {
			fmt.Print(deps.FormatAll(required, optional))
			return
		}

		// Colors
		green := lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
		red := lipgloss.NewStyle().Foreground(lipgloss.Color("#E95420"))
		gray := lipgloss.NewStyle().Foreground(lipgloss.Color("#9A9EA0"))
		cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("#00BCD4"))
		bold := lipgloss.NewStyle().Bold(true)

		fmt.Println()
		fmt.Printf("%s %s\n\n", bold.Render("Metadata reader:"), cyan.Render(readerDescription(cfg.MetadataReader)))

		fmt.Println(bold.Render("Required Dependencies:"))
		fmt.Println()

		if len(required) == 0 {
			fmt.Printf("  %s\n\n", gray.Render("None for the configured metadata reader"))
		}

		allRequiredOk := true
		for _, r := range required {
			var status string
			if r.Available {
				status = green.Render("✓")
			} else {
				status = red.Render("✗")
				allRequiredOk = false
			}
			fmt.Printf("  %s %s\n", status, bold.Render(r.Dependency.Name))
			fmt.Printf("    %s\n", gray.Render(r.Dependency.Description))
			if r.Available {
				fmt.Printf("    Path: %s\n", r.Path)
			}
			fmt.Println()
		}

		fmt.Println(bold.Render("Optional Dependencies:"))
		fmt.Println()

		for _, r := range optional {
			var status string
			if r.Available {
				status = green.Render("✓")
			} else {
				status = gray.Render("○")
			}
			fmt.Printf("  %s %s\n", status, bold.Render(r.Dependency.Name))
			fmt.Printf("    %s\n", gray.Render(r.Dependency.Description))
			if r.Available {
				fmt.Printf("    Path: %s\n", r.Path)
			}
			fmt.Println()
		}

		if allRequiredOk {
			fmt.Println(green.Render("All required dependencies are installed!"))
		} else {
			fmt.Println(red.Render("Some required dependencies are missing."))
			fmt.Println("Install them or set metadata_reader to \"auto\" in the config file.")
		}
		fmt.Println()
	},
}

func init() {
	depsCmd.Flags().BoolVar(&depsPlain, "plain", false, "Print the report without colors")
}

// readerDescription names the metadata reader for the report
func readerDescription(kind string) string {
	switch kind {
	case config.ReaderExifTool:
		return "exiftool"
	case config.ReaderEmbedded:
		return "embedded XMP packet"
	default:
		return "auto (exiftool, falling back to embedded XMP)"
	}
}

// checkRequiredDeps fails when the configured reader needs a missing binary
func checkRequiredDeps() error {
	missing := deps.MissingRequired(cfg)
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.TrimSpace(deps.FormatMissing(missing)))
}
