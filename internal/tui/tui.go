// Package tui implements the interactive shell: an image list, the
// adjustments view, batch reading and fetching images by URL.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kartoza/presetify/internal/deps"
	"github.com/kartoza/presetify/internal/imageinfo"
)

// Run starts the interactive shell over paths
func Run(ctx context.Context, paths []string, opts Options) error {
	if opts.Config != nil {
		if missing := deps.MissingRequired(opts.Config); len(missing) > 0 {
			fmt.Println(RenderMissingDeps(missing))
			return fmt.Errorf("missing required dependencies")
		}
	}

	p := tea.NewProgram(NewAppModel(ctx, paths, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()

	if opts.Previewer.Enabled() {
		fmt.Fprint(os.Stdout, imageinfo.ClearSequence())
	}
	return err
}

// RenderMissingDeps formats the missing dependencies error screen
func RenderMissingDeps(missing []deps.CheckResult) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorRed).
		Render("Missing Required Dependencies"))
	sb.WriteString("\n\n")
	sb.WriteString("The following required programs are not installed:\n\n")

	for _, m := range missing {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			lipgloss.NewStyle().Foreground(ColorRed).Render("✗"),
			lipgloss.NewStyle().Bold(true).Render(m.Dependency.Name)))
		sb.WriteString(fmt.Sprintf("    %s\n\n",
			lipgloss.NewStyle().Foreground(ColorGray).Render(m.Dependency.Description)))
	}

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Installation hints:"))
	sb.WriteString("\n")
	for _, m := range missing {
		if hint := installHint(m.Dependency.Name); hint != "" {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", m.Dependency.Name, hint))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(ColorGray).
		Render("Or set metadata_reader to \"auto\" or \"embedded\" in the config file."))
	sb.WriteString("\n")
	return sb.String()
}

// installHint returns installation hints for common package managers
func installHint(name string) string {
	hints := map[string]string{
		"exiftool":    "apt install libimage-exiftool-perl / pacman -S perl-image-exiftool / brew install exiftool",
		"notify-send": "apt install libnotify-bin / pacman -S libnotify",
	}
	return hints[name]
}
