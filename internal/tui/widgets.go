package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ========================================
// Brand Colors - Kartoza standard palette
// ========================================

var (
	ColorOrange   = lipgloss.Color("#DDA036") // Primary/Active
	ColorBlue     = lipgloss.Color("#569FC6") // Secondary/Links
	ColorGray     = lipgloss.Color("#9A9EA0") // Inactive/Subtle
	ColorWhite    = lipgloss.Color("#FFFFFF") // Text
	ColorDarkGray = lipgloss.Color("#3A3A3A") // Background
	ColorRed      = lipgloss.Color("#E95420") // Error
	ColorGreen    = lipgloss.Color("#4CAF50") // Success
	ColorCyan     = lipgloss.Color("#00BCD4") // Positive adjustments
	ColorYellow   = lipgloss.Color("#F4D03F") // Negative adjustments
)

// HeaderWidth is the standard width for the header
const HeaderWidth = 60

// AppTitle is shown at the start of every header
const AppTitle = "Presetify"

// ========================================
// Header State for dynamic updates
// ========================================

// HeaderState contains the dynamic state for the header
type HeaderState struct {
	Version    string
	ImageIndex int // Zero-based index of the image on screen, -1 for none
	ImageCount int
	Status     string
}

// ========================================
// Header Rendering
// ========================================

func headerStyles() (title, motto, divider lipgloss.Style) {
	title = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorOrange).
		Align(lipgloss.Center).
		Width(HeaderWidth)

	motto = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorGray).
		Align(lipgloss.Center).
		Width(HeaderWidth)

	divider = lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(HeaderWidth)
	return title, motto, divider
}

// RenderHeader renders the standard application header
// screenTitle should be the name of the current screen (e.g., "Images", "Adjustments")
func RenderHeader(screenTitle string, state *HeaderState) string {
	titleStyle, mottoStyle, dividerStyle := headerStyles()

	title := titleStyle.Render(AppTitle + " - " + screenTitle)
	motto := mottoStyle.Render("Lightroom preset extractor")
	divider := dividerStyle.Render("────────────────────────────────────────────────────────────")

	if state == nil {
		return lipgloss.JoinVertical(
			lipgloss.Center,
			title,
			motto,
			divider,
		)
	}

	statusStyle := lipgloss.NewStyle().
		Foreground(ColorWhite).
		Align(lipgloss.Center).
		Width(HeaderWidth)

	position := "-"
	if state.ImageIndex >= 0 && state.ImageCount > 0 {
		position = fmt.Sprintf("%d of %d", state.ImageIndex+1, state.ImageCount)
	}

	statusText := state.Status
	if statusText == "" {
		statusText = "Ready"
	}
	statusStyled := lipgloss.NewStyle().
		Foreground(ColorGreen).
		Bold(true).
		Render(statusText)

	statusLine := fmt.Sprintf("Status: %s  |  Image: %s", statusStyled, position)
	if state.Version != "" {
		statusLine += "  |  v" + state.Version
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		motto,
		divider,
		statusStyle.Render(statusLine),
		divider,
	)
}

// ========================================
// Footer Rendering
// ========================================

// RenderHelpFooter renders the standard help footer at the bottom of the screen
func RenderHelpFooter(helpText string, width int) string {
	helpStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	footerStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center)

	return footerStyle.Render(helpStyle.Render(helpText))
}

// ========================================
// Layout Helpers
// ========================================

// LayoutWithHeaderFooter creates a standard layout with header at top and footer at bottom
func LayoutWithHeaderFooter(header, content, footer string, width, height int) string {
	mainSection := lipgloss.JoinVertical(
		lipgloss.Center,
		header,
		"",
		content,
	)

	// Leave room for the footer
	centeredMain := lipgloss.Place(
		width,
		height-2,
		lipgloss.Center,
		lipgloss.Top,
		mainSection,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		centeredMain,
		footer,
	)
}

// CenterContent centers content both horizontally and vertically
func CenterContent(content string, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// ========================================
// Common Styles
// ========================================

// Box style for content areas
var BoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorOrange).
	Padding(0, 1)

// Title style for section headings
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorOrange)

// Subtitle style
var SubtitleStyle = lipgloss.NewStyle().
	Foreground(ColorBlue)

// Label style for form labels
var LabelStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// Value style for displaying values
var ValueStyle = lipgloss.NewStyle().
	Foreground(ColorWhite)

// Active style for active/selected items
var ActiveStyle = lipgloss.NewStyle().
	Foreground(ColorOrange).
	Bold(true)

// Inactive style for inactive items
var InactiveStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// Error style for error messages
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed).
	Bold(true)

// Success style for success messages
var SuccessStyle = lipgloss.NewStyle().
	Foreground(ColorGreen).
	Bold(true)

// Warning style for notices that need attention
var WarningStyle = lipgloss.NewStyle().
	Foreground(ColorYellow)
