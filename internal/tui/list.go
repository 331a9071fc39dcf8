package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ListAction is an action requested from the image list
type ListAction int

const (
	ListOpenImage ListAction = iota
	ListProcessAll
	ListOpenURL
)

// listActionMsg is sent when the user picks an action on the list screen
type listActionMsg struct {
	action ListAction
	index  int
}

// ListModel represents the image list screen
type ListModel struct {
	selected int
	images   []*imageEntry
	width    int
	height   int
}

// NewListModel creates a list over images
func NewListModel(images []*imageEntry) *ListModel {
	return &ListModel{images: images}
}

// SetImages replaces the listed images, keeping the selection in range
func (m *ListModel) SetImages(images []*imageEntry) {
	m.images = images
	if m.selected >= len(images) {
		m.selected = len(images) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Select moves the cursor to index when it is in range
func (m *ListModel) Select(index int) {
	if index >= 0 && index < len(m.images) {
		m.selected = index
	}
}

// Selected returns the index under the cursor
func (m *ListModel) Selected() int {
	return m.selected
}

// Init initializes the list
func (m *ListModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the list
func (m *ListModel) Update(msg tea.Msg) (*ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c", "q"))):
			return m, tea.Quit

		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if len(m.images) == 0 {
				return m, nil
			}
			m.selected--
			if m.selected < 0 {
				m.selected = len(m.images) - 1
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if len(m.images) == 0 {
				return m, nil
			}
			m.selected++
			if m.selected >= len(m.images) {
				m.selected = 0
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter", " "))):
			if m.selected >= 0 && m.selected < len(m.images) {
				return m, listAction(ListOpenImage, m.selected)
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("a"))):
			if len(m.images) > 0 {
				return m, listAction(ListProcessAll, 0)
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("o"))):
			return m, listAction(ListOpenURL, 0)
		}
	}

	return m, nil
}

func listAction(action ListAction, index int) tea.Cmd {
	return func() tea.Msg {
		return listActionMsg{action: action, index: index}
	}
}

// View renders the list
func (m *ListModel) View() string {
	header := RenderHeader("Images", nil)

	countStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBlue).
		MarginBottom(1)

	var content string
	if len(m.images) == 0 {
		content = lipgloss.JoinVertical(lipgloss.Left,
			countStyle.Render("No images loaded"),
			InactiveStyle.Render("Press o to open an image URL"),
		)
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left,
			countStyle.Render(fmt.Sprintf("Found %d images", len(m.images))),
			m.renderItems(),
		)
	}

	helpText := "↑/k: up • ↓/j: down • enter: view • a: process all • o: open URL • q: quit"
	footer := RenderHelpFooter(helpText, m.width)

	return LayoutWithHeaderFooter(header, content, footer, m.width, m.height)
}

func (m *ListModel) renderItems() string {
	normalStyle := lipgloss.NewStyle().
		Foreground(ColorBlue).
		Padding(0, 2)

	selectedStyle := lipgloss.NewStyle().
		Foreground(ColorOrange).
		Bold(true).
		Padding(0, 2)

	var items []string
	for i, img := range m.images {
		prefix := "  "
		style := normalStyle
		if i == m.selected {
			prefix = "▶ "
			style = selectedStyle
		}
		line := style.Render(fmt.Sprintf("%s%d. %s", prefix, i+1, img.Name()))
		items = append(items, line+" "+badge(img))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// badge summarizes what is known about an image
func badge(img *imageEntry) string {
	switch {
	case !img.Loaded:
		return InactiveStyle.Render("[not read]")
	case img.Adj.Count() == 0:
		return WarningStyle.Render("[no adjustments]")
	default:
		return SuccessStyle.Render(fmt.Sprintf("[%d values]", img.Adj.Count()))
	}
}
