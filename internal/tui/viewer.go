package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// noticeKind selects the style of the notification line
type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeWarning
	noticeError
)

// Messages sent by the viewer
type viewerNavigateMsg struct {
	index int
}
type exportRequestMsg struct {
	index int
}
type backToListMsg struct{}

// viewerChrome is the number of lines used around the viewport
const viewerChrome = 12

// ViewerModel is the image view screen: adjustments of one image with
// navigation and export.
type ViewerModel struct {
	images     []*imageEntry
	index      int
	viewport   viewport.Model
	spinner    spinner.Model
	loading    bool
	notice     string
	noticeKind noticeKind
	version    string
	width      int
	height     int
}

// NewViewerModel creates a viewer over images
func NewViewerModel(images []*imageEntry) *ViewerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorOrange)

	return &ViewerModel{
		images:   images,
		viewport: viewport.New(80, 20),
		spinner:  s,
	}
}

// SetImages replaces the image slice the viewer reads from
func (m *ViewerModel) SetImages(images []*imageEntry) {
	m.images = images
	if m.index >= len(images) {
		m.index = len(images) - 1
	}
	if m.index < 0 {
		m.index = 0
	}
	m.Refresh()
}

// SetIndex shows the image at index and clears the notification line
func (m *ViewerModel) SetIndex(index int) {
	if index < 0 || index >= len(m.images) {
		return
	}
	m.index = index
	m.notice = ""
	m.viewport.GotoTop()
	m.Refresh()
}

// Index returns the index of the image on screen
func (m *ViewerModel) Index() int {
	return m.index
}

// SetLoading toggles the reading indicator
func (m *ViewerModel) SetLoading(loading bool) {
	m.loading = loading
}

// SetNotice sets the notification line
func (m *ViewerModel) SetNotice(text string, kind noticeKind) {
	m.notice = text
	m.noticeKind = kind
}

// SetSize resizes the viewer and its viewport
func (m *ViewerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 20)
	m.viewport.Height = max(height-viewerChrome, 5)
	m.Refresh()
}

// Refresh re-renders the current image into the viewport
func (m *ViewerModel) Refresh() {
	m.viewport.SetContent(m.renderContent())
}

func (m *ViewerModel) current() *imageEntry {
	if m.index < 0 || m.index >= len(m.images) {
		return nil
	}
	return m.images[m.index]
}

// Update handles messages for the viewer
func (m *ViewerModel) Update(msg tea.Msg) (*ViewerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c", "q"))):
			return m, tea.Quit

		case key.Matches(msg, key.NewBinding(key.WithKeys("n", "right"))):
			if m.index < len(m.images)-1 {
				return m, m.navigate(m.index + 1)
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("p", "left"))):
			if m.index > 0 {
				return m, m.navigate(m.index - 1)
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("e"))):
			if m.loading || m.current() == nil {
				return m, nil
			}
			index := m.index
			return m, func() tea.Msg { return exportRequestMsg{index: index} }

		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			return m, func() tea.Msg { return backToListMsg{} }
		}
	}

	// Scrolling keys go to the viewport
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *ViewerModel) navigate(index int) tea.Cmd {
	m.SetIndex(index)
	return func() tea.Msg { return viewerNavigateMsg{index: index} }
}

// View renders the viewer
func (m *ViewerModel) View() string {
	status := "Ready"
	if m.loading {
		status = "Reading"
	}
	header := RenderHeader("Adjustments", &HeaderState{
		Version:    m.version,
		ImageIndex: m.index,
		ImageCount: len(m.images),
		Status:     status,
	})

	var body string
	if m.loading {
		body = fmt.Sprintf("%s Reading adjustments...", m.spinner.View())
	} else {
		body = m.viewport.View()
	}

	parts := []string{m.renderTitle(), BoxStyle.Render(body)}
	if m.notice != "" {
		parts = append(parts, m.renderNotice())
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	helpText := "n: next • p: previous • e: export • ↑/↓: scroll • esc: back • q: quit"
	footer := RenderHelpFooter(helpText, m.width)

	return LayoutWithHeaderFooter(header, content, footer, m.width, m.height)
}

func (m *ViewerModel) renderTitle() string {
	img := m.current()
	if img == nil {
		return InactiveStyle.Render("No image")
	}
	return fmt.Sprintf("%s %s",
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Image %d of %d:", m.index+1, len(m.images))),
		lipgloss.NewStyle().Foreground(ColorCyan).Render(img.Name()),
	)
}

func (m *ViewerModel) renderNotice() string {
	switch m.noticeKind {
	case noticeSuccess:
		return SuccessStyle.Render(m.notice)
	case noticeWarning:
		return WarningStyle.Render(m.notice)
	case noticeError:
		return ErrorStyle.Render(m.notice)
	default:
		return SubtitleStyle.Render(m.notice)
	}
}

func (m *ViewerModel) renderContent() string {
	img := m.current()
	if img == nil || !img.Loaded {
		return ""
	}

	var sections []string
	if img.Info != nil {
		if summary := img.Info.Summary(); summary != "" {
			sections = append(sections, LabelStyle.Render(summary))
		}
	}
	if img.Preview != "" {
		sections = append(sections, img.Preview)
	}
	sections = append(sections, RenderAdjustments(img.Adj))
	return strings.Join(sections, "\n\n")
}
