package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kartoza/presetify/internal/fetcher"
)

// urlSubmittedMsg is sent when the user confirms a URL
type urlSubmittedMsg struct {
	url string
}

// URLPromptModel asks for an image URL and shows fetch progress
type URLPromptModel struct {
	input    textinput.Model
	spinner  spinner.Model
	fetching bool
	err      error
	width    int
	height   int
}

// NewURLPromptModel creates the URL prompt
func NewURLPromptModel() *URLPromptModel {
	ti := textinput.New()
	ti.Placeholder = "https://example.com/photo.jpg"
	ti.CharLimit = 2048
	ti.Width = 50
	ti.Prompt = "URL: "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorOrange)

	return &URLPromptModel{input: ti, spinner: s}
}

// Open clears the prompt and focuses the input
func (m *URLPromptModel) Open() tea.Cmd {
	m.input.SetValue("")
	m.fetching = false
	m.err = nil
	return m.input.Focus()
}

// SetFetching toggles the download indicator
func (m *URLPromptModel) SetFetching(fetching bool) tea.Cmd {
	m.fetching = fetching
	if fetching {
		m.input.Blur()
		return m.spinner.Tick
	}
	return m.input.Focus()
}

// SetError shows a fetch error and lets the user try again
func (m *URLPromptModel) SetError(err error) tea.Cmd {
	m.err = err
	return m.SetFetching(false)
}

// Fetching reports whether a download is in progress
func (m *URLPromptModel) Fetching() bool {
	return m.fetching
}

// Update handles messages for the prompt
func (m *URLPromptModel) Update(msg tea.Msg) (*URLPromptModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
			return m, tea.Quit
		}
		if m.fetching {
			return m, nil
		}
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			return m, func() tea.Msg { return backToListMsg{} }

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			url := strings.TrimSpace(m.input.Value())
			if !fetcher.IsURL(url) {
				m.err = fmt.Errorf("not an http(s) URL: %q", url)
				return m, nil
			}
			m.err = nil
			return m, func() tea.Msg { return urlSubmittedMsg{url: url} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt
func (m *URLPromptModel) View() string {
	header := RenderHeader("Open URL", nil)

	lines := []string{
		TitleStyle.Render("Fetch an image"),
		"",
		m.input.View(),
	}
	if m.fetching {
		lines = append(lines, "", fmt.Sprintf("%s Downloading...", m.spinner.View()))
	}
	if m.err != nil {
		lines = append(lines, "", ErrorStyle.Render(m.err.Error()))
	}
	content := BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	footer := RenderHelpFooter("enter: fetch • esc: back", m.width)
	return LayoutWithHeaderFooter(header, content, footer, m.width, m.height)
}
