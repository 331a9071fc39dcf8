package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kartoza/presetify/internal/models"
)

func loadedEntries(names ...string) []*imageEntry {
	entries := testEntries(names...)
	for _, e := range entries {
		e.Loaded = true
		e.Adj = models.NewAdjustments(e.Path)
	}
	return entries
}

func TestViewerModel_Navigation(t *testing.T) {
	m := NewViewerModel(loadedEntries("a.jpg", "b.jpg", "c.jpg"))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.Index() != 1 {
		t.Errorf("expected index 1 after 'n', got %d", m.Index())
	}
	if cmd == nil {
		t.Fatal("expected a navigate command")
	}
	if msg, ok := cmd().(viewerNavigateMsg); !ok || msg.index != 1 {
		t.Errorf("expected viewerNavigateMsg{1}, got %#v", cmd())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Index() != 2 {
		t.Errorf("expected index 2 after right, got %d", m.Index())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if m.Index() != 1 {
		t.Errorf("expected index 1 after 'p', got %d", m.Index())
	}
}

func TestViewerModel_NavigationBounds(t *testing.T) {
	m := NewViewerModel(loadedEntries("a.jpg", "b.jpg"))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Index() != 0 || cmd != nil {
		t.Errorf("expected previous on the first image to do nothing, got index %d", m.Index())
	}

	m.SetIndex(1)
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.Index() != 1 || cmd != nil {
		t.Errorf("expected next on the last image to do nothing, got index %d", m.Index())
	}
}

func TestViewerModel_NavigationClearsNotice(t *testing.T) {
	m := NewViewerModel(loadedEntries("a.jpg", "b.jpg"))
	m.SetNotice("✓ Preset saved to a_preset.xmp", noticeSuccess)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.notice != "" {
		t.Errorf("expected notice to be cleared, got %q", m.notice)
	}
}

func TestViewerModel_ExportRequest(t *testing.T) {
	m := NewViewerModel(loadedEntries("a.jpg", "b.jpg"))
	m.SetIndex(1)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	if cmd == nil {
		t.Fatal("expected an export command")
	}
	if msg, ok := cmd().(exportRequestMsg); !ok || msg.index != 1 {
		t.Errorf("expected exportRequestMsg{1}, got %#v", cmd())
	}
}

func TestViewerModel_ExportIgnoredWhileLoading(t *testing.T) {
	m := NewViewerModel(loadedEntries("a.jpg"))
	m.SetLoading(true)

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}}); cmd != nil {
		t.Error("expected export to be ignored while loading")
	}
}

func TestViewerModel_EscGoesBack(t *testing.T) {
	m := NewViewerModel(loadedEntries("a.jpg"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a back command")
	}
	if _, ok := cmd().(backToListMsg); !ok {
		t.Errorf("expected backToListMsg, got %T", cmd())
	}
}

func TestViewerModel_View(t *testing.T) {
	entries := loadedEntries("a.jpg", "b.jpg")
	entries[1].Adj.Exposure = models.Float(0.65)

	m := NewViewerModel(entries)
	m.SetSize(120, 60)

	view := m.View()
	for _, want := range []string{"Image 1 of 2:", "a.jpg", NoAdjustmentsMessage} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	m.SetIndex(1)
	view = m.View()
	for _, want := range []string{"Image 2 of 2:", "b.jpg", "Exposure", "+0.65"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestViewerModel_LoadingView(t *testing.T) {
	m := NewViewerModel(testEntries("a.jpg"))
	m.SetLoading(true)

	if view := m.View(); !strings.Contains(view, "Reading adjustments...") {
		t.Error("expected the reading indicator")
	}
}

func TestViewerModel_Notice(t *testing.T) {
	m := NewViewerModel(loadedEntries("a.jpg"))
	m.SetNotice("No adjustments to export", noticeWarning)

	if view := m.View(); !strings.Contains(view, "No adjustments to export") {
		t.Error("expected the notice in the view")
	}
}
