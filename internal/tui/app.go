package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kartoza/presetify/internal/config"
	"github.com/kartoza/presetify/internal/fetcher"
	"github.com/kartoza/presetify/internal/imageinfo"
	"github.com/kartoza/presetify/internal/metadata"
	"github.com/kartoza/presetify/internal/models"
	"github.com/kartoza/presetify/internal/notify"
	"github.com/kartoza/presetify/internal/xmp"
	"github.com/sirupsen/logrus"
)

// Screen represents the current screen being displayed
type Screen int

const (
	ScreenList Screen = iota
	ScreenView
	ScreenProcessing
	ScreenOpenURL
)

// imageEntry is one image known to the shell and what has been read from it
type imageEntry struct {
	Path    string
	Adj     *models.Adjustments
	Info    *imageinfo.Info
	Preview string
	Loaded  bool
}

// Name returns the file name shown in lists and titles
func (e *imageEntry) Name() string {
	return filepath.Base(e.Path)
}

// Options wires the shell to the core services
type Options struct {
	Config    *config.Config
	Extractor *metadata.Extractor
	Generator *xmp.Generator
	Fetcher   *fetcher.Fetcher
	Previewer *imageinfo.Previewer
	Version   string
}

// Messages produced by background commands
type extractedMsg struct {
	index   int
	adj     *models.Adjustments
	info    *imageinfo.Info
	preview string
	batch   bool
}
type exportedMsg struct {
	index int
	path  string
	err   error
}
type fetchedMsg struct {
	url  string
	path string
	err  error
}
type processingDoneMsg struct{}

// AppModel is the main application model that coordinates screens
type AppModel struct {
	ctx             context.Context
	opts            Options
	screen          Screen
	images          []*imageEntry
	list            *ListModel
	viewer          *ViewerModel
	prompt          *URLPromptModel
	processing      *ProcessingState
	processingFrame int
	stopBatch       bool
	width           int
	height          int
}

// NewAppModel creates the application model for paths. A single image opens
// straight into the view screen; otherwise the list is shown first.
func NewAppModel(ctx context.Context, paths []string, opts Options) AppModel {
	if opts.Config == nil {
		cfg := config.DefaultConfig()
		opts.Config = &cfg
	}
	if opts.Generator == nil {
		opts.Generator = xmp.NewGenerator()
	}

	images := make([]*imageEntry, len(paths))
	for i, p := range paths {
		images[i] = &imageEntry{Path: p}
	}

	viewer := NewViewerModel(images)
	viewer.version = opts.Version

	screen := ScreenList
	if len(images) == 1 {
		screen = ScreenView
	}

	return AppModel{
		ctx:    ctx,
		opts:   opts,
		screen: screen,
		images: images,
		list:   NewListModel(images),
		viewer: viewer,
		prompt: NewURLPromptModel(),
	}
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	if m.screen == ScreenView {
		m.viewer.SetLoading(true)
		return tea.Batch(m.viewer.spinner.Tick, m.extractCmd(0, false))
	}
	return nil
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list, _ = m.list.Update(msg)
		m.viewer, _ = m.viewer.Update(msg)
		m.prompt, _ = m.prompt.Update(msg)
		return m, nil

	case spinner.TickMsg:
		var viewerCmd, promptCmd tea.Cmd
		m.viewer, viewerCmd = m.viewer.Update(msg)
		m.prompt, promptCmd = m.prompt.Update(msg)
		return m, tea.Batch(viewerCmd, promptCmd)

	case listActionMsg:
		return m.handleListAction(msg)

	case viewerNavigateMsg:
		return m.openImage(msg.index)

	case backToListMsg:
		m.screen = ScreenList
		m.list.Select(m.viewer.Index())
		return m, nil

	case extractedMsg:
		return m.handleExtracted(msg)

	case exportRequestMsg:
		return m.handleExportRequest(msg)

	case exportedMsg:
		return m.handleExported(msg)

	case urlSubmittedMsg:
		if m.opts.Fetcher == nil {
			return m, m.prompt.SetError(fmt.Errorf("fetching is not available"))
		}
		return m, tea.Batch(m.prompt.SetFetching(true), fetchCmd(m.ctx, m.opts.Fetcher, msg.url))

	case fetchedMsg:
		return m.handleFetched(msg)

	case processingTickMsg:
		if m.screen == ScreenProcessing {
			m.processingFrame++
			return m, processingTickCmd()
		}
		return m, nil

	case processingDoneMsg:
		if m.screen != ScreenProcessing {
			return m, nil
		}
		m.processing = nil
		if m.stopBatch {
			m.screen = ScreenList
			return m, nil
		}
		return m.openImage(0)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case ScreenList:
		m.list, cmd = m.list.Update(msg)
	case ScreenView:
		m.viewer, cmd = m.viewer.Update(msg)
	case ScreenOpenURL:
		m.prompt, cmd = m.prompt.Update(msg)
	case ScreenProcessing:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))):
			return m, tea.Quit
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "q"))):
			m.stopBatch = true
		}
	}
	return m, cmd
}

func (m AppModel) handleListAction(msg listActionMsg) (tea.Model, tea.Cmd) {
	switch msg.action {
	case ListOpenImage:
		return m.openImage(msg.index)

	case ListProcessAll:
		names := make([]string, len(m.images))
		for i, img := range m.images {
			names[i] = img.Name()
		}
		m.processing = NewProcessingState(names)
		m.processing.Start()
		m.processingFrame = 0
		m.stopBatch = false
		m.screen = ScreenProcessing
		return m, tea.Batch(processingTickCmd(), m.extractCmd(0, true))

	case ListOpenURL:
		m.screen = ScreenOpenURL
		return m, m.prompt.Open()
	}
	return m, nil
}

// openImage shows the image at index, reading it first if needed
func (m AppModel) openImage(index int) (tea.Model, tea.Cmd) {
	if index < 0 || index >= len(m.images) {
		return m, nil
	}
	m.screen = ScreenView
	if m.viewer.Index() != index {
		m.viewer.SetIndex(index)
	}

	if m.images[index].Loaded {
		m.viewer.SetLoading(false)
		m.viewer.Refresh()
		return m, nil
	}
	m.viewer.SetLoading(true)
	return m, tea.Batch(m.viewer.spinner.Tick, m.extractCmd(index, false))
}

func (m AppModel) handleExtracted(msg extractedMsg) (tea.Model, tea.Cmd) {
	if msg.index < 0 || msg.index >= len(m.images) {
		return m, nil
	}
	img := m.images[msg.index]
	img.Adj = msg.adj
	img.Info = msg.info
	img.Preview = msg.preview
	img.Loaded = true

	if msg.batch {
		return m.advanceBatch(msg)
	}

	if m.viewer.Index() == msg.index {
		m.viewer.SetLoading(false)
		m.viewer.Refresh()
	}
	return m, nil
}

func (m AppModel) advanceBatch(msg extractedMsg) (tea.Model, tea.Cmd) {
	if m.processing == nil {
		return m, nil
	}
	if msg.index < len(m.processing.Steps) {
		m.processing.Steps[msg.index].Detail = fmt.Sprintf("%d values", msg.adj.Count())
	}

	next := msg.index + 1
	if m.stopBatch || next >= len(m.images) {
		m.processing.Complete()
		for i := next; i < len(m.processing.Steps); i++ {
			m.processing.SetStepByIndex(i, StepSkipped)
		}
		return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
			return processingDoneMsg{}
		})
	}

	m.processing.NextStep()
	return m, m.extractCmd(next, true)
}

func (m AppModel) handleExportRequest(msg exportRequestMsg) (tea.Model, tea.Cmd) {
	if msg.index < 0 || msg.index >= len(m.images) {
		return m, nil
	}
	img := m.images[msg.index]
	if !img.Loaded || !img.Adj.HasAdjustments() {
		m.viewer.SetNotice("No adjustments to export", noticeWarning)
		return m, nil
	}
	m.viewer.SetNotice("Exporting preset...", noticeInfo)
	return m, exportCmd(m.opts.Generator, img, msg.index, m.opts.Config.OutputDir)
}

func (m AppModel) handleExported(msg exportedMsg) (tea.Model, tea.Cmd) {
	source := ""
	if msg.index >= 0 && msg.index < len(m.images) {
		source = m.images[msg.index].Path
	}

	if msg.err != nil {
		logrus.WithError(msg.err).WithField("source", source).Error("Preset export failed")
		if m.viewer.Index() == msg.index {
			m.viewer.SetNotice(fmt.Sprintf("Error exporting preset: %v", msg.err), noticeError)
		}
		if m.opts.Config.NotifyOnExport {
			return m, notifyCmd(func() error { return notify.ExportFailed(source, msg.err) })
		}
		return m, nil
	}

	logrus.WithFields(logrus.Fields{"source": source, "preset": msg.path}).Info("Preset exported")
	if m.viewer.Index() == msg.index {
		m.viewer.SetNotice(fmt.Sprintf("✓ Preset saved to %s", filepath.Base(msg.path)), noticeSuccess)
	}
	if m.opts.Config.NotifyOnExport {
		return m, notifyCmd(func() error { return notify.PresetExported(msg.path) })
	}
	return m, nil
}

func (m AppModel) handleFetched(msg fetchedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.prompt.SetError(msg.err)
	}
	m.prompt.SetFetching(false)

	m.images = append(m.images, &imageEntry{Path: msg.path})
	m.list.SetImages(m.images)
	m.viewer.SetImages(m.images)
	return m.openImage(len(m.images) - 1)
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.screen {
	case ScreenView:
		return m.viewer.View()
	case ScreenProcessing:
		return RenderProcessingView(m.processing, m.width, m.height, m.processingFrame)
	case ScreenOpenURL:
		return m.prompt.View()
	default:
		return m.list.View()
	}
}

// extractCmd reads the image at index in the background
func (m AppModel) extractCmd(index int, batch bool) tea.Cmd {
	if index < 0 || index >= len(m.images) {
		return nil
	}
	path := m.images[index].Path
	ctx := m.ctx
	extractor := m.opts.Extractor
	previewer := m.opts.Previewer
	showPreview := m.opts.Config.ShowPreview && !batch

	return func() tea.Msg {
		msg := extractedMsg{index: index, batch: batch}
		if extractor != nil {
			msg.adj = extractor.Extract(ctx, path)
		} else {
			msg.adj = models.NewAdjustments(path)
		}

		info, err := imageinfo.Read(path)
		if err != nil {
			logrus.WithError(err).WithField("path", path).Debug("Could not read image details")
		} else {
			msg.info = info
		}

		if showPreview && previewer.Enabled() {
			preview, err := previewer.Render(path, 40, 12)
			if err != nil {
				logrus.WithError(err).WithField("path", path).Debug("Could not render preview")
			} else {
				msg.preview = preview
			}
		}
		return msg
	}
}

// exportCmd writes the preset for img in the background
func exportCmd(gen *xmp.Generator, img *imageEntry, index int, outputDir string) tea.Cmd {
	adj := img.Adj
	source := img.Path
	return func() tea.Msg {
		if outputDir != "" {
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return exportedMsg{index: index, err: fmt.Errorf("failed to create output directory: %w", err)}
			}
		}
		path := models.PresetPath(source, outputDir)
		err := gen.Generate(adj, models.NewPresetMetadata(source), path)
		return exportedMsg{index: index, path: path, err: err}
	}
}

// fetchCmd downloads url in the background
func fetchCmd(ctx context.Context, f *fetcher.Fetcher, url string) tea.Cmd {
	return func() tea.Msg {
		path, err := f.Fetch(ctx, url)
		return fetchedMsg{url: url, path: path, err: err}
	}
}

// notifyCmd sends a desktop notification, logging failures
func notifyCmd(send func() error) tea.Cmd {
	return func() tea.Msg {
		if err := send(); err != nil {
			logrus.WithError(err).Debug("Desktop notification failed")
		}
		return nil
	}
}
