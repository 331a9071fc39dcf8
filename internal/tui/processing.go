package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProcessingStep represents reading a single image
type ProcessingStep struct {
	Name      string
	Detail    string // Shown after the name once the step finishes
	Status    StepStatus
	StartTime time.Time
	EndTime   time.Time
}

// StepStatus represents the status of a processing step
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepComplete
	StepFailed
	StepSkipped
)

// ProcessingState holds the state of a batch of reads
type ProcessingState struct {
	Steps        []ProcessingStep
	CurrentStep  int
	IsProcessing bool
	StartTime    time.Time
	Error        error
}

// NewProcessingState creates a processing state with one step per name
func NewProcessingState(names []string) *ProcessingState {
	steps := make([]ProcessingStep, len(names))
	for i, name := range names {
		steps[i] = ProcessingStep{Name: name, Status: StepPending}
	}
	return &ProcessingState{
		Steps:        steps,
		CurrentStep:  -1,
		IsProcessing: false,
	}
}

// SetStepByIndex directly sets a step's status by index
func (p *ProcessingState) SetStepByIndex(index int, status StepStatus) {
	if index >= 0 && index < len(p.Steps) {
		if status == StepRunning {
			p.Steps[index].StartTime = time.Now()
			p.CurrentStep = index
		} else if status == StepComplete || status == StepSkipped || status == StepFailed {
			p.Steps[index].EndTime = time.Now()
		}
		p.Steps[index].Status = status
	}
}

// Start begins the processing
func (p *ProcessingState) Start() {
	p.IsProcessing = true
	p.StartTime = time.Now()
	p.CurrentStep = 0
	if len(p.Steps) > 0 {
		p.Steps[0].Status = StepRunning
		p.Steps[0].StartTime = time.Now()
	}
}

// NextStep completes the current step and starts the next one
func (p *ProcessingState) NextStep() {
	p.finishCurrent(StepComplete)
	p.advance()
}

// SkipStep marks current step as skipped and advances
func (p *ProcessingState) SkipStep() {
	p.finishCurrent(StepSkipped)
	p.advance()
}

// FailStep marks current step as failed
func (p *ProcessingState) FailStep(err error) {
	p.finishCurrent(StepFailed)
	p.Error = err
}

// Complete marks processing as complete
func (p *ProcessingState) Complete() {
	p.finishCurrent(StepComplete)
	p.IsProcessing = false
}

// Done reports whether every step has been handled
func (p *ProcessingState) Done() bool {
	return p.CurrentStep >= len(p.Steps)
}

// Reset resets the processing state
func (p *ProcessingState) Reset() {
	for i := range p.Steps {
		p.Steps[i].Status = StepPending
		p.Steps[i].Detail = ""
		p.Steps[i].StartTime = time.Time{}
		p.Steps[i].EndTime = time.Time{}
	}
	p.CurrentStep = -1
	p.IsProcessing = false
	p.Error = nil
}

func (p *ProcessingState) finishCurrent(status StepStatus) {
	if p.CurrentStep >= 0 && p.CurrentStep < len(p.Steps) && p.Steps[p.CurrentStep].Status == StepRunning {
		p.Steps[p.CurrentStep].Status = status
		p.Steps[p.CurrentStep].EndTime = time.Now()
	}
}

func (p *ProcessingState) advance() {
	p.CurrentStep++
	if p.CurrentStep < len(p.Steps) {
		p.Steps[p.CurrentStep].Status = StepRunning
		p.Steps[p.CurrentStep].StartTime = time.Now()
	}
}

type processingTickMsg struct{}

// processingTickCmd returns a command that ticks the processing animation
func processingTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return processingTickMsg{}
	})
}

// Donut animation frames (Unicode block characters for spinning effect)
var donutFrames = []string{
	"◐", "◓", "◑", "◒",
}

// RenderProcessingView renders the batch read screen with donut indicators
func RenderProcessingView(state *ProcessingState, width, height int, frame int) string {
	if state == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorOrange).
		MarginBottom(1)

	title := titleStyle.Render("Reading Adjustments...")

	elapsed := time.Since(state.StartTime).Round(time.Second)
	timeStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)
	elapsedStr := timeStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed))

	var steps []string
	for i, step := range state.Steps {
		steps = append(steps, renderStepLine(step, i == state.CurrentStep, frame))
	}
	stepsContent := strings.Join(steps, "\n")

	var statusMsg string
	statusStyle := lipgloss.NewStyle().
		MarginTop(1).
		Foreground(ColorGray)

	if state.Error != nil {
		statusStyle = statusStyle.Foreground(ColorRed)
		statusMsg = statusStyle.Render(fmt.Sprintf("Error: %v", state.Error))
	} else if !state.IsProcessing {
		statusStyle = statusStyle.Foreground(ColorGreen)
		statusMsg = statusStyle.Render("All images read!")
	} else {
		statusMsg = statusStyle.Render("Please wait...")
	}

	hintStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		MarginTop(2)
	hint := hintStyle.Render("esc: stop after the current image")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		title,
		elapsedStr,
		"",
		stepsContent,
		"",
		statusMsg,
		hint,
	)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderStepLine renders a single processing step with appropriate indicator
func renderStepLine(step ProcessingStep, isCurrent bool, frame int) string {
	var indicator string
	var nameStyle lipgloss.Style

	switch step.Status {
	case StepPending:
		indicator = lipgloss.NewStyle().Foreground(ColorGray).Render("○")
		nameStyle = lipgloss.NewStyle().Foreground(ColorGray)

	case StepRunning:
		donutStyle := lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
		indicator = donutStyle.Render(donutFrames[frame%len(donutFrames)])
		nameStyle = lipgloss.NewStyle().Foreground(ColorWhite).Bold(true)

	case StepComplete:
		indicator = lipgloss.NewStyle().Foreground(ColorGreen).Render("●")
		nameStyle = lipgloss.NewStyle().Foreground(ColorGreen)

	case StepFailed:
		indicator = lipgloss.NewStyle().Foreground(ColorRed).Render("✗")
		nameStyle = lipgloss.NewStyle().Foreground(ColorRed)

	case StepSkipped:
		indicator = lipgloss.NewStyle().Foreground(ColorGray).Render("○")
		nameStyle = lipgloss.NewStyle().Foreground(ColorGray).Strikethrough(true)
	}

	var suffix string
	if step.Status == StepComplete || step.Status == StepFailed {
		d := step.EndTime.Sub(step.StartTime).Round(100 * time.Millisecond)
		detail := fmt.Sprintf(" (%s)", d)
		if step.Detail != "" {
			detail = fmt.Sprintf(" - %s (%s)", step.Detail, d)
		}
		suffix = lipgloss.NewStyle().Foreground(ColorGray).Italic(true).Render(detail)
	}

	return fmt.Sprintf("  %s %s%s", indicator, nameStyle.Render(step.Name), suffix)
}
