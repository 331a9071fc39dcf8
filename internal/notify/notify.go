package notify

import (
	"context"
	"os/exec"
	"path/filepath"
	"time"
)

// Urgency levels for notifications
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// AppName is passed to the notification daemon
const AppName = "Presetify"

// sendTimeout bounds a single notify-send call
const sendTimeout = 5 * time.Second

// command is replaced in tests
var command = exec.CommandContext

// Send sends a desktop notification using notify-send
func Send(title, body string, urgency Urgency, icon string) error {
	args := []string{"--app-name=" + AppName, title, body}

	if urgency != "" {
		args = append(args, "--urgency="+string(urgency))
	}

	if icon != "" {
		args = append(args, "--icon="+icon)
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	cmd := command(ctx, "notify-send", args...)
	return cmd.Run()
}

// Info sends an informational notification
func Info(title, body string) error {
	return Send(title, body, UrgencyNormal, "image-x-generic")
}

// Error sends an error notification
func Error(title, body string) error {
	return Send(title, body, UrgencyCritical, "dialog-error")
}

// PresetExported notifies that a preset file was written
func PresetExported(presetPath string) error {
	return Info("Preset Exported", filepath.Base(presetPath)+" saved!")
}

// ExportFailed notifies that writing a preset failed
func ExportFailed(source string, err error) error {
	return Error("Preset Export Failed", filepath.Base(source)+": "+err.Error())
}
