package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/kartoza/presetify/internal/config"
)

// Dependency represents an external tool presetify can use
type Dependency struct {
	Name        string // Command name (e.g., "exiftool")
	Description string // Human-readable description
	Required    bool   // If true, app cannot run without it
}

// CheckResult contains the result of checking a dependency
type CheckResult struct {
	Dependency Dependency
	Available  bool
	Path       string // Path to the executable if found
	Error      error  // Error if check failed
}

// ExifTool is the metadata reader binary
var ExifTool = Dependency{
	Name:        "exiftool",
	Description: "Reads Lightroom develop settings from image metadata",
}

// OptionalDeps lists optional dependencies that enhance functionality
var OptionalDeps = []Dependency{
	{
		Name:        "notify-send",
		Description: "Desktop notifications when a preset is exported",
		Required:    false,
	},
}

// GetRequiredDeps returns the dependencies the configured metadata reader
// cannot work without. The auto and embedded readers need no binaries, so
// exiftool is only required when it is selected explicitly.
func GetRequiredDeps(cfg *config.Config) []Dependency {
	if cfg != nil && cfg.MetadataReader == config.ReaderExifTool {
		dep := ExifTool
		dep.Name = cfg.ExifToolPath
		if dep.Name == "" {
			dep.Name = ExifTool.Name
		}
		dep.Required = true
		return []Dependency{dep}
	}
	return nil
}

// GetOptionalDeps returns the dependencies that are used when present
func GetOptionalDeps(cfg *config.Config) []Dependency {
	var deps []Dependency
	if cfg == nil || cfg.MetadataReader != config.ReaderExifTool {
		deps = append(deps, ExifTool)
	}
	return append(deps, OptionalDeps...)
}

// Check verifies if a single dependency is available
func Check(dep Dependency) CheckResult {
	result := CheckResult{Dependency: dep}

	path, err := exec.LookPath(dep.Name)
	if err != nil {
		result.Available = false
		result.Error = err
	} else {
		result.Available = true
		result.Path = path
	}

	return result
}

// CheckAll verifies all required and optional dependencies
func CheckAll(cfg *config.Config) (required []CheckResult, optional []CheckResult) {
	for _, dep := range GetRequiredDeps(cfg) {
		required = append(required, Check(dep))
	}
	for _, dep := range GetOptionalDeps(cfg) {
		optional = append(optional, Check(dep))
	}
	return required, optional
}

// MissingRequired returns a list of missing required dependencies
func MissingRequired(cfg *config.Config) []CheckResult {
	var missing []CheckResult
	for _, dep := range GetRequiredDeps(cfg) {
		result := Check(dep)
		if !result.Available {
			missing = append(missing, result)
		}
	}
	return missing
}

// HasAllRequired returns true if all required dependencies are available
func HasAllRequired(cfg *config.Config) bool {
	return len(MissingRequired(cfg)) == 0
}

// FormatMissing returns a formatted string of missing dependencies
func FormatMissing(results []CheckResult) string {
	if len(results) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Missing dependencies:\n\n")

	for _, r := range results {
		status := "MISSING"
		if r.Dependency.Required {
			status = "REQUIRED"
		}
		sb.WriteString(fmt.Sprintf("  • %s (%s)\n", r.Dependency.Name, status))
		sb.WriteString(fmt.Sprintf("    %s\n\n", r.Dependency.Description))
	}

	return sb.String()
}

// FormatAll returns a formatted string of all dependency check results
func FormatAll(required, optional []CheckResult) string {
	var sb strings.Builder

	sb.WriteString("Required dependencies:\n")
	if len(required) == 0 {
		sb.WriteString("  (none for the configured metadata reader)\n")
	}
	for _, r := range required {
		writeResult(&sb, r, "✗")
	}

	sb.WriteString("\nOptional dependencies:\n")
	for _, r := range optional {
		writeResult(&sb, r, "○")
	}

	return sb.String()
}

func writeResult(sb *strings.Builder, r CheckResult, missing string) {
	status := "✓"
	if !r.Available {
		status = missing
	}
	sb.WriteString(fmt.Sprintf("  %s %s - %s\n", status, r.Dependency.Name, r.Dependency.Description))
	if r.Available {
		sb.WriteString(fmt.Sprintf("      Path: %s\n", r.Path))
	}
}
