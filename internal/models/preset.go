package models

import (
	"path/filepath"
	"strings"
)

// PresetSuffix is appended to the source stem to name exported presets
const PresetSuffix = "_preset.xmp"

// PresetMetadata describes the preset being generated
type PresetMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UUID        string `json:"uuid,omitempty"`
}

// NewPresetMetadata builds preset metadata for an image path
func NewPresetMetadata(sourcePath string) PresetMetadata {
	return PresetMetadata{
		Name:        Stem(sourcePath),
		Description: "Preset extracted from " + filepath.Base(sourcePath),
	}
}

// Stem returns the file name without directory and extension
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PresetPath returns where the preset for sourcePath is written.
// An empty outputDir places the preset beside the source image.
func PresetPath(sourcePath, outputDir string) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(sourcePath)
	}
	return filepath.Join(dir, Stem(sourcePath)+PresetSuffix)
}
