package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrNoMetadata is returned when a reader finds no tags at all
var ErrNoMetadata = errors.New("no metadata found")

// ExifToolReader reads tags by running the exiftool binary
type ExifToolReader struct {
	Path    string        // Binary name or path (default "exiftool")
	Timeout time.Duration // Per-file timeout (0 = no timeout)
}

// NewExifToolReader creates a reader for the given exiftool binary
func NewExifToolReader(path string, timeout time.Duration) *ExifToolReader {
	if path == "" {
		path = "exiftool"
	}
	return &ExifToolReader{Path: path, Timeout: timeout}
}

// Available reports whether the exiftool binary can be found
func (r *ExifToolReader) Available() bool {
	_, err := exec.LookPath(r.Path)
	return err == nil
}

// ReadTags runs exiftool and returns the XMP tags of the file, keyed as
// "XMP:<Tag>".
func (r *ExifToolReader) ReadTags(ctx context.Context, path string) (Tags, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.Path,
		"-json", // JSON array, one object per file
		"-G",    // Prefix tags with their group
		"-n",    // Numeric values, no print conversion
		"-XMP:all",
		path,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("exiftool failed: %w\nOutput: %s", err, stderr.String())
	}

	return parseExifToolJSON(output)
}

func parseExifToolJSON(data []byte) (Tags, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var files []map[string]any
	if err := dec.Decode(&files); err != nil {
		return nil, fmt.Errorf("failed to parse exiftool output: %w", err)
	}
	if len(files) == 0 {
		return nil, ErrNoMetadata
	}

	tags := make(Tags, len(files[0]))
	for k, v := range files[0] {
		if k == "SourceFile" {
			continue
		}
		tags[k] = v
	}
	return tags, nil
}
