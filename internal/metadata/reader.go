package metadata

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// AutoReader prefers exiftool and falls back to the embedded XMP reader
// when the binary is missing.
type AutoReader struct {
	ExifTool *ExifToolReader
	Embedded *EmbeddedXMPReader
}

// ReadTags implements Reader
func (r *AutoReader) ReadTags(ctx context.Context, path string) (Tags, error) {
	if r.ExifTool != nil && r.ExifTool.Available() {
		return r.ExifTool.ReadTags(ctx, path)
	}
	logrus.WithField("path", path).Debug("exiftool not found, reading embedded XMP")
	return r.Embedded.ReadTags(ctx, path)
}

// NewReader builds the reader named by kind ("auto", "exiftool" or "embedded")
func NewReader(kind, exifToolPath string, timeout time.Duration) (Reader, error) {
	switch kind {
	case "", "auto":
		return &AutoReader{
			ExifTool: NewExifToolReader(exifToolPath, timeout),
			Embedded: NewEmbeddedXMPReader(),
		}, nil
	case "exiftool":
		return NewExifToolReader(exifToolPath, timeout), nil
	case "embedded":
		return NewEmbeddedXMPReader(), nil
	default:
		return nil, fmt.Errorf("unknown metadata reader %q", kind)
	}
}
