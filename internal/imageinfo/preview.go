package imageinfo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"sync"

	"github.com/blacktop/go-termimg"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// ErrNoGraphics is returned when the terminal cannot display images
var ErrNoGraphics = errors.New("terminal does not support the kitty graphics protocol")

// cellPixels is the assumed pixel width of a terminal cell
const cellPixels = 8

// KittySupported checks if the terminal supports the kitty graphics protocol
func KittySupported() bool {
	if kittyFromEnv() {
		return true
	}
	return termimg.DetectProtocol() == termimg.Kitty
}

func kittyFromEnv() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if strings.Contains(os.Getenv("TERM"), "kitty") {
		return true
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "kitty", "ghostty", "WezTerm":
		return true
	}
	return false
}

// Previewer renders image thumbnails with the kitty graphics protocol.
// Each render uses a fresh image number so the terminal replaces the
// previous preview. Safe for concurrent use.
type Previewer struct {
	enabled bool

	mu          sync.Mutex
	lastImageID int
}

// NewPreviewer creates a previewer; enabled is usually KittySupported()
func NewPreviewer(enabled bool) *Previewer {
	return &Previewer{enabled: enabled}
}

// Enabled reports whether previews are rendered
func (p *Previewer) Enabled() bool {
	return p != nil && p.enabled
}

// Render returns the escape sequence that draws the image at path in a box
// of widthCells by at most heightCells terminal cells.
func (p *Previewer) Render(path string, widthCells, heightCells int) (string, error) {
	if !p.Enabled() {
		return "", ErrNoGraphics
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}

	w, h := FitCells(img.Bounds(), widthCells, heightCells)
	data, err := Thumbnail(img, uint(w*cellPixels))
	if err != nil {
		return "", err
	}

	ti, err := termimg.From(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to load thumbnail: %w", err)
	}

	p.mu.Lock()
	p.lastImageID++
	imageNum := p.lastImageID
	p.mu.Unlock()

	ti.Protocol(termimg.Kitty).
		Width(w).
		Height(h).
		Scale(termimg.ScaleFit).
		ImageNum(imageNum)

	rendered, err := ti.Render()
	if err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return rendered, nil
}

// ClearSequence deletes every image drawn with the kitty protocol
func ClearSequence() string {
	return "\033_Ga=d\033\\"
}

// Thumbnail scales img to pixelWidth (keeping the aspect ratio) and encodes
// it as PNG.
func Thumbnail(img image.Image, pixelWidth uint) ([]byte, error) {
	if pixelWidth < cellPixels {
		pixelWidth = cellPixels
	}
	small := resize.Resize(pixelWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, small); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// FitCells returns the cell size of an image scaled to fit the box.
// Terminal cells are roughly twice as tall as they are wide.
func FitCells(bounds image.Rectangle, maxWidth, maxHeight int) (int, int) {
	if maxWidth < 2 {
		maxWidth = 2
	}
	if maxHeight < 1 {
		maxHeight = 1
	}
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return maxWidth, maxHeight
	}

	aspect := float64(bounds.Dx()) / float64(bounds.Dy())
	w := maxWidth
	h := int(float64(w) / aspect / 2.0)
	if h > maxHeight {
		h = maxHeight
		w = int(float64(h) * aspect * 2.0)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
