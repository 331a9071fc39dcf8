// Package imageinfo reads camera details and renders terminal previews of the
// images presetify works on.
package imageinfo

import (
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Info holds the shooting details shown beside the adjustments
type Info struct {
	Path   string    `json:"path"`
	Width  int       `json:"width"` // Pixel dimensions after EXIF orientation is applied
	Height int       `json:"height"`
	Camera string    `json:"camera,omitempty"` // "Make Model", empty when unknown
	Lens   string    `json:"lens,omitempty"`
	Taken  time.Time `json:"taken,omitzero"`
	// Settings is a short exposure summary such as "1/250s f/2.8 ISO 200 35mm"
	Settings string `json:"settings,omitempty"`
}

// Read decodes the image at path and collects its dimensions and EXIF
// camera details. Missing EXIF data is not an error.
func Read(path string) (*Info, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	bounds := img.Bounds()
	info := &Info{
		Path:   path,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	if x, err := decodeExif(path); err == nil {
		info.fromExif(x)
	}
	return info, nil
}

func decodeExif(path string) (*exif.Exif, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return exif.Decode(f)
}

func (i *Info) fromExif(x *exif.Exif) {
	maker := stringTag(x, exif.Make)
	model := stringTag(x, exif.Model)
	// Many models already start with the make ("Canon EOS R5")
	if maker != "" && strings.HasPrefix(strings.ToLower(model), strings.ToLower(maker)) {
		maker = ""
	}
	i.Camera = strings.TrimSpace(maker + " " + model)
	i.Lens = stringTag(x, exif.LensModel)

	if t, err := x.DateTime(); err == nil {
		i.Taken = t
	}

	var parts []string
	if num, den, ok := ratTag(x, exif.ExposureTime); ok {
		parts = append(parts, FormatShutter(num, den))
	}
	if num, den, ok := ratTag(x, exif.FNumber); ok && den != 0 {
		parts = append(parts, FormatAperture(float64(num)/float64(den)))
	}
	if tag, err := x.Get(exif.ISOSpeedRatings); err == nil {
		if iso, err := tag.Int(0); err == nil && iso > 0 {
			parts = append(parts, fmt.Sprintf("ISO %d", iso))
		}
	}
	if num, den, ok := ratTag(x, exif.FocalLength); ok && den != 0 {
		parts = append(parts, fmt.Sprintf("%.0fmm", float64(num)/float64(den)))
	}
	i.Settings = strings.Join(parts, " ")
}

// Summary renders the details as a single line, skipping unknown parts
func (i *Info) Summary() string {
	var parts []string
	if i.Camera != "" {
		parts = append(parts, i.Camera)
	}
	if i.Lens != "" {
		parts = append(parts, i.Lens)
	}
	if i.Settings != "" {
		parts = append(parts, i.Settings)
	}
	if !i.Taken.IsZero() {
		parts = append(parts, i.Taken.Format("2006-01-02 15:04"))
	}
	if i.Width > 0 && i.Height > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", i.Width, i.Height))
	}
	return strings.Join(parts, " · ")
}

// FormatShutter renders an exposure time as "1/250s" or "2s"
func FormatShutter(num, den int64) string {
	if num <= 0 || den <= 0 {
		return ""
	}
	r := big.NewRat(num, den)
	if r.Cmp(big.NewRat(1, 1)) >= 0 {
		f, _ := r.Float64()
		return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.1f", f), "0"), ".") + "s"
	}
	if r.Num().Int64() == 1 {
		return fmt.Sprintf("1/%ds", r.Denom().Int64())
	}
	f, _ := r.Float64()
	return fmt.Sprintf("1/%.0fs", 1/f)
}

// FormatAperture renders an f-number as "f/2.8" or "f/8"
func FormatAperture(f float64) string {
	s := strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.1f", f), "0"), ".")
	return "f/" + s
}

func stringTag(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil || tag.Format() != tiff.StringVal {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.Trim(s, "\x00"))
}

func ratTag(x *exif.Exif, name exif.FieldName) (int64, int64, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return 0, 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil {
		return 0, 0, false
	}
	return num, den, true
}
