package models

import (
	"strconv"
	"strings"
)

// CurvePoint is a single (input, output) control point of a tone curve
type CurvePoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToneCurve is an ordered list of control points, in traversal order
type ToneCurve struct {
	Points []CurvePoint `json:"points"`
}

// NewToneCurve builds a curve from (x, y) pairs
func NewToneCurve(pairs ...[2]int) *ToneCurve {
	c := &ToneCurve{Points: make([]CurvePoint, 0, len(pairs))}
	for _, p := range pairs {
		c.Points = append(c.Points, CurvePoint{X: p[0], Y: p[1]})
	}
	return c
}

// Empty reports whether the curve has no points. A nil curve is empty.
func (c *ToneCurve) Empty() bool {
	return c == nil || len(c.Points) == 0
}

// String renders the curve as a flat "x1, y1, x2, y2, ..." list
func (c *ToneCurve) String() string {
	if c.Empty() {
		return ""
	}
	parts := make([]string, 0, len(c.Points)*2)
	for _, p := range c.Points {
		parts = append(parts, strconv.Itoa(p.X), strconv.Itoa(p.Y))
	}
	return strings.Join(parts, ", ")
}

// RawCurve holds a per-channel curve exactly as the metadata reader returned it.
// It is carried through untouched and never decoded.
type RawCurve struct {
	Value string `json:"value"`
}

// Adjustments holds every Lightroom adjustment found in one image.
// A nil field means the tag was not present in the source.
type Adjustments struct {
	// Basic tone
	Exposure   *float64 `json:"exposure,omitempty"`   // -5.0 to +5.0
	Contrast   *int     `json:"contrast,omitempty"`   // -100 to +100
	Highlights *int     `json:"highlights,omitempty"` // -100 to +100
	Shadows    *int     `json:"shadows,omitempty"`    // -100 to +100
	Whites     *int     `json:"whites,omitempty"`     // -100 to +100
	Blacks     *int     `json:"blacks,omitempty"`     // -100 to +100

	// Color
	Temperature *int `json:"temperature,omitempty"` // Kelvin offset
	Tint        *int `json:"tint,omitempty"`        // -150 to +150
	Vibrance    *int `json:"vibrance,omitempty"`    // -100 to +100
	Saturation  *int `json:"saturation,omitempty"`  // -100 to +100

	// Presence
	Clarity *int `json:"clarity,omitempty"` // -100 to +100
	Dehaze  *int `json:"dehaze,omitempty"`  // -100 to +100
	Texture *int `json:"texture,omitempty"` // -100 to +100

	// Detail
	Sharpness               *int `json:"sharpness,omitempty"`                 // 0 to 150
	LuminanceNoiseReduction *int `json:"luminance_noise_reduction,omitempty"` // 0 to 100
	ColorNoiseReduction     *int `json:"color_noise_reduction,omitempty"`     // 0 to 100

	// Effects
	VignetteAmount *int `json:"vignette_amount,omitempty"` // -100 to +100
	GrainAmount    *int `json:"grain_amount,omitempty"`    // 0 to 100

	ToneCurve      *ToneCurve `json:"tone_curve,omitempty"`
	ToneCurveRed   *RawCurve  `json:"tone_curve_red,omitempty"`
	ToneCurveGreen *RawCurve  `json:"tone_curve_green,omitempty"`
	ToneCurveBlue  *RawCurve  `json:"tone_curve_blue,omitempty"`

	HueAdjustments        map[ColorBand]int `json:"hue_adjustments,omitempty"`
	SaturationAdjustments map[ColorBand]int `json:"saturation_adjustments,omitempty"`
	LuminanceAdjustments  map[ColorBand]int `json:"luminance_adjustments,omitempty"`

	SourceFile string `json:"source_file,omitempty"`
}

// NewAdjustments returns an empty record for the given source
func NewAdjustments(sourceFile string) *Adjustments {
	return &Adjustments{
		HueAdjustments:        make(map[ColorBand]int),
		SaturationAdjustments: make(map[ColorBand]int),
		LuminanceAdjustments:  make(map[ColorBand]int),
		SourceFile:            sourceFile,
	}
}

// HasAdjustments reports whether any basic, color, presence or sharpness value
// was found, or the primary tone curve has points. Color band, noise reduction
// and effects values on their own do not count.
func (a *Adjustments) HasAdjustments() bool {
	if a == nil {
		return false
	}
	if a.Exposure != nil {
		return true
	}
	basic := []*int{
		a.Contrast, a.Highlights, a.Shadows, a.Whites, a.Blacks,
		a.Temperature, a.Tint, a.Vibrance, a.Saturation,
		a.Clarity, a.Dehaze, a.Texture, a.Sharpness,
	}
	for _, v := range basic {
		if v != nil {
			return true
		}
	}
	return !a.ToneCurve.Empty()
}

// HasColorBandAdjustments reports whether any HSL band was adjusted
func (a *Adjustments) HasColorBandAdjustments() bool {
	if a == nil {
		return false
	}
	return len(a.HueAdjustments) > 0 || len(a.SaturationAdjustments) > 0 || len(a.LuminanceAdjustments) > 0
}

// Count returns the number of populated values, band entries and curves included
func (a *Adjustments) Count() int {
	if a == nil {
		return 0
	}
	n := 0
	if a.Exposure != nil {
		n++
	}
	for _, v := range a.intFields() {
		if v != nil {
			n++
		}
	}
	if !a.ToneCurve.Empty() {
		n++
	}
	n += len(a.HueAdjustments) + len(a.SaturationAdjustments) + len(a.LuminanceAdjustments)
	return n
}

func (a *Adjustments) intFields() []*int {
	return []*int{
		a.Contrast, a.Highlights, a.Shadows, a.Whites, a.Blacks,
		a.Temperature, a.Tint, a.Vibrance, a.Saturation,
		a.Clarity, a.Dehaze, a.Texture,
		a.Sharpness, a.LuminanceNoiseReduction, a.ColorNoiseReduction,
		a.VignetteAmount, a.GrainAmount,
	}
}

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v
func Int(v int) *int {
	return &v
}
