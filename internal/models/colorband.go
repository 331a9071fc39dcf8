package models

import "strings"

// ColorBand is one of the eight fixed hue ranges used for HSL adjustments
type ColorBand string

const (
	BandRed     ColorBand = "red"
	BandOrange  ColorBand = "orange"
	BandYellow  ColorBand = "yellow"
	BandGreen   ColorBand = "green"
	BandAqua    ColorBand = "aqua"
	BandBlue    ColorBand = "blue"
	BandPurple  ColorBand = "purple"
	BandMagenta ColorBand = "magenta"
)

var allBands = []ColorBand{
	BandRed, BandOrange, BandYellow, BandGreen,
	BandAqua, BandBlue, BandPurple, BandMagenta,
}

// ColorBands returns the bands in Lightroom's panel order
func ColorBands() []ColorBand {
	bands := make([]ColorBand, len(allBands))
	copy(bands, allBands)
	return bands
}

// Title returns the capitalized name used as the tag suffix (e.g. "Red")
func (b ColorBand) Title() string {
	if b == "" {
		return ""
	}
	return strings.ToUpper(string(b[:1])) + string(b[1:])
}

// BandKind identifies which HSL channel a band adjustment applies to
type BandKind int

const (
	KindHue BandKind = iota
	KindSaturation
	KindLuminance
)

// BandKinds returns the kinds in hue, saturation, luminance order
func BandKinds() []BandKind {
	return []BandKind{KindHue, KindSaturation, KindLuminance}
}

// String returns the tag prefix for the kind (e.g. "Hue")
func (k BandKind) String() string {
	switch k {
	case KindHue:
		return "Hue"
	case KindSaturation:
		return "Saturation"
	case KindLuminance:
		return "Luminance"
	default:
		return "Unknown"
	}
}

// TagName returns the crs tag for this band and kind, e.g. "HueAdjustmentRed"
func (k BandKind) TagName(b ColorBand) string {
	return k.String() + "Adjustment" + b.Title()
}

// Bands returns the adjustment map for the given kind, allocating it if needed
func (a *Adjustments) Bands(k BandKind) map[ColorBand]int {
	switch k {
	case KindHue:
		if a.HueAdjustments == nil {
			a.HueAdjustments = make(map[ColorBand]int)
		}
		return a.HueAdjustments
	case KindSaturation:
		if a.SaturationAdjustments == nil {
			a.SaturationAdjustments = make(map[ColorBand]int)
		}
		return a.SaturationAdjustments
	case KindLuminance:
		if a.LuminanceAdjustments == nil {
			a.LuminanceAdjustments = make(map[ColorBand]int)
		}
		return a.LuminanceAdjustments
	}
	return nil
}
