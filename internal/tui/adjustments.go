package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kartoza/presetify/internal/models"
	"github.com/kartoza/presetify/internal/tonecurve"
	"github.com/lucasb-eyer/go-colorful"
)

// SliderWidth is the number of cells in a slider bar
const SliderWidth = 40

// NoAdjustmentsMessage is shown for images without develop settings
const NoAdjustmentsMessage = "No Lightroom adjustments found in this image"

// Slider is a single adjustment drawn as a bar between Min and Max
type Slider struct {
	Label   string
	Value   float64
	IsFloat bool
	Min     float64
	Max     float64
	Unit    string
}

// Bar returns the plain slider bar, filled in proportion to the value's
// position in the range.
func (s Slider) Bar() string {
	pct := 0.5
	if span := s.Max - s.Min; span != 0 {
		pct = (s.Value - s.Min) / span
	}
	pct = math.Max(0, math.Min(1, pct))
	filled := int(pct * SliderWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", SliderWidth-filled)
}

// FormatValue renders the value with an explicit sign and the unit
func (s Slider) FormatValue() string {
	if s.IsFloat {
		return fmt.Sprintf("%+.2f%s", s.Value, s.Unit)
	}
	return fmt.Sprintf("%+d%s", int(s.Value), s.Unit)
}

// Render draws the full slider line
func (s Slider) Render() string {
	barColor := ColorWhite
	switch {
	case s.Value > 0:
		barColor = ColorCyan
	case s.Value < 0:
		barColor = ColorYellow
	}

	bar := lipgloss.NewStyle().Foreground(barColor).Render(s.Bar())
	rng := InactiveStyle.Render(fmt.Sprintf("(%+.0f to %+.0f)", s.Min, s.Max))
	return fmt.Sprintf("%-20s %10s  %s  %s", s.Label, s.FormatValue(), bar, rng)
}

// sliderDef describes where a slider reads its value and its range
type sliderDef struct {
	label string
	field string // models.ScalarFields name
	min   float64
	max   float64
	unit  string
}

// SliderGroup is a titled set of sliders
type SliderGroup struct {
	Title   string
	Sliders []Slider
}

var sliderGroupDefs = []struct {
	title string
	defs  []sliderDef
}{
	{"Basic Adjustments", []sliderDef{
		{"Exposure", "exposure", -5, 5, ""},
		{"Contrast", "contrast", -100, 100, ""},
		{"Highlights", "highlights", -100, 100, ""},
		{"Shadows", "shadows", -100, 100, ""},
		{"Whites", "whites", -100, 100, ""},
		{"Blacks", "blacks", -100, 100, ""},
	}},
	{"Color Adjustments", []sliderDef{
		{"Temperature", "temperature", -10000, 10000, "K"},
		{"Tint", "tint", -150, 150, ""},
		{"Vibrance", "vibrance", -100, 100, ""},
		{"Saturation", "saturation", -100, 100, ""},
	}},
	{"Presence", []sliderDef{
		{"Clarity", "clarity", -100, 100, ""},
		{"Dehaze", "dehaze", -100, 100, ""},
		{"Texture", "texture", -100, 100, ""},
	}},
	{"Detail", []sliderDef{
		{"Sharpness", "sharpness", 0, 150, ""},
		{"Luminance NR", "luminance_noise_reduction", 0, 100, ""},
		{"Color NR", "color_noise_reduction", 0, 100, ""},
	}},
	{"Effects", []sliderDef{
		{"Vignette", "vignette_amount", -100, 100, ""},
		{"Grain", "grain_amount", 0, 100, ""},
	}},
}

// SliderGroups returns the groups that have at least one value set, with
// one slider per set value.
func SliderGroups(adj *models.Adjustments) []SliderGroup {
	fields := make(map[string]models.ScalarField, len(models.ScalarFields))
	for _, f := range models.ScalarFields {
		fields[f.Name] = f
	}

	var groups []SliderGroup
	for _, g := range sliderGroupDefs {
		group := SliderGroup{Title: g.title}
		for _, d := range g.defs {
			field, ok := fields[d.field]
			if !ok {
				continue
			}
			s := Slider{Label: d.label, Min: d.min, Max: d.max, Unit: d.unit}
			if field.Float != nil {
				v := *field.Float(adj)
				if v == nil {
					continue
				}
				s.Value, s.IsFloat = *v, true
			} else {
				v := *field.Int(adj)
				if v == nil {
					continue
				}
				s.Value = float64(*v)
			}
			group.Sliders = append(group.Sliders, s)
		}
		if len(group.Sliders) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// bandHues is the center hue in degrees of each Lightroom color band
var bandHues = map[models.ColorBand]float64{
	models.BandRed:     0,
	models.BandOrange:  30,
	models.BandYellow:  60,
	models.BandGreen:   120,
	models.BandAqua:    180,
	models.BandBlue:    225,
	models.BandPurple:  270,
	models.BandMagenta: 315,
}

// BandSwatchColor approximates the color a band shifts to under the given
// hue, saturation and luminance adjustments (-100..+100 each).
func BandSwatchColor(band models.ColorBand, hue, sat, lum int) colorful.Color {
	h := math.Mod(bandHues[band]+float64(hue)*0.3+360, 360)
	s := clamp01(0.75 + float64(sat)/100*0.25)
	l := clamp01(0.5 + float64(lum)/100*0.25)
	return colorful.Hsl(h, s, l).Clamped()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// RenderBandTable renders one row per adjusted band with a before and after
// swatch. Returns "" when no band is adjusted.
func RenderBandTable(adj *models.Adjustments) string {
	if !adj.HasColorBandAdjustments() {
		return ""
	}

	lines := []string{
		TitleStyle.Render("HSL / Color"),
		LabelStyle.Render(fmt.Sprintf("%-10s %6s %6s %6s  %s", "Band", "Hue", "Sat", "Lum", "Swatch")),
	}
	for _, band := range models.ColorBands() {
		h, hok := adj.HueAdjustments[band]
		s, sok := adj.SaturationAdjustments[band]
		l, lok := adj.LuminanceAdjustments[band]
		if !hok && !sok && !lok {
			continue
		}

		before := swatch(BandSwatchColor(band, 0, 0, 0))
		after := swatch(BandSwatchColor(band, h, s, l))
		lines = append(lines, fmt.Sprintf("%-10s %6s %6s %6s  %s → %s",
			band.Title(), bandValue(h, hok), bandValue(s, sok), bandValue(l, lok), before, after))
	}
	return strings.Join(lines, "\n")
}

func bandValue(v int, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%+d", v)
}

func swatch(c colorful.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("██")
}

// RenderToneCurve renders the tone curve preview with its labels, or the
// placeholder when there is no curve.
func RenderToneCurve(c *models.ToneCurve) string {
	if c.Empty() {
		return InactiveStyle.Render(tonecurve.NoCurvePlaceholder)
	}
	return strings.Join([]string{
		TitleStyle.Render("Tone Curve"),
		InactiveStyle.Render("Output"),
		tonecurve.Render(c),
		strings.Repeat(" ", tonecurve.GridWidth-10) + InactiveStyle.Render("Input"),
	}, "\n")
}

// RenderAdjustments renders every section for adj, or the no-adjustments
// notice when nothing was read at all.
func RenderAdjustments(adj *models.Adjustments) string {
	if adj.Count() == 0 {
		return WarningStyle.Render(NoAdjustmentsMessage)
	}

	var sections []string
	for _, g := range SliderGroups(adj) {
		lines := []string{lipgloss.NewStyle().Bold(true).Render(g.Title)}
		for _, s := range g.Sliders {
			lines = append(lines, s.Render())
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if table := RenderBandTable(adj); table != "" {
		sections = append(sections, table)
	}
	if !adj.ToneCurve.Empty() {
		sections = append(sections, RenderToneCurve(adj.ToneCurve))
	}
	return strings.Join(sections, "\n\n")
}
