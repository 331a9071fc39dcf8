package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/kartoza/presetify/internal/models"
)

type stubReader struct {
	tags Tags
	err  error
}

func (s stubReader) ReadTags(ctx context.Context, path string) (Tags, error) {
	return s.tags, s.err
}

func TestFromTags_Scalars(t *testing.T) {
	tags := Tags{
		"XMP:Exposure2012":           json.Number("1.5"),
		"XMP:Contrast2012":           json.Number("-20"),
		"XMP:Highlights2012":         "-45",
		"XMP:Shadows2012":            float64(30),
		"XMP:Whites2012":             "+10",
		"XMP:Blacks2012":             -8,
		"XMP:Temperature":            json.Number("5600"),
		"XMP:Tint":                   json.Number("12"),
		"XMP:Vibrance":               "15",
		"XMP:Saturation":             "0",
		"XMP:Clarity2012":            "20",
		"XMP:Dehaze":                 "7",
		"XMP:Texture":                "11",
		"XMP:Sharpness":              "40",
		"XMP:LuminanceSmoothing":     "25",
		"XMP:ColorNoiseReduction":    "25",
		"XMP:PostCropVignetteAmount": "-15",
		"XMP:GrainAmount":            "20",
	}

	adj := FromTags("photo.jpg", tags)

	if adj.SourceFile != "photo.jpg" {
		t.Errorf("expected source file to be recorded, got %q", adj.SourceFile)
	}
	if adj.Exposure == nil || *adj.Exposure != 1.5 {
		t.Errorf("expected exposure 1.5, got %v", adj.Exposure)
	}

	expected := map[string]int{
		"contrast": -20, "highlights": -45, "shadows": 30, "whites": 10, "blacks": -8,
		"temperature": 5600, "tint": 12, "vibrance": 15, "saturation": 0,
		"clarity": 20, "dehaze": 7, "texture": 11, "sharpness": 40,
		"luminance_noise_reduction": 25, "color_noise_reduction": 25,
		"vignette_amount": -15, "grain_amount": 20,
	}
	for _, field := range models.ScalarFields {
		if field.Int == nil {
			continue
		}
		v := *field.Int(adj)
		if v == nil {
			t.Errorf("%s: expected a value", field.Name)
			continue
		}
		if *v != expected[field.Name] {
			t.Errorf("%s: expected %d, got %d", field.Name, expected[field.Name], *v)
		}
	}
	if !adj.HasAdjustments() {
		t.Error("expected HasAdjustments to be true")
	}
}

func TestFromTags_AbsentStaysNil(t *testing.T) {
	adj := FromTags("photo.jpg", Tags{"XMP:Contrast2012": "10"})

	if adj.Exposure != nil {
		t.Error("expected exposure to stay nil")
	}
	if adj.Highlights != nil {
		t.Error("expected highlights to stay nil")
	}
	if adj.ToneCurve != nil {
		t.Error("expected no tone curve")
	}
	if adj.Contrast == nil || *adj.Contrast != 10 {
		t.Errorf("expected contrast 10, got %v", adj.Contrast)
	}
}

func TestFromTags_MalformedValuesSkipped(t *testing.T) {
	tags := Tags{
		"XMP:Exposure2012":      "bright",
		"XMP:Contrast2012":      "12.5",
		"XMP:Highlights2012":    []any{"1", "2"},
		"XMP:Shadows2012":       true,
		"XMP:Whites2012":        "33",
		"XMP:ToneCurvePV2012":   "0, 0, oops, 255",
		"XMP:HueAdjustmentRed":  "lots",
		"XMP:HueAdjustmentBlue": "-5",
	}

	adj := FromTags("photo.jpg", tags)

	if adj.Exposure != nil || adj.Contrast != nil || adj.Highlights != nil || adj.Shadows != nil {
		t.Error("expected malformed scalar values to be skipped")
	}
	if adj.Whites == nil || *adj.Whites != 33 {
		t.Errorf("expected whites to survive malformed neighbours, got %v", adj.Whites)
	}
	if adj.ToneCurve != nil {
		t.Errorf("expected malformed curve to be discarded, got %v", adj.ToneCurve.Points)
	}
	if _, ok := adj.HueAdjustments[models.BandRed]; ok {
		t.Error("expected malformed band value to be skipped")
	}
	if adj.HueAdjustments[models.BandBlue] != -5 {
		t.Errorf("expected blue hue -5, got %v", adj.HueAdjustments)
	}
}

func TestFromTags_ToneCurves(t *testing.T) {
	tags := Tags{
		"XMP:ToneCurvePV2012":      "0, 0, 32, 22, 64, 56, 128, 128, 192, 196, 255, 255",
		"XMP:ToneCurvePV2012Red":   []any{"0, 0", "255, 255"},
		"XMP:ToneCurvePV2012Green": "0, 10, 255, 245",
	}

	adj := FromTags("photo.jpg", tags)

	if adj.ToneCurve == nil || len(adj.ToneCurve.Points) != 6 {
		t.Fatalf("expected 6 point curve, got %v", adj.ToneCurve)
	}
	if adj.ToneCurve.Points[1] != (models.CurvePoint{X: 32, Y: 22}) {
		t.Errorf("unexpected second point %v", adj.ToneCurve.Points[1])
	}
	if adj.ToneCurveRed == nil || adj.ToneCurveRed.Value != "0, 0, 255, 255" {
		t.Errorf("expected opaque red curve, got %v", adj.ToneCurveRed)
	}
	if adj.ToneCurveGreen == nil || adj.ToneCurveGreen.Value != "0, 10, 255, 245" {
		t.Errorf("expected opaque green curve, got %v", adj.ToneCurveGreen)
	}
	if adj.ToneCurveBlue != nil {
		t.Error("expected no blue curve")
	}
}

func TestFromTags_ColorBands(t *testing.T) {
	tags := Tags{
		"XMP:HueAdjustmentRed":               "10",
		"XMP:HueAdjustmentMagenta":           json.Number("-3"),
		"XMP:SaturationAdjustmentGreen":      "15",
		"XMP:LuminanceAdjustmentOrange":      "-20",
		"XMP:LuminanceAdjustmentUltraviolet": "99",
	}

	adj := FromTags("photo.jpg", tags)

	if !reflect.DeepEqual(adj.HueAdjustments, map[models.ColorBand]int{models.BandRed: 10, models.BandMagenta: -3}) {
		t.Errorf("unexpected hue adjustments %v", adj.HueAdjustments)
	}
	if !reflect.DeepEqual(adj.SaturationAdjustments, map[models.ColorBand]int{models.BandGreen: 15}) {
		t.Errorf("unexpected saturation adjustments %v", adj.SaturationAdjustments)
	}
	if !reflect.DeepEqual(adj.LuminanceAdjustments, map[models.ColorBand]int{models.BandOrange: -20}) {
		t.Errorf("unexpected luminance adjustments %v", adj.LuminanceAdjustments)
	}
	if adj.HasAdjustments() {
		t.Error("expected band-only record to report no adjustments")
	}
}

func TestFromTags_GroupPrefixes(t *testing.T) {
	tags := Tags{
		"XMP-crs:Contrast2012": "5",
		"Clarity2012":          "6",
		"EXIF:Saturation":      "2",
	}

	adj := FromTags("photo.jpg", tags)

	if adj.Contrast == nil || *adj.Contrast != 5 {
		t.Errorf("expected XMP-crs group to be accepted, got %v", adj.Contrast)
	}
	if adj.Clarity == nil || *adj.Clarity != 6 {
		t.Errorf("expected bare tag to be accepted, got %v", adj.Clarity)
	}
	if adj.Saturation != nil {
		t.Error("expected non-XMP groups to be ignored")
	}
}

func TestExtract_ReaderFailure(t *testing.T) {
	e := NewExtractor(stubReader{err: errors.New("exiftool exploded")})

	adj := e.Extract(context.Background(), "broken.jpg")

	if adj == nil {
		t.Fatal("expected a record even on failure")
	}
	if adj.SourceFile != "broken.jpg" {
		t.Errorf("expected source file, got %q", adj.SourceFile)
	}
	if adj.HasAdjustments() || adj.Count() != 0 {
		t.Error("expected every field to be unset")
	}
}

func TestExtract_EmptyResult(t *testing.T) {
	e := NewExtractor(stubReader{tags: Tags{}})

	adj := e.Extract(context.Background(), "plain.jpg")

	if adj.HasAdjustments() {
		t.Error("expected no adjustments")
	}
}

func TestExtract_Success(t *testing.T) {
	e := NewExtractor(stubReader{tags: Tags{"XMP:Exposure2012": "+0.35"}})

	adj := e.Extract(context.Background(), "edited.jpg")

	if adj.Exposure == nil || *adj.Exposure != 0.35 {
		t.Errorf("expected exposure 0.35, got %v", adj.Exposure)
	}
}

func TestIsSupportedImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPEG", true},
		{"dir/b.JpG", true},
		{"c.png", false},
		{"d.dng", false},
		{"jpg", false},
	}

	for _, tt := range tests {
		if got := IsSupportedImage(tt.path); got != tt.want {
			t.Errorf("IsSupportedImage(%q): expected %v, got %v", tt.path, tt.want, got)
		}
	}
}

func TestNewReader(t *testing.T) {
	if r, err := NewReader("auto", "", 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	} else if _, ok := r.(*AutoReader); !ok {
		t.Errorf("expected *AutoReader, got %T", r)
	}

	if r, err := NewReader("embedded", "", 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	} else if _, ok := r.(*EmbeddedXMPReader); !ok {
		t.Errorf("expected *EmbeddedXMPReader, got %T", r)
	}

	if r, err := NewReader("exiftool", "/opt/exiftool", 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	} else if et, ok := r.(*ExifToolReader); !ok || et.Path != "/opt/exiftool" {
		t.Errorf("expected exiftool reader at /opt/exiftool, got %#v", r)
	}

	if _, err := NewReader("magic", "", 0); err == nil {
		t.Error("expected error for unknown reader")
	}
}
