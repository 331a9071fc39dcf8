package tonecurve

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/kartoza/presetify/internal/models"
)

func TestDecode_LightroomString(t *testing.T) {
	curve := Decode("0, 0, 32, 22, 64, 56, 128, 128, 192, 196, 255, 255")
	if curve == nil {
		t.Fatal("expected a curve")
	}

	expected := []models.CurvePoint{
		{X: 0, Y: 0}, {X: 32, Y: 22}, {X: 64, Y: 56}, {X: 128, Y: 128}, {X: 192, Y: 196}, {X: 255, Y: 255},
	}
	if !reflect.DeepEqual(curve.Points, expected) {
		t.Errorf("expected %v, got %v", expected, curve.Points)
	}
}

func TestDecode_OddLengthDropsTrailingValue(t *testing.T) {
	curve := Decode("0,0,10")
	if curve == nil {
		t.Fatal("expected a curve")
	}
	if len(curve.Points) != 1 || curve.Points[0] != (models.CurvePoint{X: 0, Y: 0}) {
		t.Errorf("expected [(0,0)], got %v", curve.Points)
	}
}

func TestDecode_NoCurve(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"empty string", ""},
		{"whitespace", "   "},
		{"non-numeric", "linear"},
		{"partially numeric", "0, 0, abc, 255"},
		{"single value", "42"},
		{"empty list", []any{}},
		{"list with garbage", []any{0, 0, "x", 255}},
		{"fractional floats", []float64{0, 0.5, 255, 255}},
		{"unsupported type", map[string]int{"x": 1}},
		{"nested lists", []any{[]any{0, 0}}},
	}

	for _, tt := range tests {
		if got := Decode(tt.input); got != nil {
			t.Errorf("%s: expected no curve, got %v", tt.name, got.Points)
		}
	}
}

func TestDecode_ListForms(t *testing.T) {
	expected := []models.CurvePoint{{X: 0, Y: 0}, {X: 128, Y: 140}, {X: 255, Y: 255}}

	tests := []struct {
		name  string
		input any
	}{
		{"ints", []int{0, 0, 128, 140, 255, 255}},
		{"floats", []float64{0, 0, 128, 140, 255, 255}},
		{"json values", []any{float64(0), float64(0), float64(128), float64(140), float64(255), float64(255)}},
		{"string tokens", []string{"0", "0", "128", "140", "255", "255"}},
		{"pair strings", []string{"0, 0", "128, 140", "255, 255"}},
		{"mixed any", []any{"0, 0", json.Number("128"), 140, "255", int64(255)}},
	}

	for _, tt := range tests {
		curve := Decode(tt.input)
		if curve == nil {
			t.Errorf("%s: expected a curve", tt.name)
			continue
		}
		if !reflect.DeepEqual(curve.Points, expected) {
			t.Errorf("%s: expected %v, got %v", tt.name, expected, curve.Points)
		}
	}
}

func TestEncode(t *testing.T) {
	if got := Encode(nil); got != "" {
		t.Errorf("expected empty string for nil curve, got %q", got)
	}
	curve := models.NewToneCurve([2]int{0, 0}, [2]int{64, 80}, [2]int{255, 255})
	if got := Encode(curve); got != "0, 0, 64, 80, 255, 255" {
		t.Errorf("unexpected encoding %q", got)
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	curves := []*models.ToneCurve{
		models.NewToneCurve([2]int{0, 0}, [2]int{255, 255}),
		models.NewToneCurve([2]int{0, 20}, [2]int{60, 50}, [2]int{190, 210}, [2]int{255, 240}),
		models.NewToneCurve([2]int{255, 0}, [2]int{0, 255}, [2]int{128, 128}),
		models.NewToneCurve([2]int{7, 7}),
	}

	for _, c := range curves {
		got := Decode(Encode(c))
		if !reflect.DeepEqual(got, c) {
			t.Errorf("round trip of %v produced %v", c.Points, got)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	inputs := []string{
		"0, 0, 255, 255",
		"0, 0, 32, 22, 64, 56, 128, 128, 192, 196, 255, 255",
		"10, 300, -5, 4",
	}

	for _, in := range inputs {
		if got := Encode(Decode(in)); got != in {
			t.Errorf("expected %q, got %q", in, got)
		}
	}
}

func TestRender_EmptyCurve(t *testing.T) {
	if got := Render(nil); got != NoCurvePlaceholder {
		t.Errorf("expected placeholder, got %q", got)
	}
	if got := Render(&models.ToneCurve{}); got != NoCurvePlaceholder {
		t.Errorf("expected placeholder, got %q", got)
	}
}

func TestRender_GridShape(t *testing.T) {
	out := Render(models.NewToneCurve([2]int{0, 0}, [2]int{255, 255}))
	rows := gridRows(out)

	if len(rows) != GridHeight {
		t.Fatalf("expected %d rows, got %d", GridHeight, len(rows))
	}
	for i, row := range rows {
		if len(row) != GridWidth {
			t.Errorf("row %d: expected width %d, got %d", i, GridWidth, len(row))
		}
	}

	bottom := rows[GridHeight-1]
	if bottom[0] != glyphCorner {
		t.Errorf("expected corner glyph, got %q", bottom[0])
	}
	for x := 1; x < GridWidth; x++ {
		if bottom[x] != glyphAxis {
			t.Errorf("expected axis glyph at bottom column %d, got %q", x, bottom[x])
			break
		}
	}
	for y := 0; y < GridHeight-1; y++ {
		if rows[y][0] != glyphVertical {
			t.Errorf("expected vertical axis at row %d, got %q", y, rows[y][0])
		}
	}
}

func TestRender_IdentityCurveEndpoints(t *testing.T) {
	rows := gridRows(Render(models.NewToneCurve([2]int{0, 0}, [2]int{255, 255})))

	// (0,0) maps to column 1 on the row above the axis, (255,255) to the top right
	if rows[GridHeight-2][1] != glyphPoint {
		t.Errorf("expected point at origin cell, got %q", rows[GridHeight-2][1])
	}
	if rows[0][GridWidth-1] != glyphPoint {
		t.Errorf("expected point at top right cell, got %q", rows[0][GridWidth-1])
	}

	// Every row of the drawable area is crossed by the diagonal
	for y := 0; y < GridHeight-1; y++ {
		if !strings.ContainsRune(string(rows[y][1:]), glyphPoint) {
			t.Errorf("expected a curve cell on row %d", y)
		}
	}
}

func TestRender_ClampsOutOfRange(t *testing.T) {
	curve := models.NewToneCurve([2]int{-100, -50}, [2]int{1000, 900})

	out := Render(curve)
	rows := gridRows(out)

	if len(rows) != GridHeight {
		t.Fatalf("expected %d rows, got %d", GridHeight, len(rows))
	}
	if rows[GridHeight-2][1] != glyphPoint {
		t.Errorf("expected low point clamped to origin cell, got %q", rows[GridHeight-2][1])
	}
	if rows[0][GridWidth-1] != glyphPoint {
		t.Errorf("expected high point clamped to top right cell, got %q", rows[0][GridWidth-1])
	}
	if rows[GridHeight-1][0] != glyphCorner {
		t.Error("expected axes to survive clamped points")
	}
}

func TestRender_SinglePoint(t *testing.T) {
	rows := gridRows(Render(models.NewToneCurve([2]int{255, 0})))

	if rows[GridHeight-2][GridWidth-1] != glyphPoint {
		t.Errorf("expected single point plotted, got %q", rows[GridHeight-2][GridWidth-1])
	}
}

func TestRender_Deterministic(t *testing.T) {
	curve := Decode("0, 0, 32, 22, 64, 56, 128, 128, 192, 196, 255, 255")
	if Render(curve) != Render(curve) {
		t.Error("expected identical output for identical input")
	}
}

func TestRenderGrid_CustomSize(t *testing.T) {
	rows := gridRows(RenderGrid(models.NewToneCurve([2]int{0, 0}, [2]int{255, 255}), 12, 6))

	if len(rows) != 6 || len(rows[0]) != 12 {
		t.Fatalf("expected 12x6 grid, got %dx%d", len(rows[0]), len(rows))
	}
	if rows[4][1] != glyphPoint || rows[0][11] != glyphPoint {
		t.Error("expected endpoints at the drawable corners")
	}
}

func gridRows(s string) [][]rune {
	lines := strings.Split(s, "\n")
	rows := make([][]rune, len(lines))
	for i, l := range lines {
		rows[i] = []rune(l)
	}
	return rows
}
