package xmp

import (
	"bytes"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kartoza/presetify/internal/metadata"
	"github.com/kartoza/presetify/internal/models"
)

func testGenerator() *Generator {
	return &Generator{newUUID: func([]byte) string { return "0123456789ABCDEF0123456789ABCDEF" }}
}

func testMetadata() models.PresetMetadata {
	return models.PresetMetadata{Name: "sunset", Description: "Preset extracted from sunset.jpg"}
}

// xmlNode is a generic tree used to inspect generated documents
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
	Text     string     `xml:",chardata"`
}

func (n xmlNode) attr(space, local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (n xmlNode) child(space, local string) *xmlNode {
	for i := range n.Children {
		if n.Children[i].XMLName.Space == space && n.Children[i].XMLName.Local == local {
			return &n.Children[i]
		}
	}
	return nil
}

func parseDoc(t *testing.T, data []byte) xmlNode {
	t.Helper()
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		t.Fatalf("generated document is not well-formed: %v\n%s", err, data)
	}
	return root
}

func description(t *testing.T, root xmlNode) xmlNode {
	t.Helper()
	rdf := root.child(NamespaceRDF, "RDF")
	if rdf == nil {
		t.Fatal("expected rdf:RDF element")
	}
	desc := rdf.child(NamespaceRDF, "Description")
	if desc == nil {
		t.Fatal("expected rdf:Description element")
	}
	return *desc
}

func TestBuild_DocumentShape(t *testing.T) {
	data, err := testGenerator().Build(&models.Adjustments{}, testMetadata())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(string(data), `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("expected UTF-8 declaration, got %q", string(data)[:40])
	}
	if !strings.Contains(string(data), "\n  <rdf:RDF") {
		t.Error("expected two-space indentation")
	}

	root := parseDoc(t, data)
	if root.XMLName.Space != NamespaceX || root.XMLName.Local != "xmpmeta" {
		t.Errorf("unexpected root %v", root.XMLName)
	}
	if v, _ := root.attr(NamespaceX, "xmptk"); v != XMPToolkit {
		t.Errorf("expected xmptk %q, got %q", XMPToolkit, v)
	}

	desc := description(t, root)
	expected := map[string]string{
		"Version":        SettingsVersion,
		"ProcessVersion": ProcessVersion,
		"PresetType":     PresetType,
		"UUID":           "0123456789ABCDEF0123456789ABCDEF",
	}
	for name, want := range expected {
		if v, ok := desc.attr(NamespaceCRS, name); !ok || v != want {
			t.Errorf("expected crs:%s=%q, got %q (present=%v)", name, want, v, ok)
		}
	}
	if v, ok := desc.attr(NamespaceRDF, "about"); !ok || v != "" {
		t.Errorf("expected empty rdf:about, got %q (present=%v)", v, ok)
	}
	if desc.child(NamespaceCRS, models.TagToneCurve) != nil {
		t.Error("expected no tone curve element without a curve")
	}
}

func TestBuild_ScalarFormatting(t *testing.T) {
	adj := &models.Adjustments{
		Exposure: models.Float(1.5),
		Contrast: models.Int(-20),
	}

	data, err := testGenerator().Build(adj, testMetadata())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(data), `crs:Exposure2012="+1.50"`) {
		t.Errorf("expected Exposure2012=\"+1.50\" in\n%s", data)
	}
	if !strings.Contains(string(data), `crs:Contrast2012="-20"`) {
		t.Errorf("expected Contrast2012=\"-20\" in\n%s", data)
	}
	if strings.Contains(string(data), "Highlights2012") {
		t.Error("expected unset fields to be omitted")
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "+1.50"},
		{-0.25, "-0.25"},
		{0, "+0.00"},
		{-0.0 * 1, "+0.00"},
		{5, "+5.00"},
		{-4.999, "-5.00"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormatInt(t *testing.T) {
	if FormatInt(25) != "25" || FormatInt(-7) != "-7" || FormatInt(0) != "0" {
		t.Error("expected plain decimal formatting without a forced sign")
	}
}

func TestAttributes_Order(t *testing.T) {
	adj := &models.Adjustments{
		GrainAmount:           models.Int(12),
		Exposure:              models.Float(-0.5),
		Temperature:           models.Int(5200),
		HueAdjustments:        map[models.ColorBand]int{models.BandBlue: -5, models.BandRed: 10},
		LuminanceAdjustments:  map[models.ColorBand]int{models.BandRed: 3},
		SaturationAdjustments: map[models.ColorBand]int{models.BandGreen: 15},
	}

	got := Attributes(adj)
	expected := []Attribute{
		{"Exposure2012", "-0.50"},
		{"Temperature", "5200"},
		{"GrainAmount", "12"},
		{"HueAdjustmentRed", "10"},
		{"LuminanceAdjustmentRed", "3"},
		{"SaturationAdjustmentGreen", "15"},
		{"HueAdjustmentBlue", "-5"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestBuild_ToneCurveElement(t *testing.T) {
	adj := &models.Adjustments{
		ToneCurve: models.NewToneCurve([2]int{0, 0}, [2]int{64, 56}, [2]int{255, 255}),
	}

	data, err := testGenerator().Build(adj, testMetadata())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	desc := description(t, parseDoc(t, data))
	if _, ok := desc.attr(NamespaceCRS, models.TagToneCurve); ok {
		t.Error("expected the curve as an element, not an attribute")
	}
	curve := desc.child(NamespaceCRS, models.TagToneCurve)
	if curve == nil {
		t.Fatal("expected crs:ToneCurvePV2012 element")
	}
	seq := curve.child(NamespaceRDF, "Seq")
	if seq == nil {
		t.Fatal("expected rdf:Seq element")
	}

	var items []string
	for _, li := range seq.Children {
		if li.XMLName.Local == "li" {
			items = append(items, li.Text)
		}
	}
	expected := []string{"0, 0", "64, 56", "255, 255"}
	if !reflect.DeepEqual(items, expected) {
		t.Errorf("expected li items %v, got %v", expected, items)
	}
}

func TestBuild_PresetName(t *testing.T) {
	data, err := testGenerator().Build(&models.Adjustments{}, testMetadata())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	desc := description(t, parseDoc(t, data))
	name := desc.child(NamespaceCRS, "Name")
	if name == nil {
		t.Fatal("expected crs:Name element")
	}
	alt := name.child(NamespaceRDF, "Alt")
	if alt == nil || len(alt.Children) != 1 || alt.Children[0].Text != "sunset" {
		t.Errorf("expected crs:Name alternative with sunset, got %+v", alt)
	}
	if desc.child(NamespaceCRS, "Description") == nil {
		t.Error("expected crs:Description element")
	}
}

func TestBuild_UsesMetadataUUID(t *testing.T) {
	meta := testMetadata()
	meta.UUID = "FEEDFACE"

	data, err := testGenerator().Build(&models.Adjustments{}, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `crs:UUID="FEEDFACE"`) {
		t.Error("expected metadata UUID to be used")
	}
}

func TestBuild_GeneratesUUID(t *testing.T) {
	data, err := NewGenerator().Build(&models.Adjustments{}, testMetadata())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, ok := description(t, parseDoc(t, data)).attr(NamespaceCRS, "UUID")
	if !ok || len(v) != 32 || strings.ToUpper(v) != v {
		t.Errorf("expected 32 uppercase hex characters, got %q", v)
	}
}

func TestBuild_UUIDFollowsContent(t *testing.T) {
	g := NewGenerator()
	uuidOf := func(t *testing.T, adj *models.Adjustments, name string) string {
		t.Helper()
		data, err := g.Build(adj, models.PresetMetadata{Name: name})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		v, _ := description(t, parseDoc(t, data)).attr(NamespaceCRS, "UUID")
		return v
	}

	base := uuidOf(t, &models.Adjustments{Exposure: models.Float(0.5)}, "sunset")

	tests := []struct {
		name string
		adj  *models.Adjustments
		meta string
		same bool
	}{
		{"same content", &models.Adjustments{Exposure: models.Float(0.5)}, "sunset", true},
		{"different name", &models.Adjustments{Exposure: models.Float(0.5)}, "dawn", false},
		{"different value", &models.Adjustments{Exposure: models.Float(0.75)}, "sunset", false},
		{"added curve", &models.Adjustments{
			Exposure:  models.Float(0.5),
			ToneCurve: models.NewToneCurve([2]int{0, 0}, [2]int{255, 255}),
		}, "sunset", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uuidOf(t, tt.adj, tt.meta)
			if (got == base) != tt.same {
				t.Errorf("expected same=%v, got %s against %s", tt.same, got, base)
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	dir := t.TempDir()
	adj := &models.Adjustments{
		Exposure:       models.Float(-0.25),
		Contrast:       models.Int(15),
		ToneCurve:      models.NewToneCurve([2]int{0, 0}, [2]int{128, 140}, [2]int{255, 255}),
		HueAdjustments: map[models.ColorBand]int{models.BandOrange: -5},
	}
	meta := models.NewPresetMetadata("/x/sunset.jpg")

	var outputs [][]byte
	for _, name := range []string{"first.xmp", "second.xmp"} {
		path := filepath.Join(dir, name)
		if err := NewGenerator().Generate(adj, meta, path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}

	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Errorf("expected identical presets, got:\n%s\n---\n%s", outputs[0], outputs[1])
	}
}

func TestAttributes_Nil(t *testing.T) {
	if got := Attributes(nil); len(got) != 0 {
		t.Errorf("expected no attributes, got %v", got)
	}
}

func TestBuild_RequiresName(t *testing.T) {
	_, err := testGenerator().Build(&models.Adjustments{}, models.PresetMetadata{})
	if !errors.Is(err, ErrNoName) {
		t.Errorf("expected ErrNoName, got %v", err)
	}
}

func TestBuild_EscapesText(t *testing.T) {
	meta := models.PresetMetadata{Name: `Tom & "Jerry" <1>`}

	data, err := testGenerator().Build(&models.Adjustments{}, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alt := description(t, parseDoc(t, data)).child(NamespaceCRS, "Name").child(NamespaceRDF, "Alt")
	if alt.Children[0].Text != meta.Name {
		t.Errorf("expected name to survive escaping, got %q", alt.Children[0].Text)
	}
}

func TestGenerate_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sunset_preset.xmp")

	adj := &models.Adjustments{Exposure: models.Float(0.75)}
	if err := testGenerator().Generate(adj, testMetadata(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected preset file: %v", err)
	}
	if !strings.Contains(string(data), `crs:Exposure2012="+0.75"`) {
		t.Errorf("unexpected file content:\n%s", data)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the preset in the directory, found %d entries", len(entries))
	}
}

func TestGenerate_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.xmp")
	if err := os.WriteFile(path, []byte("old content"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := testGenerator().Generate(&models.Adjustments{Contrast: models.Int(5)}, testMetadata(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "old content") {
		t.Error("expected existing file to be replaced")
	}
}

func TestGenerate_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "preset.xmp")

	err := testGenerator().Generate(&models.Adjustments{}, testMetadata(), path)
	if err == nil {
		t.Fatal("expected error for missing parent directory")
	}
	if !strings.Contains(err.Error(), "failed to write preset") {
		t.Errorf("expected wrapped write error, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("expected no preset file to be created")
	}
}

func TestRoundTrip_ImportExport(t *testing.T) {
	original := &models.Adjustments{
		Exposure:                models.Float(1.25),
		Contrast:                models.Int(-20),
		Highlights:              models.Int(-45),
		Shadows:                 models.Int(30),
		Whites:                  models.Int(10),
		Blacks:                  models.Int(-8),
		Temperature:             models.Int(5600),
		Tint:                    models.Int(12),
		Vibrance:                models.Int(15),
		Saturation:              models.Int(-5),
		Clarity:                 models.Int(20),
		Dehaze:                  models.Int(7),
		Texture:                 models.Int(11),
		Sharpness:               models.Int(40),
		LuminanceNoiseReduction: models.Int(25),
		ColorNoiseReduction:     models.Int(25),
		VignetteAmount:          models.Int(-15),
		GrainAmount:             models.Int(20),
		ToneCurve:               models.NewToneCurve([2]int{0, 0}, [2]int{32, 22}, [2]int{255, 255}),
		HueAdjustments:          map[models.ColorBand]int{models.BandRed: 10},
		SaturationAdjustments:   map[models.ColorBand]int{models.BandAqua: -30},
		LuminanceAdjustments:    map[models.ColorBand]int{models.BandMagenta: 5},
	}

	// Build the flat mapping a metadata reader would return for the preset
	tags := metadata.Tags{}
	for _, a := range Attributes(original) {
		tags["XMP:"+a.Name] = a.Value
	}
	var items []string
	for _, p := range original.ToneCurve.Points {
		items = append(items, strings.Join([]string{FormatInt(p.X), FormatInt(p.Y)}, ", "))
	}
	tags["XMP:"+models.TagToneCurve] = items

	imported := metadata.FromTags("", tags)
	imported.SourceFile = ""

	if !reflect.DeepEqual(imported, original) {
		t.Errorf("round trip mismatch:\nexpected %+v\ngot      %+v", original, imported)
	}
}
