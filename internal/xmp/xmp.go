// Package xmp writes Lightroom Classic XMP presets from extracted adjustments.
package xmp

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/kartoza/presetify/internal/models"
)

// XMP namespaces
const (
	NamespaceX   = "adobe:ns:meta/"
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceCRS = "http://ns.adobe.com/camera-raw-settings/1.0/"
)

const (
	// XMPToolkit identifies the writer on the root element
	XMPToolkit = "Adobe XMP Core 7.0-c000 1.000000"
	// SettingsVersion is the Lightroom Classic settings version
	SettingsVersion = "16.5"
	// ProcessVersion is the camera-raw process version
	ProcessVersion = "11.0"
	// PresetType marks the file as a regular develop preset
	PresetType = "Normal"
)

// ErrNoName is returned when the preset metadata has no name
var ErrNoName = errors.New("preset name is required")

// Attribute is a single crs attribute of the Description element
type Attribute struct {
	Name  string // Tag name without the crs prefix
	Value string
}

// Generator builds and writes XMP preset files
type Generator struct {
	newUUID func(seed []byte) string
}

// NewGenerator creates a preset generator
func NewGenerator() *Generator {
	return &Generator{newUUID: newPresetUUID}
}

// Generate writes the preset for adj to outputPath, replacing any existing
// file. The document is written to a temporary file in the same directory
// and renamed into place, so a failed write never leaves a partial preset.
func (g *Generator) Generate(adj *models.Adjustments, meta models.PresetMetadata, outputPath string) error {
	data, err := g.Build(adj, meta)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(outputPath, data); err != nil {
		return fmt.Errorf("failed to write preset: %w", err)
	}
	return nil
}

// Build returns the pretty-printed preset document
func (g *Generator) Build(adj *models.Adjustments, meta models.PresetMetadata) ([]byte, error) {
	if meta.Name == "" {
		return nil, ErrNoName
	}
	if adj == nil {
		adj = &models.Adjustments{}
	}
	attrs := Attributes(adj)
	presetUUID := meta.UUID
	if presetUUID == "" {
		presetUUID = g.newUUID(uuidSeed(meta.Name, attrs, adj.ToneCurve))
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	w := &tokenWriter{enc: enc}

	w.start("x:xmpmeta",
		attr("xmlns:x", NamespaceX),
		attr("x:xmptk", XMPToolkit),
	)
	w.start("rdf:RDF", attr("xmlns:rdf", NamespaceRDF))

	descAttrs := []xml.Attr{
		attr("rdf:about", ""),
		attr("xmlns:crs", NamespaceCRS),
		attr("crs:Version", SettingsVersion),
		attr("crs:ProcessVersion", ProcessVersion),
	}
	for _, a := range attrs {
		descAttrs = append(descAttrs, attr("crs:"+a.Name, a.Value))
	}
	descAttrs = append(descAttrs,
		attr("crs:PresetType", PresetType),
		attr("crs:UUID", presetUUID),
	)
	w.start("rdf:Description", descAttrs...)

	w.alt("crs:Name", meta.Name)
	if meta.Description != "" {
		w.alt("crs:Description", meta.Description)
	}

	if !adj.ToneCurve.Empty() {
		w.start("crs:" + models.TagToneCurve)
		w.start("rdf:Seq")
		for _, p := range adj.ToneCurve.Points {
			w.text("rdf:li", fmt.Sprintf("%d, %d", p.X, p.Y))
		}
		w.end("rdf:Seq")
		w.end("crs:" + models.TagToneCurve)
	}

	w.end("rdf:Description")
	w.end("rdf:RDF")
	w.end("x:xmpmeta")

	if w.err != nil {
		return nil, fmt.Errorf("failed to encode preset: %w", w.err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("failed to encode preset: %w", err)
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// Attributes returns the crs attributes for every set value of adj, scalar
// fields first in table order, then color bands by band and kind.
func Attributes(adj *models.Adjustments) []Attribute {
	if adj == nil {
		return nil
	}
	var attrs []Attribute
	for _, field := range models.ScalarFields {
		if field.Float != nil {
			if v := *field.Float(adj); v != nil {
				attrs = append(attrs, Attribute{Name: field.Tag, Value: FormatFloat(*v)})
			}
			continue
		}
		if v := *field.Int(adj); v != nil {
			attrs = append(attrs, Attribute{Name: field.Tag, Value: FormatInt(*v)})
		}
	}

	for _, band := range models.ColorBands() {
		for _, kind := range models.BandKinds() {
			bands := bandMap(adj, kind)
			if v, ok := bands[band]; ok {
				attrs = append(attrs, Attribute{Name: kind.TagName(band), Value: FormatInt(v)})
			}
		}
	}
	return attrs
}

// FormatFloat renders a float with an explicit sign and two decimals.
// Zero renders as "+0.00".
func FormatFloat(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	return fmt.Sprintf("%+.2f", v)
}

// FormatInt renders an integer as a plain decimal string
func FormatInt(v int) string {
	return strconv.Itoa(v)
}

func bandMap(adj *models.Adjustments, kind models.BandKind) map[models.ColorBand]int {
	switch kind {
	case models.KindHue:
		return adj.HueAdjustments
	case models.KindSaturation:
		return adj.SaturationAdjustments
	case models.KindLuminance:
		return adj.LuminanceAdjustments
	}
	return nil
}

// presetNamespace scopes the name-based preset UUIDs
var presetNamespace = uuid.MustParse("5f3c9a52-7d1e-4b8a-9c64-2e0f6a1d8b37")

// newPresetUUID derives a stable ID from seed so regenerating the same
// preset yields the same document
func newPresetUUID(seed []byte) string {
	id := uuid.NewSHA1(presetNamespace, seed)
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
}

// uuidSeed serializes the preset name and its values
func uuidSeed(name string, attrs []Attribute, curve *models.ToneCurve) []byte {
	var b bytes.Buffer
	b.WriteString(name)
	b.WriteByte(0)
	for _, a := range attrs {
		b.WriteString(a.Name + "=" + a.Value + "\n")
	}
	if !curve.Empty() {
		for _, p := range curve.Points {
			fmt.Fprintf(&b, "%d,%d;", p.X, p.Y)
		}
	}
	return b.Bytes()
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// tokenWriter emits prefixed element names as written; the namespace
// declarations are added explicitly as xmlns attributes.
type tokenWriter struct {
	enc *xml.Encoder
	err error
}

func (w *tokenWriter) emit(tok xml.Token) {
	if w.err != nil {
		return
	}
	w.err = w.enc.EncodeToken(tok)
}

func (w *tokenWriter) start(name string, attrs ...xml.Attr) {
	w.emit(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (w *tokenWriter) end(name string) {
	w.emit(xml.EndElement{Name: xml.Name{Local: name}})
}

func (w *tokenWriter) text(name, value string, attrs ...xml.Attr) {
	w.start(name, attrs...)
	w.emit(xml.CharData(value))
	w.end(name)
}

// alt writes a language alternative with a single x-default entry
func (w *tokenWriter) alt(name, value string) {
	w.start(name)
	w.start("rdf:Alt")
	w.text("rdf:li", value, attr("xml:lang", "x-default"))
	w.end("rdf:Alt")
	w.end(name)
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
