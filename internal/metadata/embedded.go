package metadata

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	markerStart = 0xFF
	markerSOI   = 0xD8
	markerEOI   = 0xD9
	markerSOS   = 0xDA
	markerAPP1  = 0xE1
)

const (
	xmpNamespace = "http://ns.adobe.com/xap/1.0/"
	crsNamespace = "http://ns.adobe.com/camera-raw-settings/1.0/"
	rdfNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

// EmbeddedXMPReader reads camera-raw settings straight from the XMP packet
// of a JPEG file, without external tools. Only crs tags are returned.
type EmbeddedXMPReader struct{}

// NewEmbeddedXMPReader creates a pure-Go reader
func NewEmbeddedXMPReader() *EmbeddedXMPReader {
	return &EmbeddedXMPReader{}
}

// ReadTags implements Reader
func (r *EmbeddedXMPReader) ReadTags(ctx context.Context, path string) (Tags, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	packet, err := findXMPPacket(data)
	if err != nil {
		return nil, err
	}
	return parseCRS(packet)
}

// findXMPPacket walks the JPEG header segments and returns the XMP payload
// without its namespace signature.
func findXMPPacket(data []byte) ([]byte, error) {
	if len(data) < 4 || data[0] != markerStart || data[1] != markerSOI {
		return nil, errors.New("invalid JPEG")
	}
	sig := append([]byte(xmpNamespace), 0)

	pos := 2
	for pos+3 < len(data) {
		if data[pos] != markerStart {
			pos++
			continue
		}
		for pos < len(data) && data[pos] == markerStart {
			pos++
		}
		if pos >= len(data) {
			break
		}
		marker := data[pos]
		pos++
		if marker == markerSOS || marker == markerEOI {
			break
		}
		if marker >= 0xD0 && marker <= 0xD7 {
			continue
		}
		if pos+1 >= len(data) {
			return nil, errors.New("truncated marker")
		}
		segLen := int(binary.BigEndian.Uint16(data[pos:]))
		if segLen < 2 || pos+segLen > len(data) {
			return nil, errors.New("invalid segment length")
		}
		segStart := pos + 2
		segEnd := pos + segLen
		if marker == markerAPP1 && bytes.HasPrefix(data[segStart:segEnd], sig) {
			return data[segStart+len(sig) : segEnd], nil
		}
		pos = segEnd
	}
	return nil, ErrNoMetadata
}

// crsElement collects the content of a crs element written in element form
type crsElement struct {
	tag   string
	text  strings.Builder
	items []string
	inLi  bool
	li    strings.Builder
}

// parseCRS extracts top-level crs attributes and elements from an XMP packet.
// List-valued elements (rdf:Seq, rdf:Bag, rdf:Alt) become []string.
func parseCRS(packet []byte) (Tags, error) {
	dec := xml.NewDecoder(bytes.NewReader(packet))
	dec.Strict = false

	tags := make(Tags)
	var current *crsElement
	depth := 0 // nesting below the current crs element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XMP: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if current != nil {
				depth++
				if t.Name.Space == rdfNamespace && t.Name.Local == "li" {
					current.inLi = true
					current.li.Reset()
				}
				continue
			}
			for _, attr := range t.Attr {
				if attr.Name.Space == crsNamespace {
					tags["XMP:"+attr.Name.Local] = attr.Value
				}
			}
			if t.Name.Space == crsNamespace {
				current = &crsElement{tag: t.Name.Local}
				depth = 0
			}

		case xml.CharData:
			if current == nil {
				continue
			}
			if current.inLi {
				current.li.Write(t)
			} else if depth == 0 {
				current.text.Write(t)
			}

		case xml.EndElement:
			if current == nil {
				continue
			}
			if depth > 0 {
				if current.inLi && t.Name.Space == rdfNamespace && t.Name.Local == "li" {
					current.items = append(current.items, strings.TrimSpace(current.li.String()))
					current.inLi = false
				}
				depth--
				continue
			}
			if len(current.items) > 0 {
				tags["XMP:"+current.tag] = current.items
			} else if text := strings.TrimSpace(current.text.String()); text != "" {
				tags["XMP:"+current.tag] = text
			}
			current = nil
		}
	}

	if len(tags) == 0 {
		return nil, ErrNoMetadata
	}
	return tags, nil
}
