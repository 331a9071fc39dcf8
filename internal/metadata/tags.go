package metadata

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Tags is the flat tag -> value mapping returned by a Reader.
// Values are strings, numbers or lists depending on the tag.
type Tags map[string]any

// Group prefixes under which the crs tags may appear
var tagPrefixes = []string{"XMP:", "XMP-crs:", ""}

// Lookup finds a crs tag by its bare name, accepting the group-qualified
// forms ExifTool produces.
func (t Tags) Lookup(name string) (any, bool) {
	for _, prefix := range tagPrefixes {
		if v, ok := t[prefix+name]; ok {
			return v, true
		}
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimPrefix(strings.TrimSpace(val), "+")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toInt accepts integral numbers only; 12.0 is fine, 12.5 is not.
func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case string:
		s := strings.TrimPrefix(strings.TrimSpace(val), "+")
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// rawString renders an opaque value as text without interpreting it
func rawString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, rawString(item))
		}
		return strings.Join(parts, ", ")
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
