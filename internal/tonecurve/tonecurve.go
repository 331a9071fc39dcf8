// Package tonecurve converts Lightroom tone curves between their flat
// "x1, y1, x2, y2, ..." form and models.ToneCurve, and draws ASCII previews.
package tonecurve

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/kartoza/presetify/internal/models"
)

// Decode parses curve data as returned by a metadata reader.
//
// The value may be a single comma-separated string or a list whose items are
// integers or strings (list items may themselves hold "x, y" pairs). Any token
// that is not an integer discards the whole curve. Values are paired in order
// and an odd trailing value is dropped. Returns nil when there is no curve.
func Decode(v any) *models.ToneCurve {
	values, ok := flatten(v)
	if !ok || len(values) < 2 {
		return nil
	}

	curve := &models.ToneCurve{Points: make([]models.CurvePoint, 0, len(values)/2)}
	for i := 0; i+1 < len(values); i += 2 {
		curve.Points = append(curve.Points, models.CurvePoint{X: values[i], Y: values[i+1]})
	}
	return curve
}

// Encode flattens a curve back to "x1, y1, x2, y2, ..."
func Encode(c *models.ToneCurve) string {
	return c.String()
}

func flatten(v any) ([]int, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case string:
		return parseTokens(val)
	case []string:
		var out []int
		for _, s := range val {
			ints, ok := parseTokens(s)
			if !ok {
				return nil, false
			}
			out = append(out, ints...)
		}
		return out, true
	case []int:
		return append([]int(nil), val...), true
	case []float64:
		out := make([]int, 0, len(val))
		for _, f := range val {
			i, ok := integral(f)
			if !ok {
				return nil, false
			}
			out = append(out, i)
		}
		return out, true
	case []any:
		var out []int
		for _, item := range val {
			if _, nested := item.([]any); nested {
				return nil, false
			}
			ints, ok := flatten(item)
			if !ok {
				return nil, false
			}
			out = append(out, ints...)
		}
		return out, true
	case int:
		return []int{val}, true
	case int64:
		return []int{int(val)}, true
	case float64:
		i, ok := integral(val)
		if !ok {
			return nil, false
		}
		return []int{i}, true
	case json.Number:
		return parseTokens(val.String())
	default:
		return nil, false
	}
}

func parseTokens(s string) ([]int, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, false
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func integral(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
