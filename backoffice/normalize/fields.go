package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// record is one decoded JSON object.
type record map[string]any

func asRecord(v any) (record, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case record:
		return m, true
	}
	return nil, false
}

// lookup resolves a dotted path ("product.name", "roles.0") inside a record.
func (r record) lookup(path string) (any, bool) {
	var cur any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// first returns the value of the first path present with a non-null value.
func (r record) first(paths ...string) (any, bool) {
	for _, p := range paths {
		if v, ok := r.lookup(p); ok {
			return v, true
		}
	}
	return nil, false
}

// text returns the first non-empty trimmed string among paths.
func (r record) text(paths ...string) string {
	for _, p := range paths {
		v, ok := r.lookup(p)
		if !ok {
			continue
		}
		if s := toText(v); s != "" {
			return s
		}
	}
	return ""
}

// amount returns the first path as a non-negative number, 0 when absent or malformed.
func (r record) amount(paths ...string) float64 {
	v, _ := r.first(paths...)
	return nonNegative(toNumber(v))
}

// positiveAmount is like amount but skips paths whose value coerces to 0.
func (r record) positiveAmount(paths ...string) (float64, bool) {
	for _, p := range paths {
		v, ok := r.lookup(p)
		if !ok {
			continue
		}
		if n := nonNegative(toNumber(v)); n > 0 {
			return n, true
		}
	}
	return 0, false
}

// count is amount truncated to an integer, saturating at math.MaxInt64.
func (r record) count(paths ...string) int64 {
	return toCount(r.amount(paths...))
}

func toCount(f float64) int64 {
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(f))
}

// addCount adds two non-negative counts without wrapping.
func addCount(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}

func (r record) flag(paths ...string) (bool, bool) {
	for _, p := range paths {
		v, ok := r.lookup(p)
		if !ok {
			continue
		}
		if b, ok := toFlag(v); ok {
			return b, true
		}
	}
	return false, false
}

func (r record) timestamp(paths ...string) *time.Time {
	for _, p := range paths {
		v, ok := r.lookup(p)
		if !ok {
			continue
		}
		if t, ok := toTime(v); ok {
			return &t
		}
	}
	return nil
}

func (r record) list(paths ...string) []any {
	for _, p := range paths {
		v, ok := r.lookup(p)
		if !ok {
			continue
		}
		if items, ok := v.([]any); ok {
			return items
		}
	}
	return nil
}

// toNumber mirrors a lenient numeric cast: anything unparseable becomes 0.
func toNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case json.Number:
		f, _ = n.Float64()
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case bool:
		if n {
			f = 1
		}
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		f, _ = strconv.ParseFloat(s, 64)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func nonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

func toText(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	}
	return ""
}

func toFlag(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		s := strings.ToLower(strings.TrimSpace(b))
		switch s {
		case "active", "yes", "on", "enabled":
			return true, true
		case "", "inactive", "no", "off", "disabled":
			return false, true
		}
		if parsed, err := strconv.ParseBool(s); err == nil {
			return parsed, true
		}
		return true, true
	case json.Number, float64, float32, int, int32, int64:
		return toNumber(b) != 0, true
	}
	return false, false
}

// maxEpochMillis is 9999-12-31T23:59:59.999Z.
const maxEpochMillis = 253402300799999

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	case json.Number, float64, int64, int:
		// epoch milliseconds
		ms := toNumber(t)
		if ms > 0 && ms <= maxEpochMillis {
			return time.UnixMilli(int64(ms)).UTC(), true
		}
	}
	return time.Time{}, false
}

// round2 rounds to cents. Non-finite values become 0 so a derived amount can
// always be encoded.
func round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if math.Abs(f) >= 1e15 {
		return f
	}
	return math.Round(f*100) / 100
}
