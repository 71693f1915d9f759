// Package normalize turns loosely shaped upstream JSON into the strict model types.
//
// Normalization never fails on malformed input: a field that cannot be coerced
// degrades to its default and only non-object records are dropped.
package normalize

import (
	"time"
)

// Unwrap returns the records carried by a decoded response body. It accepts a bare
// array, a {success, data} or {data} envelope, or a single object.
func Unwrap(raw any) []any {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		return v
	case map[string]any:
		if data, ok := v["data"]; ok && data != nil {
			switch d := data.(type) {
			case []any:
				return d
			case map[string]any:
				return []any{d}
			}
		}
		return []any{v}
	}
	return []any{raw}
}

type Normalizer struct {
	now func() time.Time
}

type Option func(*Normalizer)

// WithClock sets the clock used for age-derived fields such as days in stock.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// collect normalizes every record of a response, skipping the ones that are not objects.
func collect[T any](raw any, one func(any) (T, bool)) []T {
	records := Unwrap(raw)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if item, ok := one(r); ok {
			out = append(out, item)
		}
	}
	return out
}
