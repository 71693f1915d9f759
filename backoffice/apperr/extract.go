package apperr

import (
	"encoding/json"
	"maps"
	"net/http"
	"slices"
	"strings"
	"unicode/utf8"
)

// maxPlainMessage bounds how much of a non-JSON error body is surfaced.
const maxPlainMessage = 300

// Extractor returns a human readable message from a decoded error body, or "".
type Extractor func(body any) string

// DefaultExtractors are tried in order until one yields a message.
var DefaultExtractors = []Extractor{
	Field("message"),
	Field("error"),
	Nested("error", "message"),
	Field("title"),
	Field("detail"),
	FirstListEntry("errors"),
	PlainText,
}

// ExtractMessage runs extractors (DefaultExtractors when none are given) over body.
func ExtractMessage(body any, extractors ...Extractor) string {
	if len(extractors) == 0 {
		extractors = DefaultExtractors
	}
	for _, extract := range extractors {
		if msg := extract(body); msg != "" {
			return msg
		}
	}
	return ""
}

// Field reads a top-level string field.
func Field(name string) Extractor {
	return func(body any) string {
		obj, ok := body.(map[string]any)
		if !ok {
			return ""
		}
		return asString(obj[name])
	}
}

// Nested reads a string field inside a nested object, e.g. {"error": {"message": "..."}}.
func Nested(outer, inner string) Extractor {
	return func(body any) string {
		obj, ok := body.(map[string]any)
		if !ok {
			return ""
		}
		return Field(inner)(obj[outer])
	}
}

// FirstListEntry reads the first entry of a list field holding strings or
// objects with a message, e.g. ASP.NET style {"errors": {"Name": ["..."]}}.
// Object keys are visited in sorted order.
func FirstListEntry(name string) Extractor {
	return func(body any) string {
		obj, ok := body.(map[string]any)
		if !ok {
			return ""
		}
		switch v := obj[name].(type) {
		case []any:
			for _, entry := range v {
				if msg := entryMessage(entry); msg != "" {
					return msg
				}
			}
		case map[string]any:
			for _, key := range slices.Sorted(maps.Keys(v)) {
				if msg := entryMessage(v[key]); msg != "" {
					return msg
				}
			}
		}
		return ""
	}
}

func entryMessage(entry any) string {
	switch e := entry.(type) {
	case string:
		return strings.TrimSpace(e)
	case []any:
		if len(e) > 0 {
			return entryMessage(e[0])
		}
	case map[string]any:
		for _, key := range []string{"message", "error", "detail"} {
			if msg := asString(e[key]); msg != "" {
				return msg
			}
		}
	}
	return ""
}

// PlainText accepts a non-JSON body.
func PlainText(body any) string {
	s, ok := body.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if len(s) > maxPlainMessage {
		cut := maxPlainMessage
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	}
	return ""
}

// StatusMessage is the fallback message for a status code, 0 meaning no response.
func StatusMessage(status int) string {
	switch status {
	case 0:
		return "cannot reach the server, check the network connection"
	case http.StatusBadRequest:
		return "the submitted data is invalid"
	case http.StatusUnauthorized:
		return "your session has expired, please sign in again"
	case http.StatusForbidden:
		return "you do not have permission to perform this action"
	case http.StatusNotFound:
		return "record no longer exists"
	case http.StatusInternalServerError:
		return "server error, please try again later"
	}
	if status >= http.StatusInternalServerError {
		return "server error, please try again later"
	}
	return "the request failed"
}
