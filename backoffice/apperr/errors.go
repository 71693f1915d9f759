// Package apperr holds the error taxonomy shared by the list screens: local
// validation failures and transport failures talking to the upstream API.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNetwork
	KindTimeout
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflictOrServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflictOrServer:
		return "conflict_or_server"
	}
	return "unknown"
}

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is raised before any remote call is made.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, rule, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Message: message}}}
}

// TransportError is a failed call to the upstream API. Status is 0 when no
// response was received.
type TransportError struct {
	Op       string
	Resource string
	Status   int
	Timeout  bool
	// Message is the best-effort human readable text extracted from the response.
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Op, e.Resource)
	switch {
	case e.Timeout:
		b.WriteString(": timed out")
	case e.Status > 0:
		fmt.Fprintf(&b, ": status %d", e.Status)
	default:
		b.WriteString(": network failure")
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil && e.Status == 0 {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Kind() Kind {
	switch {
	case e.Timeout:
		return KindTimeout
	case e.Status == 0:
		return KindNetwork
	case e.Status == http.StatusNotFound:
		return KindNotFound
	case e.Status == http.StatusUnauthorized:
		return KindUnauthorized
	case e.Status == http.StatusForbidden:
		return KindForbidden
	case e.Status == http.StatusConflict, e.Status >= http.StatusInternalServerError:
		return KindConflictOrServer
	case e.Status >= http.StatusBadRequest:
		if _, ok := Friendly(e.Message); ok {
			return KindConflictOrServer
		}
		return KindBadRequest
	}
	return KindUnknown
}

// KindOf classifies any error returned by the list components.
func KindOf(err error) Kind {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}
	var terr *TransportError
	if errors.As(err, &terr) {
		return terr.Kind()
	}
	return KindUnknown
}

// UserMessage is the text shown to an operator for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}

	var terr *TransportError
	if !errors.As(err, &terr) {
		return "unexpected error, please try again"
	}

	switch terr.Kind() {
	case KindNotFound:
		return "record no longer exists"
	case KindTimeout:
		return "the server took too long to respond, please try again"
	case KindNetwork:
		return StatusMessage(0)
	}
	if friendly, ok := Friendly(terr.Message); ok {
		return friendly
	}
	if terr.Message != "" {
		return terr.Message
	}
	return StatusMessage(terr.Status)
}
