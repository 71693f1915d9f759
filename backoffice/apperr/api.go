package apperr

import (
	"context"
	"errors"
	"strings"

	"encore.dev/beta/errs"
)

// ToAPI converts an error from the list components into an API error.
func ToAPI(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *errs.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, context.Canceled) {
		return &errs.Error{Code: errs.Canceled, Message: "request canceled"}
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return &errs.Error{Code: errs.InvalidArgument, Message: verr.Error(), Details: FieldErrors(verr.Fields)}
	}

	msg := UserMessage(err)
	switch KindOf(err) {
	case KindBadRequest:
		return &errs.Error{Code: errs.InvalidArgument, Message: msg}
	case KindNotFound:
		return &errs.Error{Code: errs.NotFound, Message: msg}
	case KindUnauthorized:
		return &errs.Error{Code: errs.Unauthenticated, Message: msg}
	case KindForbidden:
		return &errs.Error{Code: errs.PermissionDenied, Message: msg}
	case KindTimeout:
		return &errs.Error{Code: errs.DeadlineExceeded, Message: msg}
	case KindNetwork:
		return &errs.Error{Code: errs.Unavailable, Message: msg}
	case KindConflictOrServer:
		return &errs.Error{Code: conflictCode(err), Message: msg}
	}
	return &errs.Error{Code: errs.Internal, Message: "internal error"}
}

// FieldErrors carries the failed fields of a validation error to the client.
type FieldErrors []FieldError

func (FieldErrors) ErrDetails() {}

func conflictCode(err error) errs.ErrCode {
	var terr *TransportError
	if !errors.As(err, &terr) {
		return errs.Internal
	}
	friendly, ok := Friendly(terr.Message)
	switch {
	case ok && strings.Contains(friendly, "already exists"):
		return errs.AlreadyExists
	case ok:
		return errs.FailedPrecondition
	case terr.Status == 409:
		return errs.Aborted
	}
	return errs.Unavailable
}
