package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/okian/ironrank/internal/app"
	"github.com/okian/ironrank/internal/domain/model"
	"github.com/okian/ironrank/internal/domain/plates"
	"github.com/okian/ironrank/internal/domain/progression"
	"github.com/okian/ironrank/internal/domain/repmax"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrPayloadTooLarge  = errors.New("payload too large")
)

// Error ties a failure to the handler operation that produced it.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Kind != nil && e.Err != nil:
		return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	case e.Kind != nil:
		return e.Op + ": " + e.Kind.Error()
	default:
		return e.Op
	}
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Wrap attributes err to op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WrapKind attributes err to op and tags it with kind.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// NewKind reports a failure of op that has no underlying cause.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// clientErrors are caused by the request and map to 400.
var clientErrors = []error{
	ErrBadRequest,
	model.ErrInvalidSet,
	model.ErrInvalidRange,
	model.ErrInvalidSettings,
	model.ErrUnknownExperience,
	model.ErrUnknownGroup,
	plates.ErrInvalidWeight,
	plates.ErrInvalidPlate,
	plates.ErrUnsortedPlates,
	repmax.ErrInvalidInput,
	progression.ErrInvalidVolume,
	service.ErrMissingAsOf,
	service.ErrMissingInput,
}

// classify maps err to an HTTP status and a stable error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, "method_not_allowed"
	case errors.Is(err, ErrPayloadTooLarge), errors.Is(err, service.ErrTooManySets):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "unavailable"
	}
	for _, kind := range clientErrors {
		if errors.Is(err, kind) {
			return http.StatusBadRequest, "bad_request"
		}
	}
	return http.StatusInternalServerError, "internal_error"
}
