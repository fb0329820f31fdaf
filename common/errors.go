package common

import (
	"errors"
	"fmt"
)

// ErrorType classifies every failure the explorer can surface to a user.
type ErrorType string

const (
	// InvalidInput is a malformed or out-of-tolerance user input. It is
	// detected locally, before any network call.
	InvalidInput ErrorType = "Invalid Input"
	// NotFound means the node answered but the entity does not exist.
	NotFound ErrorType = "Not Found"
	// Transport covers network failures, timeouts and unexpected server
	// statuses.
	Transport ErrorType = "Transport Error"
	// NoLedgerData means the ledger call returned nothing usable.
	NoLedgerData ErrorType = "No Ledger Data"
	// NoMaxVersion means the ledger version was missing, zero or unparsable.
	NoMaxVersion ErrorType = "No Max Version"
	// Superseded is reported to a caller whose lookup was replaced by a
	// newer one before it settled.
	Superseded ErrorType = "Superseded"
)

var (
	ErrInvalidAddress = &ResponseError{Type: InvalidInput}
	ErrNotFound       = &ResponseError{Type: NotFound}
	ErrTransport      = &ResponseError{Type: Transport}
	ErrNoLedgerData   = &ResponseError{Type: NoLedgerData, Message: "No ledger info"}
	ErrNoMaxVersion   = &ResponseError{Type: NoMaxVersion, Message: "No maxVersion"}
	ErrSuperseded     = &ResponseError{Type: Superseded, Message: "lookup superseded by a newer one"}
)

// ResponseError is the single error value a page shows once its fetches
// settle. errors.Is matches on Type, so
//
//	errors.Is(err, common.ErrNotFound)
//
// holds for any not-found error regardless of its message.
type ResponseError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	// Status is the HTTP status of the node response, zero when the request
	// never got an answer.
	Status int   `json:"status,omitempty"`
	Cause  error `json:"-"`
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}

func (e *ResponseError) Is(target error) bool {
	t, ok := target.(*ResponseError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func NewError(t ErrorType, format string, args ...any) *ResponseError {
	return &ResponseError{Type: t, Message: fmt.Sprintf(format, args...)}
}

// WrapTransport turns any lower level failure into a Transport error.
func WrapTransport(cause error, format string, args ...any) *ResponseError {
	return &ResponseError{
		Type:    Transport,
		Message: fmt.Sprintf("%s: %s", fmt.Sprintf(format, args...), cause),
		Cause:   cause,
	}
}

// TypeOf returns the ErrorType of err, or Transport for errors that did not
// originate from this package.
func TypeOf(err error) ErrorType {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Type
	}
	return Transport
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
