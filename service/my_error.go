package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal error has occurred (storage, encoding).
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that the requested record is absent (e.g. no stored session).
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrModeRequired means that connect was called without an explicit local/cloud choice.
	ErrModeRequired = "mode_required"
	// ErrNoCandidates means that the generator produced nothing to probe for the mode.
	ErrNoCandidates = "no_candidates"
	// ErrAllUnreachable means that every probed candidate failed or the deadline elapsed.
	ErrAllUnreachable = "all_unreachable"
	// ErrDiscoveryFacilityUnavailable means that multicast discovery could not start. Recovered locally.
	ErrDiscoveryFacilityUnavailable = "discovery_facility_unavailable"
	// ErrCancelled means that the caller cancelled the run. Not a failure.
	ErrCancelled = "cancelled"
)

// MyError represents an error within the context of reeferlink services.
type MyError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrBadParameter, message, inner)
}

func NewModeRequiredError() *MyError {
	return NewMyError(ErrModeRequired, "choose local or cloud mode before connecting", nil)
}

func NewNoCandidatesError(message string) *MyError {
	return NewMyError(ErrNoCandidates, message, nil)
}

func NewAllUnreachableError(message string, inner error) *MyError {
	return NewMyError(ErrAllUnreachable, message, inner)
}

func NewDiscoveryFacilityUnavailableError(inner error) *MyError {
	return NewMyError(ErrDiscoveryFacilityUnavailable, "service discovery could not start", inner)
}

func NewCancelledError(inner error) *MyError {
	return NewMyError(ErrCancelled, "discovery cancelled", inner)
}

func (e MyError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns a pointer to a reeferlink error, or nil if it is not one.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToMyErrorCode returns the code of the error, if available.
func ToMyErrorCode(err error) string {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsMyError(err, ErrInternalServerError)
}

func IsEntityNotFoundError(err error) bool {
	return IsMyError(err, ErrEntityNotFound)
}

func IsBadParameterError(err error) bool {
	return IsMyError(err, ErrBadParameter)
}

func IsModeRequiredError(err error) bool {
	return IsMyError(err, ErrModeRequired)
}

func IsNoCandidatesError(err error) bool {
	return IsMyError(err, ErrNoCandidates)
}

func IsAllUnreachableError(err error) bool {
	return IsMyError(err, ErrAllUnreachable)
}

func IsDiscoveryFacilityUnavailableError(err error) bool {
	return IsMyError(err, ErrDiscoveryFacilityUnavailable)
}

func IsCancelledError(err error) bool {
	return IsMyError(err, ErrCancelled)
}
