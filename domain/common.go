package domain

import (
	"errors"
	"fmt"
)

const (
	RoleAdmin = "admin"

	DateLayout = "2006-01-02"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MesaageUserNotAllowed       = "user not allowed"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")

	ErrValidation = errors.New("validation failed")
)

// Error kinds reported to API callers.
const (
	KindValidation        = "validation"
	KindEmptyCart         = "empty_cart"
	KindBlobWrite         = "blob_write"
	KindPersistence       = "persistence"
	KindNotFound          = "not_found"
	KindInvalidTransition = "invalid_transition"
	KindUnauthorized      = "unauthorized"
	KindInternal          = "internal"
)

// ValidationError names the offending field. It matches ErrValidation under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ErrorKind classifies err into one of the Kind constants.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return KindEmptyCart
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrParseUUID):
		return KindValidation
	case errors.Is(err, ErrBlobWrite):
		return KindBlobWrite
	case errors.Is(err, ErrPersistence):
		return KindPersistence
	case errors.Is(err, ErrMenuItemNotFound),
		errors.Is(err, ErrOrderNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidStatusTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenNotFound),
		errors.Is(err, ErrUserNotAllowed):
		return KindUnauthorized
	}
	return KindInternal
}
