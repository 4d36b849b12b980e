// Package apperror defines the error taxonomy shared by the portal
// services. Every failure in the core is recoverable: validation failures
// and lookup misses are reported to the caller at the point of submission
// and never propagate past the component that detected them.
package apperror

import (
	"errors"
	"fmt"
)

// Code classifies an application error.
type Code int

const (
	// CodeValidation marks a rejected submission: a missing required
	// field, a code mismatch, an out-of-range index. State and store are
	// untouched; resubmission recovers.
	CodeValidation Code = iota + 1000
	// CodeNotFound marks an expected lookup miss, such as an unknown
	// phone number or a slot id that is no longer bookable.
	CodeNotFound
	// CodeThrottled marks a resend attempt arriving faster than the
	// configured limit allows.
	CodeThrottled
	// CodeInternal marks everything else.
	CodeInternal
)

// AppError carries a code alongside the message so callers can branch on
// the failure class without string matching.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NotFound(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Throttled(message string) *AppError {
	return &AppError{Code: CodeThrottled, Message: message}
}

func Internal(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "internal error", Err: err}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsNotFound reports whether err is a lookup miss.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsThrottled reports whether err is a resend-rate rejection.
func IsThrottled(err error) bool {
	return hasCode(err, CodeThrottled)
}

func hasCode(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
