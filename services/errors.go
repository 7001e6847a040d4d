// services/errors.go
package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the verification services. Controllers map
// these onto HTTP status codes.
var (
	ErrNotFound             = errors.New("record not found")
	ErrRateLimited          = errors.New("too many verification codes requested")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired verification code")
	ErrConsentRequired      = errors.New("terms and privacy policy must be accepted")
	ErrCaptchaRequired      = errors.New("captcha verification is required")
	ErrInvalidStatus        = errors.New("invalid verification status")
	ErrInvalidPhone         = errors.New("invalid phone number format")
	ErrDeliveryFailed       = errors.New("failed to deliver message")
	ErrUploadFailed         = errors.New("failed to upload image")
)

// ConflictError reports a duplicate email or phone. When both collide,
// email is reported.
type ConflictError struct {
	Field string // "email" or "phone"
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already in use", e.Field)
}

// MissingFieldsError lists the required signup fields that were absent.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// AsConflict unwraps err into a ConflictError if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
