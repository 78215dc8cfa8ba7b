// Package common defines shared constants, sentinel errors and small helpers
// used across StudyMate packages. Callers should use errors.Is to match the
// error values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors.
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotFound      = errors.New("email not found")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// Password reset errors.
	ErrCodeMismatch     = errors.New("verification code mismatch")
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordMismatch = errors.New("passwords do not match")

	// Generation errors.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrGenerationFailed    = errors.New("generation failed")
	ErrNoFile              = errors.New("no file selected")
	ErrNoInput             = errors.New("no input")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
)
