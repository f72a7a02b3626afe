// Package common defines shared constants and sentinel errors used across
// the DocuQuery client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Store/repository-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")

	// Chat errors. A second send on a document while an exchange is still
	// in flight is rejected with ErrExchangePending.
	ErrExchangePending = errors.New("an exchange is already pending")

	// Upload validation errors.
	ErrNotPDF       = errors.New("file is not a PDF")
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")

	// Cloud sync errors.
	ErrSyncDisabled = errors.New("cloud sync is not configured")
)
