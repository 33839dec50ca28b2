// Package services defines the business logic for the document library, the
// coaching conversation, and the coaching settings. This file centralizes
// common service-level error values so that they can be consistently
// returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"

	"github.com/tbourn/go-coach-backend/internal/domain"
)

var (
	// ErrBusy is returned when a question is submitted while a previous one
	// is still awaiting its answer.
	ErrBusy = errors.New("a question is already being answered")

	// ErrEmptyPrompt is returned when the question is blank.
	ErrEmptyPrompt = errors.New("question is empty")

	// ErrTooLong is returned when the question exceeds the configured
	// maximum length.
	ErrTooLong = errors.New("question too long")

	// ErrDocumentNotFound indicates that no document has the given filename.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrUnknownCategory is returned for category values outside the taxonomy.
	ErrUnknownCategory = domain.ErrUnknownCategory

	// ErrInvalidSettings is returned when submitted coaching settings fail
	// validation.
	ErrInvalidSettings = domain.ErrInvalidSettings
)
