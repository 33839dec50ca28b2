// Package handlers wires HTTP endpoints to the coaching services.
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses (including
// conditional responses on the transcript).
package handlers

import (
	"context"
	"time"

	"github.com/tbourn/go-coach-backend/internal/domain"
	"github.com/tbourn/go-coach-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// LibraryService manages the document library.
type LibraryService interface {
	Ingest(ctx context.Context, uploads []services.Upload) []services.IngestResult
	List(category string) ([]domain.DocumentSummary, error)
	Get(filename string) (domain.Document, error)
	SetCategory(ctx context.Context, filename, category string) (domain.DocumentSummary, error)
	Remove(ctx context.Context, filename string) error
	Categories() []services.CategoryCount
	ClearAll(ctx context.Context) error
}

// ConversationService answers questions and exposes the transcript.
type ConversationService interface {
	Ask(ctx context.Context, question, category string) (*domain.Message, error)
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Message, int, error)
	// Stats returns the transcript length and its last timestamp (ETag input).
	Stats() (int, time.Time)
}

// SettingsService reads and changes the coaching settings.
type SettingsService interface {
	Get() domain.CoachingSettings
	Update(ctx context.Context, v domain.CoachingSettings) (domain.CoachingSettings, error)
	Reset(ctx context.Context) (domain.CoachingSettings, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints.
type Handlers struct {
	lib      LibraryService
	conv     ConversationService
	settings SettingsService

	// OnClear runs after a successful clear-all, e.g. to drop replay caches.
	OnClear func()
}

// New constructs a Handlers bound to the given services.
func New(lib LibraryService, conv ConversationService, settings SettingsService) *Handlers {
	return &Handlers{lib: lib, conv: conv, settings: settings}
}
