// Package services – LibraryService
//
// This file implements LibraryService, which owns the document library:
// ingestion of uploaded text files (read, chunk, categorize, store, save),
// listing and filtering by category, category overrides, removal, and the
// irreversible clear-all.
//
// Ingestion is strictly sequential. A single mutex covers the whole batch so
// that each file's read → chunk → categorize → store → save completes before
// the next one starts, and two concurrent uploads never interleave.
package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-coach-backend/internal/domain"
	"github.com/tbourn/go-coach-backend/internal/observability"
	"github.com/tbourn/go-coach-backend/internal/search"
	"github.com/tbourn/go-coach-backend/internal/state"
)

// DefaultMaxUploadBytes bounds a single file when no limit is configured.
const DefaultMaxUploadBytes = 5 << 20

// DocumentCategorizer assigns a category to a document's content.
type DocumentCategorizer interface {
	Categorize(ctx context.Context, filename, content string) CategorizationOutcome
}

// Upload is one file offered for ingestion.
type Upload struct {
	Filename    string
	ContentType string
	// Size is the declared size in bytes; -1 when unknown.
	Size int64
	Open func() (io.ReadCloser, error)
}

// IngestStatus is the per-file outcome of an ingestion batch.
type IngestStatus string

const (
	IngestIngested  IngestStatus = "ingested"
	IngestDuplicate IngestStatus = "duplicate"
	IngestSkipped   IngestStatus = "skipped"
	IngestFailed    IngestStatus = "failed"
)

// IngestResult reports what happened to one uploaded file.
type IngestResult struct {
	Filename string          `json:"filename"`
	Status   IngestStatus    `json:"status"`
	Category domain.Category `json:"category,omitempty"`
	Chunks   int             `json:"chunks"`
	// Fallback is true when the category was assigned by default.
	Fallback bool   `json:"categorization_fallback,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// CategoryCount pairs a category's metadata with its document count.
type CategoryCount struct {
	domain.CategoryInfo
	Count int `json:"count"`
}

// LibraryService manages the document library.
type LibraryService struct {
	Docs         *state.DocumentStore
	Conversation *state.ConversationLog
	Snapshots    *Snapshots
	Categorizer  DocumentCategorizer

	// MaxUploadBytes skips larger files; <= 0 selects DefaultMaxUploadBytes.
	MaxUploadBytes int64

	// Now is the clock used for UploadedAt; nil means time.Now.
	Now func() time.Time

	mu sync.Mutex
}

// Ingest processes uploads in order and returns one result per upload.
// Failures are confined to the file that caused them. A cancelled ctx does
// not stop the batch: categorization and the snapshot writes still run.
func (s *LibraryService) Ingest(ctx context.Context, uploads []Upload) []IngestResult {
	ctx, span := otel.Tracer("services/LibraryService").Start(context.WithoutCancel(ctx), "Ingest",
		trace.WithAttributes(attribute.Int("upload.count", len(uploads))),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]IngestResult, 0, len(uploads))
	for _, u := range uploads {
		res := s.ingestOne(ctx, u)
		zerolog.Ctx(ctx).Info().
			Str("filename", res.Filename).
			Str("status", string(res.Status)).
			Str("category", string(res.Category)).
			Int("chunks", res.Chunks).
			Msg("document ingestion")
		out = append(out, res)
	}
	return out
}

func (s *LibraryService) ingestOne(ctx context.Context, u Upload) IngestResult {
	name := filepath.Base(strings.TrimSpace(u.Filename))
	res := IngestResult{Filename: name}

	if name == "" || name == "." || name == string(filepath.Separator) {
		res.Status, res.Reason = IngestSkipped, "missing filename"
		return res
	}
	if !AcceptedFile(name, u.ContentType) {
		res.Status, res.Reason = IngestSkipped, "unsupported file type"
		return res
	}
	limit := s.maxUpload()
	if u.Size > limit {
		res.Status, res.Reason = IngestSkipped, fmt.Sprintf("file exceeds %d bytes", limit)
		return res
	}
	if s.Docs.Has(name) {
		res.Status = IngestDuplicate
		return res
	}

	text, size, err := readUpload(u, limit)
	if err != nil {
		res.Status, res.Reason = IngestFailed, err.Error()
		return res
	}
	if size > limit {
		res.Status, res.Reason = IngestSkipped, fmt.Sprintf("file exceeds %d bytes", limit)
		return res
	}

	chunks := search.Chunk(text, name)
	outcome := CategorizationOutcome{Category: domain.FallbackCategory, Fallback: true, Reason: "no categorizer configured"}
	if s.Categorizer != nil {
		outcome = s.Categorizer.Categorize(ctx, name, text)
	}

	doc := domain.Document{
		Filename:   name,
		Size:       size,
		Chunks:     chunks,
		Category:   outcome.Category,
		UploadedAt: s.now(),
	}
	if !s.Docs.Add(doc) {
		res.Status = IngestDuplicate
		return res
	}
	observability.Documents.Set(float64(s.Docs.Len()))
	s.saveDocuments(ctx, false)

	res.Status = IngestIngested
	res.Category = doc.Category
	res.Chunks = len(chunks)
	res.Fallback = outcome.Fallback
	res.Reason = outcome.Reason
	return res
}

// List returns document summaries filtered by category. An empty filter or
// "ALL" lists every document.
func (s *LibraryService) List(category string) ([]domain.DocumentSummary, error) {
	c, err := ParseCategoryFilter(category)
	if err != nil {
		return nil, err
	}
	return s.Docs.List(c), nil
}

// Get returns the document named filename, chunks included.
func (s *LibraryService) Get(filename string) (domain.Document, error) {
	d, ok := s.Docs.Get(filename)
	if !ok {
		return domain.Document{}, ErrDocumentNotFound
	}
	return d, nil
}

// SetCategory overrides the category of a document and persists the library.
func (s *LibraryService) SetCategory(ctx context.Context, filename, category string) (domain.DocumentSummary, error) {
	c, err := domain.ParseCategory(category)
	if err != nil {
		return domain.DocumentSummary{}, ErrUnknownCategory
	}

	ctx = context.WithoutCancel(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Docs.SetCategory(filename, c) {
		return domain.DocumentSummary{}, ErrDocumentNotFound
	}
	s.saveDocuments(ctx, false)

	d, _ := s.Docs.Get(filename)
	return d.Summary(), nil
}

// Remove deletes a document. Removing the last document deletes the
// documents snapshot.
func (s *LibraryService) Remove(ctx context.Context, filename string) error {
	ctx = context.WithoutCancel(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Docs.Remove(filename) {
		return ErrDocumentNotFound
	}
	observability.Documents.Set(float64(s.Docs.Len()))
	s.saveDocuments(ctx, true)
	return nil
}

// Categories returns the taxonomy in canonical order with document counts.
func (s *LibraryService) Categories() []CategoryCount {
	counts := s.Docs.Counts()
	infos := domain.Categories()
	out := make([]CategoryCount, len(infos))
	for i, ci := range infos {
		out[i] = CategoryCount{CategoryInfo: ci, Count: counts[ci.Label]}
	}
	return out
}

// ClearAll irreversibly deletes every document and the whole transcript.
// Coaching settings are kept.
func (s *LibraryService) ClearAll(ctx context.Context) error {
	ctx, span := otel.Tracer("services/LibraryService").Start(context.WithoutCancel(ctx), "ClearAll")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Snapshots.Clear(ctx); err != nil {
		return fmt.Errorf("clear snapshots: %w", err)
	}
	s.Docs.Reset()
	if s.Conversation != nil {
		s.Conversation.Reset()
	}
	observability.Documents.Set(0)
	zerolog.Ctx(ctx).Info().Msg("all documents and messages cleared")
	return nil
}

// saveDocuments persists the library; failures are logged since the
// in-memory state remains authoritative.
func (s *LibraryService) saveDocuments(ctx context.Context, emptied bool) {
	if err := s.Snapshots.SaveDocuments(ctx, s.Docs.All(), emptied); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("save documents snapshot")
	}
}

func (s *LibraryService) maxUpload() int64 {
	if s.MaxUploadBytes > 0 {
		return s.MaxUploadBytes
	}
	return DefaultMaxUploadBytes
}

func (s *LibraryService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// AcceptedFile reports whether a file is ingestible: a .txt or .md name
// (case-insensitive) or a declared text/plain content type.
func AcceptedFile(filename, contentType string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		return true
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct == "text/plain"
}

// ParseCategoryFilter maps a listing or question filter to a category. An
// empty value or "ALL" (any case) means no filter and yields "".
func ParseCategoryFilter(s string) (domain.Category, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, domain.CategoryAll) {
		return "", nil
	}
	c, err := domain.ParseCategory(s)
	if err != nil {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// readUpload reads at most limit+1 bytes so oversize files are detected
// without reading them whole.
func readUpload(u Upload, limit int64) (string, int64, error) {
	if u.Open == nil {
		return "", 0, fmt.Errorf("no content")
	}
	rc, err := u.Open()
	if err != nil {
		return "", 0, fmt.Errorf("open: %w", err)
	}
	defer rc.Close()

	b, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return "", 0, fmt.Errorf("read: %w", err)
	}
	text := string(b)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return text, int64(len(b)), nil
}
