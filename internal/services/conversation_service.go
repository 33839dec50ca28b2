// Package services – ConversationService
//
// This file implements ConversationService, which answers a coaching question
// in four steps: rank the (optionally category-filtered) chunks of the
// library against the question, assemble the personalized prompt, request a
// completion, and append the question/answer pair to the transcript.
//
// Only one question can be in flight at a time. A second submission while
// the first awaits its completion is rejected with ErrBusy rather than
// queued. Caller cancellation does not abort an accepted question. A failed
// completion is not an error for the caller: the transcript receives a fixed
// apology as the assistant reply, and the failure is logged and counted.
//
// Observability: Ask and ListPage are OpenTelemetry-instrumented.
package services

import (
	"context"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-coach-backend/internal/domain"
	"github.com/tbourn/go-coach-backend/internal/llm"
	"github.com/tbourn/go-coach-backend/internal/observability"
	"github.com/tbourn/go-coach-backend/internal/prompt"
	"github.com/tbourn/go-coach-backend/internal/search"
	"github.com/tbourn/go-coach-backend/internal/state"
)

// FallbackReply is the assistant message recorded when a completion fails.
const FallbackReply = "Sorry, I encountered an error. Please try again."

// DefaultAnswerMaxTokens is the answer budget when none is configured.
const DefaultAnswerMaxTokens = 1000

// ConversationService answers questions against the document library.
type ConversationService struct {
	Docs      *state.DocumentStore
	Log       *state.ConversationLog
	Settings  *state.SettingsStore
	Snapshots *Snapshots

	LLM       llm.Completer
	Model     string
	MaxTokens int

	// Optional guards
	MaxQuestionRunes int
	// RankLimit caps how many chunks inform an answer; 0 selects search.DefaultLimit.
	RankLimit int

	// Now is the clock used for message timestamps; nil means time.Now.
	Now func() time.Time

	busy atomic.Bool
}

// Busy reports whether a question is currently awaiting its answer.
func (s *ConversationService) Busy() bool {
	return s.busy.Load()
}

// Ask answers question using the chunks of category (empty or "ALL" for the
// whole library) and returns the assistant message appended to the
// transcript. Validation errors and ErrBusy leave the transcript untouched.
// Once accepted, a question is answered and recorded even if ctx is
// cancelled.
func (s *ConversationService) Ask(ctx context.Context, question, category string) (*domain.Message, error) {
	tr := otel.Tracer("services/ConversationService")
	ctx, span := tr.Start(context.WithoutCancel(ctx), "Ask",
		trace.WithAttributes(attribute.String("category", category)),
	)
	defer span.End()

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyPrompt
	}
	if s.MaxQuestionRunes > 0 && utf8.RuneCountInString(question) > s.MaxQuestionRunes {
		return nil, ErrTooLong
	}
	filter, err := ParseCategoryFilter(category)
	if err != nil {
		return nil, err
	}

	if !s.busy.CompareAndSwap(false, true) {
		observability.AskRejected.Inc()
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	lg := zerolog.Ctx(ctx)
	asked := s.now()

	ranked := search.Rank(question, s.Docs.Chunks(filter), search.WithLimit(s.rankLimit()))
	span.SetAttributes(attribute.Int("ranked.count", len(ranked)))

	text := prompt.Assemble(question, search.Chunks(ranked), s.Settings.Get())

	user := domain.Message{Role: domain.RoleUser, Content: question, Timestamp: asked}
	var reply domain.Message

	answer, err := s.complete(ctx, text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		lg.Error().Err(err).Msg("completion failed; recording fallback reply")
		observability.Completions.WithLabelValues(observability.OutcomeError).Inc()

		reply = domain.Message{Role: domain.RoleAssistant, Content: FallbackReply, Timestamp: s.now()}
	} else {
		observability.Completions.WithLabelValues(observability.OutcomeOK).Inc()
		personalized := true
		reply = domain.Message{
			Role:                domain.RoleAssistant,
			Content:             answer,
			Timestamp:           s.now(),
			SourceDocs:          search.Filenames(ranked),
			UsedPersonalization: &personalized,
		}
	}

	s.Log.AppendPair(user, reply)
	if err := s.Snapshots.SaveMessages(ctx, s.Log.List()); err != nil {
		lg.Error().Err(err).Msg("save messages snapshot")
	}

	out := reply.Clone()
	return &out, nil
}

func (s *ConversationService) complete(ctx context.Context, text string) (string, error) {
	if s.LLM == nil {
		return "", llm.ErrNoContent
	}
	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultAnswerMaxTokens
	}
	return s.LLM.Complete(ctx, llm.Request{Model: s.Model, MaxTokens: maxTokens, Prompt: text})
}

// ListPage returns one page of the transcript in chronological order and the
// total number of messages.
func (s *ConversationService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Message, int, error) {
	_, span := otel.Tracer("services/ConversationService").Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	items, total := s.Log.Page(page, pageSize)
	return items, total, nil
}

// Stats returns the transcript length and the timestamp of its last message.
func (s *ConversationService) Stats() (int, time.Time) {
	last, ok := s.Log.Last()
	if !ok {
		return 0, time.Time{}
	}
	return s.Log.Len(), last.Timestamp
}

func (s *ConversationService) rankLimit() int {
	if s.RankLimit > 0 {
		return s.RankLimit
	}
	return search.DefaultLimit
}

func (s *ConversationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
