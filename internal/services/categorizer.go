// Package services – Categorizer
//
// This file implements the Categorizer, which asks the completion service to
// assign exactly one taxonomy label to a newly uploaded document. Every
// failure mode (transport error, empty answer, unknown label, panic inside
// the client) degrades to domain.FallbackCategory; the caller only sees a
// typed outcome, never an error.
//
// Successful answers are memoized in an in-process go-cache keyed by a hash
// of filename and content preview, so re-ingesting the same file after a
// clear-all does not pay for a second call.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-coach-backend/internal/domain"
	"github.com/tbourn/go-coach-backend/internal/llm"
	"github.com/tbourn/go-coach-backend/internal/observability"
)

// PreviewRunes is how much of a document is shown to the classifier.
const PreviewRunes = 500

// CategorizationOutcome is the typed result of a classification attempt.
// Fallback is true when Category was assigned by default rather than chosen
// by the completion service; Reason then says why.
type CategorizationOutcome struct {
	Category domain.Category
	Fallback bool
	Reason   string
}

// Categorizer classifies documents through an llm.Completer.
type Categorizer struct {
	LLM       llm.Completer
	Model     string
	MaxTokens int

	// Cache is optional; nil disables memoization.
	Cache *cache.Cache
}

// NewCategorizer builds a Categorizer. A positive ttl enables the result
// cache with that expiration.
func NewCategorizer(c llm.Completer, model string, maxTokens int, ttl time.Duration) *Categorizer {
	cat := &Categorizer{LLM: c, Model: model, MaxTokens: maxTokens}
	if ttl > 0 {
		cat.Cache = cache.New(ttl, 2*ttl)
	}
	return cat
}

// Categorize returns the category for a document. It performs at most one
// completion call and never retries.
func (c *Categorizer) Categorize(ctx context.Context, filename, content string) (out CategorizationOutcome) {
	ctx, span := otel.Tracer("services/Categorizer").Start(ctx, "Categorize",
		trace.WithAttributes(attribute.String("document.filename", filename)),
	)
	defer span.End()

	lg := zerolog.Ctx(ctx).With().Str("filename", filename).Logger()

	defer func() {
		if rec := recover(); rec != nil {
			out = fallback(fmt.Sprintf("panic: %v", rec))
		}
		if out.Fallback {
			lg.Warn().Str("reason", out.Reason).Msg("categorization fell back to default")
			observability.Categorizations.WithLabelValues(observability.OutcomeFallback).Inc()
		}
		span.SetAttributes(
			attribute.String("document.category", string(out.Category)),
			attribute.Bool("categorization.fallback", out.Fallback),
		)
	}()

	preview := Preview(content)
	key := cacheKey(filename, preview)
	if c.Cache != nil {
		if v, ok := c.Cache.Get(key); ok {
			observability.Categorizations.WithLabelValues(observability.OutcomeCached).Inc()
			return CategorizationOutcome{Category: v.(domain.Category)}
		}
	}

	if c.LLM == nil {
		return fallback("no completion client configured")
	}

	answer, err := c.LLM.Complete(ctx, llm.Request{
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
		Prompt:    CategorizationPrompt(filename, preview),
	})
	if err != nil {
		return fallback(err.Error())
	}

	cat, err := domain.ParseCategory(answer)
	if err != nil {
		return fallback(fmt.Sprintf("unrecognized label %q", truncateRunes(strings.TrimSpace(answer), 40)))
	}

	if c.Cache != nil {
		c.Cache.Set(key, cat, cache.DefaultExpiration)
	}
	observability.Categorizations.WithLabelValues(observability.OutcomeOK).Inc()
	return CategorizationOutcome{Category: cat}
}

// CategorizationPrompt renders the classification instruction for a
// document, listing every label with its description.
func CategorizationPrompt(filename, preview string) string {
	var b strings.Builder
	b.WriteString("Analyze this document and categorize it according to the P.A.R.A. method + Wheel of Life areas.\n\n")
	fmt.Fprintf(&b, "Document: \"%s\"\n", filename)
	fmt.Fprintf(&b, "Content preview: \"%s...\"\n\n", preview)
	b.WriteString("Categories to choose from:\n")
	for _, ci := range domain.Categories() {
		fmt.Fprintf(&b, "- %s: %s\n", ci.Label, ci.Description)
	}
	b.WriteString("\nRespond with just the category name (e.g., \"CAREER\" or \"LEARNING\").")
	return b.String()
}

// Preview returns the first PreviewRunes runes of content.
func Preview(content string) string {
	return truncateRunes(content, PreviewRunes)
}

func fallback(reason string) CategorizationOutcome {
	return CategorizationOutcome{Category: domain.FallbackCategory, Fallback: true, Reason: reason}
}

func cacheKey(filename, preview string) string {
	h := sha256.New()
	h.Write([]byte(filename))
	h.Write([]byte{0})
	h.Write([]byte(preview))
	return hex.EncodeToString(h.Sum(nil))
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
