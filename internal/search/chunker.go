// Package search provides the retrieval primitives of the knowledge base:
// paragraph chunking of raw documents and keyword relevance ranking of the
// resulting chunks. It is deliberately small and deterministic:
//
//   - No logging in the library (callers decide how/what to log)
//   - Pure functions; same input always yields the same output
//   - Stable ordering for score ties
//   - Functional options for the few tunables
package search

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tbourn/go-coach-backend/internal/domain"
)

// MinChunkRunes is the noise threshold: fragments whose trimmed length is at
// or below it (headers, separators, short lines) are not retrievable.
const MinChunkRunes = 50

// ChunkDelimiter is the canonical paragraph separator. Joining chunk contents
// with it and re-chunking reproduces the same chunks.
const ChunkDelimiter = "\n\n"

// paraSplitRE matches a blank-line boundary: a newline, optional whitespace,
// and another newline.
var paraSplitRE = regexp.MustCompile(`\n\s*\n`)

// Chunk splits text into paragraph chunks for filename. Line endings are
// normalized to LF, the text is split on blank lines, each fragment is
// trimmed, and fragments of MinChunkRunes runes or fewer are discarded.
// Surviving fragments are numbered from 0 in document order.
//
// A text without qualifying paragraphs yields an empty, non-nil slice.
func Chunk(text, filename string) []domain.Chunk {
	text = normalizeNewlines(text)
	parts := paraSplitRE.Split(text, -1)

	out := make([]domain.Chunk, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) <= MinChunkRunes {
			continue
		}
		idx := len(out)
		out = append(out, domain.Chunk{
			ID:         domain.ChunkID(filename, idx),
			Filename:   filename,
			ChunkIndex: idx,
			Content:    p,
		})
	}
	return out
}

// Join concatenates chunk contents with ChunkDelimiter.
func Join(chunks []domain.Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Content
	}
	return strings.Join(parts, ChunkDelimiter)
}

// normalizeNewlines converts CRLF and lone CR line endings to LF.
func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
