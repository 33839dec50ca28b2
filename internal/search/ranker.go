package search

import (
	"sort"
	"strings"

	"github.com/tbourn/go-coach-backend/internal/domain"
)

// DefaultLimit is the maximum number of chunks Rank returns.
const DefaultLimit = 3

// Result is a ranked chunk with its relevance score: the number of query
// words found as substrings of the chunk content.
type Result struct {
	domain.Chunk
	Score int `json:"relevance_score"`
}

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	limit int
}

func defaultConfig() config {
	return config{limit: DefaultLimit}
}

// WithLimit caps the number of results. Non-positive values are ignored.
func WithLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.limit = n
		}
	}
}

// ----------------------------------------------------------------------------
// Ranking

// Rank scores candidates against query and returns the best matches.
//
// The query is lowercased and split on whitespace; every occurrence counts,
// so a repeated word adds to the score repeatedly. A chunk scores one point
// per query word contained anywhere in its lowercased content (substring
// containment: "work" matches "homework"). Zero-score chunks are dropped, the
// rest are sorted by descending score with ties kept in candidate order, and
// the list is truncated to the limit.
//
// Callers pre-filter candidates (e.g. by category).
func Rank(query string, candidates []domain.Chunk, opts ...Option) []Result {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	words := Tokenize(query)
	if len(words) == 0 || len(candidates) == 0 {
		return nil
	}

	buf := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		if s := score(words, c.Content); s > 0 {
			buf = append(buf, Result{Chunk: c, Score: s})
		}
	}
	if len(buf) == 0 {
		return nil
	}

	sort.SliceStable(buf, func(a, b int) bool {
		return buf[a].Score > buf[b].Score
	})

	if len(buf) > cfg.limit {
		buf = buf[:cfg.limit]
	}
	return buf
}

// Tokenize lowercases q and splits it into whitespace-delimited words.
// No stemming or stop-word removal is applied.
func Tokenize(q string) []string {
	return strings.Fields(strings.ToLower(q))
}

// Chunks returns the chunks of rs in ranking order.
func Chunks(rs []Result) []domain.Chunk {
	out := make([]domain.Chunk, len(rs))
	for i, r := range rs {
		out[i] = r.Chunk
	}
	return out
}

// Filenames returns the filenames of rs in ranking order, duplicates kept.
func Filenames(rs []Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Filename
	}
	return out
}

func score(words []string, content string) int {
	lower := strings.ToLower(content)
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}
