// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements response replay for unsafe requests carrying an
// Idempotency-Key header. A client that retries a question or an upload
// after a dropped connection gets the original response back instead of a
// second transcript entry or a duplicate ingestion report.
//
// Replays live in an in-process TTL cache (patrickmn/go-cache). Only 2xx
// responses are stored; errors are never replayed so a retry can succeed.
// Two concurrent requests with the same key both execute; the conversation's
// busy flag already rejects the second question.
package middleware

import (
	"bytes"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// HeaderIdempotencyKey is the request header carrying the idempotency key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotentReplay marks a response served from the replay cache.
const HeaderIdempotentReplay = "Idempotent-Replayed"

const (
	ctxKeyIdemKey = "idem.key"
	// maxReplayBytes bounds the size of a stored response body.
	maxReplayBytes = 1 << 20
)

var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// IdempotencyOptions configures Idempotency.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters; nil uses ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// replay is a stored response.
type replay struct {
	status      int
	contentType string
	body        []byte
}

// ReplayStore holds replayable responses keyed by method, path and key.
type ReplayStore struct {
	c *cache.Cache
}

// NewReplayStore returns a store whose entries expire after ttl.
func NewReplayStore(ttl time.Duration) *ReplayStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ReplayStore{c: cache.New(ttl, 2*ttl)}
}

func (s *ReplayStore) get(k string) (replay, bool) {
	v, ok := s.c.Get(k)
	if !ok {
		return replay{}, false
	}
	r, ok := v.(replay)
	return r, ok
}

func (s *ReplayStore) put(k string, r replay) {
	s.c.Set(k, r, cache.DefaultExpiration)
}

// Flush drops every stored response. Clearing all data calls it so an old
// key cannot replay a transcript that no longer exists.
func (s *ReplayStore) Flush() {
	s.c.Flush()
}

// GetIdempotencyKey returns the validated key stashed by Idempotency.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	s := c.GetString(ctxKeyIdemKey)
	return s, s != ""
}

// Idempotency validates the Idempotency-Key header on POST, PUT and DELETE
// requests and replays the stored response when the key was seen before.
//
//   - No header, or a safe method: no-op.
//   - Invalid key: 400 with the standard error envelope.
//   - Known key: the stored status and body are written with
//     Idempotent-Replayed: true and the chain is aborted.
//   - New key: the handler runs and a 2xx response is stored.
//
// Install it before the rate limiter so replays do not consume tokens.
func Idempotency(store *ReplayStore, opts IdempotencyOptions) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || !unsafeMethod(c.Request.Method) {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "bad_idempotency_key",
				"message":    "invalid Idempotency-Key",
			})
			return
		}
		c.Set(ctxKeyIdemKey, key)

		storeKey := c.Request.Method + " " + c.Request.URL.Path + " " + key
		if r, ok := store.get(storeKey); ok {
			LoggerFrom(c).Info().Str("idempotency_key", key).Msg("replaying stored response")
			c.Header(HeaderIdempotentReplay, "true")
			c.Data(r.status, r.contentType, r.body)
			c.Abort()
			return
		}

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Next()

		status := cw.Status()
		if status >= 200 && status < 300 && !cw.overflow {
			store.put(storeKey, replay{
				status:      status,
				contentType: cw.Header().Get("Content-Type"),
				body:        bytes.Clone(cw.buf.Bytes()),
			})
		}
	}
}

func unsafeMethod(m string) bool {
	switch m {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// captureWriter tees the response body into a bounded buffer.
type captureWriter struct {
	gin.ResponseWriter
	buf      bytes.Buffer
	overflow bool
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.capture(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *captureWriter) capture(b []byte) {
	if w.overflow {
		return
	}
	if w.buf.Len()+len(b) > maxReplayBytes {
		w.overflow = true
		w.buf.Reset()
		return
	}
	w.buf.Write(b)
}
