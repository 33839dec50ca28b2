package httpapi

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-coach-backend/internal/config"
	"github.com/tbourn/go-coach-backend/internal/domain"
	"github.com/tbourn/go-coach-backend/internal/http/middleware"
	"github.com/tbourn/go-coach-backend/internal/llm"
	"github.com/tbourn/go-coach-backend/internal/services"
	"github.com/tbourn/go-coach-backend/internal/state"
)

// --- test wiring: in-memory state, no snapshot DB ---

type fixedCategory domain.Category

func (f fixedCategory) Categorize(context.Context, string, string) services.CategorizationOutcome {
	return services.CategorizationOutcome{Category: domain.Category(f)}
}

func newDeps(completer llm.Completer) Deps {
	docs := state.NewDocumentStore()
	log := state.NewConversationLog()
	settings := state.NewSettingsStore(domain.DefaultCoachingSettings())
	return Deps{
		Library: &services.LibraryService{Docs: docs, Conversation: log, Categorizer: fixedCategory(domain.CategoryLearning)},
		Conversation: &services.ConversationService{
			Docs: docs, Log: log, Settings: settings, LLM: completer, Model: "m", MaxQuestionRunes: 500,
		},
		Settings: &services.SettingsService{Settings: settings},
		Replays:  middleware.NewReplayStore(time.Hour),
	}
}

func baseConfig() config.Config {
	return config.Config{
		APIBasePath: "/api/v1",
		RateRPS:     100,
		RateBurst:   10,
		CORS:        config.CORSConfig{AllowedOrigins: nil}, // triggers AllowAllOrigins branch
		Security:    config.SecurityConfig{EnableHSTS: false, HSTSMaxAge: 0},
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
	}
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newDeps(nil), baseConfig())

	// /health works
	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}
	// no-store is scoped to the API
	if got := w.Header().Get("Cache-Control"); got == "no-store" {
		t.Fatalf("/health must not be no-store")
	}

	// /metrics is wired
	w = serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || len(w.Body.Bytes()) == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute → 404 with envelope
	w = serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"code":"not_found"`) {
		t.Fatalf("GET /nope expected 404 envelope, got %d %s", w.Code, w.Body.String())
	}

	// NoMethod → 405 (POST /health)
	w = serve(r, httptest.NewRequest(http.MethodPost, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}

	// Swagger is off by default
	w = serve(r, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("swagger should be disabled, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := baseConfig()
	cfg.APIBasePath = "/api/v2"
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	RegisterRoutes(r, newDeps(nil), cfg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	w := serve(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}

	// API is mounted under the configured base path
	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v2/categories", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v2/categories = %d", w.Code)
	}
}

func TestRegisterRoutes_SwaggerEnabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := baseConfig()
	cfg.SwaggerEnabled = true
	RegisterRoutes(r, newDeps(nil), cfg)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/documents/{filename}") {
		t.Fatalf("swagger doc not served: %d", w.Code)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB"))) // 12 bytes
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// "/" and "" should mount at root
	root1 := groupWithPrefix(r, "/")
	root1.GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	root2 := groupWithPrefix(r, "")
	root2.GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })

	// non-root prefix
	api := groupWithPrefix(r, "/api")
	api.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		rec := serve(r, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, rec.Code, rec.Body.String())
		}
	}
}

// Smoke test that a request traverses otel + logging + ratelimit + security headers pipeline.
func TestPipeline_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := baseConfig()
	cfg.Security = config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: time.Hour} // enabled (but only set on https)
	RegisterRoutes(r, newDeps(nil), cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w := serve(r, req)

	if w.Code != http.StatusOK {
		t.Fatalf("pipeline GET /settings = %d", w.Code)
	}
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("API responses must be no-store, got %q", got)
	}
	if got := w.Header().Get("Strict-Transport-Security"); !strings.Contains(got, "max-age=3600") {
		t.Fatalf("expected HSTS on https, got %q", got)
	}
}

func TestRoutes_UploadAskReplayAndClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var calls atomic.Int32
	deps := newDeps(llm.CompleterFunc(func(context.Context, llm.Request) (string, error) {
		calls.Add(1)
		return "Read one chapter a day.", nil
	}))
	RegisterRoutes(r, deps, baseConfig())

	// Upload one document.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("files", "reading.md")
	_, _ = fw.Write([]byte("I want to read twenty books this year and keep notes on each of them."))
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if w := serve(r, req); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ingested":1`) {
		t.Fatalf("upload: %d %s", w.Code, w.Body.String())
	}

	ask := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question":"how many books should I read?"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.HeaderIdempotencyKey, "ask-1")
		return serve(r, req)
	}

	first := ask()
	if first.Code != http.StatusOK || !strings.Contains(first.Body.String(), `"sources":["reading.md"]`) {
		t.Fatalf("ask: %d %s", first.Code, first.Body.String())
	}
	second := ask()
	if second.Header().Get(middleware.HeaderIdempotentReplay) != "true" || second.Body.String() != first.Body.String() {
		t.Fatalf("retry with the same key must replay the first response")
	}
	if calls.Load() != 1 {
		t.Fatalf("replay must not call the provider again, calls=%d", calls.Load())
	}

	// Clear-all drops replays along with the data.
	if w := serve(r, httptest.NewRequest(http.MethodDelete, "/api/v1/data?confirm=true", nil)); w.Code != http.StatusNoContent {
		t.Fatalf("clear: %d %s", w.Code, w.Body.String())
	}
	if third := ask(); third.Header().Get(middleware.HeaderIdempotentReplay) != "" {
		t.Fatalf("replay cache must be flushed on clear")
	}
	if calls.Load() != 2 {
		t.Fatalf("expected a fresh completion after clear, calls=%d", calls.Load())
	}
}

func TestRoutes_JSONBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newDeps(nil), baseConfig())

	big := `{"question":"` + strings.Repeat("a", jsonBodyLimit) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	if w := serve(r, req); w.Code != http.StatusBadRequest {
		t.Fatalf("oversized JSON body expected 400, got %d", w.Code)
	}
}
