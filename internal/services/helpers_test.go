package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-coach-backend/internal/domain"
	"github.com/tbourn/go-coach-backend/internal/llm"
	"github.com/tbourn/go-coach-backend/internal/repo"
	"github.com/tbourn/go-coach-backend/internal/state"
)

// ---------- test helpers ----------

func newSnapDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:coachsvc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// recorder is a Completer that records requests and replies from a script.
type recorder struct {
	mu    sync.Mutex
	reqs  []llm.Request
	reply func(llm.Request) (string, error)
}

func (r *recorder) Complete(_ context.Context, req llm.Request) (string, error) {
	r.mu.Lock()
	r.reqs = append(r.reqs, req)
	r.mu.Unlock()
	return r.reply(req)
}

func (r *recorder) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reqs)
}

func (r *recorder) last() llm.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reqs[len(r.reqs)-1]
}

func answering(s string) *recorder {
	return &recorder{reply: func(llm.Request) (string, error) { return s, nil }}
}

func failing(err error) *recorder {
	return &recorder{reply: func(llm.Request) (string, error) { return "", err }}
}

var errUpstream = errors.New("upstream unavailable")

// fixedCategorizer always answers with the same outcome and counts calls.
type fixedCategorizer struct {
	mu    sync.Mutex
	out   CategorizationOutcome
	calls int
}

func (f *fixedCategorizer) Categorize(context.Context, string, string) CategorizationOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.out
}

func textUpload(name, content string) Upload {
	return Upload{
		Filename:    name,
		ContentType: "text/plain",
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

// para returns a paragraph comfortably above the chunk threshold.
func para(words string) string {
	return words + " " + strings.Repeat("and some more filler text ", 3)
}

type fixture struct {
	db       *gorm.DB
	docs     *state.DocumentStore
	log      *state.ConversationLog
	settings *state.SettingsStore
	snaps    *Snapshots
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newSnapDB(t)
	return &fixture{
		db:       db,
		docs:     state.NewDocumentStore(),
		log:      state.NewConversationLog(),
		settings: state.NewSettingsStore(domain.DefaultCoachingSettings()),
		snaps:    &Snapshots{DB: db},
	}
}

func (f *fixture) library(c DocumentCategorizer) *LibraryService {
	return &LibraryService{Docs: f.docs, Conversation: f.log, Snapshots: f.snaps, Categorizer: c}
}

func (f *fixture) conversation(c llm.Completer) *ConversationService {
	return &ConversationService{
		Docs:      f.docs,
		Log:       f.log,
		Settings:  f.settings,
		Snapshots: f.snaps,
		LLM:       c,
		Model:     "test-model",
		MaxTokens: 1000,
	}
}

func (f *fixture) hasSnapshot(t *testing.T, key string) bool {
	t.Helper()
	var raw any
	found, err := repo.LoadSnapshot(context.Background(), f.db, key, &raw)
	if err != nil {
		t.Fatalf("LoadSnapshot(%s): %v", key, err)
	}
	return found
}
