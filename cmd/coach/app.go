package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-coach-backend/internal/config"
	"github.com/tbourn/go-coach-backend/internal/llm"
	"github.com/tbourn/go-coach-backend/internal/repo"
	"github.com/tbourn/go-coach-backend/internal/services"
	"github.com/tbourn/go-coach-backend/internal/state"
)

// newCompleter builds the completion client; tests replace it.
var newCompleter = func(cfg config.LLMConfig) (llm.Completer, error) {
	return llm.New(llm.Config{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
	})
}

// app owns the state stores and the services built on them. Every command
// works on the same snapshot database, so a CLI ingest is visible to a
// later serve.
type app struct {
	db *gorm.DB

	docs     *state.DocumentStore
	log      *state.ConversationLog
	settings *state.SettingsStore

	library      *services.LibraryService
	conversation *services.ConversationService
	coaching     *services.SettingsService
}

// newApp opens the snapshot database, restores the stores and wires the
// services.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	defaults, err := state.LoadSettingsDefaults(cfg.DefaultsPath)
	if err != nil {
		// Built-in defaults are still usable.
		log.Warn().Err(err).Str("path", cfg.DefaultsPath).Msg("ignoring settings defaults file")
	}

	a := &app{
		db:       db,
		docs:     state.NewDocumentStore(),
		log:      state.NewConversationLog(),
		settings: state.NewSettingsStore(defaults),
	}

	snaps := &services.Snapshots{DB: db}
	if err := snaps.Restore(ctx, a.docs, a.log, a.settings); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("restore snapshots: %w", err)
	}

	completer, err := newCompleter(cfg.LLM)
	if err != nil {
		closeDB(db)
		return nil, err
	}
	if cfg.LLM.APIKey == "" {
		log.Warn().Str("provider", cfg.LLM.Provider).Msg("no API key configured; categorization and answers will fall back")
	}

	a.library = &services.LibraryService{
		Docs:           a.docs,
		Conversation:   a.log,
		Snapshots:      snaps,
		Categorizer:    services.NewCategorizer(completer, cfg.LLM.Model, cfg.LLM.CategorizeMaxTokens, cfg.CategoryCacheTTL),
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	a.conversation = &services.ConversationService{
		Docs:             a.docs,
		Log:              a.log,
		Settings:         a.settings,
		Snapshots:        snaps,
		LLM:              completer,
		Model:            cfg.LLM.Model,
		MaxTokens:        cfg.LLM.AnswerMaxTokens,
		MaxQuestionRunes: cfg.MaxQuestionRunes,
	}
	a.coaching = &services.SettingsService{Settings: a.settings, Snapshots: snaps}

	log.Debug().
		Int("documents", a.docs.Len()).
		Int("messages", a.log.Len()).
		Msg("state restored")
	return a, nil
}

// Close releases the database.
func (a *app) Close() {
	if a != nil {
		closeDB(a.db)
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
