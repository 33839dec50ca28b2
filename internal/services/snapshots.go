// Package services – Snapshots
//
// This file owns the persistence policy for the three state collections.
// Every collection is stored as one JSON snapshot row (see package repo):
//
//   - Settings are written on every change and once at startup.
//   - Documents and messages are written only when non-empty, so a fresh
//     process never creates empty rows.
//   - When a user action empties a collection, its row is deleted explicitly,
//     otherwise the stale snapshot would resurrect on the next start.
//   - Clear-all deletes both the documents and messages rows in a single
//     transaction.
//
// A nil DB disables persistence entirely; the in-memory stores keep working.
package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-coach-backend/internal/domain"
	"github.com/tbourn/go-coach-backend/internal/observability"
	"github.com/tbourn/go-coach-backend/internal/repo"
	"github.com/tbourn/go-coach-backend/internal/state"
)

// Snapshots loads and saves the state stores.
type Snapshots struct {
	DB *gorm.DB
}

// Restore loads every collection into its store. Missing snapshots leave the
// store at its default; corrupt ones are logged and ignored. Documents with
// a category outside the taxonomy are moved to the fallback category. The settings
// snapshot is written back afterwards so it always exists.
func (p *Snapshots) Restore(ctx context.Context, docs *state.DocumentStore, log *state.ConversationLog, settings *state.SettingsStore) error {
	if p == nil || p.DB == nil {
		return nil
	}
	lg := zerolog.Ctx(ctx)

	var ds []domain.Document
	if ok, err := p.load(ctx, domain.SnapshotDocuments, &ds); err != nil {
		return err
	} else if ok {
		for i := range ds {
			if !ds[i].Category.Valid() {
				lg.Warn().
					Str("filename", ds[i].Filename).
					Str("category", string(ds[i].Category)).
					Msg("stored document has an unknown category; using fallback")
				ds[i].Category = domain.FallbackCategory
			}
		}
		docs.Load(ds)
	}
	observability.Documents.Set(float64(docs.Len()))

	var ms []domain.Message
	if ok, err := p.load(ctx, domain.SnapshotMessages, &ms); err != nil {
		return err
	} else if ok {
		log.Load(ms)
	}

	var cs domain.CoachingSettings
	if ok, err := p.load(ctx, domain.SnapshotSettings, &cs); err != nil {
		return err
	} else if ok {
		if err := settings.Set(cs); err != nil {
			lg.Warn().Err(err).Msg("stored coaching settings are invalid; using defaults")
		}
	}

	lg.Info().
		Int("documents", docs.Len()).
		Int("messages", log.Len()).
		Msg("state restored")
	return p.SaveSettings(ctx, settings.Get())
}

// load wraps repo.LoadSnapshot, downgrading corruption to a warning.
func (p *Snapshots) load(ctx context.Context, key string, dst any) (bool, error) {
	ok, err := repo.LoadSnapshot(ctx, p.DB, key, dst)
	if errors.Is(err, repo.ErrCorruptSnapshot) {
		zerolog.Ctx(ctx).Warn().Err(err).Str("snapshot", key).Msg("ignoring corrupt snapshot")
		return false, nil
	}
	return ok, err
}

// SaveDocuments persists docs, or deletes the snapshot when emptied is true
// and docs is empty.
func (p *Snapshots) SaveDocuments(ctx context.Context, docs []domain.Document, emptied bool) error {
	return p.saveCollection(ctx, domain.SnapshotDocuments, len(docs), docs, emptied)
}

// SaveMessages persists the transcript when it is non-empty.
func (p *Snapshots) SaveMessages(ctx context.Context, msgs []domain.Message) error {
	return p.saveCollection(ctx, domain.SnapshotMessages, len(msgs), msgs, false)
}

// SaveSettings persists s unconditionally.
func (p *Snapshots) SaveSettings(ctx context.Context, s domain.CoachingSettings) error {
	if p == nil || p.DB == nil {
		return nil
	}
	return repo.SaveSnapshot(ctx, p.DB, domain.SnapshotSettings, s)
}

// Clear deletes the documents and messages snapshots.
func (p *Snapshots) Clear(ctx context.Context) error {
	if p == nil || p.DB == nil {
		return nil
	}
	return repo.DeleteSnapshot(ctx, p.DB, domain.SnapshotDocuments, domain.SnapshotMessages)
}

func (p *Snapshots) saveCollection(ctx context.Context, key string, n int, v any, emptied bool) error {
	if p == nil || p.DB == nil {
		return nil
	}
	if n == 0 {
		if emptied {
			return repo.DeleteSnapshot(ctx, p.DB, key)
		}
		return nil
	}
	return repo.SaveSnapshot(ctx, p.DB, key, v)
}
