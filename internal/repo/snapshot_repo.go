// Package repo implements the snapshot persistence layer, backed by GORM.
// This file provides the keyed JSON snapshot functions.
//
// Each persisted collection (documents, messages, coaching settings) lives in
// a single row of the snapshots table and is rewritten in full on every save.
//
// Error semantics:
//   - A missing row is not an error: LoadSnapshot reports found=false.
//   - A row whose payload cannot be decoded yields ErrCorruptSnapshot; the
//     caller discards the destination and falls back to a default.
//   - Other database errors are propagated unchanged.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-coach-backend/internal/domain"
)

// ErrCorruptSnapshot indicates a stored payload that is not valid JSON for
// the requested type.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// LoadSnapshot decodes the snapshot stored under key into dst.
func LoadSnapshot(ctx context.Context, db *gorm.DB, key string, dst any) (bool, error) {
	var snap domain.Snapshot
	err := db.WithContext(ctx).Where(&domain.Snapshot{Key: key}).Take(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(snap.Payload, dst); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, key, err)
	}
	return true, nil
}

// SaveSnapshot encodes v and upserts it under key.
func SaveSnapshot(ctx context.Context, db *gorm.DB, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	snap := domain.Snapshot{
		Key:       key,
		Payload:   datatypes.JSON(payload),
		UpdatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snap).Error
}

// DeleteSnapshot removes the snapshots stored under keys in one transaction.
// Missing keys are ignored.
func DeleteSnapshot(ctx context.Context, db *gorm.DB, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			if err := tx.Where(&domain.Snapshot{Key: k}).Delete(&domain.Snapshot{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
