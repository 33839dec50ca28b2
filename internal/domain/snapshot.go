package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Snapshot keys of the three independently persisted collections.
const (
	SnapshotDocuments = "documents"
	SnapshotMessages  = "messages"
	SnapshotSettings  = "coaching_settings"
)

// Snapshot is a keyed JSON blob holding one persisted collection. Each save
// rewrites the whole payload.
//
// Fields:
//   - Key: collection name (primary key).
//   - Payload: JSON encoding of the collection.
//   - UpdatedAt: time of the last write, managed by GORM.
type Snapshot struct {
	Key       string         `gorm:"type:varchar(64);primaryKey"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the database table name for Snapshot.
func (Snapshot) TableName() string { return "snapshots" }
