package models

import (
	"time"
)

// SyncCheckpoint records the outcome of the most recent remote push or pull
// for a sync identifier. One row per identifier; purely diagnostic, the
// remote row itself is the source of truth for mirrored state.
type SyncCheckpoint struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SyncID string `gorm:"type:varchar(100);not null;uniqueIndex" json:"sync_id"`

	Status    string `gorm:"type:varchar(10);not null" json:"status"`
	LastError string `gorm:"type:text" json:"last_error,omitempty"`

	LastPushAt *time.Time `gorm:"type:timestamptz" json:"last_push_at,omitempty"`
	LastPullAt *time.Time `gorm:"type:timestamptz" json:"last_pull_at,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (SyncCheckpoint) TableName() string {
	return "sync_checkpoints"
}
