// internal/models/storage_entry.go
package models

import "time"

// StorageEntry is one persisted slot of a session namespace.
type StorageEntry struct {
	Namespace string    `gorm:"primaryKey;size:64"`
	Key       string    `gorm:"primaryKey;size:64"`
	Value     []byte    `gorm:"type:bytea;not null"`
	UpdatedAt time.Time `gorm:"index"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
