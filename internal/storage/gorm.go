package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/florist-backend/internal/models"
)

// GormStore persists slots as rows of the storage_entries table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(key string) ([]byte, error) {
	namespace, name := splitKey(key)

	var entry models.StorageEntry
	err := s.db.Where("namespace = ? AND key = ?", namespace, name).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return entry.Value, nil
}

func (s *GormStore) Set(key string, value []byte) error {
	namespace, name := splitKey(key)

	entry := models.StorageEntry{
		Namespace: namespace,
		Key:       name,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Remove(key string) error {
	namespace, name := splitKey(key)

	err := s.db.Where("namespace = ? AND key = ?", namespace, name).Delete(&models.StorageEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
