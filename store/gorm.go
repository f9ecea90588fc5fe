package store

import (
	"errors"
	"lend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists key-value records through the shared GORM connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a GORM connection as a KeyValueStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(key string) ([]byte, error) {
	var record models.KVRecord
	err := s.db.Where("key = ?", key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return []byte(record.Value), nil
}

func (s *GormStore) Set(key string, value []byte) error {
	record := models.KVRecord{
		Key:   key,
		Value: datatypes.JSON(value),
	}
	// Upsert so a resend or re-save replaces the previous value in one call
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
}

func (s *GormStore) Delete(key string) error {
	// Hard delete. A soft-deleted row would shadow the key forever: the
	// upsert in Set never clears deleted_at, so Get would keep reporting
	// the key as missing even after a fresh Set.
	return s.db.Unscoped().Where("key = ?", key).Delete(&models.KVRecord{}).Error
}
