package store

import (
	"errors"
	"fmt"
	"time"

	"divinetemple/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentStore persists engine records as JSONB rows in Postgres.
type DocumentStore struct {
	db *gorm.DB
}

func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) Load(key string) ([]byte, error) {
	var doc models.ProgressDocument
	err := s.db.First(&doc, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading document %s: %w", key, err)
	}
	return doc.Payload, nil
}

func (s *DocumentStore) Save(key string, data []byte) error {
	doc := models.ProgressDocument{
		Key:       key,
		Payload:   data,
		UpdatedAt: time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("saving document %s: %w", key, err)
	}
	return nil
}
