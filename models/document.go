// models/document.go - persisted engine records
package models

import (
	"time"
)

// ProgressDocument is a single engine record (progress or shop state)
// stored as a JSON payload keyed per user. The engines own the payload
// shape; the database only sees an opaque document.
type ProgressDocument struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Payload   []byte    `gorm:"type:jsonb" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProgressDocument) TableName() string {
	return "progress_documents"
}
