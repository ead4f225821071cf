package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Workout is a catalog entry. Entries are never edited once created.
type Workout struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id" yaml:"id"`
	Title        string                      `gorm:"size:200;not null;index" json:"title" yaml:"title"`
	Description  string                      `gorm:"type:text" json:"description" yaml:"description"`
	Tags         datatypes.JSONSlice[string] `json:"tags" yaml:"tags"`
	Duration     int                         `gorm:"not null" json:"duration" yaml:"duration"`
	SensoryLevel string                      `gorm:"size:20" json:"sensory_level" yaml:"sensory_level"`
	Equipment    string                      `gorm:"size:20" json:"equipment" yaml:"equipment"`
	CreatedAt    time.Time                   `gorm:"index" json:"created_at" yaml:"-"`
}

func (w *Workout) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
