package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Completion records that a user finished a workout. Rows are append-only.
type Completion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_completions_user_time,priority:1" json:"user_id"`
	WorkoutID   uuid.UUID `gorm:"type:uuid;not null;index" json:"workout_id"`
	CompletedAt time.Time `gorm:"not null;index:idx_completions_user_time,priority:2" json:"completed_at"`
	Workout     *Workout  `gorm:"foreignKey:WorkoutID" json:"workout,omitempty"`
}

func (c *Completion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
