package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds the onboarding answers of a user. There is at most one per user.
type Profile struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Name                  string    `gorm:"size:100" json:"name"`
	SensoryLevel          string    `gorm:"size:20" json:"sensory_level"`
	EnergyLevel           string    `gorm:"size:20" json:"energy_level"`
	Environment           string    `gorm:"size:20" json:"environment"`
	FitnessGoal           string    `gorm:"size:20" json:"fitness_goal"`
	WorkoutTime           int       `json:"workout_time"` // preferred minutes, 0 when unset
	Equipment             string    `gorm:"size:20" json:"equipment"`
	SpecialConsiderations string    `gorm:"type:text" json:"special_considerations"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
