package tracking

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MoodEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	MoodScore   float64   `gorm:"not null;column:mood_score" json:"mood_score"`
	MoodLabel   string    `gorm:"column:mood_label" json:"mood_label"`
	EnergyLevel int       `gorm:"column:energy_level" json:"energy_level"`
	StressLevel int       `gorm:"column:stress_level" json:"stress_level"`
	Notes       *string   `gorm:"type:text;column:notes" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}

func (MoodEntry) TableName() string { return "mood_entry" }

func (m *MoodEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
