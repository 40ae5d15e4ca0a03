package tracking

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HabitEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	HabitName string    `gorm:"index;not null;column:habit_name" json:"habit_name"`
	Value     float64   `gorm:"not null;column:value" json:"value"`
	Unit      string    `gorm:"column:unit" json:"unit"`
	Notes     *string   `gorm:"type:text;column:notes" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (HabitEntry) TableName() string { return "habit_entry" }

func (h *HabitEntry) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
