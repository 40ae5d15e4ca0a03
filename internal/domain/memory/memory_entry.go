package memory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TypeEmotional  = "emotional"
	TypeCognitive  = "cognitive"
	TypeBehavioral = "behavioral"
)

func ValidType(t string) bool {
	return t == TypeEmotional || t == TypeCognitive || t == TypeBehavioral
}

// MemoryEntry is a durable note distilled from journals and conversations.
type MemoryEntry struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	MemoryType string         `gorm:"index;not null;column:memory_type" json:"memory_type"`
	Content    string         `gorm:"type:text;not null;column:content" json:"content"`
	Embedding  datatypes.JSON `gorm:"column:embedding" json:"-"`
	SourceID   string         `gorm:"column:source_id" json:"source_id,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
}

func (MemoryEntry) TableName() string { return "memory_entry" }

func (m *MemoryEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
