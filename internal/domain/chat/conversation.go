package chat

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeGeneral  = "general"
	TypeSocratic = "socratic"
	TypeCBT      = "cbt"
)

// ValidType reports whether t names a supported conversation style.
func ValidType(t string) bool {
	switch t {
	case TypeGeneral, TypeSocratic, TypeCBT:
		return true
	}
	return false
}

// Conversation is one persisted turn pair within a session.
type Conversation struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	SessionID        string    `gorm:"index;not null;column:session_id" json:"session_id"`
	Message          string    `gorm:"type:text;not null;column:message" json:"message"`
	Response         string    `gorm:"type:text;not null;column:response" json:"response"`
	ConversationType string    `gorm:"not null;default:general;column:conversation_type" json:"conversation_type"`
	Theme            string    `gorm:"column:theme" json:"theme,omitempty"`
	Fallback         bool      `gorm:"not null;default:false;column:fallback" json:"fallback"`
	CreatedAt        time.Time `gorm:"not null;index" json:"created_at"`
}

func (Conversation) TableName() string { return "conversation" }

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// SessionSummary is the latest turn of a session.
type SessionSummary struct {
	SessionID        string    `json:"session_id"`
	ConversationType string    `json:"conversation_type"`
	Theme            string    `json:"theme,omitempty"`
	LastMessage      string    `json:"last_message"`
	Turns            int       `json:"turns"`
	LastActivity     time.Time `json:"last_activity"`
}
