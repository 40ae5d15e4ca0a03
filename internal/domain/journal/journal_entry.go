package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/navneetha-rajan/mindmate/internal/domain/codec"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SourceModel     = "model"
	SourceHeuristic = "heuristic"
)

type JournalEntry struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	Content           string         `gorm:"type:text;not null;column:content" json:"content"`
	MoodScore         float64        `gorm:"column:mood_score" json:"mood_score"`
	MoodLabel         string         `gorm:"column:mood_label" json:"mood_label"`
	Themes            datatypes.JSON `gorm:"column:themes" json:"themes"`
	EmotionalTriggers datatypes.JSON `gorm:"column:emotional_triggers" json:"emotional_triggers"`
	StressLevel       int            `gorm:"column:stress_level" json:"stress_level"`
	KeyInsights       datatypes.JSON `gorm:"column:key_insights" json:"key_insights"`
	GrowthAreas       datatypes.JSON `gorm:"column:growth_areas" json:"growth_areas"`
	SuggestedFocus    string         `gorm:"column:suggested_focus" json:"suggested_focus"`
	AnalysisSource    string         `gorm:"column:analysis_source" json:"analysis_source"`
	CreatedAt         time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (JournalEntry) TableName() string { return "journal_entry" }

func (e *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *JournalEntry) ThemeList() []string { return codec.DecodeStrings(e.Themes) }
func (e *JournalEntry) TriggerList() []string { return codec.DecodeStrings(e.EmotionalTriggers) }
func (e *JournalEntry) InsightList() []string { return codec.DecodeStrings(e.KeyInsights) }
func (e *JournalEntry) GrowthAreaList() []string { return codec.DecodeStrings(e.GrowthAreas) }
