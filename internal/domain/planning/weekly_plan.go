package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/navneetha-rajan/mindmate/internal/domain/codec"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusCompleted || s == StatusCancelled
}

// PlanTheme is one focus area of a weekly plan.
type PlanTheme struct {
	Theme            string   `json:"theme"`
	Priority         int      `json:"priority"`
	ConversationType string   `json:"conversation_type"`
	Goals            []string `json:"goals"`
	Rationale        string   `json:"rationale"`
}

type WeeklyPlan struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	WeekStart        time.Time      `gorm:"not null;index;column:week_start" json:"week_start"`
	Themes           datatypes.JSON `gorm:"column:themes" json:"themes"`
	Goals            datatypes.JSON `gorm:"column:goals" json:"goals"`
	OverallFocus     string         `gorm:"column:overall_focus" json:"overall_focus"`
	ExpectedOutcomes datatypes.JSON `gorm:"column:expected_outcomes" json:"expected_outcomes"`
	Status           string         `gorm:"not null;default:active;column:status" json:"status"`
	Source           string         `gorm:"column:source" json:"source"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (WeeklyPlan) TableName() string { return "weekly_plan" }

func (p *WeeklyPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *WeeklyPlan) ThemeList() []PlanTheme { return codec.Decode[PlanTheme](p.Themes) }

// SetThemes stores the themes and recomputes the flattened goal list.
func (p *WeeklyPlan) SetThemes(themes []PlanTheme) {
	p.Themes = codec.Encode(themes)
	var goals []string
	for _, t := range themes {
		goals = append(goals, t.Goals...)
	}
	p.Goals = codec.EncodeStrings(goals)
}

func (p *WeeklyPlan) SetExpectedOutcomes(outcomes []string) {
	p.ExpectedOutcomes = codec.EncodeStrings(outcomes)
}

func (p *WeeklyPlan) GoalList() []string { return codec.DecodeStrings(p.Goals) }

func (p *WeeklyPlan) OutcomeList() []string { return codec.DecodeStrings(p.ExpectedOutcomes) }
