package domain

import (
	"github.com/navneetha-rajan/mindmate/internal/domain/auth"
	"github.com/navneetha-rajan/mindmate/internal/domain/chat"
	"github.com/navneetha-rajan/mindmate/internal/domain/journal"
	"github.com/navneetha-rajan/mindmate/internal/domain/memory"
	"github.com/navneetha-rajan/mindmate/internal/domain/planning"
	"github.com/navneetha-rajan/mindmate/internal/domain/tracking"
	"github.com/navneetha-rajan/mindmate/internal/domain/user"
)

type (
	User      = user.User
	UserToken = auth.UserToken

	JournalEntry   = journal.JournalEntry
	Conversation   = chat.Conversation
	SessionSummary = chat.SessionSummary
	MoodEntry      = tracking.MoodEntry
	HabitEntry     = tracking.HabitEntry
	WeeklyPlan     = planning.WeeklyPlan
	PlanTheme      = planning.PlanTheme
	MemoryEntry    = memory.MemoryEntry
)

const (
	AnalysisSourceModel     = journal.SourceModel
	AnalysisSourceHeuristic = journal.SourceHeuristic

	ConversationGeneral  = chat.TypeGeneral
	ConversationSocratic = chat.TypeSocratic
	ConversationCBT      = chat.TypeCBT

	PlanActive    = planning.StatusActive
	PlanCompleted = planning.StatusCompleted
	PlanCancelled = planning.StatusCancelled

	MemoryEmotional  = memory.TypeEmotional
	MemoryCognitive  = memory.TypeCognitive
	MemoryBehavioral = memory.TypeBehavioral
)

var (
	ValidConversationType = chat.ValidType
	ValidPlanStatus       = planning.ValidStatus
	ValidMemoryType       = memory.ValidType
)

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&User{},
		&UserToken{},
		&JournalEntry{},
		&Conversation{},
		&MoodEntry{},
		&HabitEntry{},
		&WeeklyPlan{},
		&MemoryEntry{},
	}
}
