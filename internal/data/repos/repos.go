package repos

import (
	"gorm.io/gorm"

	"github.com/navneetha-rajan/mindmate/internal/data/repos/auth"
	"github.com/navneetha-rajan/mindmate/internal/data/repos/chat"
	"github.com/navneetha-rajan/mindmate/internal/data/repos/journal"
	"github.com/navneetha-rajan/mindmate/internal/data/repos/memory"
	"github.com/navneetha-rajan/mindmate/internal/data/repos/planning"
	"github.com/navneetha-rajan/mindmate/internal/data/repos/tracking"
	"github.com/navneetha-rajan/mindmate/internal/data/repos/user"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type JournalEntryRepo = journal.JournalEntryRepo
type ConversationRepo = chat.ConversationRepo
type MoodEntryRepo = tracking.MoodEntryRepo
type HabitEntryRepo = tracking.HabitEntryRepo
type WeeklyPlanRepo = planning.WeeklyPlanRepo
type MemoryEntryRepo = memory.MemoryEntryRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewJournalEntryRepo(db *gorm.DB, baseLog *logger.Logger) JournalEntryRepo {
	return journal.NewJournalEntryRepo(db, baseLog)
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
	return chat.NewConversationRepo(db, baseLog)
}

func NewMoodEntryRepo(db *gorm.DB, baseLog *logger.Logger) MoodEntryRepo {
	return tracking.NewMoodEntryRepo(db, baseLog)
}

func NewHabitEntryRepo(db *gorm.DB, baseLog *logger.Logger) HabitEntryRepo {
	return tracking.NewHabitEntryRepo(db, baseLog)
}

func NewWeeklyPlanRepo(db *gorm.DB, baseLog *logger.Logger) WeeklyPlanRepo {
	return planning.NewWeeklyPlanRepo(db, baseLog)
}

func NewMemoryEntryRepo(db *gorm.DB, baseLog *logger.Logger) MemoryEntryRepo {
	return memory.NewMemoryEntryRepo(db, baseLog)
}
