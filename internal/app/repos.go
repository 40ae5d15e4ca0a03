package app

import (
	"gorm.io/gorm"

	"github.com/navneetha-rajan/mindmate/internal/data/repos"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

type Repos struct {
	Users          repos.UserRepo
	UserTokens     repos.UserTokenRepo
	JournalEntries repos.JournalEntryRepo
	Conversations  repos.ConversationRepo
	MoodEntries    repos.MoodEntryRepo
	HabitEntries   repos.HabitEntryRepo
	WeeklyPlans    repos.WeeklyPlanRepo
	Memories       repos.MemoryEntryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Users:          repos.NewUserRepo(db, log),
		UserTokens:     repos.NewUserTokenRepo(db, log),
		JournalEntries: repos.NewJournalEntryRepo(db, log),
		Conversations:  repos.NewConversationRepo(db, log),
		MoodEntries:    repos.NewMoodEntryRepo(db, log),
		HabitEntries:   repos.NewHabitEntryRepo(db, log),
		WeeklyPlans:    repos.NewWeeklyPlanRepo(db, log),
		Memories:       repos.NewMemoryEntryRepo(db, log),
	}
}
