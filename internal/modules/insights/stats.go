package insights

import (
	"time"

	"github.com/navneetha-rajan/mindmate/internal/modules/heuristics"
)

type StatsInput struct {
	JournalCount      int64
	MoodCount         int64
	HabitCount        int64
	ConversationCount int64
	AverageMood       float64
	HasAverageMood    bool
	LastJournal       *time.Time
	LastMood          *time.Time
	// ActivityDays holds timestamps of journal and mood entries, any order.
	ActivityDays []time.Time
}

type Stats struct {
	TotalJournalEntries int64      `json:"total_journal_entries"`
	TotalMoodEntries    int64      `json:"total_mood_entries"`
	TotalHabitEntries   int64      `json:"total_habit_entries"`
	TotalConversations  int64      `json:"total_conversations"`
	AverageMood         float64    `json:"average_mood"`
	LastJournalDate     *time.Time `json:"last_journal_date"`
	LastMoodDate        *time.Time `json:"last_mood_date"`
	StreakDays          int        `json:"streak_days"`
}

func BuildStats(in StatsInput, now time.Time) Stats {
	avg := DefaultAverageMood
	if in.HasAverageMood {
		avg = in.AverageMood
	}
	return Stats{
		TotalJournalEntries: in.JournalCount,
		TotalMoodEntries:    in.MoodCount,
		TotalHabitEntries:   in.HabitCount,
		TotalConversations:  in.ConversationCount,
		AverageMood:         heuristics.Round2(avg),
		LastJournalDate:     in.LastJournal,
		LastMoodDate:        in.LastMood,
		StreakDays:          Streak(in.ActivityDays, now),
	}
}

// Streak counts consecutive UTC days with activity, ending today or yesterday.
func Streak(activity []time.Time, now time.Time) int {
	days := make(map[string]struct{}, len(activity))
	for _, t := range activity {
		days[t.UTC().Format(dayLayout)] = struct{}{}
	}
	day := now.UTC().Truncate(24 * time.Hour)
	if _, ok := days[day.Format(dayLayout)]; !ok {
		day = day.AddDate(0, 0, -1)
		if _, ok := days[day.Format(dayLayout)]; !ok {
			return 0
		}
	}
	streak := 0
	for {
		if _, ok := days[day.Format(dayLayout)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}
