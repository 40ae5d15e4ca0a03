package services

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/navneetha-rajan/mindmate/internal/data/repos"
	"github.com/navneetha-rajan/mindmate/internal/data/repos/query"
	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/insights"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
	"github.com/navneetha-rajan/mindmate/internal/platform/apierr"
)

const (
	defaultTrackingLimit = 30
	streakLookback       = 366 * 24 * time.Hour
)

type MoodInput struct {
	MoodScore   float64
	MoodLabel   string
	EnergyLevel int
	StressLevel int
	Notes       *string
}

type HabitInput struct {
	HabitName string
	Value     float64
	Unit      string
	Notes     *string
}

// Features toggles the optional tracking surfaces.
type Features struct {
	MoodTracking     bool
	HabitCorrelation bool
}

type InsightsService interface {
	CreateMood(ctx context.Context, in MoodInput) (*types.MoodEntry, error)
	ListMoods(ctx context.Context, f query.Filter) ([]*types.MoodEntry, error)
	MoodAnalysis(ctx context.Context, period string) (insights.MoodInsights, error)
	CreateHabit(ctx context.Context, in HabitInput) (*types.HabitEntry, error)
	ListHabits(ctx context.Context, f query.Filter) ([]*types.HabitEntry, error)
	HabitCorrelations(ctx context.Context) (insights.HabitCorrelations, error)
	Patterns(ctx context.Context) (insights.PatternAnalysis, error)
	WeeklySummary(ctx context.Context) (insights.WeeklySummary, error)
	Stats(ctx context.Context) (insights.Stats, error)
}

type insightsService struct {
	log           *logger.Logger
	moods         repos.MoodEntryRepo
	habits        repos.HabitEntryRepo
	entries       repos.JournalEntryRepo
	conversations repos.ConversationRepo
	agent         *insights.Agent
	features      Features
	now           Clock
}

func NewInsightsService(
	log *logger.Logger,
	moods repos.MoodEntryRepo,
	habits repos.HabitEntryRepo,
	entries repos.JournalEntryRepo,
	conversations repos.ConversationRepo,
	agent *insights.Agent,
	features Features,
) InsightsService {
	return &insightsService{
		log:           log.With("service", "InsightsService"),
		moods:         moods,
		habits:        habits,
		entries:       entries,
		conversations: conversations,
		agent:         agent,
		features:      features,
		now:           systemClock,
	}
}

func featureDisabled(name string) error {
	return apierr.New(http.StatusForbidden, "feature_disabled", errors.New(name+" is disabled"))
}

func validateMood(in MoodInput) (MoodInput, error) {
	in.MoodLabel = strings.TrimSpace(in.MoodLabel)
	switch {
	case math.IsNaN(in.MoodScore) || in.MoodScore < 0 || in.MoodScore > 10:
		return in, apierr.BadRequest("invalid_mood_score", "mood_score must be between 0 and 10")
	case in.MoodLabel == "":
		return in, apierr.BadRequest("invalid_request", "mood_label is required")
	case in.EnergyLevel < 1 || in.EnergyLevel > 10:
		return in, apierr.BadRequest("invalid_energy_level", "energy_level must be between 1 and 10")
	case in.StressLevel < 1 || in.StressLevel > 10:
		return in, apierr.BadRequest("invalid_stress_level", "stress_level must be between 1 and 10")
	}
	return in, nil
}

func (is *insightsService) CreateMood(ctx context.Context, in MoodInput) (*types.MoodEntry, error) {
	if !is.features.MoodTracking {
		return nil, featureDisabled("mood tracking")
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	in, err = validateMood(in)
	if err != nil {
		return nil, err
	}
	entry := &types.MoodEntry{
		UserID:      userID,
		MoodScore:   in.MoodScore,
		MoodLabel:   in.MoodLabel,
		EnergyLevel: in.EnergyLevel,
		StressLevel: in.StressLevel,
		Notes:       in.Notes,
	}
	created, err := is.moods.Create(dbctx.Context{Ctx: ctx}, entry)
	if err != nil {
		is.log.Error("Create mood entry failed", "error", err, "user_id", userID)
		return nil, apierr.Internal(err)
	}
	return created, nil
}

func (is *insightsService) ListMoods(ctx context.Context, f query.Filter) ([]*types.MoodEntry, error) {
	if !is.features.MoodTracking {
		return nil, featureDisabled("mood tracking")
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if f.Limit <= 0 {
		f.Limit = defaultTrackingLimit
	}
	out, err := is.moods.List(dbctx.Context{Ctx: ctx}, userID, f)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

func (is *insightsService) MoodAnalysis(ctx context.Context, period string) (insights.MoodInsights, error) {
	if !is.features.MoodTracking {
		return insights.MoodInsights{}, featureDisabled("mood tracking")
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return insights.MoodInsights{}, err
	}
	period = insights.NormalizePeriod(strings.ToLower(strings.TrimSpace(period)))
	moods, err := is.moods.ListSince(dbctx.Context{Ctx: ctx}, userID, is.now().Add(-insights.Window(period)))
	if err != nil {
		return insights.MoodInsights{}, apierr.Internal(err)
	}
	return is.agent.MoodInsights(ctx, moods, period), nil
}

func (is *insightsService) CreateHabit(ctx context.Context, in HabitInput) (*types.HabitEntry, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	in.HabitName = strings.TrimSpace(in.HabitName)
	if in.HabitName == "" {
		return nil, apierr.BadRequest("invalid_request", "habit_name is required")
	}
	if math.IsNaN(in.Value) || math.IsInf(in.Value, 0) {
		return nil, apierr.BadRequest("invalid_habit_value", "habit_value must be a finite number")
	}
	entry := &types.HabitEntry{
		UserID:    userID,
		HabitName: in.HabitName,
		Value:     in.Value,
		Unit:      strings.TrimSpace(in.Unit),
		Notes:     in.Notes,
	}
	created, err := is.habits.Create(dbctx.Context{Ctx: ctx}, entry)
	if err != nil {
		is.log.Error("Create habit entry failed", "error", err, "user_id", userID)
		return nil, apierr.Internal(err)
	}
	return created, nil
}

func (is *insightsService) ListHabits(ctx context.Context, f query.Filter) ([]*types.HabitEntry, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if f.Limit <= 0 {
		f.Limit = defaultTrackingLimit
	}
	out, err := is.habits.List(dbctx.Context{Ctx: ctx}, userID, f)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

func (is *insightsService) HabitCorrelations(ctx context.Context) (insights.HabitCorrelations, error) {
	if !is.features.HabitCorrelation {
		return insights.HabitCorrelations{}, featureDisabled("habit correlation")
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return insights.HabitCorrelations{}, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	since := is.now().Add(-monthWindow)
	moods, err := is.moods.ListSince(dbc, userID, since)
	if err != nil {
		return insights.HabitCorrelations{}, apierr.Internal(err)
	}
	habits, err := is.habits.ListSince(dbc, userID, since)
	if err != nil {
		return insights.HabitCorrelations{}, apierr.Internal(err)
	}
	return is.agent.HabitCorrelations(ctx, moods, habits), nil
}

func (is *insightsService) Patterns(ctx context.Context) (insights.PatternAnalysis, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return insights.PatternAnalysis{}, err
	}
	entries, err := is.entries.ListSince(dbctx.Context{Ctx: ctx}, userID, is.now().Add(-monthWindow))
	if err != nil {
		return insights.PatternAnalysis{}, apierr.Internal(err)
	}
	return is.agent.DetectPatterns(ctx, entries), nil
}

func (is *insightsService) WeeklySummary(ctx context.Context) (insights.WeeklySummary, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return insights.WeeklySummary{}, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	since := is.now().Add(-weekWindow)
	moods, err := is.moods.ListSince(dbc, userID, since)
	if err != nil {
		return insights.WeeklySummary{}, apierr.Internal(err)
	}
	habits, err := is.habits.ListSince(dbc, userID, since)
	if err != nil {
		return insights.WeeklySummary{}, apierr.Internal(err)
	}
	entries, err := is.entries.ListSince(dbc, userID, since)
	if err != nil {
		return insights.WeeklySummary{}, apierr.Internal(err)
	}
	return is.agent.WeeklySummary(ctx, moods, habits, entries), nil
}

func (is *insightsService) Stats(ctx context.Context) (insights.Stats, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return insights.Stats{}, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	now := is.now()
	var in insights.StatsInput

	if in.JournalCount, err = is.entries.Count(dbc, userID); err != nil {
		return insights.Stats{}, apierr.Internal(err)
	}
	if in.MoodCount, err = is.moods.Count(dbc, userID); err != nil {
		return insights.Stats{}, apierr.Internal(err)
	}
	if in.HabitCount, err = is.habits.Count(dbc, userID); err != nil {
		return insights.Stats{}, apierr.Internal(err)
	}
	if in.ConversationCount, err = is.conversations.Count(dbc, userID); err != nil {
		return insights.Stats{}, apierr.Internal(err)
	}
	if in.AverageMood, in.HasAverageMood, err = is.moods.AverageScore(dbc, userID); err != nil {
		return insights.Stats{}, apierr.Internal(err)
	}

	since := now.Add(-streakLookback)
	journals, err := is.entries.ListSince(dbc, userID, since)
	if err != nil {
		return insights.Stats{}, apierr.Internal(err)
	}
	moods, err := is.moods.ListSince(dbc, userID, since)
	if err != nil {
		return insights.Stats{}, apierr.Internal(err)
	}
	for _, e := range journals {
		in.ActivityDays = append(in.ActivityDays, e.CreatedAt)
	}
	for _, m := range moods {
		in.ActivityDays = append(in.ActivityDays, m.CreatedAt)
	}

	if recent, err := is.entries.ListRecent(dbc, userID, 1); err != nil {
		return insights.Stats{}, apierr.Internal(err)
	} else if len(recent) > 0 {
		at := recent[len(recent)-1].CreatedAt
		in.LastJournal = &at
	}
	if recent, err := is.moods.ListRecent(dbc, userID, 1); err != nil {
		return insights.Stats{}, apierr.Internal(err)
	} else if len(recent) > 0 {
		at := recent[len(recent)-1].CreatedAt
		in.LastMood = &at
	}

	return insights.BuildStats(in, now), nil
}
