package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/domain/codec"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: "pw",
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedJournalEntry(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, score float64, themes []string, at time.Time) *types.JournalEntry {
	tb.Helper()
	e := &types.JournalEntry{
		ID:                uuid.New(),
		UserID:            userID,
		Content:           "entry",
		MoodScore:         score,
		MoodLabel:         "neutral",
		Themes:            codec.EncodeStrings(themes),
		EmotionalTriggers: codec.EncodeStrings(nil),
		KeyInsights:       codec.EncodeStrings(nil),
		GrowthAreas:       codec.EncodeStrings(nil),
		StressLevel:       5,
		AnalysisSource:    types.AnalysisSourceHeuristic,
		CreatedAt:         at,
		UpdatedAt:         at,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed journal entry: %v", err)
	}
	return e
}

func SeedMoodEntry(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, score float64, at time.Time) *types.MoodEntry {
	tb.Helper()
	m := &types.MoodEntry{
		ID:          uuid.New(),
		UserID:      userID,
		MoodScore:   score,
		MoodLabel:   "ok",
		EnergyLevel: 5,
		StressLevel: 5,
		CreatedAt:   at,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed mood entry: %v", err)
	}
	return m
}

func SeedHabitEntry(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string, value float64, at time.Time) *types.HabitEntry {
	tb.Helper()
	h := &types.HabitEntry{
		ID:        uuid.New(),
		UserID:    userID,
		HabitName: name,
		Value:     value,
		Unit:      "count",
		CreatedAt: at,
	}
	if err := tx.WithContext(ctx).Create(h).Error; err != nil {
		tb.Fatalf("seed habit entry: %v", err)
	}
	return h
}

func SeedConversation(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, sessionID, theme string, at time.Time) *types.Conversation {
	tb.Helper()
	c := &types.Conversation{
		ID:               uuid.New(),
		UserID:           userID,
		SessionID:        sessionID,
		Message:          "hello",
		Response:         "hi",
		ConversationType: types.ConversationGeneral,
		Theme:            theme,
		CreatedAt:        at,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed conversation: %v", err)
	}
	return c
}

func PtrTime(v time.Time) *time.Time { return &v }
