package journal

import (
	"context"
	"math"
	"testing"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/domain/codec"
	"github.com/navneetha-rajan/mindmate/internal/modules/analyzer"
)

type stubAnalyzer struct {
	analyzer.HeuristicAnalyzer
	out analyzer.EntryAnalysis
}

func (s stubAnalyzer) AnalyzeEntry(context.Context, string) analyzer.EntryAnalysis { return s.out }

func entry(score float64, themes, triggers []string) *types.JournalEntry {
	return &types.JournalEntry{
		MoodScore:         score,
		Themes:            codec.EncodeStrings(themes),
		EmotionalTriggers: codec.EncodeStrings(triggers),
	}
}

func TestAnalyzeAlwaysInBounds(t *testing.T) {
	inputs := []string{"", "I am happy", "sad sad angry", "é 日本語 🙂", "work work office job"}
	agent := NewAgent(analyzer.NewHeuristic())
	for _, in := range inputs {
		got := agent.Analyze(context.Background(), in)
		if got.MoodScore < 0 || got.MoodScore > 10 || got.MoodLabel == "" {
			t.Fatalf("Analyze(%q): out of bounds %+v", in, got)
		}
		if got.StressLevel < 1 || got.StressLevel > 10 {
			t.Fatalf("Analyze(%q): stress out of bounds %d", in, got.StressLevel)
		}
	}

	wild := NewAgent(stubAnalyzer{out: analyzer.EntryAnalysis{MoodScore: -3, StressLevel: 42}})
	got := wild.Analyze(context.Background(), "x")
	if got.MoodScore != 0 || got.StressLevel != 10 || got.MoodLabel != "neutral" {
		t.Fatalf("normalize: got %+v", got)
	}
	if got.Themes == nil || got.KeyInsights == nil || got.GrowthAreas == nil || got.EmotionalTriggers == nil {
		t.Fatalf("normalize: lists must be non-nil")
	}
}

func TestWeeklySummary(t *testing.T) {
	agent := NewAgent(analyzer.NewHeuristic())

	empty := agent.WeeklySummary(nil)
	if empty.Message != NoEntriesMessage || empty.TotalEntries != 0 {
		t.Fatalf("empty: got %+v", empty)
	}

	entries := []*types.JournalEntry{
		entry(4, []string{"work", "stress"}, []string{"deadline"}),
		entry(6.5, []string{"health"}, nil),
		entry(8, []string{"stress", "work"}, []string{"deadline", "boss"}),
		entry(7.25, []string{"relationships"}, nil),
	}
	got := agent.WeeklySummary(entries)
	want := (4 + 6.5 + 8 + 7.25) / 4
	if math.Abs(got.AverageMood-want) > 1e-6 {
		t.Fatalf("average: expected %v, got %v", want, got.AverageMood)
	}
	if got.MoodTrend != "improving" || got.TotalEntries != 4 {
		t.Fatalf("trend/total: got %s/%d", got.MoodTrend, got.TotalEntries)
	}
	if got.MoodRange.Min != 4 || got.MoodRange.Max != 8 {
		t.Fatalf("range: got %+v", got.MoodRange)
	}
	if got.TopThemes[0].Item != "work" || got.TopThemes[1].Item != "stress" || got.TopThemes[0].Count != 2 {
		t.Fatalf("themes: expected work then stress, got %+v", got.TopThemes)
	}
	if got.TopTriggers[0].Item != "deadline" || got.TopTriggers[0].Count != 2 {
		t.Fatalf("triggers: got %+v", got.TopTriggers)
	}
	if got.Insights[0] != "Average mood this week: 6.4/10" || got.Insights[2] != "Most discussed theme: work" {
		t.Fatalf("insights: got %v", got.Insights)
	}

	flat := agent.WeeklySummary([]*types.JournalEntry{entry(5, nil, nil), entry(9, nil, nil), entry(5, nil, nil)})
	if flat.MoodTrend != "stable" || flat.Insights[2] != "Most discussed theme: None" {
		t.Fatalf("flat: got %s %v", flat.MoodTrend, flat.Insights)
	}
}

func TestRecurringThemesCapsAtTen(t *testing.T) {
	agent := NewAgent(analyzer.NewHeuristic())
	var entries []*types.JournalEntry
	for i := 0; i < 12; i++ {
		entries = append(entries, entry(5, []string{string(rune('a' + i)), "common"}, nil))
	}
	got := agent.RecurringThemes(entries)
	if len(got.RecurringThemes) != 10 || got.UniqueThemes != 13 || got.TotalEntries != 12 {
		t.Fatalf("got %d themes, %d unique, %d entries", len(got.RecurringThemes), got.UniqueThemes, got.TotalEntries)
	}
	if got.RecurringThemes[0].Item != "common" || got.RecurringThemes[1].Item != "a" {
		t.Fatalf("order: got %+v", got.RecurringThemes[:2])
	}
}
