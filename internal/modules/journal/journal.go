// Package journal analyzes journal entries and summarizes windows of them.
package journal

import (
	"context"
	"fmt"
	"strings"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/analyzer"
	"github.com/navneetha-rajan/mindmate/internal/modules/heuristics"
)

const (
	NoEntriesMessage = "No entries to summarize"

	summaryTopN = 5
	themesTopN  = 10
)

type Agent struct {
	analyzer analyzer.Analyzer
}

func NewAgent(a analyzer.Analyzer) *Agent {
	return &Agent{analyzer: a}
}

// Analyze returns a complete analysis for any content, model-backed or not.
func (a *Agent) Analyze(ctx context.Context, content string) analyzer.EntryAnalysis {
	out := a.analyzer.AnalyzeEntry(ctx, content)
	return normalize(out)
}

func normalize(out analyzer.EntryAnalysis) analyzer.EntryAnalysis {
	if out.MoodScore < 0 {
		out.MoodScore = 0
	}
	if out.MoodScore > 10 {
		out.MoodScore = 10
	}
	if out.StressLevel < 1 {
		out.StressLevel = 1
	}
	if out.StressLevel > 10 {
		out.StressLevel = 10
	}
	if strings.TrimSpace(out.MoodLabel) == "" {
		out.MoodLabel = heuristics.LabelNeutral
	}
	if out.Themes == nil {
		out.Themes = []string{}
	}
	if out.EmotionalTriggers == nil {
		out.EmotionalTriggers = []string{}
	}
	if out.KeyInsights == nil {
		out.KeyInsights = []string{}
	}
	if out.GrowthAreas == nil {
		out.GrowthAreas = []string{}
	}
	return out
}

type MoodRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type WeeklySummary struct {
	AverageMood  float64                `json:"average_mood"`
	MoodTrend    string                 `json:"mood_trend"`
	TotalEntries int                    `json:"total_entries"`
	TopThemes    []heuristics.Frequency `json:"most_common_themes"`
	TopTriggers  []heuristics.Frequency `json:"most_common_triggers"`
	MoodRange    MoodRange              `json:"mood_range"`
	Insights     []string               `json:"insights"`
	Message      string                 `json:"message,omitempty"`
}

// WeeklySummary aggregates entries given in chronological order.
func (a *Agent) WeeklySummary(entries []*types.JournalEntry) WeeklySummary {
	if len(entries) == 0 {
		return WeeklySummary{
			TopThemes:   []heuristics.Frequency{},
			TopTriggers: []heuristics.Frequency{},
			Insights:    []string{},
			Message:     NoEntriesMessage,
		}
	}
	scores := make([]float64, 0, len(entries))
	var themes, triggers []string
	for _, e := range entries {
		scores = append(scores, e.MoodScore)
		themes = append(themes, e.ThemeList()...)
		triggers = append(triggers, e.TriggerList()...)
	}

	avg := heuristics.Mean(scores)
	trend := heuristics.Trend(scores)
	lo, hi := heuristics.MinMax(scores)
	topThemes := heuristics.RankFrequencies(themes, summaryTopN)
	topTheme := heuristics.Top(topThemes)
	if topTheme == "" {
		topTheme = "None"
	}

	return WeeklySummary{
		AverageMood:  avg,
		MoodTrend:    trend,
		TotalEntries: len(entries),
		TopThemes:    topThemes,
		TopTriggers:  heuristics.RankFrequencies(triggers, summaryTopN),
		MoodRange:    MoodRange{Min: lo, Max: hi},
		Insights: []string{
			fmt.Sprintf("Average mood this week: %.1f/10", avg),
			fmt.Sprintf("Mood trend: %s", trend),
			fmt.Sprintf("Most discussed theme: %s", topTheme),
		},
	}
}

type ThemeSummary struct {
	RecurringThemes []heuristics.Frequency `json:"recurring_themes"`
	TotalEntries    int                    `json:"total_entries"`
	UniqueThemes    int                    `json:"unique_themes"`
}

// RecurringThemes ranks every theme across entries and keeps the top ten.
func (a *Agent) RecurringThemes(entries []*types.JournalEntry) ThemeSummary {
	var themes []string
	for _, e := range entries {
		themes = append(themes, e.ThemeList()...)
	}
	all := heuristics.RankFrequencies(themes, 0)
	top := all
	if len(top) > themesTopN {
		top = top[:themesTopN]
	}
	return ThemeSummary{
		RecurringThemes: top,
		TotalEntries:    len(entries),
		UniqueThemes:    len(all),
	}
}
