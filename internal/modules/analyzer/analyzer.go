// Package analyzer is the boundary between the agents and the language model.
// HeuristicAnalyzer answers every call deterministically; ModelBackedAnalyzer
// asks the model first and falls back to the heuristic on any failure.
package analyzer

import (
	"context"
	"strings"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/conversation/transcript"
	"github.com/navneetha-rajan/mindmate/internal/modules/heuristics"
)

type Analyzer interface {
	AnalyzeEntry(ctx context.Context, content string) EntryAnalysis
	OpeningLine(ctx context.Context, conversationType, theme string) string
	// Reply answers the latest message; fallback reports a canned reply.
	Reply(ctx context.Context, in ReplyInput) (reply string, fallback bool)
	// SummarizeSession returns "" when no summary is available.
	SummarizeSession(ctx context.Context, turns []transcript.Turn) string
	MoodNarrative(ctx context.Context, facts MoodFacts) MoodNarrative
	HabitNarrative(ctx context.Context, facts HabitFacts) HabitNarrative
	PatternNarrative(ctx context.Context, facts PatternFacts) PatternNarrative
	WeeklyNarrative(ctx context.Context, facts WeeklyFacts) WeeklyNarrative
	SelectThemes(ctx context.Context, facts ThemeFacts) (ThemeSelection, error)
	DraftPlan(ctx context.Context, facts PlanFacts) (PlanDraft, error)
}

type EntryAnalysis struct {
	MoodScore         float64  `json:"mood_score"`
	MoodLabel         string   `json:"mood_label"`
	Themes            []string `json:"themes"`
	EmotionalTriggers []string `json:"emotional_triggers"`
	StressLevel       int      `json:"stress_level"`
	KeyInsights       []string `json:"key_insights"`
	GrowthAreas       []string `json:"growth_areas"`
	SuggestedFocus    string   `json:"suggested_focus"`
	Source            string   `json:"analysis_source"`
}

type ReplyInput struct {
	ConversationType string
	Theme            string
	History          []transcript.Turn
	Message          string
}

type MoodPoint struct {
	Date  string
	Score float64
}

type MoodFacts struct {
	Period     string
	Points     []MoodPoint
	Average    float64
	Trend      string
	Volatility string
}

type HabitSignal struct {
	Habit       string
	Correlation float64
	Impact      string
	Aligned     bool
}

type HabitFacts struct {
	Signals []HabitSignal
}

type PatternFacts struct {
	Themes   []heuristics.Frequency
	Triggers []heuristics.Frequency
	Total    int
}

type WeeklyFacts struct {
	AverageMood    float64
	Trend          string
	PositiveHabits []string
	NegativeHabits []string
	TopThemes      []string
	TopTriggers    []string
}

type ThemeFacts struct {
	Themes      []heuristics.Frequency
	AverageMood float64
	Trend       string
	EntryCount  int
	Taxonomy    []string
}

type PlanFacts struct {
	Themes      []string
	AverageMood float64
	Trend       string
}

type MoodNarrative struct {
	Insights   []string `json:"insights"`
	KeyChanges []string `json:"key_changes"`
}

type HabitNarrative struct {
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

type PatternNarrative struct {
	Insights            []string `json:"insights"`
	PositivePatterns    []string `json:"positive_patterns"`
	ChallengingPatterns []string `json:"challenging_patterns"`
}

type WeeklyNarrative struct {
	OverallMood     string   `json:"overall_mood"`
	KeyAchievements []string `json:"key_achievements"`
	AreasOfGrowth   []string `json:"areas_of_growth"`
	Recommendations []string `json:"recommendations"`
	NextWeekFocus   string   `json:"next_week_focus"`
	Encouragement   string   `json:"encouragement"`
}

type ThemeSelection struct {
	Themes    []string `json:"selected_themes"`
	Reasoning string   `json:"reasoning"`
	Urgency   string   `json:"urgency"`
}

type PlanDraft struct {
	Themes           []types.PlanTheme
	OverallFocus     string
	ExpectedOutcomes []string
}

// New returns the model-backed analyzer when model is non-nil, otherwise the heuristic one.
func New(model Model, opts ...Option) Analyzer {
	if model == nil {
		return NewHeuristic()
	}
	return NewModelBacked(model, opts...)
}

// cleanList trims, drops blanks and caps the list; the result is never nil.
func cleanList(items []string, max int) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		out = append(out, it)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
