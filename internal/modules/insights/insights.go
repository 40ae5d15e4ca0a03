// Package insights derives mood, habit and journal pattern reports.
package insights

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/analyzer"
	"github.com/navneetha-rajan/mindmate/internal/modules/heuristics"
)

const (
	NoMoodDataMessage     = "No mood data available for analysis"
	InsufficientMessage   = "Insufficient data for correlation analysis"
	NoJournalDataMessage  = "No journal data available for pattern analysis"
	PeriodWeek            = "week"
	PeriodMonth           = "month"
	patternTopN           = 5
	DefaultAverageMood    = 5.0
	correlationMinSamples = 2
)

// Window returns how far back a time_period reaches; unknown periods mean a week.
func Window(period string) time.Duration {
	if period == PeriodMonth {
		return 30 * 24 * time.Hour
	}
	return 7 * 24 * time.Hour
}

// NormalizePeriod maps unknown periods to week.
func NormalizePeriod(period string) string {
	if period == PeriodMonth {
		return PeriodMonth
	}
	return PeriodWeek
}

type Agent struct {
	analyzer analyzer.Analyzer
	now      func() time.Time
}

func NewAgent(a analyzer.Analyzer) *Agent {
	return &Agent{analyzer: a, now: func() time.Time { return time.Now().UTC() }}
}

type DayRef struct {
	Index int       `json:"index"`
	Date  time.Time `json:"date"`
	Score float64   `json:"mood_score"`
}

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type MoodInsights struct {
	TimePeriod     string   `json:"time_period"`
	AverageMood    float64  `json:"average_mood"`
	StdDev         float64  `json:"mood_std_dev"`
	MoodTrend      string   `json:"mood_trend"`
	MoodVolatility string   `json:"mood_volatility"`
	BestDay        *DayRef  `json:"best_day,omitempty"`
	WorstDay       *DayRef  `json:"worst_day,omitempty"`
	MoodRange      *Range   `json:"mood_range,omitempty"`
	TotalEntries   int      `json:"total_entries"`
	Insights       []string `json:"insights"`
	KeyChanges     []string `json:"key_changes"`
	Message        string   `json:"message,omitempty"`
}

// MoodInsights summarizes mood entries given in chronological order.
func (a *Agent) MoodInsights(ctx context.Context, moods []*types.MoodEntry, period string) MoodInsights {
	period = NormalizePeriod(period)
	if len(moods) == 0 {
		return MoodInsights{TimePeriod: period, Insights: []string{}, KeyChanges: []string{}, Message: NoMoodDataMessage}
	}
	scores := make([]float64, len(moods))
	points := make([]analyzer.MoodPoint, len(moods))
	for i, m := range moods {
		scores[i] = m.MoodScore
		points[i] = analyzer.MoodPoint{Date: m.CreatedAt.UTC().Format(time.RFC3339), Score: m.MoodScore}
	}
	std := heuristics.StdDev(scores)
	out := MoodInsights{
		TimePeriod:     period,
		AverageMood:    heuristics.Round2(heuristics.Mean(scores)),
		StdDev:         heuristics.Round2(std),
		MoodTrend:      heuristics.Trend(scores),
		MoodVolatility: heuristics.Volatility(std),
		TotalEntries:   len(moods),
	}
	best, worst := heuristics.ArgMax(scores), heuristics.ArgMin(scores)
	out.BestDay = &DayRef{Index: best, Date: moods[best].CreatedAt.UTC(), Score: scores[best]}
	out.WorstDay = &DayRef{Index: worst, Date: moods[worst].CreatedAt.UTC(), Score: scores[worst]}
	lo, hi := heuristics.MinMax(scores)
	out.MoodRange = &Range{Min: lo, Max: hi}

	n := a.analyzer.MoodNarrative(ctx, analyzer.MoodFacts{
		Period:     period,
		Points:     points,
		Average:    out.AverageMood,
		Trend:      out.MoodTrend,
		Volatility: out.MoodVolatility,
	})
	out.Insights, out.KeyChanges = nonNil(n.Insights), nonNil(n.KeyChanges)
	return out
}

type PatternAnalysis struct {
	RecurringThemes     []heuristics.Frequency `json:"recurring_themes"`
	EmotionalTriggers   []heuristics.Frequency `json:"emotional_triggers"`
	MostCommonTheme     string                 `json:"most_common_theme,omitempty"`
	MostCommonTrigger   string                 `json:"most_common_trigger,omitempty"`
	TotalEntries        int                    `json:"total_entries"`
	Insights            []string               `json:"insights"`
	PositivePatterns    []string               `json:"positive_patterns"`
	ChallengingPatterns []string               `json:"challenging_patterns"`
	Message             string                 `json:"message,omitempty"`
}

func (a *Agent) DetectPatterns(ctx context.Context, entries []*types.JournalEntry) PatternAnalysis {
	out := PatternAnalysis{
		RecurringThemes:     []heuristics.Frequency{},
		EmotionalTriggers:   []heuristics.Frequency{},
		Insights:            []string{},
		PositivePatterns:    []string{},
		ChallengingPatterns: []string{},
	}
	if len(entries) == 0 {
		out.Message = NoJournalDataMessage
		return out
	}
	var themes, triggers []string
	for _, e := range entries {
		themes = append(themes, e.ThemeList()...)
		triggers = append(triggers, e.TriggerList()...)
	}
	out.RecurringThemes = heuristics.RankFrequencies(themes, patternTopN)
	out.EmotionalTriggers = heuristics.RankFrequencies(triggers, patternTopN)
	out.MostCommonTheme = heuristics.Top(out.RecurringThemes)
	out.MostCommonTrigger = heuristics.Top(out.EmotionalTriggers)
	out.TotalEntries = len(entries)

	n := a.analyzer.PatternNarrative(ctx, analyzer.PatternFacts{
		Themes:   out.RecurringThemes,
		Triggers: out.EmotionalTriggers,
		Total:    out.TotalEntries,
	})
	out.Insights = nonNil(n.Insights)
	out.PositivePatterns = nonNil(n.PositivePatterns)
	out.ChallengingPatterns = nonNil(n.ChallengingPatterns)
	return out
}

type WeeklySummary struct {
	WeekSummary       analyzer.WeeklyNarrative `json:"week_summary"`
	MoodInsights      MoodInsights             `json:"mood_insights"`
	HabitCorrelations HabitCorrelations        `json:"habit_correlations"`
	PatternAnalysis   PatternAnalysis          `json:"pattern_analysis"`
	GeneratedAt       time.Time                `json:"generated_at"`
}

// WeeklySummary runs the three analyses concurrently, then writes the narrative.
// Every branch is total, so the group only fails on a programming error.
func (a *Agent) WeeklySummary(ctx context.Context, moods []*types.MoodEntry, habits []*types.HabitEntry, entries []*types.JournalEntry) WeeklySummary {
	var out WeeklySummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.MoodInsights = a.MoodInsights(gctx, moods, PeriodWeek)
		return nil
	})
	g.Go(func() error {
		out.HabitCorrelations = a.HabitCorrelations(gctx, moods, habits)
		return nil
	})
	g.Go(func() error {
		out.PatternAnalysis = a.DetectPatterns(gctx, entries)
		return nil
	})
	_ = g.Wait()

	out.WeekSummary = a.analyzer.WeeklyNarrative(ctx, analyzer.WeeklyFacts{
		AverageMood:    out.MoodInsights.AverageMood,
		Trend:          out.MoodInsights.MoodTrend,
		PositiveHabits: out.HabitCorrelations.PositiveHabits,
		NegativeHabits: out.HabitCorrelations.NegativeHabits,
		TopThemes:      items(out.PatternAnalysis.RecurringThemes),
		TopTriggers:    items(out.PatternAnalysis.EmotionalTriggers),
	})
	out.GeneratedAt = a.now()
	return out
}

func items(freqs []heuristics.Frequency) []string {
	out := make([]string, 0, len(freqs))
	for _, f := range freqs {
		out = append(out, f.Item)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
