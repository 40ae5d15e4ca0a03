// Package planner builds weekly reflection plans and adjusts them as the user
// completes activities.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/analyzer"
	"github.com/navneetha-rajan/mindmate/internal/modules/heuristics"
	"github.com/navneetha-rajan/mindmate/internal/observability"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

const (
	SourceGenerated = "generated"
	SourceFallback  = "fallback"

	ActivityConversation = "conversation"
	ActivityJournal      = "journal"

	RecentInsightsTheme = "recent insights"

	journalWindow = 10
	moodWindow    = 7
	themesTopN    = 5
	minPriority   = 1
	maxPriority   = 5
)

// Taxonomy is the closed set of plan themes, stored lowercased.
var Taxonomy = []string{
	"emotional awareness",
	"relationships",
	"personal growth",
	"behavioral patterns",
	"cognitive patterns",
	"life transitions",
}

var errNoThemes = errors.New("no plan themes")

// InTaxonomy reports whether theme names a taxonomy entry, ignoring case.
func InTaxonomy(theme string) bool {
	t := normalizeTheme(theme)
	for _, known := range Taxonomy {
		if t == known {
			return true
		}
	}
	return false
}

// PatternSummary is the recent-history digest a plan is built from.
type PatternSummary struct {
	RecurringThemes []heuristics.Frequency `json:"recurring_themes"`
	AverageMood     float64                `json:"average_mood"`
	MoodTrend       string                 `json:"mood_trend"`
	EntryCount      int                    `json:"entry_count"`
}

type Plan struct {
	WeekStart        time.Time         `json:"week_start"`
	Themes           []types.PlanTheme `json:"themes"`
	OverallFocus     string            `json:"overall_focus"`
	ExpectedOutcomes []string          `json:"expected_outcomes"`
	Reasoning        string            `json:"reasoning"`
	Urgency          string            `json:"urgency"`
	Patterns         PatternSummary    `json:"patterns"`
	Source           string            `json:"source"`
}

// Goals flattens the goals of every theme in priority order.
func (p Plan) Goals() []string {
	goals := []string{}
	for _, t := range p.Themes {
		goals = append(goals, t.Goals...)
	}
	return goals
}

// Record converts the plan to its persisted form.
func (p Plan) Record() *types.WeeklyPlan {
	rec := &types.WeeklyPlan{
		WeekStart:    p.WeekStart,
		OverallFocus: p.OverallFocus,
		Status:       types.PlanActive,
		Source:       p.Source,
	}
	rec.SetThemes(p.Themes)
	rec.SetExpectedOutcomes(p.ExpectedOutcomes)
	return rec
}

// Activity is one completed piece of work counted against a plan.
type Activity struct {
	Kind        string
	Theme       string
	KeyInsights []string
}

type Option func(*Agent)

func WithLogger(log *logger.Logger) Option {
	return func(a *Agent) { a.log = log }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(a *Agent) { a.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(a *Agent) { a.now = now }
}

type Agent struct {
	analyzer analyzer.Analyzer
	log      *logger.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

func NewAgent(a analyzer.Analyzer, opts ...Option) *Agent {
	agent := &Agent{analyzer: a, now: time.Now}
	for _, opt := range opts {
		opt(agent)
	}
	return agent
}

// WeekStart is midnight UTC of the day containing t.
func WeekStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Analyze digests the most recent journal entries and moods. Both slices are
// chronological; only the trailing windows are used.
func Analyze(entries []*types.JournalEntry, moods []*types.MoodEntry) PatternSummary {
	if len(entries) > journalWindow {
		entries = entries[len(entries)-journalWindow:]
	}
	if len(moods) > moodWindow {
		moods = moods[len(moods)-moodWindow:]
	}
	var themes []string
	for _, e := range entries {
		themes = append(themes, e.ThemeList()...)
	}
	scores := make([]float64, 0, len(moods))
	for _, m := range moods {
		scores = append(scores, m.MoodScore)
	}
	avg := heuristics.ScoreNeutral
	if len(scores) > 0 {
		avg = heuristics.Round2(heuristics.Mean(scores))
	}
	return PatternSummary{
		RecurringThemes: heuristics.RankFrequencies(themes, themesTopN),
		AverageMood:     avg,
		MoodTrend:       heuristics.Trend(scores),
		EntryCount:      len(entries),
	}
}

// CreateWeeklyPlan always returns a usable plan. Any failure in theme
// selection or drafting collapses to the static wellness plan.
func (a *Agent) CreateWeeklyPlan(ctx context.Context, entries []*types.JournalEntry, moods []*types.MoodEntry) Plan {
	patterns := Analyze(entries, moods)
	weekStart := WeekStart(a.now())

	plan, err := a.generate(ctx, patterns)
	if err != nil {
		if a.log != nil {
			a.log.Warn("weekly plan generation failed, using static plan", "error", err)
		}
		a.metrics.IncFallback("planner.create")
		plan = StaticPlan()
	}
	plan.WeekStart = weekStart
	plan.Patterns = patterns
	return plan
}

func (a *Agent) generate(ctx context.Context, patterns PatternSummary) (Plan, error) {
	sel, err := a.analyzer.SelectThemes(ctx, analyzer.ThemeFacts{
		Themes:      patterns.RecurringThemes,
		AverageMood: patterns.AverageMood,
		Trend:       patterns.MoodTrend,
		EntryCount:  patterns.EntryCount,
		Taxonomy:    Taxonomy,
	})
	if err != nil {
		return Plan{}, fmt.Errorf("select themes: %w", err)
	}
	selected := filterTaxonomy(sel.Themes)
	if len(selected) == 0 {
		return Plan{}, fmt.Errorf("select themes: %w", errNoThemes)
	}

	draft, err := a.analyzer.DraftPlan(ctx, analyzer.PlanFacts{
		Themes:      selected,
		AverageMood: patterns.AverageMood,
		Trend:       patterns.MoodTrend,
	})
	if err != nil {
		return Plan{}, fmt.Errorf("draft plan: %w", err)
	}
	themes := normalizeThemes(draft.Themes)
	if len(themes) == 0 {
		return Plan{}, fmt.Errorf("draft plan: %w", errNoThemes)
	}
	outcomes := draft.ExpectedOutcomes
	if outcomes == nil {
		outcomes = []string{}
	}
	return Plan{
		Themes:           themes,
		OverallFocus:     strings.TrimSpace(draft.OverallFocus),
		ExpectedOutcomes: outcomes,
		Reasoning:        sel.Reasoning,
		Urgency:          sel.Urgency,
		Source:           SourceGenerated,
	}, nil
}

// StaticPlan is the plan used when generation fails.
func StaticPlan() Plan {
	return Plan{
		Themes: []types.PlanTheme{{
			Theme:            "general wellness",
			Priority:         1,
			ConversationType: types.ConversationGeneral,
			Goals:            []string{"Check in on overall wellbeing", "Explore current thoughts and feelings"},
			Rationale:        "Basic wellness check",
		}},
		OverallFocus:     "General wellness and reflection",
		ExpectedOutcomes: []string{"Better self-awareness", "Emotional support"},
		Source:           SourceFallback,
	}
}

// AdjustPlan drops themes the user has covered and appends a follow-up theme
// when recent journal entries produced insights. The input is not modified.
func AdjustPlan(themes []types.PlanTheme, activities []Activity) []types.PlanTheme {
	completed := map[string]bool{}
	hasInsights := false
	for _, act := range activities {
		switch act.Kind {
		case ActivityConversation:
			if t := normalizeTheme(act.Theme); t != "" {
				completed[t] = true
			}
		case ActivityJournal:
			for _, in := range act.KeyInsights {
				if strings.TrimSpace(in) != "" {
					hasInsights = true
				}
			}
		}
	}

	out := make([]types.PlanTheme, 0, len(themes)+1)
	for _, t := range themes {
		if completed[normalizeTheme(t.Theme)] {
			continue
		}
		if normalizeTheme(t.Theme) == RecentInsightsTheme {
			// Adjusting an adjusted plan keeps a single insights theme.
			hasInsights = false
		}
		out = append(out, t)
	}
	if hasInsights {
		out = append(out, types.PlanTheme{
			Theme:            RecentInsightsTheme,
			Priority:         2,
			ConversationType: types.ConversationSocratic,
			Goals:            []string{"Explore recent insights", "Deepen understanding"},
			Rationale:        "Based on recent journal insights",
		})
	}
	return out
}

func filterTaxonomy(themes []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, raw := range themes {
		t := normalizeTheme(raw)
		if !InTaxonomy(t) || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func normalizeThemes(in []types.PlanTheme) []types.PlanTheme {
	out := make([]types.PlanTheme, 0, len(in))
	for _, t := range in {
		name := normalizeTheme(t.Theme)
		if name == "" {
			continue
		}
		t.Theme = name
		if t.Priority < minPriority {
			t.Priority = minPriority
		}
		if t.Priority > maxPriority {
			t.Priority = maxPriority
		}
		t.ConversationType = strings.ToLower(strings.TrimSpace(t.ConversationType))
		if !types.ValidConversationType(t.ConversationType) {
			t.ConversationType = types.ConversationGeneral
		}
		if t.Goals == nil {
			t.Goals = []string{}
		}
		out = append(out, t)
	}
	return out
}

func normalizeTheme(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
