package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/domain/codec"
	"github.com/navneetha-rajan/mindmate/internal/modules/analyzer"
)

type stubAnalyzer struct {
	analyzer.HeuristicAnalyzer
	sel      analyzer.ThemeSelection
	selErr   error
	draft    analyzer.PlanDraft
	draftErr error
	gotFacts analyzer.PlanFacts
}

func (s *stubAnalyzer) SelectThemes(context.Context, analyzer.ThemeFacts) (analyzer.ThemeSelection, error) {
	return s.sel, s.selErr
}

func (s *stubAnalyzer) DraftPlan(_ context.Context, facts analyzer.PlanFacts) (analyzer.PlanDraft, error) {
	s.gotFacts = facts
	return s.draft, s.draftErr
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 11, 17, 45, 0, 0, time.FixedZone("PST", -8*3600))
}

func TestCreateWeeklyPlanHeuristic(t *testing.T) {
	agent := NewAgent(analyzer.NewHeuristic(), WithClock(fixedClock))
	plan := agent.CreateWeeklyPlan(context.Background(), nil, nil)

	if plan.Source != SourceGenerated {
		t.Fatalf("expected generated plan, got %q", plan.Source)
	}
	want := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	if !plan.WeekStart.Equal(want) {
		t.Fatalf("week start: expected %v, got %v", want, plan.WeekStart)
	}
	if len(plan.Themes) != 1 || plan.Themes[0].Theme != "personal growth" {
		t.Fatalf("themes: got %+v", plan.Themes)
	}
	if plan.Patterns.AverageMood != 5.0 || plan.Patterns.MoodTrend != "stable" {
		t.Fatalf("patterns: got %+v", plan.Patterns)
	}
}

func TestCreateWeeklyPlanFallsBack(t *testing.T) {
	cases := []struct {
		name string
		stub *stubAnalyzer
	}{
		{"selection error", &stubAnalyzer{selErr: errors.New("boom")}},
		{"selection outside taxonomy", &stubAnalyzer{sel: analyzer.ThemeSelection{Themes: []string{"astrology", "crypto"}}}},
		{"draft error", &stubAnalyzer{
			sel:      analyzer.ThemeSelection{Themes: []string{"Relationships"}},
			draftErr: errors.New("timeout"),
		}},
		{"draft without themes", &stubAnalyzer{
			sel:   analyzer.ThemeSelection{Themes: []string{"Relationships"}},
			draft: analyzer.PlanDraft{Themes: []types.PlanTheme{{Theme: "  "}}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan := NewAgent(tc.stub, WithClock(fixedClock)).CreateWeeklyPlan(context.Background(), nil, nil)
			if plan.Source != SourceFallback {
				t.Fatalf("expected fallback, got %q", plan.Source)
			}
			if len(plan.Themes) != 1 || plan.Themes[0].Theme != "general wellness" {
				t.Fatalf("themes: got %+v", plan.Themes)
			}
			if plan.WeekStart.IsZero() {
				t.Fatalf("fallback plan must still carry a week start")
			}
		})
	}
}

func TestCreateWeeklyPlanNormalizesDraft(t *testing.T) {
	stub := &stubAnalyzer{
		sel: analyzer.ThemeSelection{Themes: []string{" Relationships ", "relationships", "Astrology", "Cognitive Patterns"}},
		draft: analyzer.PlanDraft{
			Themes: []types.PlanTheme{
				{Theme: "Relationships", Priority: 9, ConversationType: "Socratic"},
				{Theme: "cognitive patterns", Priority: -2, ConversationType: "hypnosis", Goals: []string{"Notice automatic thoughts"}},
			},
			OverallFocus: " Connection ",
		},
	}
	plan := NewAgent(stub, WithClock(fixedClock)).CreateWeeklyPlan(context.Background(), nil, nil)

	if got := stub.gotFacts.Themes; len(got) != 2 || got[0] != "relationships" || got[1] != "cognitive patterns" {
		t.Fatalf("selected themes: got %v", got)
	}
	first, second := plan.Themes[0], plan.Themes[1]
	if first.Theme != "relationships" || first.Priority != 5 || first.ConversationType != "socratic" || first.Goals == nil {
		t.Fatalf("first theme: got %+v", first)
	}
	if second.Priority != 1 || second.ConversationType != "general" {
		t.Fatalf("second theme: got %+v", second)
	}
	if plan.OverallFocus != "Connection" || plan.ExpectedOutcomes == nil {
		t.Fatalf("plan: got %+v", plan)
	}
	if goals := plan.Goals(); len(goals) != 1 {
		t.Fatalf("goals: got %v", goals)
	}
}

func TestAnalyzeUsesTrailingWindows(t *testing.T) {
	var entries []*types.JournalEntry
	for i := 0; i < 12; i++ {
		theme := "work"
		if i < 2 {
			theme = "ancient"
		}
		entries = append(entries, &types.JournalEntry{Themes: codec.EncodeStrings([]string{theme})})
	}
	var moods []*types.MoodEntry
	for _, s := range []float64{1, 1, 4, 5, 6, 6, 7, 8, 9} {
		moods = append(moods, &types.MoodEntry{MoodScore: s})
	}

	got := Analyze(entries, moods)
	if got.EntryCount != 10 || len(got.RecurringThemes) != 1 || got.RecurringThemes[0].Item != "work" {
		t.Fatalf("themes: got %+v", got)
	}
	if got.AverageMood != 6.43 || got.MoodTrend != "improving" {
		t.Fatalf("mood: got %+v", got)
	}
}

func TestAdjustPlan(t *testing.T) {
	themes := []types.PlanTheme{
		{Theme: "A", Priority: 1},
		{Theme: "B", Priority: 2},
	}

	cases := []struct {
		name       string
		activities []Activity
		want       []string
	}{
		{"no activity", nil, []string{"A", "B"}},
		{"conversation completes theme", []Activity{{Kind: ActivityConversation, Theme: "a"}}, []string{"B"}},
		{
			"journal insight appends follow-up",
			[]Activity{
				{Kind: ActivityConversation, Theme: "A"},
				{Kind: ActivityJournal, KeyInsights: []string{"x"}},
			},
			[]string{"B", RecentInsightsTheme},
		},
		{"blank insights ignored", []Activity{{Kind: ActivityJournal, KeyInsights: []string{" "}}}, []string{"A", "B"}},
		{"journal theme does not complete", []Activity{{Kind: ActivityJournal, Theme: "B"}}, []string{"A", "B"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AdjustPlan(themes, tc.activities)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %+v", tc.want, got)
			}
			for i, name := range tc.want {
				if got[i].Theme != name {
					t.Fatalf("theme %d: expected %q, got %q", i, name, got[i].Theme)
				}
			}
		})
	}

	if len(themes) != 2 {
		t.Fatalf("input plan was modified")
	}
	got := AdjustPlan(themes, []Activity{{Kind: ActivityJournal, KeyInsights: []string{"x"}}})
	last := got[len(got)-1]
	if last.Priority != 2 || last.ConversationType != "socratic" || len(last.Goals) != 2 {
		t.Fatalf("follow-up theme: got %+v", last)
	}
}

func TestAdjustPlanRepeated(t *testing.T) {
	acts := []Activity{{Kind: ActivityJournal, KeyInsights: []string{"x"}}}
	themes := []types.PlanTheme{{Theme: "A", Priority: 1}}
	for i := 0; i < 3; i++ {
		themes = AdjustPlan(themes, acts)
	}
	if len(themes) != 2 || themes[0].Theme != "A" || themes[1].Theme != RecentInsightsTheme {
		t.Fatalf("repeated adjust: got %+v", themes)
	}
}

func TestRecord(t *testing.T) {
	plan := StaticPlan()
	plan.WeekStart = WeekStart(fixedClock())
	rec := plan.Record()
	if rec.Status != types.PlanActive || rec.Source != SourceFallback {
		t.Fatalf("record: got %+v", rec)
	}
	if len(rec.ThemeList()) != 1 || len(rec.GoalList()) != 2 || len(rec.OutcomeList()) != 2 {
		t.Fatalf("record lists: themes=%v goals=%v outcomes=%v", rec.ThemeList(), rec.GoalList(), rec.OutcomeList())
	}
}

func TestInTaxonomy(t *testing.T) {
	if !InTaxonomy(" Emotional Awareness ") || InTaxonomy("astrology") {
		t.Fatalf("InTaxonomy mismatch")
	}
}
