package analyzer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/conversation/transcript"
	"github.com/navneetha-rajan/mindmate/internal/observability"
)

// fakeModel answers JSON calls by schema name and text calls with a fixed reply.
type fakeModel struct {
	mu      sync.Mutex
	json    map[string]string
	text    string
	err     error
	block   bool
	delay   time.Duration
	schemas []string
}

func (f *fakeModel) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any, temperature float64) (string, error) {
	f.mu.Lock()
	f.schemas = append(f.schemas, schemaName)
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.json[schemaName], nil
}

func (f *fakeModel) GenerateText(ctx context.Context, system, user string, temperature float64) (string, error) {
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func journalReplies() map[string]string {
	return map[string]string{
		"MoodAnalysis":    `{"mood_score": 12, "mood_label": "", "confidence": 0.9}`,
		"ThemeAnalysis":   `{"themes": ["Work", " ", "Self-Esteem"], "primary_theme": "work", "theme_confidence": 0.8}`,
		"TriggerAnalysis": `{"emotional_triggers": ["deadline"], "stress_level": 0, "coping_mechanisms": []}`,
		"InsightAnalysis": "```json\n{\"key_insights\": [\"You care about quality\"], \"growth_areas\": [\"boundaries\"], \"positive_patterns\": [], \"suggested_focus\": \"Rest\"}\n```",
	}
}

func TestNewPicksImplementation(t *testing.T) {
	if _, ok := New(nil).(*HeuristicAnalyzer); !ok {
		t.Fatalf("New(nil): expected HeuristicAnalyzer")
	}
	if _, ok := New(&fakeModel{}).(*ModelBackedAnalyzer); !ok {
		t.Fatalf("New(model): expected ModelBackedAnalyzer")
	}
}

func TestHeuristicAnalyzeEntry(t *testing.T) {
	got := NewHeuristic().AnalyzeEntry(context.Background(), "I feel anxious about my job and my family relationship")
	if got.MoodScore != 5 || got.MoodLabel != "neutral" {
		t.Fatalf("mood: expected 5/neutral, got %v/%s", got.MoodScore, got.MoodLabel)
	}
	want := map[string]bool{"work": true, "relationships": true, "stress": true}
	if len(got.Themes) != len(want) {
		t.Fatalf("themes: expected %v, got %v", want, got.Themes)
	}
	for _, th := range got.Themes {
		if !want[th] {
			t.Fatalf("unexpected theme %q", th)
		}
	}
	if got.StressLevel != 5 || len(got.EmotionalTriggers) != 0 || got.EmotionalTriggers == nil {
		t.Fatalf("triggers/stress: unexpected %+v", got)
	}
	if len(got.KeyInsights) != 1 || got.KeyInsights[0] != FallbackInsight {
		t.Fatalf("key insights: got %v", got.KeyInsights)
	}
	if got.Source != types.AnalysisSourceHeuristic || got.SuggestedFocus != FallbackSuggestedFocus {
		t.Fatalf("source/focus: got %s/%s", got.Source, got.SuggestedFocus)
	}
}

func TestModelBackedAnalyzeEntryClampsReply(t *testing.T) {
	m := &fakeModel{json: journalReplies()}
	a := NewModelBacked(m)
	got := a.AnalyzeEntry(context.Background(), "Long day at work")

	if got.Source != types.AnalysisSourceModel {
		t.Fatalf("source: expected model, got %s", got.Source)
	}
	if got.MoodScore != 10 || got.MoodLabel != "neutral" || got.StressLevel != 1 {
		t.Fatalf("clamping: got score=%v label=%q stress=%d", got.MoodScore, got.MoodLabel, got.StressLevel)
	}
	if strings.Join(got.Themes, ",") != "work,self-esteem" {
		t.Fatalf("themes: got %v", got.Themes)
	}
	if got.SuggestedFocus != "Rest" || len(got.GrowthAreas) != 1 {
		t.Fatalf("insights: got %+v", got)
	}
	order := strings.Join(m.schemas, ",")
	if order != "MoodAnalysis,ThemeAnalysis,TriggerAnalysis,InsightAnalysis" {
		t.Fatalf("call order: got %s", order)
	}
}

func TestModelBackedFallsBack(t *testing.T) {
	content := "I am so happy and grateful today"
	heur := NewHeuristic().AnalyzeEntry(context.Background(), content)

	tests := []struct {
		name  string
		model *fakeModel
	}{
		{name: "call error", model: &fakeModel{err: errors.New("boom")}},
		{name: "malformed json", model: &fakeModel{json: map[string]string{"MoodAnalysis": "not json at all"}}},
		{name: "later stage fails", model: func() *fakeModel {
			r := journalReplies()
			delete(r, "InsightAnalysis")
			return &fakeModel{json: r}
		}()},
		{name: "timeout", model: &fakeModel{block: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			metrics := observability.New()
			a := NewModelBacked(tc.model, WithMetrics(metrics), WithTimeout(20*time.Millisecond))
			got := a.AnalyzeEntry(context.Background(), content)
			if got.Source != types.AnalysisSourceHeuristic || got.MoodScore != heur.MoodScore || got.MoodLabel != heur.MoodLabel {
				t.Fatalf("expected heuristic result %+v, got %+v", heur, got)
			}
			if n, err := testutil.GatherAndCount(metrics.Registry(), "mindmate_analyzer_fallbacks_total"); err != nil || n != 1 {
				t.Fatalf("fallback metric series: expected 1, got %d (%v)", n, err)
			}
		})
	}
}

func TestAnalyzeEntryLeavesDeadlineReserve(t *testing.T) {
	m := &fakeModel{block: true}
	a := NewModelBacked(m, WithTimeout(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	got := a.AnalyzeEntry(ctx, "a happy day")
	if got.Source != types.AnalysisSourceHeuristic {
		t.Fatalf("source: expected heuristic, got %s", got.Source)
	}
	if ctx.Err() != nil || time.Since(start) > 40*time.Millisecond {
		t.Fatalf("analysis must return before the caller's deadline (took %v)", time.Since(start))
	}
	if len(m.schemas) != 0 {
		t.Fatalf("no model call fits the budget, got %v", m.schemas)
	}
}

func TestAnalyzeEntrySharesOneBudget(t *testing.T) {
	// Each call fits the timeout alone; the four together do not.
	m := &fakeModel{json: journalReplies(), delay: 30 * time.Millisecond}
	a := NewModelBacked(m, WithTimeout(80*time.Millisecond))

	got := a.AnalyzeEntry(context.Background(), "Long day at work")
	if got.Source != types.AnalysisSourceHeuristic {
		t.Fatalf("source: expected heuristic after budget ran out, got %s", got.Source)
	}
	if len(m.schemas) == 4 {
		t.Fatalf("the last call must not start once the budget is spent")
	}
}

func TestReplyAndSummary(t *testing.T) {
	ctx := context.Background()
	history := []transcript.Turn{{Role: transcript.RoleUser, Content: "hi"}, {Role: transcript.RoleAssistant, Content: "hello"}}

	ok := NewModelBacked(&fakeModel{text: "  What feels most pressing?  "})
	reply, fallback := ok.Reply(ctx, ReplyInput{ConversationType: "socratic", History: history, Message: "I'm stressed"})
	if reply != "What feels most pressing?" || fallback {
		t.Fatalf("Reply: got %q fallback=%v", reply, fallback)
	}
	if s := ok.SummarizeSession(ctx, nil); s != "" {
		t.Fatalf("SummarizeSession(empty): expected empty, got %q", s)
	}

	bad := NewModelBacked(&fakeModel{err: errors.New("down")})
	reply, fallback = bad.Reply(ctx, ReplyInput{Message: "I'm so stressed about work"})
	if !fallback || !strings.HasPrefix(reply, "Stress can be really challenging") {
		t.Fatalf("Reply fallback: got %q fallback=%v", reply, fallback)
	}
	if s := bad.SummarizeSession(ctx, history); s != "" {
		t.Fatalf("SummarizeSession fallback: expected empty, got %q", s)
	}
	if line := bad.OpeningLine(ctx, "cbt", "work"); !strings.HasPrefix(line, "Let's focus on work. ") {
		t.Fatalf("OpeningLine fallback: got %q", line)
	}
	empty := NewModelBacked(&fakeModel{text: "   "})
	if _, fallback := empty.Reply(ctx, ReplyInput{Message: "hi"}); !fallback {
		t.Fatalf("empty reply should fall back")
	}
}

func TestNarrativesFallBackOnEmpty(t *testing.T) {
	ctx := context.Background()
	a := NewModelBacked(&fakeModel{json: map[string]string{
		"MoodInsights":  `{"insights": [], "key_changes": []}`,
		"HabitInsights": `{"insights": ["Walking lifts your mood"], "recommendations": ["Walk daily"]}`,
	}})
	if got := a.MoodNarrative(ctx, MoodFacts{}); len(got.Insights) != 1 || got.Insights[0] != FallbackMoodInsight {
		t.Fatalf("MoodNarrative: got %+v", got)
	}
	if got := a.HabitNarrative(ctx, HabitFacts{}); got.Insights[0] != "Walking lifts your mood" {
		t.Fatalf("HabitNarrative: got %+v", got)
	}
	if got := a.WeeklyNarrative(ctx, WeeklyFacts{}); got.NextWeekFocus != "General wellness" {
		t.Fatalf("WeeklyNarrative: expected fallback, got %+v", got)
	}
}

func TestPlannerCallsReturnErrors(t *testing.T) {
	ctx := context.Background()
	a := NewModelBacked(&fakeModel{err: errors.New("down")})
	if _, err := a.SelectThemes(ctx, ThemeFacts{}); err == nil {
		t.Fatalf("SelectThemes: expected error")
	}
	if _, err := a.DraftPlan(ctx, PlanFacts{}); err == nil {
		t.Fatalf("DraftPlan: expected error")
	}

	ok := NewModelBacked(&fakeModel{json: map[string]string{
		"WeeklyPlan": `{"themes":[{"theme":"Relationships","priority":9,"conversation_type":"CBT","goals":["Call a friend"],"rationale":"r"}],"overall_focus":"Connection","expected_outcomes":["Feel closer"]}`,
	}})
	draft, err := ok.DraftPlan(ctx, PlanFacts{Themes: []string{"relationships"}})
	if err != nil {
		t.Fatalf("DraftPlan: %v", err)
	}
	if len(draft.Themes) != 1 || draft.Themes[0].ConversationType != "cbt" || draft.Themes[0].Priority != 9 {
		t.Fatalf("DraftPlan: got %+v", draft.Themes)
	}

	sel, err := NewHeuristic().SelectThemes(ctx, ThemeFacts{})
	if err != nil || len(sel.Themes) != 3 {
		t.Fatalf("heuristic SelectThemes: got %+v, %v", sel, err)
	}
}

func TestFormatHistory(t *testing.T) {
	if got := FormatHistory(nil); got != "(no previous messages)" {
		t.Fatalf("empty: got %q", got)
	}
	got := FormatHistory([]transcript.Turn{{Role: transcript.RoleUser, Content: "a"}, {Role: transcript.RoleAssistant, Content: "b"}})
	if got != "User: a\nAssistant: b" {
		t.Fatalf("got %q", got)
	}
}
