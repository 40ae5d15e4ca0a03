package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/conversation/transcript"
	"github.com/navneetha-rajan/mindmate/internal/modules/heuristics"
	"github.com/navneetha-rajan/mindmate/internal/modules/prompts"
	"github.com/navneetha-rajan/mindmate/internal/observability"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
	"github.com/navneetha-rajan/mindmate/internal/platform/openai"
)

// Model is the language model boundary. Replies are raw text; JSON replies are
// decoded by the analyzer.
type Model interface {
	GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any, temperature float64) (string, error)
	GenerateText(ctx context.Context, system, user string, temperature float64) (string, error)
}

const (
	DefaultTimeout = 20 * time.Second

	// DeadlineReserve is the part of a caller's deadline never spent on the
	// model, so the fallback result can still be stored and returned.
	DeadlineReserve = 2 * time.Second
)

var errEmptyReply = errors.New("empty model reply")

type Option func(*ModelBackedAnalyzer)

func WithLogger(log *logger.Logger) Option {
	return func(a *ModelBackedAnalyzer) {
		if log != nil {
			a.log = log.With("component", "ModelBackedAnalyzer")
		}
	}
}

func WithMetrics(m *observability.Metrics) Option {
	return func(a *ModelBackedAnalyzer) { a.metrics = m }
}

// WithTimeout bounds the model work of one operation, however many calls it
// makes; non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(a *ModelBackedAnalyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

func WithCatalog(c *prompts.Catalog) Option {
	return func(a *ModelBackedAnalyzer) {
		if c != nil {
			a.catalog = c
		}
	}
}

type ModelBackedAnalyzer struct {
	model    Model
	fallback *HeuristicAnalyzer
	catalog  *prompts.Catalog
	log      *logger.Logger
	metrics  *observability.Metrics
	timeout  time.Duration
}

func NewModelBacked(model Model, opts ...Option) *ModelBackedAnalyzer {
	a := &ModelBackedAnalyzer{
		model:    model,
		fallback: NewHeuristic(),
		log:      logger.Nop(),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.catalog == nil {
		a.catalog = prompts.MustLoad()
	}
	return a
}

// reply shapes; they double as the json_schema sent to the model.
type (
	moodReply struct {
		MoodScore  float64 `json:"mood_score"`
		MoodLabel  string  `json:"mood_label"`
		Confidence float64 `json:"confidence"`
	}
	themesReply struct {
		Themes          []string `json:"themes"`
		PrimaryTheme    string   `json:"primary_theme"`
		ThemeConfidence float64  `json:"theme_confidence"`
	}
	triggersReply struct {
		EmotionalTriggers []string `json:"emotional_triggers"`
		StressLevel       int      `json:"stress_level"`
		CopingMechanisms  []string `json:"coping_mechanisms"`
	}
	insightsReply struct {
		KeyInsights      []string `json:"key_insights"`
		GrowthAreas      []string `json:"growth_areas"`
		PositivePatterns []string `json:"positive_patterns"`
		SuggestedFocus   string   `json:"suggested_focus"`
	}
	planThemeReply struct {
		Theme            string   `json:"theme"`
		Priority         int      `json:"priority"`
		ConversationType string   `json:"conversation_type"`
		Goals            []string `json:"goals"`
		Rationale        string   `json:"rationale"`
	}
	planReply struct {
		Themes           []planThemeReply `json:"themes"`
		OverallFocus     string           `json:"overall_focus"`
		ExpectedOutcomes []string         `json:"expected_outcomes"`
	}
)

var (
	moodSchema      = openai.GenerateSchema[moodReply]()
	themesSchema    = openai.GenerateSchema[themesReply]()
	triggersSchema  = openai.GenerateSchema[triggersReply]()
	insightsSchema  = openai.GenerateSchema[insightsReply]()
	moodNarrSchema  = openai.GenerateSchema[MoodNarrative]()
	habitNarrSchema = openai.GenerateSchema[HabitNarrative]()
	patternSchema   = openai.GenerateSchema[PatternNarrative]()
	weeklySchema    = openai.GenerateSchema[WeeklyNarrative]()
	selectionSchema = openai.GenerateSchema[ThemeSelection]()
	planSchema      = openai.GenerateSchema[planReply]()
)

func (a *ModelBackedAnalyzer) render(name string, vars map[string]any) (prompts.Rendered, error) {
	tpl := a.catalog.Get(name)
	if tpl == nil {
		return prompts.Rendered{}, fmt.Errorf("unknown prompt %q", name)
	}
	return tpl.Render(vars)
}

func (a *ModelBackedAnalyzer) callJSON(ctx context.Context, op, tplName, schemaName string, schema map[string]any, vars map[string]any, out any) error {
	r, err := a.render(tplName, vars)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	raw, err := a.model.GenerateJSON(ctx, r.System, r.User, schemaName, schema, r.Temperature)
	if err == nil {
		err = openai.DecodeModelJSON(raw, out)
	}
	a.observe(op, err, start)
	return err
}

func (a *ModelBackedAnalyzer) callText(ctx context.Context, op, tplName string, vars map[string]any) (string, error) {
	r, err := a.render(tplName, vars)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start := time.Now()
	text, err := a.model.GenerateText(ctx, r.System, r.User, r.Temperature)
	text = strings.TrimSpace(text)
	if err == nil && text == "" {
		err = errEmptyReply
	}
	a.observe(op, err, start)
	return text, err
}

// withBudget bounds one operation by the analyzer timeout and by the caller's
// deadline minus DeadlineReserve. An exhausted budget yields an expired context.
func (a *ModelBackedAnalyzer) withBudget(ctx context.Context) (context.Context, context.CancelFunc) {
	d := a.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl) - DeadlineReserve; left < d {
			d = left
		}
	}
	return context.WithTimeout(ctx, d)
}

func (a *ModelBackedAnalyzer) observe(op string, err error, start time.Time) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	a.metrics.ObserveLLMCall(op, outcome, time.Since(start))
}

func (a *ModelBackedAnalyzer) fellBack(op string, err error) {
	a.metrics.IncFallback(op)
	a.log.Warn("model call failed; using heuristic", "operation", op, "error", err)
}

func (a *ModelBackedAnalyzer) AnalyzeEntry(ctx context.Context, content string) EntryAnalysis {
	const op = "journal.analyze"
	bctx, cancel := a.withBudget(ctx)
	defer cancel()
	out, err := a.analyzeEntry(bctx, content)
	if err != nil {
		a.fellBack(op, err)
		return a.fallback.AnalyzeEntry(ctx, content)
	}
	return out
}

func (a *ModelBackedAnalyzer) analyzeEntry(ctx context.Context, content string) (EntryAnalysis, error) {
	vars := map[string]any{"Content": content}

	var mood moodReply
	if err := a.callJSON(ctx, "journal.mood", prompts.JournalMood, "MoodAnalysis", moodSchema, vars, &mood); err != nil {
		return EntryAnalysis{}, fmt.Errorf("mood: %w", err)
	}
	var themes themesReply
	if err := a.callJSON(ctx, "journal.themes", prompts.JournalThemes, "ThemeAnalysis", themesSchema, vars, &themes); err != nil {
		return EntryAnalysis{}, fmt.Errorf("themes: %w", err)
	}
	var triggers triggersReply
	if err := a.callJSON(ctx, "journal.triggers", prompts.JournalTrigger, "TriggerAnalysis", triggersSchema, vars, &triggers); err != nil {
		return EntryAnalysis{}, fmt.Errorf("triggers: %w", err)
	}

	label := strings.TrimSpace(strings.ToLower(mood.MoodLabel))
	if label == "" {
		label = "neutral"
	}
	themeList := normalizeThemes(themes.Themes)
	triggerList := cleanList(triggers.EmotionalTriggers, 10)
	score := clampFloat(mood.MoodScore, 0, 10)

	var insights insightsReply
	ivars := map[string]any{
		"Content":   content,
		"MoodLabel": label,
		"MoodScore": fmt.Sprintf("%.1f", score),
		"Themes":    strings.Join(themeList, ", "),
		"Triggers":  strings.Join(triggerList, ", "),
	}
	if err := a.callJSON(ctx, "journal.insights", prompts.JournalInsight, "InsightAnalysis", insightsSchema, ivars, &insights); err != nil {
		return EntryAnalysis{}, fmt.Errorf("insights: %w", err)
	}

	return EntryAnalysis{
		MoodScore:         score,
		MoodLabel:         label,
		Themes:            themeList,
		EmotionalTriggers: triggerList,
		StressLevel:       clampInt(triggers.StressLevel, 1, 10),
		KeyInsights:       cleanList(insights.KeyInsights, 5),
		GrowthAreas:       cleanList(insights.GrowthAreas, 5),
		SuggestedFocus:    strings.TrimSpace(insights.SuggestedFocus),
		Source:            types.AnalysisSourceModel,
	}, nil
}

func normalizeThemes(in []string) []string {
	out := cleanList(in, 5)
	for i := range out {
		out[i] = strings.ToLower(out[i])
	}
	return out
}

func (a *ModelBackedAnalyzer) OpeningLine(ctx context.Context, conversationType, theme string) string {
	const op = "conversation.opening"
	bctx, cancel := a.withBudget(ctx)
	defer cancel()
	text, err := a.callText(bctx, op, prompts.ConversationOpening, map[string]any{
		"ConversationType": conversationType,
		"Theme":            theme,
	})
	if err != nil {
		a.fellBack(op, err)
		return a.fallback.OpeningLine(ctx, conversationType, theme)
	}
	return text
}

func replyTemplate(conversationType string) string {
	switch conversationType {
	case types.ConversationSocratic:
		return prompts.ConversationSocratic
	case types.ConversationCBT:
		return prompts.ConversationCBT
	default:
		return prompts.ConversationGeneral
	}
}

// FormatHistory renders turns as "User: ..." and "Assistant: ..." lines.
func FormatHistory(turns []transcript.Turn) string {
	if len(turns) == 0 {
		return "(no previous messages)"
	}
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		if t.Role == transcript.RoleAssistant {
			b.WriteString("Assistant: ")
		} else {
			b.WriteString("User: ")
		}
		b.WriteString(t.Content)
	}
	return b.String()
}

func (a *ModelBackedAnalyzer) Reply(ctx context.Context, in ReplyInput) (string, bool) {
	const op = "conversation.reply"
	bctx, cancel := a.withBudget(ctx)
	defer cancel()
	text, err := a.callText(bctx, op, replyTemplate(in.ConversationType), map[string]any{
		"Theme":   in.Theme,
		"History": FormatHistory(in.History),
		"Message": in.Message,
	})
	if err != nil {
		a.fellBack(op, err)
		return a.fallback.Reply(ctx, in)
	}
	return text, false
}

func (a *ModelBackedAnalyzer) SummarizeSession(ctx context.Context, turns []transcript.Turn) string {
	const op = "conversation.summary"
	if len(turns) == 0 {
		return ""
	}
	bctx, cancel := a.withBudget(ctx)
	defer cancel()
	text, err := a.callText(bctx, op, prompts.ConversationSummary, map[string]any{"History": FormatHistory(turns)})
	if err != nil {
		a.fellBack(op, err)
		return a.fallback.SummarizeSession(ctx, turns)
	}
	return text
}

func (a *ModelBackedAnalyzer) MoodNarrative(ctx context.Context, facts MoodFacts) MoodNarrative {
	const op = "insights.mood"
	lines := make([]string, 0, len(facts.Points))
	for _, p := range facts.Points {
		lines = append(lines, fmt.Sprintf("%s: %.1f", p.Date, p.Score))
	}
	var out MoodNarrative
	bctx, cancel := a.withBudget(ctx)
	defer cancel()
	err := a.callJSON(bctx, op, prompts.InsightsMood, "MoodInsights", moodNarrSchema, map[string]any{
		"Period":     facts.Period,
		"Series":     strings.Join(lines, "\n"),
		"Average":    fmt.Sprintf("%.2f", facts.Average),
		"Trend":      facts.Trend,
		"Volatility": facts.Volatility,
	}, &out)
	if err == nil && len(cleanList(out.Insights, 0)) == 0 {
		err = errEmptyReply
	}
	if err != nil {
		a.fellBack(op, err)
		return a.fallback.MoodNarrative(ctx, facts)
	}
	return MoodNarrative{Insights: cleanList(out.Insights, 5), KeyChanges: cleanList(out.KeyChanges, 3)}
}

func (a *ModelBackedAnalyzer) HabitNarrative(ctx context.Context, facts HabitFacts) HabitNarrative {
	const op = "insights.habits"
	lines := make([]string, 0, len(facts.Signals))
	for _, s := range facts.Signals {
		note := ""
		if !s.Aligned {
			note = " (not enough overlapping days)"
		}
		lines = append(lines, fmt.Sprintf("%s: r=%.2f %s%s", s.Habit, s.Correlation, s.Impact, note))
	}
	var out HabitNarrative
	bctx, cancel := a.withBudget(ctx)
	defer cancel()
	err := a.callJSON(bctx, op, prompts.InsightsHabits, "HabitInsights", habitNarrSchema, map[string]any{
		"Correlations": strings.Join(lines, "\n"),
	}, &out)
	if err == nil && len(cleanList(out.Insights, 0)) == 0 {
		err = errEmptyReply
	}
	if err != nil {
		a.fellBack(op, err)
		return a.fallback.HabitNarrative(ctx, facts)
	}
	return HabitNarrative{Insights: cleanList(out.Insights, 5), Recommendations: cleanList(out.Recommendations, 3)}
}

func formatFrequencies(freqs []heuristics.Frequency) string {
	parts := make([]string, 0, len(freqs))
	for _, f := range freqs {
		parts = append(parts, fmt.Sprintf("%s (%d)", f.Item, f.Count))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func (a *ModelBackedAnalyzer) PatternNarrative(ctx context.Context, facts PatternFacts) PatternNarrative {
	const op = "insights.patterns"
	var out PatternNarrative
	bctx, cancel := a.withBudget(ctx)
	defer cancel()
	err := a.callJSON(bctx, op, prompts.InsightsPatterns, "PatternInsights", patternSchema, map[string]any{
		"Themes":   formatFrequencies(facts.Themes),
		"Triggers": formatFrequencies(facts.Triggers),
		"Total":    facts.Total,
	}, &out)
	if err == nil && len(cleanList(out.Insights, 0)) == 0 {
		err = errEmptyReply
	}
	if err != nil {
		a.fellBack(op, err)
		return a.fallback.PatternNarrative(ctx, facts)
	}
	return PatternNarrative{
		Insights:            cleanList(out.Insights, 5),
		PositivePatterns:    cleanList(out.PositivePatterns, 5),
		ChallengingPatterns: cleanList(out.ChallengingPatterns, 5),
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func (a *ModelBackedAnalyzer) WeeklyNarrative(ctx context.Context, facts WeeklyFacts) WeeklyNarrative {
	const op = "insights.weekly"
	var out WeeklyNarrative
	bctx, cancel := a.withBudget(ctx)
	defer cancel()
	err := a.callJSON(bctx, op, prompts.InsightsWeekly, "WeeklySummary", weeklySchema, map[string]any{
		"Mood":     fmt.Sprintf("average %.1f/10, trend %s", facts.AverageMood, facts.Trend),
		"Habits":   fmt.Sprintf("helpful: %s; draining: %s", joinOrNone(facts.PositiveHabits), joinOrNone(facts.NegativeHabits)),
		"Patterns": fmt.Sprintf("themes: %s; triggers: %s", joinOrNone(facts.TopThemes), joinOrNone(facts.TopTriggers)),
	}, &out)
	if err == nil && strings.TrimSpace(out.OverallMood) == "" {
		err = errEmptyReply
	}
	if err != nil {
		a.fellBack(op, err)
		return a.fallback.WeeklyNarrative(ctx, facts)
	}
	return WeeklyNarrative{
		OverallMood:     strings.TrimSpace(out.OverallMood),
		KeyAchievements: cleanList(out.KeyAchievements, 5),
		AreasOfGrowth:   cleanList(out.AreasOfGrowth, 5),
		Recommendations: cleanList(out.Recommendations, 5),
		NextWeekFocus:   strings.TrimSpace(out.NextWeekFocus),
		Encouragement:   strings.TrimSpace(out.Encouragement),
	}
}

// SelectThemes returns the raw model choice; callers validate it against their taxonomy.
func (a *ModelBackedAnalyzer) SelectThemes(ctx context.Context, facts ThemeFacts) (ThemeSelection, error) {
	var out ThemeSelection
	bctx, cancel := a.withBudget(ctx)
	defer cancel()
	err := a.callJSON(bctx, "planner.themes", prompts.PlannerThemes, "ThemeSelection", selectionSchema, map[string]any{
		"Taxonomy":    strings.Join(facts.Taxonomy, ", "),
		"Themes":      formatFrequencies(facts.Themes),
		"AverageMood": fmt.Sprintf("%.1f", facts.AverageMood),
		"Trend":       facts.Trend,
		"EntryCount":  facts.EntryCount,
	}, &out)
	if err != nil {
		return ThemeSelection{}, fmt.Errorf("select themes: %w", err)
	}
	out.Themes = cleanList(out.Themes, 0)
	return out, nil
}

func (a *ModelBackedAnalyzer) DraftPlan(ctx context.Context, facts PlanFacts) (PlanDraft, error) {
	var out planReply
	bctx, cancel := a.withBudget(ctx)
	defer cancel()
	err := a.callJSON(bctx, "planner.plan", prompts.PlannerPlan, "WeeklyPlan", planSchema, map[string]any{
		"Themes":      strings.Join(facts.Themes, ", "),
		"AverageMood": fmt.Sprintf("%.1f", facts.AverageMood),
		"Trend":       facts.Trend,
	}, &out)
	if err != nil {
		return PlanDraft{}, fmt.Errorf("draft plan: %w", err)
	}
	if len(out.Themes) == 0 {
		return PlanDraft{}, fmt.Errorf("draft plan: %w", errEmptyReply)
	}
	draft := PlanDraft{
		Themes:           make([]types.PlanTheme, 0, len(out.Themes)),
		OverallFocus:     strings.TrimSpace(out.OverallFocus),
		ExpectedOutcomes: cleanList(out.ExpectedOutcomes, 5),
	}
	for _, t := range out.Themes {
		draft.Themes = append(draft.Themes, types.PlanTheme{
			Theme:            strings.TrimSpace(t.Theme),
			Priority:         t.Priority,
			ConversationType: strings.TrimSpace(strings.ToLower(t.ConversationType)),
			Goals:            cleanList(t.Goals, 5),
			Rationale:        strings.TrimSpace(t.Rationale),
		})
	}
	return draft, nil
}
