package analyzer

import (
	"context"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/conversation/transcript"
	"github.com/navneetha-rajan/mindmate/internal/modules/heuristics"
)

const (
	FallbackInsight        = "Analysis completed with fallback method"
	FallbackSuggestedFocus = "Continue journaling to build patterns"
	FallbackStressLevel    = 5

	FallbackMoodInsight    = "Basic mood analysis completed"
	FallbackHabitInsight   = "Basic habit correlation analysis completed"
	FallbackHabitAdvice    = "Continue tracking habits and mood to build patterns"
	FallbackPatternInsight = "Basic pattern analysis completed"
)

// HeuristicAnalyzer is total and deterministic; it never errors.
type HeuristicAnalyzer struct{}

func NewHeuristic() *HeuristicAnalyzer { return &HeuristicAnalyzer{} }

func (HeuristicAnalyzer) AnalyzeEntry(_ context.Context, content string) EntryAnalysis {
	score, label := heuristics.ClassifyMood(content)
	return EntryAnalysis{
		MoodScore:         score,
		MoodLabel:         label,
		Themes:            heuristics.ExtractThemes(content),
		EmotionalTriggers: []string{},
		StressLevel:       FallbackStressLevel,
		KeyInsights:       []string{FallbackInsight},
		GrowthAreas:       []string{},
		SuggestedFocus:    FallbackSuggestedFocus,
		Source:            types.AnalysisSourceHeuristic,
	}
}

func (HeuristicAnalyzer) OpeningLine(_ context.Context, conversationType, theme string) string {
	return heuristics.OpeningLine(conversationType, theme)
}

func (HeuristicAnalyzer) Reply(_ context.Context, in ReplyInput) (string, bool) {
	return heuristics.CannedReply(in.Message), true
}

func (HeuristicAnalyzer) SummarizeSession(context.Context, []transcript.Turn) string {
	return ""
}

func (HeuristicAnalyzer) MoodNarrative(context.Context, MoodFacts) MoodNarrative {
	return MoodNarrative{Insights: []string{FallbackMoodInsight}, KeyChanges: []string{}}
}

func (HeuristicAnalyzer) HabitNarrative(context.Context, HabitFacts) HabitNarrative {
	return HabitNarrative{
		Insights:        []string{FallbackHabitInsight},
		Recommendations: []string{FallbackHabitAdvice},
	}
}

func (HeuristicAnalyzer) PatternNarrative(context.Context, PatternFacts) PatternNarrative {
	return PatternNarrative{
		Insights:            []string{FallbackPatternInsight},
		PositivePatterns:    []string{},
		ChallengingPatterns: []string{},
	}
}

func (HeuristicAnalyzer) WeeklyNarrative(context.Context, WeeklyFacts) WeeklyNarrative {
	return WeeklyNarrative{
		OverallMood:     "neutral",
		KeyAchievements: []string{"Completed weekly reflection"},
		AreasOfGrowth:   []string{"Continue journaling and mood tracking"},
		Recommendations: []string{"Keep up the good work"},
		NextWeekFocus:   "General wellness",
		Encouragement:   "You're doing great! Keep reflecting and growing.",
	}
}

func (HeuristicAnalyzer) SelectThemes(context.Context, ThemeFacts) (ThemeSelection, error) {
	return ThemeSelection{
		Themes:    []string{"personal growth", "emotional awareness", "relationships"},
		Reasoning: "General wellness themes",
		Urgency:   "medium",
	}, nil
}

func (HeuristicAnalyzer) DraftPlan(context.Context, PlanFacts) (PlanDraft, error) {
	return PlanDraft{
		Themes: []types.PlanTheme{{
			Theme:            "personal growth",
			Priority:         1,
			ConversationType: types.ConversationGeneral,
			Goals:            []string{"Explore current challenges", "Identify growth opportunities"},
			Rationale:        "General wellness focus",
		}},
		OverallFocus:     "Personal growth and reflection",
		ExpectedOutcomes: []string{"Increased self-awareness", "Better emotional understanding"},
	}, nil
}
