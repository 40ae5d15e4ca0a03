package conversation

import (
	"fmt"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/heuristics"
)

type TypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	BestFor     string `json:"best_for"`
}

var typeCatalog = []TypeInfo{
	{Type: types.ConversationGeneral, Description: "General supportive conversation", BestFor: "Daily check-ins and general support"},
	{Type: types.ConversationSocratic, Description: "Socratic dialogue with thoughtful questions", BestFor: "Deep reflection and self-discovery"},
	{Type: types.ConversationCBT, Description: "Cognitive Behavioral Therapy style", BestFor: "Identifying thought patterns and cognitive distortions"},
}

var themeCatalog = []string{
	"personal growth",
	"relationships",
	"work and career",
	"stress and anxiety",
	"self-esteem",
	"goals and motivation",
	"emotional awareness",
	"mindfulness",
	"life transitions",
	"creativity",
	"health and wellness",
	"social connections",
}

func Types() []TypeInfo {
	return append([]TypeInfo(nil), typeCatalog...)
}

func Themes() []string {
	return append([]string(nil), themeCatalog...)
}

// HistoryItem is one past journal analysis used to suggest topics.
type HistoryItem struct {
	Themes      []string
	MoodLabel   string
	GrowthAreas []string
}

const (
	maxSuggestions = 3
	themeWindow    = 5
	recentWindow   = 3
)

var (
	emptyHistorySuggestions = []string{
		"How are you feeling today?",
		"What's been on your mind lately?",
		"Is there anything you'd like to explore or discuss?",
	}
	quietHistorySuggestions = []string{
		"How has your week been so far?",
		"Is there anything you're looking forward to?",
		"What's been the highlight of your day?",
	}
)

// SuggestTopics proposes up to three openers from chronological history.
func SuggestTopics(history []HistoryItem) []string {
	if len(history) == 0 {
		return append([]string(nil), emptyHistorySuggestions...)
	}

	var themes []string
	for _, h := range tail(history, themeWindow) {
		themes = append(themes, h.Themes...)
	}
	var out []string
	if top := heuristics.Top(heuristics.RankFrequencies(themes, 1)); top != "" {
		out = append(out, fmt.Sprintf("Let's explore your thoughts about %s", top))
	}

	recent := tail(history, recentWindow)
	for _, h := range recent {
		if h.MoodLabel == heuristics.LabelNegative {
			out = append(out, "I notice you've been feeling down lately. Would you like to talk about what's been challenging?")
			break
		}
	}
	for _, h := range recent {
		if len(h.GrowthAreas) > 0 && h.GrowthAreas[0] != "" {
			out = append(out, fmt.Sprintf("I see you've been working on %s. How's that going?", h.GrowthAreas[0]))
		}
	}

	if len(out) == 0 {
		return append([]string(nil), quietHistorySuggestions...)
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func tail(items []HistoryItem, n int) []HistoryItem {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
