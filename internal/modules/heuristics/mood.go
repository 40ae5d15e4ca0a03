// Package heuristics holds the deterministic, offline analysis used when no
// language model is available or its reply cannot be used.
package heuristics

import "strings"

const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"

	ScorePositive = 7.0
	ScoreNegative = 3.0
	ScoreNeutral  = 5.0
)

var (
	positiveWords = []string{"happy", "joy", "excited", "grateful", "peaceful", "content"}
	negativeWords = []string{"sad", "angry", "frustrated", "depressed", "worried", "upset"}
)

// ClassifyMood compares occurrences of positive and negative words.
func ClassifyMood(text string) (float64, string) {
	lower := strings.ToLower(text)
	pos := countOccurrences(lower, positiveWords)
	neg := countOccurrences(lower, negativeWords)
	switch {
	case pos > neg:
		return ScorePositive, LabelPositive
	case neg > pos:
		return ScoreNegative, LabelNegative
	default:
		return ScoreNeutral, LabelNeutral
	}
}

func countOccurrences(lower string, words []string) int {
	n := 0
	for _, w := range words {
		n += strings.Count(lower, w)
	}
	return n
}

type themeRule struct {
	theme    string
	keywords []string
}

var themeRules = []themeRule{
	{"work", []string{"work", "job", "career", "office"}},
	{"relationships", []string{"relationship", "friend", "family", "partner"}},
	{"health", []string{"health", "exercise", "diet", "sleep"}},
	{"stress", []string{"stress", "anxiety", "anxious", "worry", "fear"}},
}

// ExtractThemes returns every theme with at least one keyword present, in rule order.
func ExtractThemes(text string) []string {
	lower := strings.ToLower(text)
	themes := []string{}
	for _, rule := range themeRules {
		if containsAny(lower, rule.keywords) {
			themes = append(themes, rule.theme)
		}
	}
	return themes
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
