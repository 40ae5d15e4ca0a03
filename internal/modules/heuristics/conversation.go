package heuristics

import "strings"

const (
	GenericOpening = "I'm here to listen and support you. What would you like to talk about today?"

	ClosingWithSummary    = "Thank you for sharing with me. I hope our conversation was helpful."
	ClosingWithoutSummary = "Thank you for our conversation. I hope it was helpful."
)

var openings = map[string]string{
	"socratic": "I'd like to explore this topic with you through some thoughtful questions. What's your initial thought about this?",
	"cbt":      "Let's take a moment to examine your thoughts and feelings about this. What's going through your mind right now?",
	"general":  GenericOpening,
}

// OpeningLine returns the canned opener for a conversation type, prefixed by the theme when set.
func OpeningLine(conversationType, theme string) string {
	line, ok := openings[conversationType]
	if !ok {
		line = GenericOpening
	}
	if t := strings.TrimSpace(theme); t != "" {
		return "Let's focus on " + t + ". " + line
	}
	return line
}

type replyRule struct {
	keywords []string
	reply    string
}

// First match wins.
var replyRules = []replyRule{
	{[]string{"sad", "depressed", "down", "unhappy"}, "I hear that you're feeling down. What's been on your mind lately?"},
	{[]string{"happy", "excited", "good", "great"}, "That's wonderful! What's contributing to your positive mood?"},
	{[]string{"stress", "anxious", "worried", "nervous"}, "Stress can be really challenging. Can you tell me more about what's causing you concern?"},
	{[]string{"work", "job", "career"}, "Work can be a significant part of our lives. How are things going for you professionally?"},
	{[]string{"relationship", "friend", "family"}, "Relationships are so important. What's happening in your relationships right now?"},
}

// CannedReply routes a message to a fixed supportive reply by keyword.
func CannedReply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range replyRules {
		if containsAny(lower, rule.keywords) {
			return rule.reply
		}
	}
	return GenericOpening
}
