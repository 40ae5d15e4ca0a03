package promptstyle

import "strings"

const marker = "MINDMATE_PROMPT_STYLE_V1"

// ApplySystem prepends the shared guidance block to a system prompt. It is idempotent.
func ApplySystem(system string, mode string) string {
	base := strings.TrimSpace(system)
	if base == "" {
		return base
	}
	if strings.Contains(base, marker) {
		return base
	}
	mode = strings.ToLower(strings.TrimSpace(mode))

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString("\nYou support a personal journaling and wellbeing app.")
	b.WriteString("\nBe warm, specific and non-judgmental. Do not diagnose or give medical advice.")
	b.WriteString("\nGround everything in the provided inputs; do not invent events or feelings.")
	if mode == "json" {
		b.WriteString("\nReturn a single JSON object that conforms to the schema and contains no extra keys.")
	} else {
		b.WriteString("\nReply in plain text without headings or lists unless asked.")
	}
	b.WriteString("\n---\n")
	b.WriteString(base)
	return strings.TrimSpace(b.String())
}
