package promptstyle

import (
	"strings"
	"testing"
)

func TestApplySystem(t *testing.T) {
	if got := ApplySystem("  ", "json"); got != "" {
		t.Fatalf("empty system: expected empty, got %q", got)
	}
	once := ApplySystem("Rate the mood.", "json")
	if !strings.HasPrefix(once, marker) || !strings.HasSuffix(once, "Rate the mood.") {
		t.Fatalf("unexpected output %q", once)
	}
	if !strings.Contains(once, "JSON object") {
		t.Fatalf("json mode should mention the JSON object")
	}
	if twice := ApplySystem(once, "json"); twice != once {
		t.Fatalf("ApplySystem should be idempotent")
	}
	if text := ApplySystem("Reply kindly.", "text"); strings.Contains(text, "JSON object") {
		t.Fatalf("text mode should not mention JSON")
	}
}
