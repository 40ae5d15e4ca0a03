package openai

import (
	"encoding/json"
	"io"
	"strings"
)

// DecodeModelJSON parses a model reply into v. It accepts a bare object or the
// first {...} span inside surrounding prose or code fences.
func DecodeModelJSON(outputText string, v any) error {
	s := strings.TrimSpace(outputText)
	if s == "" {
		return io.ErrUnexpectedEOF
	}
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start != -1 && end == -1 {
		return io.ErrUnexpectedEOF
	}
	if start == -1 || end <= start {
		return &json.SyntaxError{Offset: 0}
	}
	return json.Unmarshal([]byte(s[start:end+1]), v)
}
