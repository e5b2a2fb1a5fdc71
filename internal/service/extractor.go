package service

import "strings"

// ExtractJSONArray pulls the best-effort JSON-array substring out of a raw
// LLM response. Models routinely wrap the payload in prose or a fenced code
// block; this strips the fence and takes the outermost [...] span, newlines
// included. If no array shape is present the trimmed raw string is returned
// unchanged so that downstream parsing fails explicitly instead of silently
// succeeding on garbage. Never errors.
func ExtractJSONArray(raw string) string {
	s := stripCodeFence(strings.TrimSpace(raw))

	start := strings.Index(s, "[")
	if start == -1 {
		return s
	}
	end := strings.LastIndex(s, "]")
	if end <= start {
		return s
	}
	return s[start : end+1]
}

func stripCodeFence(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
