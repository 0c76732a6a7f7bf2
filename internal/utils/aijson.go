package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseAIJSON extracts and parses JSON from LLM output that may contain:
// - Pure JSON
// - JSON wrapped in markdown code blocks (```json ... ```)
// - JSON with surrounding prose
// - Trailing commas or unquoted keys
func ParseAIJSON(input string, target interface{}) error {
	if input == "" {
		return fmt.Errorf("empty input")
	}

	// Direct parse first (most common case).
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if extracted := extractFromMarkdown(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	if extracted := extractJSONFromText(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	if cleaned := cleanJSON(input); cleaned != "" {
		if err := json.Unmarshal([]byte(cleaned), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("failed to parse JSON from input: %s", truncate(input, 100))
}

var (
	fencedJSONRe  = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	fencedPlainRe = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKey   = regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)
	controlChars  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

func extractFromMarkdown(input string) string {
	if m := fencedJSONRe.FindStringSubmatch(input); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	if m := fencedPlainRe.FindStringSubmatch(input); len(m) > 1 {
		content := strings.TrimSpace(m[1])
		if strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[") {
			return content
		}
	}
	return ""
}

func extractJSONFromText(input string) string {
	if start := strings.Index(input, "{"); start >= 0 {
		if extracted := extractBalanced(input[start:], '{', '}'); extracted != "" {
			return extracted
		}
	}
	if start := strings.Index(input, "["); start >= 0 {
		if extracted := extractBalanced(input[start:], '[', ']'); extracted != "" {
			return extracted
		}
	}
	return ""
}

// extractBalanced returns the first balanced-brace span, respecting
// string literals and escapes.
func extractBalanced(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}
		if ch == '\\' {
			escape = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		if ch == open {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == close {
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

// cleanJSON fixes the malformations LLMs most often produce.
func cleanJSON(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = trailingComma.ReplaceAllString(s, "$1")
	s = unquotedKey.ReplaceAllString(s, `$1"$2"$3`)
	s = controlChars.ReplaceAllString(s, "")
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
