package engine

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Structured-output negotiation. The request side appends schema
// instructions to the system message; the response side coerces free-text
// backend output into the requested JSON shape. Coercion is best-effort
// and never fails: on mismatch it degrades to returning the raw text.

// SchemaInstruction builds the system-message suffix asking the backend for
// schema-conforming JSON. When the schema's properties contain both
// "language" and "title", a concrete example is included; this is a known
// downstream-client convention and is kept as-is rather than generalized.
func SchemaInstruction(schema map[string]any) string {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		// A schema decoded from JSON always re-marshals; this only guards
		// hand-built schemas containing unmarshalable values.
		return ""
	}

	instruction := "respond with a valid JSON object matching schema: " + string(schemaJSON)
	if hasLanguageAndTitle(schema) {
		instruction += ` For example: {"language": "English", "title": "Short Title"}`
	}
	return instruction
}

// ParseStructuredResponse coerces raw backend text toward the requested
// schema. It tries, in order: a strict JSON parse of the whole text, then
// (for the language/title client convention) regex-based field extraction
// populating only the fields actually matched. When nothing matches, the
// raw text is returned unchanged.
func ParseStructuredResponse(text string, schema map[string]any) any {
	trimmed := strings.TrimSpace(text)

	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		return parsed
	}

	if hasLanguageAndTitle(schema) {
		if fields := extractLanguageTitle(text); len(fields) > 0 {
			return fields
		}
	}

	return text
}

// hasLanguageAndTitle reports whether the schema's properties mapping
// contains both the "language" and "title" keys.
func hasLanguageAndTitle(schema map[string]any) bool {
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return false
	}
	_, hasLanguage := props["language"]
	_, hasTitle := props["title"]
	return hasLanguage && hasTitle
}

var (
	languagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)language\s+is\s+([A-Za-z]+)`),
		regexp.MustCompile(`(?i)detected\s+language\s*[:\s]\s*([A-Za-z]+)`),
		regexp.MustCompile(`(?m)^\s*1[.)]\s*([A-Za-z]+)\s*$`),
	}

	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)title\s*:\s*"([^"]+)"`),
		regexp.MustCompile(`(?im)title\s*:\s*(.+?)\s*$`),
		regexp.MustCompile(`"([^"\n]+)"`),
		regexp.MustCompile(`(?m)^\s*2[.)]\s*(.+?)\s*$`),
	}
)

// extractLanguageTitle applies the pattern heuristics for the language/title
// schema. Only matched fields are populated.
func extractLanguageTitle(text string) map[string]any {
	fields := make(map[string]any)

	for _, pattern := range languagePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			fields["language"] = strings.TrimSpace(m[1])
			break
		}
	}

	for _, pattern := range titlePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			title := strings.Trim(strings.TrimSpace(m[1]), `"`)
			if title != "" {
				fields["title"] = title
				break
			}
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
