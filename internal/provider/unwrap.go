package provider

import "strings"

// codeFenceMarker opens and closes fenced blocks in model output.
const codeFenceMarker = "```"

// UnwrapFencedBlock removes a single outer code fence wrapping the entire
// text, so persisted documents are plain Markdown rather than a block-quoted
// artifact. The opening fence may carry a language tag. Text without an outer
// fence is returned unchanged; inner fenced content is preserved.
func UnwrapFencedBlock(text string) string {
	trimmedText := strings.TrimSpace(text)
	lines := strings.Split(trimmedText, "\n")
	if len(lines) < 2 {
		return text
	}

	openingLine := strings.TrimSpace(lines[0])
	closingLine := strings.TrimSpace(lines[len(lines)-1])
	if !strings.HasPrefix(openingLine, codeFenceMarker) || closingLine != codeFenceMarker {
		return text
	}
	languageTag := strings.TrimPrefix(openingLine, codeFenceMarker)
	if strings.Contains(languageTag, "`") || strings.ContainsAny(languageTag, " \t") {
		return text
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}
