package ai

import (
	"context"
	"strings"
)

// Placeholder is substituted with the textual statistics in a prompt template.
const Placeholder = "{statistics}"

type Summarizer interface {
	Summarize(ctx context.Context, statistics, promptTemplate string) (string, error)
}

// FillTemplate renders a prompt template. Templates without the placeholder
// get the statistics appended so the model always sees the numbers.
func FillTemplate(promptTemplate, statistics string) string {
	if !strings.Contains(promptTemplate, Placeholder) {
		return promptTemplate + "\n\n" + statistics
	}
	return strings.ReplaceAll(promptTemplate, Placeholder, statistics)
}
