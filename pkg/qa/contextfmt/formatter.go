// Package contextfmt renders retrieved knowledge chunks into the plain-text
// context block embedded in generation prompts.
package contextfmt

import (
	"fmt"
	"strings"
)

// Chunk is one retrieved piece of knowledge with its originating source.
type Chunk struct {
	Source  string
	Content string
}

// Format renders chunks as labelled sections separated by a divider so the
// model can attribute statements back to their source documents.
func Format(chunks []Chunk) string {
	sections := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		source := chunk.Source
		if source == "" {
			source = "unknown"
		}
		sections = append(sections, fmt.Sprintf("Source: %s\nContent:\n%s", source, chunk.Content))
	}
	return strings.Join(sections, "\n---\n")
}

// Truncate caps a context block at limit bytes. Prompts have a token budget
// and retrieved context is the only unbounded part.
func Truncate(context string, limit int) string {
	if limit <= 0 || len(context) <= limit {
		return context
	}
	return context[:limit]
}
