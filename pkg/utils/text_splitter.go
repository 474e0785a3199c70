package utils

import (
	"errors"
	"strings"
)

// ErrNonPositiveAdvance signals a splitter configuration that would stall the
// cursor (overlap >= chunk size). This is a fatal configuration error, not a
// recoverable condition.
var ErrNonPositiveAdvance = errors.New("text splitter: overlap must be smaller than chunk size")

// sentenceMarkers are searched right-to-left inside a window when no paragraph
// break is available. The marker length (2) is included in the chunk.
var sentenceMarkers = []string{". ", ".\n", "!\n", "?\n"}

// SplitText splits a long string into chunks of at most 'chunkSize' characters
// with 'overlap' characters shared between consecutive chunks.
// Chunk boundaries prefer a paragraph break, then a sentence break, but only
// when the break sits past 50% of the window; otherwise the cut is hard.
// Every returned chunk is trimmed and non-empty.
func SplitText(text string, chunkSize int, overlap int) ([]string, error) {
	if chunkSize <= 0 || overlap < 0 || overlap >= chunkSize {
		return nil, ErrNonPositiveAdvance
	}

	if len(text) <= chunkSize {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, nil
		}
		return []string{trimmed}, nil
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + chunkSize

		if end < len(text) {
			window := text[start:end]

			// Prefer a paragraph break, but only past the halfway point so
			// chunks don't collapse to tiny fragments.
			if para := strings.LastIndex(window, "\n\n"); para > chunkSize/2 {
				end = start + para + 2
			} else if sentence := lastSentenceBreak(window); sentence > chunkSize/2 {
				end = start + sentence + 2
			}
		} else {
			end = len(text)
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(text) {
			break
		}

		next := end - overlap
		if next <= start {
			// A softened boundary combined with a large overlap could walk
			// the cursor backwards. Refuse rather than loop forever.
			return nil, ErrNonPositiveAdvance
		}
		start = next
	}

	return chunks, nil
}

func lastSentenceBreak(window string) int {
	best := -1
	for _, marker := range sentenceMarkers {
		if idx := strings.LastIndex(window, marker); idx > best {
			best = idx
		}
	}
	return best
}
