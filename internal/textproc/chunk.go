package textproc

import (
	"fmt"
	"strings"
)

// Default window parameters for article chunking.
const (
	DefaultMaxChunkSize = 1000
	DefaultOverlap      = 200

	// How far back from a window boundary we look for a sentence end.
	boundarySearchWindow = 100
)

// ChunkText splits text into overlapping windows of at most maxChunkSize
// characters. Window ends snap backward to the nearest period within the
// last boundarySearchWindow characters so sentences stay whole; the period
// stays with its chunk. Consecutive chunks overlap by `overlap` characters.
//
// Text no longer than maxChunkSize comes back as a single chunk, untrimmed
// splitting aside. overlap must be smaller than maxChunkSize or the window
// cannot advance.
func ChunkText(text string, maxChunkSize, overlap int) ([]string, error) {
	if maxChunkSize <= 0 {
		return nil, fmt.Errorf("max chunk size must be positive, got %d", maxChunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("overlap must not be negative, got %d", overlap)
	}
	if overlap >= maxChunkSize {
		return nil, fmt.Errorf("overlap (%d) must be smaller than max chunk size (%d)", overlap, maxChunkSize)
	}

	runes := []rune(text)
	if len(runes) <= maxChunkSize {
		return []string{text}, nil
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + maxChunkSize

		// Snap to a sentence boundary when the window ends mid-text.
		if end < len(runes) {
			searchStart := end - boundarySearchWindow
			if searchStart < 0 {
				searchStart = 0
			}
			if pos := lastPeriod(runes, searchStart, end); pos > start {
				end = pos + 1
			}
		}

		sliceEnd := end
		if sliceEnd > len(runes) {
			sliceEnd = len(runes)
		}
		if chunk := strings.TrimSpace(string(runes[start:sliceEnd])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := end - overlap
		if next <= start {
			// Boundary snapping shrank the window below the overlap; drop
			// the overlap for this step so the scan always moves forward.
			next = sliceEnd
		}
		start = next
	}

	return chunks, nil
}

// lastPeriod returns the index of the last '.' in runes[from:to), or -1.
func lastPeriod(runes []rune, from, to int) int {
	for i := to - 1; i >= from; i-- {
		if runes[i] == '.' {
			return i
		}
	}
	return -1
}
