// Package chunker splits long texts into pieces small enough for the
// transliteration endpoint's request-size limit, preferring sentence and word
// boundaries so no chunk cuts through a syllable cluster.
package chunker

import (
	"strings"
	"unicode"
)

// Chunk splits text into pieces each no longer than maxRunes code points.
// Splits are attempted, in order of preference, at:
//  1. Paragraph boundaries (\n\n or \r\n\r\n)
//  2. Sentence-ending punctuation (. ! ? and the dandas । ॥) followed by space
//  3. Whitespace (word boundary)
//  4. Hard cut at maxRunes if no suitable boundary is found
//
// If text fits within maxRunes, a single-element slice is returned.
// maxRunes ≤ 0 is treated as unlimited.
func Chunk(text string, maxRunes int) []string {
	if maxRunes <= 0 || len([]rune(text)) <= maxRunes {
		return []string{text}
	}

	var chunks []string
	remaining := text

	for len([]rune(remaining)) > maxRunes {
		split := findSplit(remaining, maxRunes)
		chunk := strings.TrimSpace(remaining[:split])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		remaining = strings.TrimSpace(remaining[split:])
	}

	if strings.TrimSpace(remaining) != "" {
		chunks = append(chunks, strings.TrimSpace(remaining))
	}

	return chunks
}

// Join reassembles converted chunks with single spaces. The formatter's
// whitespace collapse downstream makes the exact separator immaterial, but
// joining without one would glue words together.
func Join(chunks []string) string {
	return strings.Join(chunks, " ")
}

// sentenceEnd reports whether r terminates a sentence. The dandas cover
// Indic-script source text.
func sentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '।', '॥': // । ॥
		return true
	}
	return false
}

// findSplit returns the byte index at which to split text, aiming for at most
// maxRunes code points, searching backwards from the limit for the best
// boundary.
func findSplit(text string, maxRunes int) int {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return len(text)
	}

	candidate := runes[:maxRunes]
	candidateStr := string(candidate)

	// 1. Paragraph boundary.
	if idx := strings.LastIndex(candidateStr, "\n\n"); idx > 0 {
		return idx + 2
	}
	if idx := strings.LastIndex(candidateStr, "\r\n\r\n"); idx > 0 {
		return idx + 4
	}

	// 2. Sentence end followed by a space.
	for i := len(candidate) - 1; i > 0; i-- {
		if sentenceEnd(candidate[i]) && i+1 < len(candidate) && unicode.IsSpace(candidate[i+1]) {
			return len(string(candidate[:i+1]))
		}
	}

	// 3. Whitespace word boundary.
	for i := len(candidate) - 1; i > 0; i-- {
		if unicode.IsSpace(candidate[i]) {
			return len(string(candidate[:i]))
		}
	}

	// 4. Hard cut.
	return len(candidateStr)
}
