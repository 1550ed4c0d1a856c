// Package preserve shields tokens that must survive conversion byte-for-byte
// (URLs, email addresses, digit runs) by replacing them with numbered markers
// before the text is sent to the transliteration engine. Pushing a URL or a
// numeral through an ITRANS conversion corrupts it irreversibly; Restore puts
// the originals back afterwards.
package preserve

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// URLs with an explicit scheme, or bare www. hosts.
	reURL = regexp.MustCompile(`(?i)\bhttps?://[^\s]+|\bwww\.[^\s]+`)

	// Email addresses.
	reEmail = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Standalone runs of ASCII digits, optionally with separators inside.
	reDigits = regexp.MustCompile(`\b\d+(?:[.,:/-]\d+)*\b`)

	// Marker reference in converted text.
	reMarker = regexp.MustCompile(`\[PH(\d+)\]`)
)

// Protect replaces URLs, email addresses, and digit runs with numbered
// markers [PH0], [PH1], … in the order they appear. It returns the modified
// text and the captured originals for Restore.
func Protect(text string) (string, []string) {
	var tokens []string
	counter := 0

	replace := func(match string) string {
		id := fmt.Sprintf("[PH%d]", counter)
		tokens = append(tokens, match)
		counter++
		return id
	}

	// Order matters: URLs contain dots and digits, emails contain digits, so
	// the broader patterns run first.
	text = reURL.ReplaceAllStringFunc(text, replace)
	text = reEmail.ReplaceAllStringFunc(text, replace)
	text = reDigits.ReplaceAllStringFunc(text, replace)

	return text, tokens
}

// Restore substitutes [PHn] markers in text back with the originals captured
// by Protect. Unrecognised indices leave the marker in place.
func Restore(text string, tokens []string) string {
	return reMarker.ReplaceAllStringFunc(text, func(match string) string {
		sub := reMarker.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		idx := 0
		fmt.Sscanf(sub[1], "%d", &idx)
		if idx < 0 || idx >= len(tokens) {
			return match
		}
		return tokens[idx]
	})
}

// Missing reports the indices of markers that the converter dropped from the
// text. A lossy engine occasionally swallows bracketed tokens; callers use
// this to decide whether the protected conversion is trustworthy.
func Missing(text string, tokens []string) []int {
	var missing []int
	for i := range tokens {
		if !strings.Contains(text, fmt.Sprintf("[PH%d]", i)) {
			missing = append(missing, i)
		}
	}
	return missing
}
