// Package formatter cleans raw transliteration output into readable text.
//
// Conversion output arrives with two distinct kinds of damage: Indic-script
// text carries stray uppercase Latin letters left over from case-sensitive
// ITRANS input, and Roman text carries scheme diacritics that most readers
// cannot parse. Clean branches on the script of the text and repairs each
// kind in place. The correction tables live in tables.go and are never
// mutated after construction.
package formatter

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/valpere/lipyantar/internal/script"
)

// Formatter holds the merged correction tables. Safe for concurrent use; all
// state is read-only after New.
type Formatter struct {
	corrections []correction
}

// New returns a Formatter with the built-in correction tables.
func New() *Formatter {
	return &Formatter{corrections: wordCorrections}
}

// NewWithCorrections returns a Formatter whose word-correction table is the
// built-in table followed by extra user pairs, in sorted key order so the
// pass stays deterministic. The tables are merged once here and read-only
// afterwards.
func NewWithCorrections(extra map[string]string) *Formatter {
	merged := make([]correction, len(wordCorrections), len(wordCorrections)+len(extra))
	copy(merged, wordCorrections)

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		merged = append(merged, correction{garbled: k, canonical: extra[k]})
	}
	return &Formatter{corrections: merged}
}

// Clean formats raw conversion output for the given target kind. It is pure
// and deterministic: cleaning already-clean text is a no-op.
func (f *Formatter) Clean(text string, kind script.Kind) string {
	if text == "" {
		return text
	}
	text = norm.NFC.String(text)

	if script.Classify(text).IsIndic {
		text = cleanIndicScript(text)
	} else {
		text = f.applyWordCorrections(text)
		text = applyEnglishToIndic(text)
		text = replaceCharacters(text)
		if kind == script.KindRoman {
			text = formatForEnglish(text)
		}
	}

	return collapseWhitespace(text)
}

// CleanAll formats a batch of conversion outputs keyed by target display
// name, classifying each entry's kind from the name.
func (f *Formatter) CleanAll(outputs map[string]string) map[string]string {
	cleaned := make(map[string]string, len(outputs))
	for name, text := range outputs {
		cleaned[name] = f.Clean(text, script.KindOf(name))
	}
	return cleaned
}

// applyWordCorrections replaces known garbled words. The trigger is
// case-insensitive but the replacement is an exact-case substring replace, so
// a variant that matches a key only in letter (not case) is left alone. That
// asymmetry is deliberate: it keeps the trigger forgiving without guessing at
// casings that were never observed.
func (f *Formatter) applyWordCorrections(text string) string {
	lower := strings.ToLower(text)
	for _, c := range f.corrections {
		if strings.Contains(lower, strings.ToLower(c.garbled)) {
			text = strings.ReplaceAll(text, c.garbled, c.canonical)
			lower = strings.ToLower(text)
		}
	}
	return text
}

// applyEnglishToIndic substitutes common English words when the text is a
// mixed-script artifact: at least one uppercase Latin letter and at least one
// Indic rune.
func applyEnglishToIndic(text string) string {
	hasUpper := false
	for _, r := range text {
		if r >= 'A' && r <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper || !script.Classify(text).IsIndic {
		return text
	}
	for _, c := range englishToIndicWords {
		text = strings.ReplaceAll(text, c.garbled, c.canonical)
	}
	return text
}

// replaceCharacters folds diacritic and mixed-case characters per the
// characterReplacements table.
func replaceCharacters(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if repl, ok := characterReplacements[r]; ok {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Indic-case repair rules. Each rule only ever lowercases; none introduces an
// uppercase letter. Rules run in order and each sees the previous rule's
// output.
var (
	indicClass        = script.RangeClass()
	upperBeforeIndic  = regexp.MustCompile(`[A-Z]` + indicClass)
	upperAfterIndic   = regexp.MustCompile(indicClass + `[A-Z]`)
	upperBetweenIndic = regexp.MustCompile(indicClass + `[A-Z]` + indicClass)
	loneUpper         = regexp.MustCompile(`\b[A-Z]\b`)
)

// cleanIndicScript lowercases stray uppercase Latin letters adjacent to,
// between, or standing alone among Indic-script characters. This is a repair
// heuristic for conversion artifacts, not a casing model.
func cleanIndicScript(text string) string {
	text = upperBeforeIndic.ReplaceAllStringFunc(text, strings.ToLower)
	text = upperAfterIndic.ReplaceAllStringFunc(text, strings.ToLower)
	text = upperBetweenIndic.ReplaceAllStringFunc(text, strings.ToLower)
	text = loneUpper.ReplaceAllStringFunc(text, strings.ToLower)
	return text
}

// formatForEnglish makes Roman output readable: long-vowel diacritics become
// doubled letters, then words that look like transliterated proper nouns are
// title-cased. The heuristic also catches ordinary lowercase words longer
// than four letters; that over-capitalization is accepted behavior.
func formatForEnglish(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if repl, ok := vowelLengthMappings[r]; ok {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}
	text = b.String()

	words := strings.Fields(text)
	for i, word := range words {
		if isAllUpper(word) || isTitleCase(word) {
			continue
		}
		if containsDoubledVowel(word) || len([]rune(word)) > 4 || isAllLower(word) {
			words[i] = titleCase(word)
		}
	}
	return strings.Join(words, " ")
}

var doubledVowels = []string{"aa", "ee", "ii", "oo", "uu"}

func containsDoubledVowel(word string) bool {
	for _, dv := range doubledVowels {
		if strings.Contains(word, dv) {
			return true
		}
	}
	return false
}

// isAllUpper reports whether word has at least one letter and no lowercase
// letters.
func isAllUpper(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

func isAllLower(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// isTitleCase reports whether word is already First-upper-rest-lower.
func isTitleCase(word string) bool {
	runes := []rune(word)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// titleCase uppercases the first letter and lowercases the rest.
func titleCase(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
