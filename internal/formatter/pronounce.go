package formatter

import (
	"strings"

	"github.com/valpere/lipyantar/internal/script"
)

// Pronunciation is the result of PronunciationGuide: the text itself, a
// lowercase rendering with long-vowel digraphs annotated with spoken
// equivalents, and, for long single words, a hyphenated syllable rendering.
type Pronunciation struct {
	Text      string `json:"text"`
	Guide     string `json:"guide,omitempty"`
	Syllables string `json:"syllables,omitempty"`
}

// syllableMinRunes is the length above which a single word gets a syllable
// rendering. Shorter words read fine without one.
const syllableMinRunes = 6

// PronunciationGuide annotates Roman-target text with reading aids. For
// non-Roman kinds the text is returned untouched.
func (f *Formatter) PronunciationGuide(text string, kind script.Kind) Pronunciation {
	p := Pronunciation{Text: text}
	if kind != script.KindRoman {
		return p
	}

	guide := strings.ToLower(text)
	for _, h := range pronunciationHints {
		guide = strings.ReplaceAll(guide, h.garbled, h.canonical)
	}
	p.Guide = guide

	words := strings.Fields(text)
	if len(words) == 1 && len([]rune(text)) > syllableMinRunes {
		p.Syllables = text + " → " + breakIntoSyllables(text)
	}

	return p
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// breakIntoSyllables inserts a break after each vowel that is followed by a
// non-vowel. A greedy heuristic: it may split consonant clusters in
// linguistically imperfect places, which is accepted for a reading aid.
func breakIntoSyllables(word string) string {
	runes := []rune(word)
	var syllables []string
	var current []rune

	for i, r := range runes {
		current = append(current, r)
		if i < len(runes)-1 && isVowel(r) && !isVowel(runes[i+1]) {
			syllables = append(syllables, string(current))
			current = current[:0]
		}
	}
	if len(current) > 0 {
		syllables = append(syllables, string(current))
	}

	return strings.Join(syllables, "-")
}
