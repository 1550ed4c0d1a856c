// Package script identifies the writing system of a piece of text by Unicode
// code-point ranges and holds the fixed language and target-script tables
// shared by the formatter and the orchestrator.
package script

import (
	"fmt"
	"strings"
)

// Script identifies a writing system. Latin stands in for the ITRANS
// transliteration scheme rather than a true script; IAST is a diacritic-heavy
// Roman scheme treated as its own format class.
type Script string

const (
	Devanagari Script = "Devanagari"
	Bengali    Script = "Bengali"
	Gurmukhi   Script = "Gurmukhi"
	Gujarati   Script = "Gujarati"
	Oriya      Script = "Oriya"
	Tamil      Script = "Tamil"
	Telugu     Script = "Telugu"
	Kannada    Script = "Kannada"
	Malayalam  Script = "Malayalam"
	Latin      Script = "Latin"
	IAST       Script = "IAST"
)

// blockRange is a closed Unicode code-point interval belonging to one script.
type blockRange struct {
	lo, hi rune
	script Script
}

// Unicode blocks for the nine Indic scripts the product supports.
var indicBlocks = []blockRange{
	{0x0900, 0x097F, Devanagari},
	{0x0980, 0x09FF, Bengali}, // also Assamese
	{0x0A00, 0x0A7F, Gurmukhi},
	{0x0A80, 0x0AFF, Gujarati},
	{0x0B00, 0x0B7F, Oriya},
	{0x0B80, 0x0BFF, Tamil},
	{0x0C00, 0x0C7F, Telugu},
	{0x0C80, 0x0CFF, Kannada},
	{0x0D00, 0x0D7F, Malayalam},
}

// Classification is the result of inspecting a string's code points.
type Classification struct {
	IsIndic bool
	Scripts []Script
}

// Classify reports whether text contains Indic-script characters and which
// scripts were seen, in first-occurrence order. It is total: any string,
// including the empty string, classifies without error.
func Classify(text string) Classification {
	var c Classification
	seen := make(map[Script]bool)
	for _, r := range text {
		s, ok := Of(r)
		if !ok {
			continue
		}
		c.IsIndic = true
		if !seen[s] {
			seen[s] = true
			c.Scripts = append(c.Scripts, s)
		}
	}
	return c
}

// Of returns the Indic script a rune belongs to, or false for runes outside
// all nine blocks.
func Of(r rune) (Script, bool) {
	for _, b := range indicBlocks {
		if r >= b.lo && r <= b.hi {
			return b.script, true
		}
	}
	return "", false
}

// IsIndic reports whether r falls in any Indic block.
func IsIndic(r rune) bool {
	_, ok := Of(r)
	return ok
}

// RangeClass returns a regexp character class matching any rune in any of the
// nine Indic blocks, for callers that repair text with regular expressions.
func RangeClass() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, blk := range indicBlocks {
		fmt.Fprintf(&b, `\x{%04X}-\x{%04X}`, blk.lo, blk.hi)
	}
	b.WriteByte(']')
	return b.String()
}

// languageToScript maps ISO 639-1 language codes to the script each language
// is written in. Marathi shares Devanagari with Hindi; Assamese is carried by
// the Bengali block.
var languageToScript = map[string]Script{
	"hi": Devanagari,
	"mr": Devanagari,
	"ta": Tamil,
	"te": Telugu,
	"kn": Kannada,
	"ml": Malayalam,
	"gu": Gujarati,
	"bn": Bengali,
	"pa": Gurmukhi,
	"or": Oriya,
	"as": Bengali,
	"en": Latin,
}

// ForLanguage resolves a detected language code to a source script. English,
// empty, and unrecognized codes all resolve to Latin (ITRANS) so that Roman
// input is transliterated rather than rejected.
func ForLanguage(code string) Script {
	if s, ok := languageToScript[code]; ok {
		return s
	}
	return Latin
}

// KnownLanguage reports whether code has an entry in the language table.
func KnownLanguage(code string) bool {
	_, ok := languageToScript[code]
	return ok
}

// scriptToLanguage picks one representative language per script for the
// reverse direction. Devanagari resolves to Hindi and Bengali-block text to
// Bengali; the script alone cannot distinguish Marathi or Assamese.
var scriptToLanguage = map[Script]string{
	Devanagari: "hi",
	Tamil:      "ta",
	Telugu:     "te",
	Kannada:    "kn",
	Malayalam:  "ml",
	Gujarati:   "gu",
	Bengali:    "bn",
	Gurmukhi:   "pa",
	Oriya:      "or",
	Latin:      "en",
}

// LanguageFor returns the representative language code for a script, or
// "unknown" for scripts without one.
func LanguageFor(s Script) string {
	if code, ok := scriptToLanguage[s]; ok {
		return code
	}
	return "unknown"
}

// Target is one entry of the fixed output list: a user-facing display name
// plus the script to convert into.
type Target struct {
	DisplayName string
	Script      Script
}

// targets is the product's output list. Order is fixed and identical across
// requests; Devanagari appears twice under Hindi and Marathi display names.
var targets = []Target{
	{"Devanagari (Hindi)", Devanagari},
	{"Devanagari (Marathi)", Devanagari},
	{"Tamil", Tamil},
	{"Telugu", Telugu},
	{"Kannada", Kannada},
	{"Malayalam", Malayalam},
	{"Gujarati", Gujarati},
	{"Bengali", Bengali},
	{"Gurmukhi", Gurmukhi},
	{"Oriya", Oriya},
	{"Roman", Latin},
}

// Targets returns the fixed ordered list of output targets. The returned
// slice is a copy; callers may not mutate the table.
func Targets() []Target {
	out := make([]Target, len(targets))
	copy(out, targets)
	return out
}
