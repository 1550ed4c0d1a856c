// Package detector identifies the language of extracted text. Two
// implementations exist: a local lingua-go detector and a Google Cloud
// Translation detector. Both are black boxes to the orchestrator, which only
// sees an ISO 639-1 code or "not detected".
package detector

import (
	"context"
	"strings"

	lingua "github.com/pemistahl/lingua-go"

	"github.com/valpere/lipyantar/internal/script"
)

// Detector resolves text to an ISO 639-1 language code. The bool is false
// when the language could not be determined; callers treat that as "unknown".
type Detector interface {
	DetectISO(ctx context.Context, text string) (string, bool)
}

// linguaLanguages restricts the statistical model to the languages the
// product converts between. lingua has no models for Kannada, Malayalam,
// Odia, or Assamese; text in those scripts never reaches the statistical
// model because the script shortcut below resolves it first.
var linguaLanguages = []lingua.Language{
	lingua.English,
	lingua.Hindi,
	lingua.Marathi,
	lingua.Tamil,
	lingua.Telugu,
	lingua.Gujarati,
	lingua.Bengali,
	lingua.Punjabi,
}

// Lingua is a local language detector. The underlying model is expensive to
// build; construct once and reuse.
type Lingua struct {
	detector lingua.LanguageDetector
}

// NewLingua builds the lingua-go detector for the product's language set.
func NewLingua() *Lingua {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(linguaLanguages...).
		Build()

	return &Lingua{detector: detector}
}

// DetectISO resolves text to a language code. Text containing Indic-script
// runes is resolved directly from the script, which is both cheaper and
// covers scripts lingua has no model for; only Roman text goes through the
// statistical model.
func (d *Lingua) DetectISO(_ context.Context, text string) (string, bool) {
	if text == "" {
		return "", false
	}

	if c := script.Classify(text); c.IsIndic {
		return script.LanguageFor(c.Scripts[0]), true
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return isoCode(lang), true
}

// isoCode lowercases lingua's uppercase ISO codes ("EN") to match the
// language table keys.
func isoCode(lang lingua.Language) string {
	return strings.ToLower(lang.IsoCode639_1().String())
}
