// Package validator checks that a conversion result is actually written in
// the requested target script. The engine occasionally "succeeds" while
// emitting text in the wrong script (garbled OCR input passed through
// untouched is the common case); the orchestrator treats a validation
// failure like a conversion failure and takes the fallback hop.
package validator

import (
	"fmt"

	"github.com/valpere/lipyantar/internal/script"
)

// minValidationRunes is the minimum rune count required to attempt
// validation. A one- or two-character result carries too little signal;
// shorter outputs are accepted without checking.
const minValidationRunes = 3

// Validator checks conversion output against its target script. Stateless
// and safe for concurrent use.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// Check returns an error when converted does not look like target-script
// text. For an Indic target the output must contain at least one rune of
// that script; for a Latin target the output must not be predominantly
// Indic. Empty output always fails.
func (v *Validator) Check(converted string, target script.Script) error {
	if converted == "" {
		return fmt.Errorf("conversion result is empty")
	}

	runes := []rune(converted)
	if len(runes) < minValidationRunes {
		return nil
	}

	c := script.Classify(converted)

	if target == script.Latin || target == script.IAST {
		if indicMajority(runes) {
			return fmt.Errorf("expected %s output but text is mostly indic script", target)
		}
		return nil
	}

	for _, s := range c.Scripts {
		if s == target {
			return nil
		}
	}
	return fmt.Errorf("expected %s output but found none (saw %v)", target, c.Scripts)
}

// indicMajority reports whether more than half of the letterish runes fall
// in Indic blocks. Spaces and punctuation are ignored so short annotations
// do not tip the balance.
func indicMajority(runes []rune) bool {
	indic, counted := 0, 0
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		counted++
		if script.IsIndic(r) {
			indic++
		}
	}
	return counted > 0 && indic*2 > counted
}
