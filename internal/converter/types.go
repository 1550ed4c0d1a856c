// Package converter defines the interface to the external transliteration
// engine and its HTTP client implementation. The engine is opaque: a pure
// source-script, target-script, text function that may fail.
package converter

import (
	"context"
	"errors"

	"github.com/valpere/lipyantar/internal/script"
)

// ErrEmptyResult is returned when the engine answered but produced no text.
var ErrEmptyResult = errors.New("empty conversion result")

// Converter converts text from one script to another.
type Converter interface {
	Name() string
	Convert(ctx context.Context, source, target script.Script, text string) (string, error)
	IsAvailable(ctx context.Context) error
}

// schemeNames maps Script values to the scheme identifiers the Aksharamukha
// engine expects. Only Latin and IAST differ from the script name itself.
var schemeNames = map[script.Script]string{
	script.Latin: "ITRANS",
	script.IAST:  "IAST",
}

// SchemeName returns the engine-side scheme identifier for a script.
func SchemeName(s script.Script) string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return string(s)
}
