package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguages trains Tesseract on Hindi plus English, which covers both
// Devanagari source material and Roman transliterations in one pass.
const DefaultLanguages = "hin+eng"

// Tesseract implements Engine with the gosseract binding. A fresh gosseract
// client is created per recognition: the client is not safe for concurrent
// use and its setup cost is negligible next to recognition itself.
type Tesseract struct {
	languages []string
}

// NewTesseract constructs the engine for the given "+"-separated language
// string, e.g. "hin+eng". Empty selects DefaultLanguages.
func NewTesseract(languages string) *Tesseract {
	if languages == "" {
		languages = DefaultLanguages
	}
	return &Tesseract{languages: strings.Split(languages, "+")}
}

func (t *Tesseract) Name() string { return "tesseract" }

func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}

// Close is a no-op; clients are per-call.
func (t *Tesseract) Close() error { return nil }
