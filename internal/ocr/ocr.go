// Package ocr is the boundary to the OCR engine. The engine is constructed
// once at process start and injected wherever text extraction is needed; the
// conversion core never touches it. Confidence scores and bounding boxes are
// discarded: only the recognized text matters downstream.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoText is returned when the engine ran but found no readable text. The
// caller must reject the request before the conversion core is invoked; an
// empty extraction is the one hard failure in the pipeline.
var ErrNoText = errors.New("no text could be extracted from the image")

// Engine recognizes text in an image file.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, imagePath string) (string, error)
	Close() error
}

// ExtractText runs the engine on an image and normalizes the raw output:
// whitespace runs collapse to single spaces and the result is trimmed.
// Returns ErrNoText when nothing readable remains.
func ExtractText(ctx context.Context, engine Engine, imagePath string) (string, error) {
	raw, err := engine.Recognize(ctx, imagePath)
	if err != nil {
		return "", fmt.Errorf("%s recognition failed: %w", engine.Name(), err)
	}

	text := strings.Join(strings.Fields(raw), " ")
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
