package ocr

import (
	"context"
	"errors"
	"testing"
)

type stubEngine struct {
	text string
	err  error
}

func (s *stubEngine) Name() string { return "stub" }

func (s *stubEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	return s.text, s.err
}

func (s *stubEngine) Close() error { return nil }

func TestExtractText(t *testing.T) {
	ctx := context.Background()

	t.Run("collapses whitespace", func(t *testing.T) {
		engine := &stubEngine{text: "  नमस्ते \n\n  दुनिया \t hello "}
		got, err := ExtractText(ctx, engine, "img.jpg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "नमस्ते दुनिया hello" {
			t.Errorf("ExtractText = %q", got)
		}
	})

	t.Run("empty result is ErrNoText", func(t *testing.T) {
		engine := &stubEngine{text: "   \n\t  "}
		_, err := ExtractText(ctx, engine, "img.jpg")
		if !errors.Is(err, ErrNoText) {
			t.Errorf("expected ErrNoText, got %v", err)
		}
	})

	t.Run("engine error is wrapped", func(t *testing.T) {
		engineErr := errors.New("boom")
		engine := &stubEngine{err: engineErr}
		_, err := ExtractText(ctx, engine, "img.jpg")
		if !errors.Is(err, engineErr) {
			t.Errorf("expected wrapped engine error, got %v", err)
		}
	})
}

func TestNewTesseract_Languages(t *testing.T) {
	tess := NewTesseract("")
	if len(tess.languages) != 2 || tess.languages[0] != "hin" || tess.languages[1] != "eng" {
		t.Errorf("default languages = %v, want [hin eng]", tess.languages)
	}

	tess = NewTesseract("tam+eng")
	if len(tess.languages) != 2 || tess.languages[0] != "tam" {
		t.Errorf("languages = %v, want [tam eng]", tess.languages)
	}
}
