package detector

import (
	"context"
	"testing"
)

func TestLingua_DetectISO(t *testing.T) {
	d := NewLingua()
	ctx := context.Background()

	tests := []struct {
		name     string
		text     string
		wantCode string
		wantOK   bool
	}{
		{
			name:     "empty text",
			text:     "",
			wantCode: "",
			wantOK:   false,
		},
		{
			name:     "english text",
			text:     "Hello, this is a test in English.",
			wantCode: "en",
			wantOK:   true,
		},
		{
			name:     "devanagari resolves by script",
			text:     "नमस्ते दुनिया, यह एक परीक्षण है।",
			wantCode: "hi",
			wantOK:   true,
		},
		{
			name:     "tamil resolves by script",
			text:     "வணக்கம் உலகம்",
			wantCode: "ta",
			wantOK:   true,
		},
		{
			name:     "telugu resolves by script",
			text:     "నమస్కారం ప్రపంచం",
			wantCode: "te",
			wantOK:   true,
		},
		{
			name:     "kannada resolves by script despite no lingua model",
			text:     "ನಮಸ್ಕಾರ ಜಗತ್ತು",
			wantCode: "kn",
			wantOK:   true,
		},
		{
			name:     "malayalam resolves by script despite no lingua model",
			text:     "നമസ്കാരം ലോകം",
			wantCode: "ml",
			wantOK:   true,
		},
		{
			name:     "oriya resolves by script despite no lingua model",
			text:     "ନମସ୍କାର ଜଗତ",
			wantCode: "or",
			wantOK:   true,
		},
		{
			name:     "gurmukhi resolves by script",
			text:     "ਸਤਿ ਸ੍ਰੀ ਅਕਾਲ ਦੁਨਿਆ",
			wantCode: "pa",
			wantOK:   true,
		},
		{
			name:     "mixed roman and devanagari resolves to the indic script",
			text:     "hello नमस्ते",
			wantCode: "hi",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := d.DetectISO(ctx, tt.text)
			if ok != tt.wantOK {
				t.Errorf("DetectISO(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
				return
			}
			if tt.wantOK && code != tt.wantCode {
				t.Errorf("DetectISO(%q) = %q, want %q", tt.text, code, tt.wantCode)
			}
		})
	}
}

func TestLingua_ShortText(t *testing.T) {
	d := NewLingua()

	// Short text may or may not be detected; it must not panic and must
	// report ok=false rather than a junk code when undecided.
	code, ok := d.DetectISO(context.Background(), "Hi")
	if ok && code == "" {
		t.Error("ok=true with empty code")
	}
}
