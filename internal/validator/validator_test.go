package validator

import (
	"testing"

	"github.com/valpere/lipyantar/internal/script"
)

func TestCheck(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		text    string
		target  script.Script
		wantErr bool
	}{
		{
			name:    "empty output always fails",
			text:    "",
			target:  script.Devanagari,
			wantErr: true,
		},
		{
			name:    "devanagari output for devanagari target",
			text:    "नमस्ते दुनिया",
			target:  script.Devanagari,
			wantErr: false,
		},
		{
			name:    "latin output for devanagari target",
			text:    "namaste duniya",
			target:  script.Devanagari,
			wantErr: true,
		},
		{
			name:    "tamil output for devanagari target",
			text:    "வணக்கம் உலகம்",
			target:  script.Devanagari,
			wantErr: true,
		},
		{
			name:    "mixed output containing the target script passes",
			text:    "नमस्ते hello",
			target:  script.Devanagari,
			wantErr: false,
		},
		{
			name:    "latin output for latin target",
			text:    "namaste duniya",
			target:  script.Latin,
			wantErr: false,
		},
		{
			name:    "indic output for latin target fails",
			text:    "नमस्ते दुनिया",
			target:  script.Latin,
			wantErr: true,
		},
		{
			name:    "mostly latin with one indic rune passes for latin target",
			text:    "namaste duniya फ",
			target:  script.Latin,
			wantErr: false,
		},
		{
			name:    "diacritic roman output for iast target",
			text:    "namaskāra",
			target:  script.IAST,
			wantErr: false,
		},
		{
			name:    "too short to validate passes",
			text:    "ab",
			target:  script.Devanagari,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Check(tt.text, tt.target)
			if tt.wantErr && err == nil {
				t.Errorf("Check(%q, %v) = nil, want error", tt.text, tt.target)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Check(%q, %v) = %v, want nil", tt.text, tt.target, err)
			}
		})
	}
}

func TestIndicMajority(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"नमस्ते", true},
		{"namaste", false},
		{"नमस्ते ab", true}, // 6 indic vs 2 latin
		{"abcdef फ", false},
	}

	for _, tt := range tests {
		if got := indicMajority([]rune(tt.text)); got != tt.want {
			t.Errorf("indicMajority(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
