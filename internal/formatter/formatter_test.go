package formatter

import (
	"strings"
	"testing"

	"github.com/valpere/lipyantar/internal/script"
)

func TestClean_RomanTarget(t *testing.T) {
	f := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "known garbled word exact case",
			input:    "dIpAvalI",
			expected: "Deepavali",
		},
		{
			name:     "known garbled word with diacritics",
			input:    "dīpāvalī",
			expected: "Deepavali",
		},
		{
			name:     "garbled word inside sentence",
			input:    "happy dIpAvaLi greetings",
			expected: "Happy Deepavali Greetings",
		},
		{
			name:     "case-insensitive trigger without exact key is not corrected",
			input:    "DIPAVALI",
			expected: "Dipavali", // only generic char cleanup + title case
		},
		{
			name:     "diacritic folding",
			input:    "kṛṣṇa",
			expected: "Krshna",
		},
		{
			name:     "digraph word gets title case",
			input:    "pitaaji",
			expected: "Pitaaji",
		},
		{
			name:     "short lowercase word still title-cased",
			input:    "om",
			expected: "Om",
		},
		{
			name:     "already title case left alone",
			input:    "Deepavali",
			expected: "Deepavali",
		},
		{
			name:     "all caps left alone",
			input:    "NGO",
			expected: "NGO",
		},
		{
			name:     "long vowel diacritics become doubled letters",
			input:    "gītā",
			expected: "Geetaa",
		},
		{
			name:     "whitespace collapsed",
			input:    "  rāma    rāma  \n sītā ",
			expected: "Raama Raama Seetaa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Clean(tt.input, script.KindRoman); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClean_OtherTargetSkipsEnglishPass(t *testing.T) {
	f := New()

	// Same input, non-Roman kind: diacritics fold but no title-casing and no
	// vowel doubling.
	got := f.Clean("kṛṣṇa", script.KindOther)
	if got != "krshna" {
		t.Errorf("Clean = %q, want %q", got, "krshna")
	}

	got = f.Clean("gītā", script.KindIAST)
	if got != "gītā" && got != "gitā" {
		// IAST keeps diacritics meaningful only through the generic pass;
		// long vowels ī/ā are not in characterReplacements so they survive.
		t.Errorf("Clean = %q, diacritics should survive generic pass", got)
	}
}

func TestClean_IndicBranch(t *testing.T) {
	f := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "uppercase before indic rune",
			input:    "Rनमस्ते",
			expected: "rनमस्ते",
		},
		{
			name:     "uppercase after indic rune",
			input:    "नमस्तेR",
			expected: "नमस्तेr",
		},
		{
			name:     "uppercase sandwiched between indic runes",
			input:    "नRम",
			expected: "नrम",
		},
		{
			name:     "standalone single uppercase token",
			input:    "नमस्ते A दुनिया",
			expected: "नमस्ते a दुनिया",
		},
		{
			name:     "indic text untouched",
			input:    "नमस्ते दुनिया",
			expected: "नमस्ते दुनिया",
		},
		{
			name:     "tamil with stray capital",
			input:    "Tவணக்கம்",
			expected: "tவணக்கம்",
		},
		{
			name:     "whitespace collapsed on indic branch too",
			input:    "नमस्ते    दुनिया",
			expected: "नमस्ते दुनिया",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Clean(tt.input, script.KindOther); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// The Indic repair only ever lowercases: no output may contain an uppercase
// Latin letter adjacent to an Indic rune.
func TestCleanIndicScript_NeverLeavesAdjacentUppercase(t *testing.T) {
	inputs := []string{
		"Rनमस्ते दुनिया X",
		"ABCनमस्तेDEF",
		"வணக்கம்Q",
		"नNमMस",
	}

	for _, in := range inputs {
		out := cleanIndicScript(in)
		runes := []rune(out)
		for i, r := range runes {
			if r < 'A' || r > 'Z' {
				continue
			}
			if i > 0 && script.IsIndic(runes[i-1]) {
				t.Errorf("cleanIndicScript(%q) = %q: uppercase %q after indic rune", in, out, r)
			}
			if i < len(runes)-1 && script.IsIndic(runes[i+1]) {
				t.Errorf("cleanIndicScript(%q) = %q: uppercase %q before indic rune", in, out, r)
			}
		}
	}
}

func TestClean_Idempotent(t *testing.T) {
	f := New()

	inputs := []struct {
		text string
		kind script.Kind
	}{
		{"dIpAvalI", script.KindRoman},
		{"kṛṣṇa rāma", script.KindRoman},
		{"pitaaji", script.KindRoman},
		{"नमस्ते Rदुनिया", script.KindOther},
		{"hello world", script.KindOther},
	}

	for _, in := range inputs {
		once := f.Clean(in.text, in.kind)
		twice := f.Clean(once, in.kind)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", in.text, once, twice)
		}
	}
}

func TestApplyEnglishToIndic(t *testing.T) {
	// Requires both an uppercase Latin letter and an Indic rune.
	got := applyEnglishToIndic("Welcome नमस्ते")
	if !strings.Contains(got, "वेलकम") {
		t.Errorf("expected Welcome to be substituted, got %q", got)
	}

	// Pure English text is left alone.
	if got := applyEnglishToIndic("Welcome Hello"); got != "Welcome Hello" {
		t.Errorf("expected no substitution without indic runes, got %q", got)
	}

	// Lowercase-only mixed text is left alone.
	if got := applyEnglishToIndic("welcome नमस्ते"); got != "welcome नमस्ते" {
		t.Errorf("expected no substitution without uppercase, got %q", got)
	}
}

func TestNewWithCorrections(t *testing.T) {
	f := NewWithCorrections(map[string]string{
		"gaNesh": "Ganesha",
	})

	if got := f.Clean("gaNesh", script.KindRoman); got != "Ganesha" {
		t.Errorf("Clean = %q, want %q", got, "Ganesha")
	}

	// Built-in table still applies.
	if got := f.Clean("dIpAvalI", script.KindRoman); got != "Deepavali" {
		t.Errorf("Clean = %q, want %q", got, "Deepavali")
	}
}

func TestCleanAll(t *testing.T) {
	f := New()

	out := f.CleanAll(map[string]string{
		"Roman":              "dIpAvalI",
		"Devanagari (Hindi)": "Rनमस्ते",
		"Tamil":              "வணக்கம்",
	})

	if out["Roman"] != "Deepavali" {
		t.Errorf("Roman = %q, want Deepavali", out["Roman"])
	}
	if out["Devanagari (Hindi)"] != "rनमस्ते" {
		t.Errorf("Devanagari = %q, want rनमस्ते", out["Devanagari (Hindi)"])
	}
	if out["Tamil"] != "வணக்கம்" {
		t.Errorf("Tamil = %q, want unchanged", out["Tamil"])
	}
}

func TestPronunciationGuide(t *testing.T) {
	f := New()

	t.Run("non-roman kind untouched", func(t *testing.T) {
		p := f.PronunciationGuide("नमस्ते", script.KindOther)
		if p.Text != "नमस्ते" || p.Guide != "" || p.Syllables != "" {
			t.Errorf("unexpected guide for non-roman kind: %+v", p)
		}
	})

	t.Run("digraph hints", func(t *testing.T) {
		p := f.PronunciationGuide("Deepavali", script.KindRoman)
		if !strings.Contains(p.Guide, "ee (as in see)") {
			t.Errorf("expected ee hint in guide, got %q", p.Guide)
		}
	})

	t.Run("long single word gets syllables", func(t *testing.T) {
		p := f.PronunciationGuide("pitaaji", script.KindRoman)
		if p.Syllables != "pitaaji → pi-taa-ji" {
			t.Errorf("Syllables = %q, want %q", p.Syllables, "pitaaji → pi-taa-ji")
		}
	})

	t.Run("short word has no syllables", func(t *testing.T) {
		p := f.PronunciationGuide("raama", script.KindRoman)
		if p.Syllables != "" {
			t.Errorf("expected no syllables for short word, got %q", p.Syllables)
		}
	})

	t.Run("multi-word text has no syllables", func(t *testing.T) {
		p := f.PronunciationGuide("raama seetaa lakshmana", script.KindRoman)
		if p.Syllables != "" {
			t.Errorf("expected no syllables for multi-word text, got %q", p.Syllables)
		}
	})
}

func TestBreakIntoSyllables(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"pitaaji", "pi-taa-ji"},
		{"ganesha", "ga-ne-sha"},
		{"rrr", "rrr"},
		{"a", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := breakIntoSyllables(tt.word); got != tt.want {
			t.Errorf("breakIntoSyllables(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}
