package preserve

import "testing"

func TestProtect(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantText   string
		wantTokens []string
	}{
		{
			name:       "no protectable tokens",
			input:      "namaste duniya",
			wantText:   "namaste duniya",
			wantTokens: nil,
		},
		{
			name:       "url",
			input:      "visit https://example.com/page now",
			wantText:   "visit [PH0] now",
			wantTokens: []string{"https://example.com/page"},
		},
		{
			name:       "bare www host",
			input:      "see www.example.org today",
			wantText:   "see [PH0] today",
			wantTokens: []string{"www.example.org"},
		},
		{
			name:       "email",
			input:      "write to ram.sita@example.in please",
			wantText:   "write to [PH0] please",
			wantTokens: []string{"ram.sita@example.in"},
		},
		{
			name:       "digit run",
			input:      "pin 560001 here",
			wantText:   "pin [PH0] here",
			wantTokens: []string{"560001"},
		},
		{
			name:       "date with separators",
			input:      "on 14/11/2024 evening",
			wantText:   "on [PH0] evening",
			wantTokens: []string{"14/11/2024"},
		},
		{
			name:       "mixed tokens numbered in order",
			input:      "mail a@b.co or call 12345 via https://x.in",
			wantText:   "mail [PH1] or call [PH2] via [PH0]",
			wantTokens: []string{"https://x.in", "a@b.co", "12345"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, tokens := Protect(tt.input)
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
			if len(tokens) != len(tt.wantTokens) {
				t.Fatalf("tokens = %v, want %v", tokens, tt.wantTokens)
			}
			for i := range tokens {
				if tokens[i] != tt.wantTokens[i] {
					t.Errorf("tokens[%d] = %q, want %q", i, tokens[i], tt.wantTokens[i])
				}
			}
		})
	}
}

func TestProtectRestore_RoundTrip(t *testing.T) {
	input := "email ram@example.in or visit https://example.com before 2024"
	protected, tokens := Protect(input)
	restored := Restore(protected, tokens)
	if restored != input {
		t.Errorf("round trip = %q, want %q", restored, input)
	}
}

func TestRestore_UnknownIndexLeftAlone(t *testing.T) {
	got := Restore("text [PH7] more", []string{"only-one"})
	if got != "text [PH7] more" {
		t.Errorf("got %q, want marker left in place", got)
	}
}

func TestMissing(t *testing.T) {
	tokens := []string{"a", "b", "c"}

	if m := Missing("[PH0] x [PH1] y [PH2]", tokens); m != nil {
		t.Errorf("expected no missing markers, got %v", m)
	}

	m := Missing("[PH0] only", tokens)
	if len(m) != 2 || m[0] != 1 || m[1] != 2 {
		t.Errorf("Missing = %v, want [1 2]", m)
	}
}
