package converter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/valpere/lipyantar/internal/script"
)

func newTestClient(server *httptest.Server) *Aksharamukha {
	return &Aksharamukha{
		baseURL: server.URL,
		client:  server.Client(),
	}
}

func TestAksharamukha_Name(t *testing.T) {
	a := NewAksharamukha("", 0)
	if a.Name() != "aksharamukha" {
		t.Errorf("expected 'aksharamukha', got %q", a.Name())
	}
}

func TestSchemeName(t *testing.T) {
	tests := []struct {
		script script.Script
		want   string
	}{
		{script.Latin, "ITRANS"},
		{script.IAST, "IAST"},
		{script.Devanagari, "Devanagari"},
		{script.Tamil, "Tamil"},
	}
	for _, tt := range tests {
		if got := SchemeName(tt.script); got != tt.want {
			t.Errorf("SchemeName(%v) = %q, want %q", tt.script, got, tt.want)
		}
	}
}

func TestAksharamukha_Convert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/public" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("source"); got != "ITRANS" {
			t.Errorf("source = %q, want ITRANS", got)
		}
		if got := r.URL.Query().Get("target"); got != "Devanagari" {
			t.Errorf("target = %q, want Devanagari", got)
		}
		w.Write([]byte("नमस्ते"))
	}))
	defer server.Close()

	a := newTestClient(server)

	out, err := a.Convert(context.Background(), script.Latin, script.Devanagari, "namaste")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "नमस्ते" {
		t.Errorf("Convert = %q, want नमस्ते", out)
	}
}

func TestAksharamukha_Convert_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad scheme"))
	}))
	defer server.Close()

	a := newTestClient(server)

	_, err := a.Convert(context.Background(), script.Latin, script.Tamil, "namaste")
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 call (no retry on 4xx), got %d", got)
	}
}

func TestAksharamukha_Convert_RetriesServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("வணக்கம்"))
	}))
	defer server.Close()

	a := newTestClient(server)

	out, err := a.Convert(context.Background(), script.Latin, script.Tamil, "vaNakkam")
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if out != "வணக்கம்" {
		t.Errorf("Convert = %q, want வணக்கம்", out)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
}

func TestAksharamukha_Convert_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("   "))
	}))
	defer server.Close()

	a := newTestClient(server)

	_, err := a.Convert(context.Background(), script.Latin, script.Devanagari, "namaste")
	if err != ErrEmptyResult {
		t.Errorf("expected ErrEmptyResult, got %v", err)
	}
}

func TestAksharamukha_Convert_ChunksLongText(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("अंश"))
	}))
	defer server.Close()

	a := newTestClient(server)

	// Well past maxChunkRunes, with word boundaries to split at.
	long := strings.Repeat("namaste duniya ", 300)
	out, err := a.Convert(context.Background(), script.Latin, script.Devanagari, long)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() < 2 {
		t.Errorf("expected multiple chunk requests, got %d", calls.Load())
	}
	if !strings.Contains(out, "अंश") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestAksharamukha_Convert_ProtectsTokensForLatinSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The engine must receive a shielded marker instead of the raw URL,
		// and echoes the text back (identity conversion for the test).
		text := r.URL.Query().Get("text")
		if strings.Contains(text, "example.com") {
			t.Errorf("raw URL leaked to the engine: %q", text)
		}
		if !strings.Contains(text, "##[PH0]##") {
			t.Errorf("expected shielded marker in request, got %q", text)
		}
		w.Write([]byte(text))
	}))
	defer server.Close()

	a := newTestClient(server)

	out, err := a.Convert(context.Background(), script.Latin, script.Devanagari,
		"visit https://example.com now")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "https://example.com") {
		t.Errorf("URL not restored: %q", out)
	}
	if strings.Contains(out, "PH0") || strings.Contains(out, "##") {
		t.Errorf("marker left in output: %q", out)
	}
}

func TestAksharamukha_Convert_NoProtectionForIndicSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		text := r.URL.Query().Get("text")
		if strings.Contains(text, "[PH") {
			t.Errorf("unexpected marker for indic source: %q", text)
		}
		w.Write([]byte("converted"))
	}))
	defer server.Close()

	a := newTestClient(server)

	if _, err := a.Convert(context.Background(), script.Devanagari, script.Tamil, "नमस्ते 123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAksharamukha_DefaultConstruction(t *testing.T) {
	a := NewAksharamukha("", 0)
	if a.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want default", a.baseURL)
	}
	if a.client.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", a.client.Timeout)
	}

	a = NewAksharamukha("http://localhost:8085/", 5*time.Second)
	if a.baseURL != "http://localhost:8085" {
		t.Errorf("baseURL = %q, trailing slash should be trimmed", a.baseURL)
	}
}
