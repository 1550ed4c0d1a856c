// Package server exposes the conversion pipeline over HTTP: a full-mapping
// endpoint, a single-target endpoint, and an image endpoint that runs OCR
// before conversion.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/valpere/lipyantar/internal"
	"github.com/valpere/lipyantar/internal/ocr"
	"github.com/valpere/lipyantar/internal/orchestrator"
	"github.com/valpere/lipyantar/internal/store"
)

const maxUploadBytes = 10 << 20

// Server is the lipyantar HTTP server.
type Server struct {
	httpServer   *http.Server
	orchestrator *orchestrator.Orchestrator
	engine       ocr.Engine
	store        *store.Store
	logger       *slog.Logger

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: localhost)
	Host string
	// Port is the port to listen on (default: 8080)
	Port int
	// Orchestrator runs conversions; required.
	Orchestrator *orchestrator.Orchestrator
	// Engine handles image uploads; nil disables the image path.
	Engine ocr.Engine
	// Store logs requests and results; nil disables logging.
	Store *store.Store
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Orchestrator == nil {
		return nil, errors.New("orchestrator is required")
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		orchestrator: cfg.Orchestrator,
		engine:       cfg.Engine,
		store:        cfg.Store,
		logger:       cfg.Logger,
	}

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      s.Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Handler returns the route table. Exposed separately so tests can drive it
// without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/transliterate", s.handleTransliterate)
	mux.HandleFunc("POST /api/transliterate/single", s.handleSingle)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Start runs the server until the context is cancelled or the listener
// fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

func (s *Server) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

type transliterateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
	Target   string `json:"target,omitempty"`
}

type transliterateResponse struct {
	RequestID string                  `json:"request_id"`
	Source    string                  `json:"source_text"`
	All       *orchestrator.AllResult `json:"all"`
}

type singleResponse struct {
	RequestID string                     `json:"request_id"`
	Source    string                     `json:"source_text"`
	Result    *orchestrator.SingleResult `json:"result"`
}

func (s *Server) handleTransliterate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	sourceLang := s.orchestrator.ResolveSource(ctx, req.Text, req.Language)
	all := s.orchestrator.ConvertAll(ctx, req.Text, sourceLang)

	id := s.logRequest(ctx, req.Text, sourceLang, "")
	writeJSON(w, http.StatusOK, transliterateResponse{
		RequestID: id,
		Source:    req.Text,
		All:       all,
	})
}

func (s *Server) handleSingle(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	result := s.orchestrator.ConvertOne(ctx, req.Text, req.Language, req.Target)

	id := s.logRequest(ctx, req.Text, result.SourceLanguage, req.Target)
	writeJSON(w, http.StatusOK, singleResponse{
		RequestID: id,
		Source:    req.Text,
		Result:    result,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readRequest extracts the input text from either a JSON body or a multipart
// upload carrying an image for OCR. Empty text is a client error.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (transliterateRequest, bool) {
	var req transliterateRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		text, err := s.extractUpload(r)
		if err != nil {
			s.logger.Warn("image extraction failed", "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return req, false
		}
		req.Text = text
		req.Language = r.FormValue("language")
		req.Target = r.FormValue("target")
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return req, false
		}
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "no text to transliterate")
		return req, false
	}
	return req, true
}

// extractUpload saves the uploaded image to a temp file and runs OCR on it.
func (s *Server) extractUpload(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", fmt.Errorf("invalid multipart form: %w", err)
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		// No image; the text field may still carry the input.
		if text := r.FormValue("text"); text != "" {
			return text, nil
		}
		return "", errors.New("missing image or text field")
	}
	defer file.Close()

	if s.engine == nil {
		return "", errors.New("image uploads are not enabled")
	}

	tmp, err := os.CreateTemp("", "lipyantar-upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	text, err := ocr.ExtractText(r.Context(), s.engine, tmp.Name())
	if err != nil {
		if errors.Is(err, ocr.ErrNoText) {
			return "", errors.New("no text found in image")
		}
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	return text, nil
}

// logRequest records the request in the store when one is configured and
// returns the request ID either way.
func (s *Server) logRequest(ctx context.Context, text, sourceLang, targetLang string) string {
	id := uuid.New().String()
	if s.store == nil {
		return id
	}

	req := internal.TransliterationRequest{
		ID:               id,
		SourceText:       text,
		DetectedLanguage: sourceLang,
		TargetLanguage:   targetLang,
		Timestamp:        time.Now(),
	}
	if err := s.store.SaveRequest(ctx, req); err != nil {
		s.logger.Warn("failed to log request", "error", err)
	}
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
