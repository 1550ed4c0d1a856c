// Package store is the SQLite transliteration memory: a cache of finished
// conversions keyed by (text, source script, target script), a log of
// requests and per-target results, user-supplied word corrections that feed
// the formatter at startup, and checkpoints for resumable batch jobs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/lipyantar/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer; a single connection avoids busy errors when
	// the orchestrator saves conversions from parallel target goroutines.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transliteration_requests (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		detected_language TEXT NOT NULL,
		target_language TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transliteration_results (
		id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL,
		display_name TEXT NOT NULL,
		target_script TEXT NOT NULL,
		output_text TEXT NOT NULL,
		converted BOOLEAN DEFAULT TRUE,
		used_fallback BOOLEAN DEFAULT FALSE,
		latency_ms INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (request_id) REFERENCES transliteration_requests(id)
	);

	CREATE TABLE IF NOT EXISTS transliteration_memory (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		source_script TEXT NOT NULL,
		target_script TEXT NOT NULL,
		output_text TEXT NOT NULL,
		usage_count INTEGER DEFAULT 1,
		invalidated BOOLEAN DEFAULT FALSE,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_text, source_script, target_script)
	);

	-- user_corrections extends the built-in word-correction table; loaded
	-- once at process start and merged into the formatter.
	CREATE TABLE IF NOT EXISTS user_corrections (
		id TEXT PRIMARY KEY,
		garbled TEXT NOT NULL UNIQUE,
		canonical TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- batch_checkpoints tracks progress of batch jobs for resume support
	CREATE TABLE IF NOT EXISTS batch_checkpoints (
		id TEXT PRIMARY KEY,
		input_dir TEXT NOT NULL,
		output_dir TEXT NOT NULL,
		source_language TEXT NOT NULL,
		status TEXT DEFAULT 'running',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS batch_checkpoint_files (
		checkpoint_id TEXT NOT NULL,
		file_name TEXT NOT NULL,
		result_json TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (checkpoint_id, file_name),
		FOREIGN KEY (checkpoint_id) REFERENCES batch_checkpoints(id)
	);

	CREATE INDEX IF NOT EXISTS idx_memory_lookup ON transliteration_memory(source_text, source_script, target_script);
	CREATE INDEX IF NOT EXISTS idx_results_request ON transliteration_results(request_id);
	CREATE INDEX IF NOT EXISTS idx_checkpoint_files ON batch_checkpoint_files(checkpoint_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) SaveRequest(ctx context.Context, req internal.TransliterationRequest) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transliteration_requests (id, source_text, detected_language, target_language, created_at) VALUES (?, ?, ?, ?, ?)`,
		req.ID, req.SourceText, req.DetectedLanguage, req.TargetLanguage, req.Timestamp)
	return err
}

func (s *Store) SaveResult(ctx context.Context, requestID, displayName, targetScript, outputText string, converted, usedFallback bool, latencyMs int) error {
	id := fmt.Sprintf("%s_%s", requestID, strings.ReplaceAll(displayName, " ", "_"))
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transliteration_results (id, request_id, display_name, target_script, output_text, converted, used_fallback, latency_ms) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, requestID, displayName, targetScript, outputText, converted, usedFallback, latencyMs)
	return err
}

// GetCachedConversion looks up a finished conversion for (text, source,
// target). A hit bumps the usage counter. Invalidated entries miss.
func (s *Store) GetCachedConversion(ctx context.Context, sourceText, sourceScript, targetScript string) (string, bool, error) {
	var outputText string
	var invalidated bool

	err := s.db.QueryRowContext(ctx,
		`SELECT output_text, invalidated FROM transliteration_memory WHERE source_text = ? AND source_script = ? AND target_script = ?`,
		normalizeText(sourceText), sourceScript, targetScript).Scan(&outputText, &invalidated)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	if invalidated {
		return "", false, nil
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE transliteration_memory SET usage_count = usage_count + 1, last_used = ? WHERE source_text = ? AND source_script = ? AND target_script = ?`,
		time.Now(), normalizeText(sourceText), sourceScript, targetScript)

	return outputText, true, err
}

func (s *Store) SaveConversion(ctx context.Context, sourceText, sourceScript, targetScript, outputText string) error {
	id := fmt.Sprintf("mem_%d", time.Now().UnixNano())
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO transliteration_memory (id, source_text, source_script, target_script, output_text, usage_count, invalidated, last_used, created_at) VALUES (?, ?, ?, ?, ?, 1, FALSE, ?, ?)`,
		id, normalizeText(sourceText), sourceScript, targetScript, outputText, time.Now(), time.Now())
	return err
}

// MemoryEntry is a row from the transliteration_memory table.
type MemoryEntry struct {
	ID           string
	SourceText   string
	SourceScript string
	TargetScript string
	OutputText   string
	UsageCount   int
	Invalidated  bool
	LastUsed     time.Time
}

// CacheStats summarises transliteration memory usage.
type CacheStats struct {
	TotalEntries   int
	ActiveEntries  int
	InvalidEntries int
	TotalUsage     int
}

func (s *Store) InvalidateMemory(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE transliteration_memory SET invalidated = TRUE WHERE id = ?`, id)
	return err
}

// DeleteMemory permanently removes a memory entry by ID.
func (s *Store) DeleteMemory(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM transliteration_memory WHERE id = ?`, id)
	return err
}

// ClearMemory removes all memory entries.
func (s *Store) ClearMemory(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transliteration_memory`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListMemory returns all memory entries ordered by most recently used.
func (s *Store) ListMemory(ctx context.Context) ([]MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_text, source_script, target_script, output_text, usage_count, invalidated, last_used FROM transliteration_memory ORDER BY last_used DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MemoryEntry
	for rows.Next() {
		var e MemoryEntry
		if err := rows.Scan(&e.ID, &e.SourceText, &e.SourceScript, &e.TargetScript, &e.OutputText, &e.UsageCount, &e.Invalidated, &e.LastUsed); err != nil {
			return nil, err
		}
		results = append(results, e)
	}

	return results, rows.Err()
}

// Stats returns summary statistics for the transliteration memory.
func (s *Store) Stats(ctx context.Context) (*CacheStats, error) {
	stats := &CacheStats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN NOT invalidated THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN invalidated THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(usage_count), 0)
		FROM transliteration_memory`).Scan(
		&stats.TotalEntries,
		&stats.ActiveEntries,
		&stats.InvalidEntries,
		&stats.TotalUsage,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// UserCorrection is a word override the user taught the pipeline: whenever
// the formatter sees garbled it substitutes canonical.
type UserCorrection struct {
	ID        string
	Garbled   string
	Canonical string
	CreatedAt time.Time
}

// AddUserCorrection records or updates a garbled-to-canonical word override.
func (s *Store) AddUserCorrection(ctx context.Context, garbled, canonical string) error {
	id := fmt.Sprintf("corr_%d", time.Now().UnixNano())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_corrections (id, garbled, canonical) VALUES (?, ?, ?)
		 ON CONFLICT(garbled) DO UPDATE SET canonical = excluded.canonical`,
		id, normalizeText(garbled), normalizeText(canonical))
	return err
}

// UserCorrections returns the overrides as a map suitable for seeding the
// formatter.
func (s *Store) UserCorrections(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT garbled, canonical FROM user_corrections`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var garbled, canonical string
		if err := rows.Scan(&garbled, &canonical); err != nil {
			return nil, err
		}
		out[garbled] = canonical
	}

	return out, rows.Err()
}

// ListUserCorrections returns all overrides ordered by creation time.
func (s *Store) ListUserCorrections(ctx context.Context) ([]UserCorrection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, garbled, canonical, created_at FROM user_corrections ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []UserCorrection
	for rows.Next() {
		var c UserCorrection
		if err := rows.Scan(&c.ID, &c.Garbled, &c.Canonical, &c.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, c)
	}

	return results, rows.Err()
}

// DeleteUserCorrection removes an override by its garbled form.
func (s *Store) DeleteUserCorrection(ctx context.Context, garbled string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM user_corrections WHERE garbled = ?`, normalizeText(garbled))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Checkpoint identifies a batch job by its directories and source language so
// an interrupted run can be resumed.
type Checkpoint struct {
	ID             string
	InputDir       string
	OutputDir      string
	SourceLanguage string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FindCheckpoint locates a resumable checkpoint for the given batch
// parameters, or returns ok=false.
func (s *Store) FindCheckpoint(ctx context.Context, inputDir, outputDir, sourceLanguage string) (*Checkpoint, bool, error) {
	var cp Checkpoint
	err := s.db.QueryRowContext(ctx,
		`SELECT id, input_dir, output_dir, source_language, status, created_at, updated_at
		 FROM batch_checkpoints
		 WHERE input_dir = ? AND output_dir = ? AND source_language = ? AND status = 'running'
		 ORDER BY created_at DESC LIMIT 1`,
		inputDir, outputDir, sourceLanguage).Scan(
		&cp.ID, &cp.InputDir, &cp.OutputDir, &cp.SourceLanguage, &cp.Status, &cp.CreatedAt, &cp.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &cp, true, nil
}

// CreateCheckpoint starts tracking a new batch job.
func (s *Store) CreateCheckpoint(ctx context.Context, id, inputDir, outputDir, sourceLanguage string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO batch_checkpoints (id, input_dir, output_dir, source_language) VALUES (?, ?, ?, ?)`,
		id, inputDir, outputDir, sourceLanguage)
	return err
}

// SaveFileResult records the JSON-encoded conversion output for one file of
// a batch job, replacing any previous attempt.
func (s *Store) SaveFileResult(ctx context.Context, checkpointID, fileName, resultJSON string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO batch_checkpoint_files (checkpoint_id, file_name, result_json) VALUES (?, ?, ?)`,
		checkpointID, fileName, resultJSON)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE batch_checkpoints SET updated_at = ? WHERE id = ?`, time.Now(), checkpointID)
	return err
}

// CompletedFiles returns the names of files already processed under a
// checkpoint.
func (s *Store) CompletedFiles(ctx context.Context, checkpointID string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file_name FROM batch_checkpoint_files WHERE checkpoint_id = ?`, checkpointID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	done := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		done[name] = true
	}

	return done, rows.Err()
}

// FinishCheckpoint marks a batch job as complete.
func (s *Store) FinishCheckpoint(ctx context.Context, checkpointID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE batch_checkpoints SET status = 'completed', updated_at = ? WHERE id = ?`,
		time.Now(), checkpointID)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization so
// that visually identical keys (composed vs decomposed diacritics) share one
// cache row.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
