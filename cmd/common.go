/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/valpere/lipyantar/internal/config"
	"github.com/valpere/lipyantar/internal/converter"
	"github.com/valpere/lipyantar/internal/detector"
	"github.com/valpere/lipyantar/internal/formatter"
	"github.com/valpere/lipyantar/internal/orchestrator"
	"github.com/valpere/lipyantar/internal/store"
	"github.com/valpere/lipyantar/internal/validator"
)

// pipeline bundles the assembled collaborators a command needs. Store is nil
// when caching is disabled.
type pipeline struct {
	orchestrator *orchestrator.Orchestrator
	store        *store.Store
	config       *config.Config
	logger       *slog.Logger
}

func (p *pipeline) Close() {
	if p.store != nil {
		p.store.Close()
	}
}

// buildDetector constructs the configured language detector.
func buildDetector(cfg *config.Config) (detector.Detector, error) {
	switch cfg.Detector.Provider {
	case "", "lingua":
		return detector.NewLingua(), nil
	case "google":
		return detector.NewGoogle(cfg.Detector.Credentials), nil
	default:
		return nil, fmt.Errorf("unknown detector provider: %s", cfg.Detector.Provider)
	}
}

// buildPipeline assembles the conversion pipeline from configuration and the
// command's cache flags. User corrections from the store seed the formatter.
func buildPipeline(ctx context.Context, dbPath string, noCache bool) (*pipeline, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if dbPath == "" {
		dbPath = cfg.Store.Path
	}
	if cfg.Store.Disabled {
		noCache = true
	}

	var db *store.Store
	fm := formatter.New()
	if !noCache && dbPath != "" {
		db, err = store.New(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if corrections, corrErr := db.UserCorrections(ctx); corrErr == nil && len(corrections) > 0 {
			fm = formatter.NewWithCorrections(corrections)
		}
	}

	det, err := buildDetector(cfg)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}

	conv := converter.NewAksharamukha(cfg.Converter.BaseURL, cfg.Converter.Timeout)

	orch := orchestrator.New(conv, fm, orchestrator.Options{
		Validator: validator.New(),
		Store:     db,
		Detector:  det,
		Logger:    logger,
		Timeout:   cfg.Converter.Timeout,
		SkipCache: noCache,
	})

	return &pipeline{
		orchestrator: orch,
		store:        db,
		config:       cfg,
		logger:       logger,
	}, nil
}
