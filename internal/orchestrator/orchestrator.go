// Package orchestrator coordinates the conversion pipeline: it resolves the
// effective source script, fans conversions out across the fixed target list,
// applies the ITRANS fallback when a direct conversion fails or produces the
// wrong script, and routes converted output through the formatter.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valpere/lipyantar/internal/converter"
	"github.com/valpere/lipyantar/internal/detector"
	"github.com/valpere/lipyantar/internal/formatter"
	"github.com/valpere/lipyantar/internal/script"
	"github.com/valpere/lipyantar/internal/store"
	"github.com/valpere/lipyantar/internal/validator"
)

const (
	defaultTimeout = 30 * time.Second

	// diagnosticLimit caps how much of the original text the single-target
	// failure message echoes back.
	diagnosticLimit = 50
)

// Options carries the orchestrator's optional collaborators. Validator,
// Store, Detector and Logger may all be nil.
type Options struct {
	Validator *validator.Validator
	Store     *store.Store
	Detector  detector.Detector
	Logger    *slog.Logger
	Timeout   time.Duration
	SkipCache bool
}

type Orchestrator struct {
	converter converter.Converter
	formatter *formatter.Formatter
	validator *validator.Validator
	store     *store.Store
	detector  detector.Detector
	logger    *slog.Logger
	timeout   time.Duration
	skipCache bool
}

func New(conv converter.Converter, fm *formatter.Formatter, opts Options) *Orchestrator {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		converter: conv,
		formatter: fm,
		validator: opts.Validator,
		store:     opts.Store,
		detector:  opts.Detector,
		logger:    logger,
		timeout:   timeout,
		skipCache: opts.SkipCache,
	}
}

// Result is the outcome for one target script.
type Result struct {
	DisplayName  string        `json:"display_name"`
	Script       script.Script `json:"script"`
	Text         string        `json:"text"`
	Converted    bool          `json:"converted"`
	UsedFallback bool          `json:"used_fallback,omitempty"`
	FromCache    bool          `json:"from_cache,omitempty"`
	Latency      time.Duration `json:"-"`
}

// AllResult covers every target in the fixed target order.
type AllResult struct {
	SourceLanguage string   `json:"source_language"`
	Results        []Result `json:"results"`
	Succeeded      int      `json:"succeeded"`
	Failed         int      `json:"failed"`
}

// SingleResult is the outcome of a single-target conversion, with the full
// per-target mapping attached for comparison. Roman targets also carry a
// pronunciation aid.
type SingleResult struct {
	Text           string                   `json:"text"`
	TargetScript   script.Script            `json:"target_script"`
	Converted      bool                     `json:"converted"`
	SourceLanguage string                   `json:"source_language"`
	Pronunciation  *formatter.Pronunciation `json:"pronunciation,omitempty"`
	All            *AllResult               `json:"all,omitempty"`
}

// ResolveSource decides the effective source language from the detector's
// verdict and the user-supplied hint. English wins whenever either side says
// en, otherwise a confident detection beats the hint.
func (o *Orchestrator) ResolveSource(ctx context.Context, text, userLang string) string {
	detected := "unknown"
	if o.detector != nil {
		if iso, ok := o.detector.DetectISO(ctx, text); ok {
			detected = iso
		}
	}

	if detected == "en" || userLang == "en" {
		return "en"
	}
	if detected != "unknown" {
		return detected
	}
	if userLang != "" {
		return userLang
	}
	return "unknown"
}

// ConvertAll converts text into every target script. It never returns an
// error: a target that cannot be converted carries the original text with
// Converted false.
func (o *Orchestrator) ConvertAll(ctx context.Context, text, sourceLang string) *AllResult {
	return o.convertAllFrom(ctx, text, sourceLang, script.ForLanguage(sourceLang))
}

func (o *Orchestrator) convertAllFrom(ctx context.Context, text, sourceLang string, source script.Script) *AllResult {
	targets := script.Targets()

	all := &AllResult{
		SourceLanguage: sourceLang,
		Results:        make([]Result, len(targets)),
	}

	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(index int, target script.Target) {
			defer wg.Done()
			all.Results[index] = o.convertTarget(ctx, text, source, target)
		}(i, target)
	}
	wg.Wait()

	for _, res := range all.Results {
		if res.Converted {
			all.Succeeded++
		} else {
			all.Failed++
		}
	}

	o.logger.Debug("converted to all targets",
		"source", source,
		"succeeded", all.Succeeded,
		"failed", all.Failed)

	return all
}

// ConvertOne converts text to a single target script. On total failure the
// result text is an explicit diagnostic instead of the raw input, because a
// single-target caller has no other signal that the output is unusable.
func (o *Orchestrator) ConvertOne(ctx context.Context, text, userLang, targetLang string) *SingleResult {
	sourceLang := o.ResolveSource(ctx, text, userLang)
	source := singleSourceScript(sourceLang)
	target := singleTarget(targetLang)

	var res Result
	if source == script.Latin && target.Script == script.Latin {
		// English input asked back as Roman is a pass-through: the text
		// keeps its exact wording after whitespace collapse.
		res = Result{
			DisplayName: target.DisplayName,
			Script:      target.Script,
			Text:        collapseWhitespace(text),
			Converted:   true,
		}
	} else {
		res = o.convertTarget(ctx, text, source, target)
	}
	if !res.Converted {
		res.Text = diagnostic(text)
	}

	single := &SingleResult{
		Text:           res.Text,
		TargetScript:   target.Script,
		Converted:      res.Converted,
		SourceLanguage: sourceLang,
		All:            o.convertAllFrom(ctx, text, sourceLang, source),
	}

	if kind := script.KindOf(target.DisplayName); res.Converted && kind == script.KindRoman {
		p := o.formatter.PronunciationGuide(res.Text, kind)
		single.Pronunciation = &p
	}

	return single
}

// convertTarget runs the per-target policy: no-op for Latin to Latin, cache
// lookup, direct conversion, one ITRANS fallback hop, raw substitution.
func (o *Orchestrator) convertTarget(ctx context.Context, text string, source script.Script, target script.Target) (res Result) {
	start := time.Now()
	defer func() { res.Latency = time.Since(start) }()

	kind := script.KindOf(target.DisplayName)
	res = Result{
		DisplayName: target.DisplayName,
		Script:      target.Script,
	}

	if source == script.Latin && target.Script == script.Latin {
		res.Text = o.formatter.Clean(text, kind)
		res.Converted = true
		return res
	}

	if cached, ok := o.cachedOutput(ctx, text, source, target.Script); ok {
		res.Text = cached
		res.Converted = true
		res.FromCache = true
		return res
	}

	out, err := o.convert(ctx, source, target.Script, text)

	if err != nil {
		o.logger.Warn("conversion failed, retrying as ITRANS",
			"source", source,
			"target", target.Script,
			"error", err)
		out, err = o.convert(ctx, script.Latin, target.Script, text)
		res.UsedFallback = err == nil
	}

	if err != nil {
		o.logger.Error("conversion failed",
			"source", source,
			"target", target.Script,
			"error", err)
		// Substituted input stays as the user wrote it, collapse aside.
		res.Text = collapseWhitespace(text)
		return res
	}

	res.Text = o.formatter.Clean(out, kind)
	res.Converted = true
	o.saveOutput(ctx, text, source, target.Script, res.Text)
	return res
}

// convert calls the converter under the per-target timeout and rejects
// outputs the validator flags as wrong-script.
func (o *Orchestrator) convert(ctx context.Context, source, target script.Script, text string) (string, error) {
	convCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	out, err := o.converter.Convert(convCtx, source, target, text)
	if err != nil {
		return "", err
	}

	if o.validator != nil {
		if err := o.validator.Check(out, target); err != nil {
			return "", fmt.Errorf("output rejected: %w", err)
		}
	}

	return out, nil
}

func (o *Orchestrator) cachedOutput(ctx context.Context, text string, source, target script.Script) (string, bool) {
	if o.store == nil || o.skipCache {
		return "", false
	}
	out, found, err := o.store.GetCachedConversion(ctx, text, string(source), string(target))
	if err != nil {
		o.logger.Warn("cache lookup failed", "error", err)
		return "", false
	}
	return out, found
}

func (o *Orchestrator) saveOutput(ctx context.Context, text string, source, target script.Script, out string) {
	if o.store == nil || o.skipCache {
		return
	}
	if err := o.store.SaveConversion(ctx, text, string(source), string(target), out); err != nil {
		o.logger.Warn("cache save failed", "error", err)
	}
}

// singleSourceScript maps the resolved source language for the single-target
// path. Unlike ForLanguage, an unmapped language defaults to Devanagari here:
// single-target callers feed mostly Hindi scans.
func singleSourceScript(lang string) script.Script {
	if lang == "en" {
		return script.Latin
	}
	if script.KnownLanguage(lang) {
		return script.ForLanguage(lang)
	}
	return script.Devanagari
}

func singleTarget(targetLang string) script.Target {
	if targetLang == "" || targetLang == "itrans" || targetLang == "en" {
		return script.Target{DisplayName: "Roman", Script: script.Latin}
	}
	s := script.ForLanguage(targetLang)
	return script.Target{DisplayName: string(s), Script: s}
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func diagnostic(text string) string {
	runes := []rune(text)
	if len(runes) > diagnosticLimit {
		runes = runes[:diagnosticLimit]
	}
	return fmt.Sprintf("[Transliteration failed: OCR output appears to be garbled. Original: %s...]", string(runes))
}
