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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/valpere/lipyantar/internal"
	"github.com/valpere/lipyantar/internal/ocr"
	"github.com/valpere/lipyantar/internal/orchestrator"
)

var (
	inputFile  string
	imageFile  string
	outputFile string
	sourceLang string
	targetLang string

	ocrLanguages string
	dbPath       string
	noCache      bool
	jsonOutput   bool
)

var transliterateCmd = &cobra.Command{
	Use:   "transliterate",
	Short: "Transliterate text or a scanned image",
	Long: `Transliterate text between Indic scripts and ITRANS romanization.

Input comes from a text file (--input), an image run through Tesseract OCR
(--image), or a positional argument. By default the text is converted into
every target script; --target narrows the output to a single script with the
full mapping attached.

Examples:
  lipyantar transliterate "namaste duniya" --source en
  lipyantar transliterate --image scan.png --target ta
  lipyantar transliterate --input page.txt --output out.json --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		text, err := readInput(ctx, args)
		if err != nil {
			return err
		}
		text = strings.Join(strings.Fields(text), " ")
		if text == "" {
			return fmt.Errorf("no text to transliterate")
		}

		p, err := buildPipeline(ctx, dbPath, noCache)
		if err != nil {
			return err
		}
		defer p.Close()

		userLang := sourceLang
		if userLang == "auto" {
			userLang = ""
		}

		resolvedLang := p.orchestrator.ResolveSource(ctx, text, userLang)
		if sourceLang == "auto" {
			fmt.Fprintf(os.Stderr, "Detected source language: %s\n", resolvedLang)
		}

		if targetLang != "" {
			result := p.orchestrator.ConvertOne(ctx, text, userLang, targetLang)
			logRun(ctx, p, text, result.SourceLanguage, targetLang, result.All)
			return writeSingle(result)
		}

		all := p.orchestrator.ConvertAll(ctx, text, resolvedLang)
		logRun(ctx, p, text, resolvedLang, "", all)
		return writeAll(text, all)
	},
}

// readInput pulls the source text from whichever input flag was given.
func readInput(ctx context.Context, args []string) (string, error) {
	sources := 0
	if inputFile != "" {
		sources++
	}
	if imageFile != "" {
		sources++
	}
	if len(args) > 0 {
		sources++
	}
	if sources != 1 {
		return "", fmt.Errorf("provide exactly one of --input, --image, or a text argument")
	}

	switch {
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	case imageFile != "":
		engine := ocr.NewTesseract(ocrLanguages)
		defer engine.Close()
		text, err := ocr.ExtractText(ctx, engine, imageFile)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from image: %w", err)
		}
		return text, nil
	default:
		return args[0], nil
	}
}

// logRun records the request and per-target results in the store when one is
// open.
func logRun(ctx context.Context, p *pipeline, text, sourceLang, targetLang string, all *orchestrator.AllResult) {
	if p.store == nil {
		return
	}

	reqID := uuid.New().String()
	req := internal.TransliterationRequest{
		ID:               reqID,
		SourceText:       text,
		DetectedLanguage: sourceLang,
		TargetLanguage:   targetLang,
		Timestamp:        time.Now(),
	}
	if err := p.store.SaveRequest(ctx, req); err != nil {
		p.logger.Warn("failed to save request", "error", err)
		return
	}

	if all == nil {
		return
	}
	for _, r := range all.Results {
		_ = p.store.SaveResult(ctx, reqID, r.DisplayName, string(r.Script), r.Text,
			r.Converted, r.UsedFallback, int(r.Latency.Milliseconds()))
	}
}

func writeAll(text string, all *orchestrator.AllResult) error {
	if jsonOutput {
		return writeOutput(func(f *os.File) error {
			enc := json.NewEncoder(f)
			enc.SetIndent("", "  ")
			return enc.Encode(all)
		})
	}

	return writeOutput(func(f *os.File) error {
		fmt.Fprintf(f, "Source (%s): %s\n\n", all.SourceLanguage, text)
		for _, r := range all.Results {
			marker := ""
			if !r.Converted {
				marker = " (not converted)"
			} else if r.UsedFallback {
				marker = " (via ITRANS)"
			}
			fmt.Fprintf(f, "%-22s %s%s\n", r.DisplayName+":", r.Text, marker)
		}
		return nil
	})
}

func writeSingle(result *orchestrator.SingleResult) error {
	if jsonOutput {
		return writeOutput(func(f *os.File) error {
			enc := json.NewEncoder(f)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		})
	}

	return writeOutput(func(f *os.File) error {
		_, err := fmt.Fprintln(f, result.Text)
		return err
	})
}

func writeOutput(write func(*os.File) error) error {
	if outputFile == "" {
		return write(os.Stdout)
	}

	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	return write(f)
}

func init() {
	rootCmd.AddCommand(transliterateCmd)

	transliterateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input text file")
	transliterateCmd.Flags().StringVarP(&imageFile, "image", "m", "", "Input image for OCR")
	transliterateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	transliterateCmd.Flags().StringVarP(&sourceLang, "source", "s", "auto", "Source language code (auto = detect)")
	transliterateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (default: all target scripts)")

	transliterateCmd.Flags().StringVar(&ocrLanguages, "ocr-languages", "hin+eng", "Tesseract language list")
	transliterateCmd.Flags().StringVar(&dbPath, "db", "", "Database path for transliteration memory (default from config)")
	transliterateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable transliteration memory cache")
	transliterateCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
}
