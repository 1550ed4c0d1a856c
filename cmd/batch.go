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

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/valpere/lipyantar/internal/ocr"
)

var (
	batchInputDir  string
	batchOutputDir string
	batchSource    string
	batchOCRLangs  string
	batchDBPath    string
	batchNoCache   bool
	batchResume    bool
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".tif": true, ".tiff": true, ".bmp": true,
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Transliterate a directory of text files or scans",
	Long: `Transliterate every text file and image in a directory.

Text files (.txt) are read directly; images are run through Tesseract OCR
first. Each input produces a JSON file in the output directory with the full
target-script mapping.

Progress is checkpointed in the database. If a run is interrupted, rerun with
--resume to skip files that already finished.

Example:
  lipyantar batch -i scans/ -o out/ --source hi
  lipyantar batch -i scans/ -o out/ --resume`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if batchInputDir == batchOutputDir {
			return fmt.Errorf("input and output directories cannot be the same")
		}

		ctx := context.Background()

		p, err := buildPipeline(ctx, batchDBPath, batchNoCache)
		if err != nil {
			return err
		}
		defer p.Close()

		entries, err := os.ReadDir(batchInputDir)
		if err != nil {
			return fmt.Errorf("failed to read input directory: %w", err)
		}
		if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		// Load or create the checkpoint.
		var checkpointID string
		completed := make(map[string]bool)
		if p.store != nil {
			if batchResume {
				cp, found, cpErr := p.store.FindCheckpoint(ctx, batchInputDir, batchOutputDir, batchSource)
				if cpErr != nil {
					return fmt.Errorf("failed to load checkpoint: %w", cpErr)
				}
				if found {
					checkpointID = cp.ID
					completed, cpErr = p.store.CompletedFiles(ctx, checkpointID)
					if cpErr != nil {
						return fmt.Errorf("failed to load checkpoint files: %w", cpErr)
					}
					fmt.Fprintf(os.Stderr, "Resuming checkpoint %s (%d files already done)\n", checkpointID, len(completed))
				}
			}
			if checkpointID == "" {
				checkpointID = "cp_" + uuid.New().String()
				if cpErr := p.store.CreateCheckpoint(ctx, checkpointID, batchInputDir, batchOutputDir, batchSource); cpErr != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to create checkpoint: %v\n", cpErr)
					checkpointID = ""
				} else {
					fmt.Fprintf(os.Stderr, "Checkpoint created; rerun with --resume if interrupted\n")
				}
			}
		}

		var engine ocr.Engine

		processed, skipped, failed := 0, 0, 0
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			ext := strings.ToLower(filepath.Ext(name))
			isImage := imageExtensions[ext]
			if !isImage && ext != ".txt" {
				continue
			}

			if completed[name] {
				skipped++
				continue
			}

			var text string
			if isImage {
				if engine == nil {
					engine = ocr.NewTesseract(batchOCRLangs)
					defer engine.Close()
				}
				text, err = ocr.ExtractText(ctx, engine, filepath.Join(batchInputDir, name))
			} else {
				var data []byte
				data, err = os.ReadFile(filepath.Join(batchInputDir, name))
				text = strings.Join(strings.Fields(string(data)), " ")
			}
			if err != nil || text == "" {
				fmt.Fprintf(os.Stderr, "%s: no usable text (%v), skipping\n", name, err)
				failed++
				continue
			}

			userLang := batchSource
			if userLang == "auto" {
				userLang = ""
			}
			sourceLang := p.orchestrator.ResolveSource(ctx, text, userLang)
			all := p.orchestrator.ConvertAll(ctx, text, sourceLang)

			outName := strings.TrimSuffix(name, filepath.Ext(name)) + ".json"
			data, err := json.MarshalIndent(all, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result for %s: %w", name, err)
			}
			if err := os.WriteFile(filepath.Join(batchOutputDir, outName), data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outName, err)
			}

			if p.store != nil && checkpointID != "" {
				_ = p.store.SaveFileResult(ctx, checkpointID, name, string(data))
			}
			processed++
		}

		if p.store != nil && checkpointID != "" {
			_ = p.store.FinishCheckpoint(ctx, checkpointID)
		}

		fmt.Printf("Batch complete: %d processed, %d skipped, %d failed\n", processed, skipped, failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchInputDir, "input", "i", "", "Input directory (required)")
	batchCmd.Flags().StringVarP(&batchOutputDir, "output", "o", "", "Output directory (required)")
	batchCmd.Flags().StringVarP(&batchSource, "source", "s", "auto", "Source language code (auto = detect per file)")
	batchCmd.Flags().StringVar(&batchOCRLangs, "ocr-languages", "hin+eng", "Tesseract language list")
	batchCmd.Flags().StringVar(&batchDBPath, "db", "", "Database path for memory and checkpoints (default from config)")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "Disable transliteration memory and checkpoints")
	batchCmd.Flags().BoolVar(&batchResume, "resume", false, "Resume the most recent interrupted run for the same directories")

	batchCmd.MarkFlagRequired("input")
	batchCmd.MarkFlagRequired("output")
}
