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
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lipyantar",
	Short: "Indic script transliteration for OCR output",
	Long: `A tool that converts OCR-extracted text between Indic scripts and Roman
transliteration schemes, cleaning up the diacritic damage OCR leaves behind.

Input can be plain text or an image (Tesseract OCR). Output covers ten Indic
target scripts plus ITRANS romanization, or a single chosen target.

Use "lipyantar transliterate --help" for conversion options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./lipyantar.yaml or ~/.lipyantar/lipyantar.yaml)")
}
