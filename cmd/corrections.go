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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/lipyantar/internal/store"
)

var correctionsDBPath string

var correctionsCmd = &cobra.Command{
	Use:   "corrections",
	Short: "Manage word corrections",
	Long: `Add, list, and delete word corrections.

Corrections map a garbled OCR form to its canonical spelling and extend the
built-in correction table. They are applied whenever the formatter cleans
Roman-script output — useful for names and terms your scans keep mangling.`,
}

var correctionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all word corrections",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(correctionsDBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		entries, err := db.ListUserCorrections(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list corrections: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No word corrections.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "GARBLED\tCANONICAL\tADDED")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Garbled, e.Canonical, e.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var correctionsAddCmd = &cobra.Command{
	Use:   "add <garbled> <canonical>",
	Short: "Add or update a word correction",
	Long: `Add a correction mapping a garbled OCR form to its canonical spelling.

Example:
  lipyantar corrections add "dIpAvalI" "Deepavali"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(correctionsDBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.AddUserCorrection(context.Background(), args[0], args[1]); err != nil {
			return fmt.Errorf("failed to add correction: %w", err)
		}
		fmt.Printf("Added: %q → %q\n", args[0], args[1])
		return nil
	},
}

var correctionsDeleteCmd = &cobra.Command{
	Use:   "delete <garbled>",
	Short: "Delete a word correction by its garbled form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(correctionsDBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		deleted, err := db.DeleteUserCorrection(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to delete correction: %w", err)
		}
		if !deleted {
			fmt.Printf("No correction found for %q\n", args[0])
			return nil
		}
		fmt.Printf("Deleted correction: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(correctionsCmd)

	correctionsCmd.PersistentFlags().StringVar(&correctionsDBPath, "db", "lipyantar.db", "Database path")

	correctionsCmd.AddCommand(correctionsListCmd)
	correctionsCmd.AddCommand(correctionsAddCmd)
	correctionsCmd.AddCommand(correctionsDeleteCmd)
}
