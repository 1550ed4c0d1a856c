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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/valpere/lipyantar/internal/ocr"
	"github.com/valpere/lipyantar/internal/server"
)

var (
	serveHost    string
	servePort    int
	serveDBPath  string
	serveNoCache bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server.

Endpoints:
  POST /api/transliterate         Convert text or an uploaded image into all target scripts
  POST /api/transliterate/single  Convert into one target script
  GET  /healthz                   Health check`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p, err := buildPipeline(ctx, serveDBPath, serveNoCache)
		if err != nil {
			return err
		}
		defer p.Close()

		engine := ocr.NewTesseract(p.config.OCR.Languages)
		defer engine.Close()

		host := serveHost
		if host == "" {
			host = p.config.Server.Host
		}
		port := servePort
		if port == 0 {
			port = p.config.Server.Port
		}

		srv, err := server.New(server.Config{
			Host:         host,
			Port:         port,
			Orchestrator: p.orchestrator,
			Engine:       engine,
			Store:        p.store,
			Logger:       p.logger,
		})
		if err != nil {
			return err
		}

		return srv.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Address to bind to (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "Database path (default from config)")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "Disable transliteration memory cache")
}
