package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rahulj/polypost/internal/server"
)

var (
	servePort       int
	serveKillSwitch string
	serveUseLLM     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for running the publishing pipeline, browsing run history, and driving the analytics feedback loop.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveKillSwitch, "kill-switch", "", "Marker file path that halts publishing when present")
	serveCmd.Flags().BoolVar(&serveUseLLM, "use-llm", false, "Use the Gemini translator instead of the local simulator")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Database is optional; without it the server runs memory-only and
	// the history and analytics endpoints report 503.
	databaseURL := os.Getenv("DATABASE_URL")

	apiKey := os.Getenv("GEMINI_API_KEY")
	if serveUseLLM && apiKey == "" {
		return fmt.Errorf("--use-llm requires the GEMINI_API_KEY environment variable")
	}

	cfg := server.Config{
		Port:           servePort,
		DatabaseURL:    databaseURL,
		APIKey:         apiKey,
		UseLLM:         serveUseLLM,
		KillSwitchPath: serveKillSwitch,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
