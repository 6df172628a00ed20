package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rahulj/polypost/internal/db"
	"github.com/rahulj/polypost/internal/observability"
	"github.com/rahulj/polypost/internal/strategy"
)

var (
	analyzeWindowDays  int
	analyzeDatabaseURL string
	analyzeVerbose     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run strategy analysis over recent engagement metrics",
	Long: `Classifies platform/language/tone combinations against the overall mean
engagement rate and saves a new versioned strategy config. Subsequent runs
consult the newest config when no explicit tone is requested.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeWindowDays, "window", "w", 7, "Analysis window in days")
	analyzeCmd.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print the generated strategy config")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := analyzeDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	engine := strategy.NewEngine(db.NewMetricStore(database), db.NewSignalStore(database))
	cfg, err := engine.Analyze(ctx, nowUTC(), analyzeWindowDays)
	if err != nil {
		return fmt.Errorf("strategy analysis failed: %w", err)
	}

	fmt.Printf("Saved strategy config v%d with %d signal(s)\n", cfg.Version, len(cfg.Signals))
	if analyzeVerbose {
		observability.NewPrinter(os.Stdout).PrintStrategyConfig(cfg)
	}
	return nil
}
