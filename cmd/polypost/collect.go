package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rahulj/polypost/internal/analytics"
	"github.com/rahulj/polypost/internal/db"
)

var (
	collectSchedule    string
	collectDatabaseURL string
	collectWindowHours int
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect simulated engagement metrics for published content",
	Long: `Samples an engagement window for every published record and stores the
resulting metrics. With --schedule it keeps running on a cron cadence until
interrupted; without it, one collection pass runs and the command exits.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVarP(&collectSchedule, "schedule", "s", "", "Cron spec for repeated collection (e.g. \"0 * * * *\")")
	collectCmd.Flags().IntVar(&collectWindowHours, "window-hours", 24, "Engagement window per collection pass, in hours")
	collectCmd.Flags().StringVar(&collectDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := collectDatabaseURL
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

	batch := analytics.NewBatch(
		db.NewPublishStore(database),
		db.NewMetricStore(database),
		time.Duration(collectWindowHours)*time.Hour,
	)

	if collectSchedule == "" {
		n, err := batch.CollectOnce(ctx, nowUTC())
		if err != nil {
			return fmt.Errorf("metric collection failed: %w", err)
		}
		fmt.Printf("Collected %d metric(s)\n", n)
		return nil
	}

	c, err := batch.Schedule(ctx, collectSchedule, func(err error) {
		log.Printf("Scheduled collection failed: %v", err)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", collectSchedule, err)
	}
	c.Start()
	fmt.Printf("Collector running on schedule %q. Press Ctrl+C to stop.\n", collectSchedule)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	<-c.Stop().Done()
	fmt.Println("Collector stopped")
	return nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
