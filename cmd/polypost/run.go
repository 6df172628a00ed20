package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rahulj/polypost/internal/config"
	"github.com/rahulj/polypost/internal/pipeline"
	"github.com/rahulj/polypost/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run [text]",
	Short: "Run the full publishing pipeline for one piece of content",
	Long: `Orchestrates the entire publishing process: sanitize -> route -> strategy -> tune -> translate -> target -> publish -> archive.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	Args: cobra.ExactArgs(1),
	RunE: runPipelineCmd,
}

var (
	runConfigPath      string
	runContext         string
	runLanguages       []string
	runPlatforms       []string
	runTone            string
	runIntensity       string
	runPreserveMeaning bool
	runAPIKey          string
	runUseLLM          bool
	runVerbose         bool
	runDatabaseURL     string
	runKillSwitchPath  string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runContext, "context", "c", "", "Content context hint (spiritual, motivational, educational, cultural, general)")
	runCommand.Flags().StringSliceVarP(&runLanguages, "languages", "l", nil, "Target language codes (defaults to the detected source language)")
	runCommand.Flags().StringSliceVarP(&runPlatforms, "platforms", "p", nil, "Target platforms (defaults to all supported platforms)")
	runCommand.Flags().StringVarP(&runTone, "tone", "t", "", "Requested tone (defaults to strategy recommendation, then language default)")
	runCommand.Flags().StringVar(&runIntensity, "intensity", "", "Tone intensity: subtle, moderate, strong")
	runCommand.Flags().BoolVar(&runPreserveMeaning, "preserve-meaning", false, "Restrict tuning to framing-only adjustments")
	runCommand.Flags().BoolVar(&runUseLLM, "use-llm", false, "Use the Gemini translator instead of the local simulator")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().StringVar(&runKillSwitchPath, "kill-switch", "", "Marker file path that halts publishing when present")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("context") {
		cfg.Context = runContext
	}
	if cmd.Flags().Changed("languages") {
		cfg.Languages = runLanguages
	}
	if cmd.Flags().Changed("platforms") {
		cfg.Platforms = runPlatforms
	}
	if cmd.Flags().Changed("tone") {
		cfg.Tone = runTone
	}
	if cmd.Flags().Changed("intensity") {
		cfg.Intensity = runIntensity
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("use-llm") {
		cfg.UseLLM = runUseLLM
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("kill-switch") {
		cfg.KillSwitchPath = runKillSwitchPath
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		Context:   "general",
		Intensity: string(types.IntensityModerate),
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate the merged configuration
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 5: API Key handling (only needed for the LLM translator)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.UseLLM && cfg.APIKey == "" {
		return fmt.Errorf("--use-llm requires GEMINI_API_KEY environment variable or --api-key flag")
	}

	// Step 6: Database URL handling (optional; memory-only run without it)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	opts := pipeline.RunOptions{
		Text:            args[0],
		Context:         cfg.Context,
		Languages:       cfg.Languages,
		Platforms:       cfg.Platforms,
		Tone:            types.Tone(cfg.Tone),
		Intensity:       types.Intensity(cfg.Intensity),
		PreserveMeaning: runPreserveMeaning,
		APIKey:          cfg.APIKey,
		UseLLM:          cfg.UseLLM,
		Verbose:         cfg.Verbose,
		DatabaseURL:     cfg.DatabaseURL,
		KillSwitchPath:  cfg.KillSwitchPath,
	}

	_, err := pipeline.RunPipeline(ctx, opts)
	return err
}
