// Package pipeline provides the high-level orchestration for the publishing process.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rahulj/polypost/internal/collab"
	"github.com/rahulj/polypost/internal/db"
	"github.com/rahulj/polypost/internal/langroute"
	"github.com/rahulj/polypost/internal/llm"
	"github.com/rahulj/polypost/internal/observability"
	"github.com/rahulj/polypost/internal/publishsim"
	"github.com/rahulj/polypost/internal/sentiment"
	"github.com/rahulj/polypost/internal/targeting"
	"github.com/rahulj/polypost/internal/translation"
	"github.com/rahulj/polypost/internal/types"
	"github.com/rahulj/polypost/internal/voicetag"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Text            string
	Context         string // spiritual, motivational, educational, cultural
	Languages       []string
	Platforms       []string
	Tone            types.Tone // empty means resolve from strategy, then language default
	Intensity       types.Intensity
	PreserveMeaning bool
	Profile         *types.UserProfile
	APIKey          string
	UseLLM          bool
	Verbose         bool
	DatabaseURL     string
	KillSwitchPath  string
	OnProgress      ProgressCallback
}

// RunResult collects everything the pipeline produced for one content item.
type RunResult struct {
	RunID        uuid.UUID               `json:"run_id"`
	Route        langroute.Decision      `json:"route"`
	Tone         types.Tone              `json:"tone"`
	Tuned        sentiment.Result        `json:"tuned"`
	Translations []translation.Result    `json:"translations"`
	Variants     []types.ContentVariant  `json:"variants"`
	Publishes    []types.PublishRecord   `json:"publishes"`
	Receipts     []collab.ArchiveReceipt `json:"receipts,omitempty"`
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// countPublished returns how many records actually landed as published
func countPublished(recs []types.PublishRecord) int {
	count := 0
	for _, r := range recs {
		if r.Status == types.StatusPublished {
			count++
		}
	}
	return count
}

// RunPipeline orchestrates the full publishing pipeline
func RunPipeline(ctx context.Context, opts RunOptions) (*RunResult, error) {

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)

	// Initialize database connection if configured
	var database *db.DB
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	item := types.NewContentItem(opts.Text, opts.Context)

	// Step 1: Sanitize. A non-clean verdict stops the run before anything
	// is recorded.
	fmt.Printf("Step 1/8: Sanitizing content...\n")
	sanitizer := collab.NewWordListSanitizer()
	verdict := sanitizer.Sanitize(opts.Text)
	if !verdict.Clean {
		return nil, &types.InputRejectedError{Flags: verdict.Flags}
	}
	emitProgress(&opts, db.StepSanitize, db.CategoryIntake,
		fmt.Sprintf("Content passed sanitization (bias score %.3f)", verdict.BiasScore), verdict)

	// Step 2: Route by language
	fmt.Printf("Step 2/8: Routing by language...\n")
	router := langroute.New()
	decision := router.Route(opts.Text)
	if opts.Verbose {
		printer.PrintRouteDecision(decision)
	}
	emitProgress(&opts, db.StepRoute, db.CategoryIntake,
		fmt.Sprintf("Routed to %s (%s family, confidence %.2f)", decision.Language, decision.Family, decision.Confidence), decision)

	// Validate requested targets before any work is persisted
	langs := opts.Languages
	if len(langs) == 0 {
		langs = []string{decision.Language}
	}
	platforms := opts.Platforms
	if len(platforms) == 0 {
		platforms = targeting.Names()
	}
	for _, p := range platforms {
		if _, ok := targeting.Spec(p); !ok {
			return nil, &types.UnsupportedPlatformError{Platform: p}
		}
	}

	runID := uuid.New()
	if database != nil {
		id, err := database.CreateRun(ctx, opts.Text, opts.Context, decision.Language)
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
		} else {
			runID = id
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
			}
			_ = database.SaveArtifact(ctx, runID, db.StepSanitize, db.CategoryIntake, verdict)
			_ = database.SaveArtifact(ctx, runID, db.StepRoute, db.CategoryIntake, decision)
		}
	}

	// Step 3: Load the latest strategy snapshot. Missing history is normal
	// on a fresh install.
	fmt.Printf("Step 3/8: Loading strategy snapshot...\n")
	var strategyCfg *types.StrategyConfig
	if database != nil {
		signals := db.NewSignalStore(database)
		cfg, ok, err := signals.LatestConfig(ctx)
		if err != nil {
			fmt.Printf("Warning: Failed to load strategy config: %v\n", err)
		} else if ok {
			strategyCfg = &cfg
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Using strategy config v%d (%d signals)\n", cfg.Version, len(cfg.Signals))
			}
			_ = database.SaveArtifact(ctx, runID, db.StepStrategy, db.CategoryFeedback, cfg)
		}
	}

	tone := resolveTone(opts.Tone, decision.Language, platforms, strategyCfg)

	// Step 4: Tune sentiment
	fmt.Printf("Step 4/8: Tuning sentiment (%s, %s)...\n", tone, effectiveIntensity(opts.Intensity))
	tuned, err := sentiment.Tune(opts.Text, types.ToneProfile{
		Tone:            tone,
		Intensity:       opts.Intensity,
		PreserveMeaning: opts.PreserveMeaning,
	})
	if err != nil {
		return nil, fmt.Errorf("sentiment tuning failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintTunedContent(tuned)
	}
	emitProgress(&opts, db.StepTune, db.CategoryTransform,
		fmt.Sprintf("Tuned toward %s at %s intensity", tuned.Tone, tuned.Intensity), tuned)
	if database != nil {
		_ = database.SaveArtifact(ctx, runID, db.StepTune, db.CategoryTransform, tuned)
	}

	// Step 5: Translate into every requested language in parallel
	fmt.Printf("Step 5/8: Translating into %d language(s)...\n", len(langs))
	svc, closeTranslator, err := buildTranslationService(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("initializing translator failed: %w", err)
	}
	if closeTranslator != nil {
		defer closeTranslator()
	}
	if err := svc.ValidateTargets(langs); err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)
	translations := make([]translation.Result, len(langs))
	for i, lang := range langs {
		g.Go(func() error {
			translations[i] = svc.TranslateOne(gCtx, tuned.Text, decision.Language, lang, tone, opts.Profile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	degraded := 0
	for _, tr := range translations {
		if tr.Degraded {
			degraded++
		}
	}
	emitProgress(&opts, db.StepTranslate, db.CategoryTransform,
		fmt.Sprintf("Translated into %d language(s), %d degraded", len(translations), degraded), translations)
	if database != nil {
		_ = database.SaveArtifact(ctx, runID, db.StepTranslate, db.CategoryTransform, translations)
	}

	// Step 6: Build platform variants with voice tags
	fmt.Printf("Step 6/8: Building %d platform x language variant(s)...\n", len(platforms)*len(translations))
	synth := collab.SimulatedSynthesizer{}
	var variants []types.ContentVariant
	for _, platform := range platforms {
		for _, tr := range translations {
			tgt, err := targeting.Target(tr.Text, platform, targeting.Options{
				Context:  opts.Context,
				Language: tr.Language,
				Tone:     tone,
			})
			if err != nil {
				return nil, fmt.Errorf("targeting %s failed: %w", platform, err)
			}

			sel := voicetag.Select(tr.Language, tone)
			variant := types.ContentVariant{
				ID:                    uuid.New(),
				ContentID:             item.ID,
				Platform:              platform,
				Language:              tr.Language,
				Tone:                  tone,
				Text:                  tgt.Text,
				Hashtags:              tgt.Hashtags,
				VoiceTag:              sel.VoiceTag,
				Truncated:             tgt.Truncated,
				TranslationDegraded:   tr.Degraded,
				LowConfidenceRoute:    decision.LowConfidence,
				TranslationConfidence: tr.Confidence,
				Audio:                 tgt.Audio,
				CreatedAt:             item.CreatedAt,
			}
			if variant.Audio != nil {
				sp := synth.Synthesize(tgt.Text, sel.VoiceTag)
				variant.Audio.AudioRef = sp.AudioRef
			}
			variants = append(variants, variant)
		}
	}
	if opts.Verbose {
		printer.PrintVariants(variants)
	}
	emitProgress(&opts, db.StepVariants, db.CategoryTransform,
		fmt.Sprintf("Built %d variant(s)", len(variants)), nil)
	if database != nil {
		_ = database.SaveArtifact(ctx, runID, db.StepVariants, db.CategoryTransform, variants)
	}

	// Step 7: Publish each variant through the simulator
	fmt.Printf("Step 7/8: Publishing variant(s)...\n")
	var store publishsim.Store
	if database != nil {
		store = db.NewPublishStore(database)
	} else {
		store = publishsim.NewMemoryStore()
	}
	var kill collab.KillSwitch = collab.StaticKillSwitch{}
	if opts.KillSwitchPath != "" {
		kill = collab.FileKillSwitch{Path: opts.KillSwitchPath}
	}
	sim := publishsim.NewSimulator(store, kill)

	textByKey := make(map[string]string, len(variants))
	publishes := make([]types.PublishRecord, 0, len(variants))
	for i := range variants {
		rec, err := sim.Publish(ctx, runID, variants[i])
		if err != nil {
			return nil, fmt.Errorf("publishing variant failed: %w", err)
		}
		textByKey[rec.VariantKey] = variants[i].Text
		publishes = append(publishes, rec)
	}
	if opts.Verbose {
		printer.PrintPublishSummary(publishes)
	}
	emitProgress(&opts, db.StepPublishes, db.CategoryPublish,
		fmt.Sprintf("Published %d of %d variant(s)", countPublished(publishes), len(publishes)), publishes)
	if database != nil {
		_ = database.SaveArtifact(ctx, runID, db.StepPublishes, db.CategoryPublish, publishes)
	}

	// Step 8: Archive published content for compliance review
	fmt.Printf("Step 8/8: Archiving published content...\n")
	archiver := collab.ChecksumArchiver{}
	var receipts []collab.ArchiveReceipt
	for _, rec := range publishes {
		if rec.Status != types.StatusPublished {
			continue
		}
		receipts = append(receipts, archiver.Archive(rec.VariantKey, textByKey[rec.VariantKey]))
	}
	emitProgress(&opts, db.StepArchive, db.CategoryPublish,
		fmt.Sprintf("Archived %d item(s)", len(receipts)), nil)
	if database != nil {
		_ = database.SaveArtifact(ctx, runID, db.StepArchive, db.CategoryPublish, receipts)
		_ = database.CompleteRun(ctx, runID, "completed")
	}

	fmt.Printf("Done! %d variant(s) published, %d archived.\n", countPublished(publishes), len(receipts))

	return &RunResult{
		RunID:        runID,
		Route:        decision,
		Tone:         tone,
		Tuned:        tuned,
		Translations: translations,
		Variants:     variants,
		Publishes:    publishes,
		Receipts:     receipts,
	}, nil
}

// resolveTone picks the run's tone. An explicit caller choice always wins;
// otherwise the newest strategy recommendation for the routed language is
// consulted, and the language's default tone closes the chain.
func resolveTone(requested types.Tone, language string, platforms []string, cfg *types.StrategyConfig) types.Tone {
	if requested != "" {
		return requested
	}

	fallback := types.ToneNeutral
	if p, ok := langroute.Profile(language); ok && p.DefaultTone != "" {
		fallback = p.DefaultTone
	}

	if cfg != nil {
		for _, platform := range platforms {
			if rec := cfg.ToneFor(platform, language, ""); rec != "" {
				return rec
			}
		}
	}
	return fallback
}

func effectiveIntensity(in types.Intensity) types.Intensity {
	if in == "" || !in.Valid() {
		return types.IntensityModerate
	}
	return in
}

// buildTranslationService wires either the Gemini-backed translator or the
// local simulator, returning a cleanup func for the remote client.
func buildTranslationService(ctx context.Context, opts RunOptions) (*translation.Service, func(), error) {
	if opts.UseLLM && opts.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			return nil, nil, err
		}
		// The free-tier Gemini quota tolerates about one request per second.
		limited := llm.NewRateLimitedClient(client, 1, 2)
		tr := translation.NewGeminiTranslator(limited, llm.TierStandard)
		return translation.NewService(tr), func() { _ = limited.Close() }, nil
	}
	return translation.NewService(translation.SimTranslator{}), nil, nil
}
