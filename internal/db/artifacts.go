package db

// Artifact step names for the publishing pipeline. One artifact is saved
// per step per run, upserted on re-run.
const (
	StepSanitize  = "sanitize"
	StepRoute     = "route"
	StepTune      = "tune"
	StepTranslate = "translate"
	StepVariants  = "variants"
	StepPublishes = "publishes"
	StepStrategy  = "strategy_snapshot"
	StepArchive   = "archive"
)

// Artifact categories group steps for querying.
const (
	CategoryIntake    = "intake"
	CategoryTransform = "transform"
	CategoryPublish   = "publish"
	CategoryFeedback  = "feedback"
)
