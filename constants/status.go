package constants

// AnalysisState is a step of the per-document analysis state machine.
type AnalysisState string

// Stable values (logged and returned to callers).
const (
	StateReceived        AnalysisState = "RECEIVED"
	StateTextLoaded      AnalysisState = "TEXT_LOADED"      // from cache or collaborator
	StateFieldsExtracted AnalysisState = "FIELDS_EXTRACTED" // extractors ran
	StateImagesSplit     AnalysisState = "IMAGES_SPLIT"     // image set materialized
	StateLabelsLoaded    AnalysisState = "LABELS_LOADED"    // per image, from cache or collaborator
	StateLabelsFiltered  AnalysisState = "LABELS_FILTERED"  // allow-list + threshold applied
	StateResultReady     AnalysisState = "RESULT_READY"
)

// ResultStatus tells the caller whether extraction could run at all.
type ResultStatus string

const (
	StatusOK          ResultStatus = "ok"
	StatusUnavailable ResultStatus = "unavailable" // collaborator failed; fields are empty
)
