package model

import "time"

// RunStatus represents the state of a persisted batch reconciliation run.
type RunStatus string

const (
	RunStatusComplete RunStatus = "complete"
	RunStatusPartial  RunStatus = "partial" // some pairs fell back to manual review
	RunStatusFailed   RunStatus = "failed"
)

// Run records one batch scoring invocation for audit and monitoring. Source is
// where the pairs came from: "api" for /batch-predict, otherwise a file path.
type Run struct {
	ID        string       `json:"id"`
	Source    string       `json:"source"`
	Status    RunStatus    `json:"status"`
	Pairs     int          `json:"pairs"`
	Failed    int          `json:"failed"`
	Threshold float64      `json:"threshold"`
	Summary   BatchSummary `json:"summary"`
	CreatedAt time.Time    `json:"created_at"`
}

// StatusFor derives the run status from batch outcome counts.
func StatusFor(pairs, failed int) RunStatus {
	switch {
	case pairs > 0 && failed == pairs:
		return RunStatusFailed
	case failed > 0:
		return RunStatusPartial
	default:
		return RunStatusComplete
	}
}
