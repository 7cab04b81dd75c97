package db

import (
	"time"

	"github.com/google/uuid"
)

// StepStatus constants
const (
	StepStatusInProgress = "in_progress"
	StepStatusCompleted  = "completed"
	StepStatusFailed     = "failed"
	StepStatusSkipped    = "skipped"
)

// RunStep records the execution of one pipeline stage
type RunStep struct {
	ID           uuid.UUID  `json:"id"`
	RunID        uuid.UUID  `json:"run_id"`
	Step         string     `json:"step"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	DurationMs   *int       `json:"duration_ms,omitempty"`
	ErrorMessage *string    `json:"error_message,omitempty"`
}

// ValidStepStatus reports whether status is a known step status
func ValidStepStatus(status string) bool {
	switch status {
	case StepStatusInProgress, StepStatusCompleted, StepStatusFailed, StepStatusSkipped:
		return true
	}
	return false
}
