package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a pipeline run record
type Run struct {
	ID            uuid.UUID  `json:"id"`
	Unit          string     `json:"unit"`
	RFPSource     string     `json:"rfp_source"`
	CompanySource string     `json:"company_source,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// Run status values
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Artifact steps, one per stored pipeline output
const (
	StepCriteria       = "criteria_with_weights"
	StepRFPSummary     = "rfp_summary"
	StepCompanyProfile = "company_profile"
	StepGapAnalysis    = "gap_analysis"
	StepChatHistory    = "chat_history"
	StepProposal       = "proposal"
)

// Artifact categories
const (
	CategoryRFP      = "rfp"
	CategoryCompany  = "company"
	CategoryAnalysis = "analysis"
	CategoryProposal = "proposal"
)

// Artifact represents an artifact record
type Artifact struct {
	ID          uuid.UUID `json:"id"`
	RunID       uuid.UUID `json:"run_id"`
	Step        string    `json:"step"`
	Category    string    `json:"category"`
	Content     []byte    `json:"content,omitempty"`
	TextContent string    `json:"text_content,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RunFilters holds optional filters for listing runs
type RunFilters struct {
	Unit   string
	Status string
	Limit  int
}
