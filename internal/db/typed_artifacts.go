package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/rfp-proposal/internal/types"
)

// GetCriteriaByRunID loads the weighted criteria for a run
func (db *DB) GetCriteriaByRunID(ctx context.Context, runID uuid.UUID) (*types.CriteriaSet, error) {
	return getJSON[types.CriteriaSet](ctx, db, runID, StepCriteria)
}

// GetRFPSummaryByRunID loads the chunk summaries for a run
func (db *DB) GetRFPSummaryByRunID(ctx context.Context, runID uuid.UUID) (*types.RFPSummary, error) {
	return getJSON[types.RFPSummary](ctx, db, runID, StepRFPSummary)
}

// GetCompanyProfileByRunID loads the company profile for a run
func (db *DB) GetCompanyProfileByRunID(ctx context.Context, runID uuid.UUID) (*types.CompanyProfile, error) {
	return getJSON[types.CompanyProfile](ctx, db, runID, StepCompanyProfile)
}

// GetGapReportByRunID loads the gap analysis for a run
func (db *DB) GetGapReportByRunID(ctx context.Context, runID uuid.UUID) (*types.GapReport, error) {
	return getJSON[types.GapReport](ctx, db, runID, StepGapAnalysis)
}

// GetChatHistoryByRunID loads the clarification dialogue for a run
func (db *DB) GetChatHistoryByRunID(ctx context.Context, runID uuid.UUID) (*types.ChatHistory, error) {
	return getJSON[types.ChatHistory](ctx, db, runID, StepChatHistory)
}

func getJSON[T any](ctx context.Context, db *DB, runID uuid.UUID, step string) (*T, error) {
	content, err := db.GetArtifact(ctx, runID, step)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}
	return decodeArtifact[T](step, content)
}

func decodeArtifact[T any](step string, content []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", step, err)
	}
	return &v, nil
}
