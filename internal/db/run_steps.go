package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StartStep records that a pipeline stage began. Restarting a stage resets its record.
func (db *DB) StartStep(ctx context.Context, runID uuid.UUID, step string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO run_steps (run_id, step, status, started_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (run_id, step) DO UPDATE
		 SET status = $3, started_at = NOW(), completed_at = NULL, duration_ms = NULL, error_message = NULL`,
		runID, step, StepStatusInProgress,
	)
	if err != nil {
		return fmt.Errorf("failed to start run step %s: %w", step, err)
	}
	return nil
}

// FinishStep records the outcome of a pipeline stage. A non-nil stepErr marks it failed.
func (db *DB) FinishStep(ctx context.Context, runID uuid.UUID, step string, duration time.Duration, stepErr error) error {
	status := StepStatusCompleted
	var errorMsg *string
	if stepErr != nil {
		status = StepStatusFailed
		errorMsg = nullIfEmpty(stepErr.Error())
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE run_steps
		 SET status = $3, completed_at = NOW(), duration_ms = $4, error_message = $5
		 WHERE run_id = $1 AND step = $2`,
		runID, step, status, int(duration.Milliseconds()), errorMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run step %s: %w", step, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("run step not found: %s", step)
	}
	return nil
}

// ListRunSteps retrieves the recorded stages of a run in start order
func (db *DB) ListRunSteps(ctx context.Context, runID uuid.UUID) ([]RunStep, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, run_id, step, status, started_at, completed_at, duration_ms, error_message
		 FROM run_steps WHERE run_id = $1 ORDER BY started_at ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list run steps: %w", err)
	}
	defer rows.Close()

	var steps []RunStep
	for rows.Next() {
		var s RunStep
		if err := rows.Scan(&s.ID, &s.RunID, &s.Step, &s.Status, &s.StartedAt, &s.CompletedAt, &s.DurationMs, &s.ErrorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan run step: %w", err)
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}
