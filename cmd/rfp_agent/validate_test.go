package main

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rfp-proposal/internal/schemas"
)

func TestRunValidate_EmbeddedSchema(t *testing.T) {
	dir := t.TempDir()
	validateSchemaPath = "gap_analysis.schema.json"
	validateJSONPath = writeFile(t, dir, "gap_analysis.json", gapAnalysisJSON)

	assert.NoError(t, runValidate(nil, nil))
}

func TestRunValidate_Violation(t *testing.T) {
	dir := t.TempDir()
	validateSchemaPath = "chat_history.schema.json"
	validateJSONPath = writeFile(t, dir, "chat_history.json", `{"total_questions": "two"}`)

	err := runValidate(nil, nil)
	require.Error(t, err)
	var verr *schemas.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidateCommand_Success(t *testing.T) {
	binaryPath := getBinaryPath(t)

	schemaPath := filepath.Join("..", "..", "schemas", "gap_analysis.schema.json")
	jsonPath := writeFile(t, t.TempDir(), "gap_analysis.json", gapAnalysisJSON)

	cmd := exec.Command(binaryPath, "validate", "--schema", schemaPath, "--json", jsonPath)
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, "command should succeed")
	assert.Contains(t, string(output), "Validation passed", "output should indicate success")
}

func TestValidateCommand_Failure(t *testing.T) {
	binaryPath := getBinaryPath(t)

	schemaPath := filepath.Join("..", "..", "schemas", "criteria_with_weights.schema.json")
	jsonPath := writeFile(t, t.TempDir(), "criteria.json", `{"summary": "", "criteria": [{"name": "x"}]}`)

	cmd := exec.Command(binaryPath, "validate", "--schema", schemaPath, "--json", jsonPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "Validation failed", "output should indicate failure")
	if exitError, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitError.ExitCode(), "should exit with code 1 on validation failure")
	}
}

func TestValidateCommand_MissingSchemaFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate", "--json", "anything.json")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "required", "should indicate flag is required")
}
