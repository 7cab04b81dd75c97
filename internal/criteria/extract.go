package criteria

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/types"
)

// MalformedResponseError reports a criteria response that could not be turned into a
// usable CriteriaSet. Raw carries the service output unchanged.
type MalformedResponseError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed criteria response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed criteria response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

var validate = validator.New()

// Extract asks the service for the evaluation criteria of an RFP. Categories outside the
// known set are mapped to "other" and nameless criteria are dropped. Weights are left as
// returned; run Weight afterwards.
func Extract(ctx context.Context, client llm.Client, rfpText string) (*types.CriteriaSet, error) {
	prompt := llm.BuildExtractionPrompt(llm.CriteriaSchema(), rfpText)

	resp, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to extract criteria: %w", err)
	}

	return ParseResponse(resp)
}

// ParseResponse turns a raw criteria response into a validated CriteriaSet.
func ParseResponse(resp string) (*types.CriteriaSet, error) {
	var set types.CriteriaSet
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(resp)), &set); err != nil {
		return nil, &MalformedResponseError{Message: "response is not a criteria object", Raw: resp, Cause: err}
	}

	kept := make([]types.Criterion, 0, len(set.Criteria))
	for _, c := range set.Criteria {
		c.Name = strings.TrimSpace(c.Name)
		c.Description = strings.TrimSpace(c.Description)
		if c.Name == "" {
			continue
		}
		c.Category = NormalizeCategory(c.Category)
		kept = append(kept, c)
	}
	set.Criteria = kept
	set.Summary = strings.TrimSpace(set.Summary)

	if len(set.Criteria) == 0 {
		return nil, &MalformedResponseError{Message: "no criteria in response", Raw: resp}
	}
	if err := validate.Struct(&set); err != nil {
		return nil, &MalformedResponseError{Message: "criteria failed validation", Raw: resp, Cause: err}
	}
	return &set, nil
}
