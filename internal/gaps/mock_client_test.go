package gaps

import (
	"context"

	"github.com/jonathan/rfp-proposal/internal/llm"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GetModelFunc        func(tier llm.ModelTier) string
	CloseFunc           func() error
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return `{}`, nil
}

func (m *MockLLMClient) GetModel(tier llm.ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
