package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/rfp-proposal/internal/prompts"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text content using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON generates JSON content using the specified model tier
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the underlying provider model for a tier (for direct access if needed)
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// ImageReader reads the text printed on an image, one entry per line.
type ImageReader interface {
	ReadImageText(ctx context.Context, image []byte, mimeType string) ([]string, error)
}

// CallError reports a failed call to the external text-understanding service.
// The core never retries; callers decide.
type CallError struct {
	Model   string
	Message string
	Cause   error
}

func (e *CallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm call to %s failed: %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("llm call to %s failed: %s", e.Model, e.Message)
}

func (e *CallError) Unwrap() error {
	return e.Cause
}

// ErrNoAPIKey is returned when a client is built without credentials.
var ErrNoAPIKey = errors.New("API key is required")

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if config.Provider != "" && config.Provider != ProviderGemini {
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client and ImageReader for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if config == nil {
		config = DefaultGeminiConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// model returns a configured handle for the tier.
func (c *GeminiClient) model(ctx context.Context, tier ModelTier) (*genai.GenerativeModel, string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return nil, "", &CallError{Model: string(tier), Message: "no model configured for tier"}
	}

	model := c.client.GenerativeModel(modelName)
	temperature := c.config.Temperature
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	model.SetTemperature(temperatureFrom(ctx, temperature))
	return model, modelName, nil
}

// GenerateContent generates text content using the specified model tier
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model, name, err := c.model(ctx, tier)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &CallError{Model: name, Message: "generate content", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", &CallError{Model: name, Message: "read response", Cause: err}
	}
	return text, nil
}

// GenerateJSON generates JSON content using the specified model tier
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model, name, err := c.model(ctx, tier)
	if err != nil {
		return "", err
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &CallError{Model: name, Message: "generate JSON", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", &CallError{Model: name, Message: "read response", Cause: err}
	}

	return CleanJSONBlock(text), nil
}

// ReadImageText sends an image with the logo-reading prompt and returns the non-empty lines.
func (c *GeminiClient) ReadImageText(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	model, name, err := c.model(ctx, TierLite)
	if err != nil {
		return nil, err
	}

	format := strings.TrimPrefix(mimeType, "image/")
	if format == "" || format == mimeType {
		format = "png"
	}

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(format, image),
		genai.Text(prompts.MustGet("company.json", "read-logo")),
	)
	if err != nil {
		return nil, &CallError{Model: name, Message: "read image", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, &CallError{Model: name, Message: "read response", Cause: err}
	}
	return splitLines(text), nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// splitLines returns the trimmed, non-empty lines of text.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
