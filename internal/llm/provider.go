// Package llm wraps the external keyword-extraction capability: given a
// question, an OpenAI-compatible model returns keywords, a category, and
// any term corrections it applied. One shot per call, no retries here;
// failures are folded into local fallback by the hybrid orchestrator.
package llm

import (
	"context"
	"time"

	"github.com/codecamp-kr/qna-assist/internal/model"
)

// Provider is the external keyword-extraction capability.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// ExtractKeywords asks the model for keywords in the question. Any
	// transport, status, or payload problem is returned as an error.
	ExtractKeywords(ctx context.Context, question string) (*Response, error)
}

// Response is the external model's answer.
type Response struct {
	Keywords       []string
	Category       string
	CorrectedTerms map[string]string
	Model          string
	Usage          *model.TokenUsage
}

// Config holds provider configuration.
type Config struct {
	// APIKey for the endpoint.
	APIKey string

	// BaseURL overrides the endpoint for OpenAI-compatible local servers.
	BaseURL string

	// Model name; empty means gpt-4o-mini.
	Model string

	// Timeout for a single API request.
	Timeout time.Duration

	// RequestsPerSecond bounds the outgoing request rate.
	RequestsPerSecond float64
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		APIKey:            c.APIKey,
		BaseURL:           c.BaseURL,
		Model:             c.Model,
		Timeout:           c.Timeout,
		RequestsPerSecond: c.RequestsPerSecond,
	}
}
