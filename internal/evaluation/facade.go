package evaluation

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// CallMetadata describes one provider call for audit/logging. It is returned
// alongside every result instead of being kept as shared state, so concurrent
// evaluations cannot clobber each other's bookkeeping.
type CallMetadata struct {
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	ResponseTimeMS int64  `json:"response_time_ms"`
}

// ProviderSettings selects and configures the active provider.
type ProviderSettings struct {
	Provider      string // "gemini" (default) or "ollama"
	GeminiAPIKey  string
	GeminiModel   string
	OllamaBaseURL string
	OllamaModel   string
}

// Evaluator is the uniform entry point for content evaluation. It holds one
// provider chosen at startup, checks its health before dispatching, and times
// every call.
type Evaluator struct {
	provider Provider
}

// NewEvaluator wraps an already constructed provider.
func NewEvaluator(p Provider) *Evaluator {
	return &Evaluator{provider: p}
}

// NewFromSettings builds the configured provider and wraps it.
func NewFromSettings(ctx context.Context, s ProviderSettings) (*Evaluator, error) {
	switch strings.ToLower(s.Provider) {
	case "ollama":
		return NewEvaluator(NewOllamaProvider(s.OllamaBaseURL, s.OllamaModel)), nil
	case "", "gemini":
		p, err := NewGeminiProvider(ctx, s.GeminiAPIKey, s.GeminiModel)
		if err != nil {
			return nil, err
		}
		return NewEvaluator(p), nil
	default:
		return nil, fmt.Errorf("unknown evaluation provider %q", s.Provider)
	}
}

// ProviderName reports the active provider, for status endpoints.
func (e *Evaluator) ProviderName() string { return e.provider.Name() }

// ModelName reports the active model, for status endpoints.
func (e *Evaluator) ModelName() string { return e.provider.Model() }

// HealthCheck reports whether the active provider can take calls.
func (e *Evaluator) HealthCheck(ctx context.Context) error {
	return e.provider.HealthCheck(ctx)
}

func (e *Evaluator) EvaluateSpeaking(ctx context.Context, in SpeakingInput) (*ContentEvaluation, CallMetadata, error) {
	if err := e.provider.HealthCheck(ctx); err != nil {
		return nil, e.metadata(0), err
	}
	start := time.Now()
	result, err := e.provider.EvaluateSpeaking(ctx, in)
	return result, e.metadata(time.Since(start)), err
}

func (e *Evaluator) EvaluateSpeakingEnhanced(ctx context.Context, in SpeakingInput) (*EnhancedReview, CallMetadata, error) {
	if err := e.provider.HealthCheck(ctx); err != nil {
		return nil, e.metadata(0), err
	}
	start := time.Now()
	result, err := e.provider.EvaluateSpeakingEnhanced(ctx, in)
	return result, e.metadata(time.Since(start)), err
}

func (e *Evaluator) EvaluateWriting(ctx context.Context, in WritingInput) (*WritingEvaluation, CallMetadata, error) {
	if err := e.provider.HealthCheck(ctx); err != nil {
		return nil, e.metadata(0), err
	}
	start := time.Now()
	result, err := e.provider.EvaluateWriting(ctx, in)
	return result, e.metadata(time.Since(start)), err
}

func (e *Evaluator) EvaluateWritingEnhanced(ctx context.Context, in WritingInput) (*WritingEnhancedReview, CallMetadata, error) {
	if err := e.provider.HealthCheck(ctx); err != nil {
		return nil, e.metadata(0), err
	}
	start := time.Now()
	result, err := e.provider.EvaluateWritingEnhanced(ctx, in)
	return result, e.metadata(time.Since(start)), err
}

func (e *Evaluator) metadata(elapsed time.Duration) CallMetadata {
	return CallMetadata{
		Provider:       e.provider.Name(),
		Model:          e.provider.Model(),
		ResponseTimeMS: elapsed.Milliseconds(),
	}
}
