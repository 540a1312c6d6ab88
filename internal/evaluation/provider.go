package evaluation

import "context"

// SpeakingInput is everything a provider needs to evaluate one spoken answer.
type SpeakingInput struct {
	Question   string
	Part       int    // 1, 2, or 3
	Transcript string
	// ReferenceAnswer scopes the question for the examiner; it must never be
	// scored against. Optional.
	ReferenceAnswer string
}

// WritingInput is everything a provider needs to evaluate one essay.
type WritingInput struct {
	PromptText string
	EssayText  string
	TaskType   int // 1 or 2
	// ChartDataJSON holds Task 1 chart data, if any.
	ChartDataJSON string
}

// Provider evaluates transcripts and essays against the IELTS rubric.
// Implementations must return a fully validated result or an error — never a
// partially filled structure. They do not retry; resilience is the caller's
// concern since every call costs real latency and possibly money.
type Provider interface {
	EvaluateSpeaking(ctx context.Context, in SpeakingInput) (*ContentEvaluation, error)
	EvaluateSpeakingEnhanced(ctx context.Context, in SpeakingInput) (*EnhancedReview, error)
	EvaluateWriting(ctx context.Context, in WritingInput) (*WritingEvaluation, error)
	EvaluateWritingEnhanced(ctx context.Context, in WritingInput) (*WritingEnhancedReview, error)

	// HealthCheck reports whether the provider is ready to take calls.
	// It must be cheap: a config check or a short probe, never a generation.
	HealthCheck(ctx context.Context) error

	Name() string
	Model() string
}
