package evaluation

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider evaluates answers through the hosted Gemini API. The API
// enforces the response schema server-side, so no key normalization is needed
// here — a parse failure is rare and surfaces as an evaluation error rather
// than being silently patched.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// Compile-time check: *GeminiProvider satisfies the Provider interface.
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a provider using the given API key and model.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrProviderUnavailable)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string  { return "gemini" }
func (p *GeminiProvider) Model() string { return p.model }

// HealthCheck verifies the client was configured. The hosted API has no
// cheap ping worth spending quota on.
func (p *GeminiProvider) HealthCheck(ctx context.Context) error {
	if p.client == nil {
		return fmt.Errorf("%w: gemini client not initialized", ErrProviderUnavailable)
	}
	return nil
}

// ============================================================================
// Provider interface
// ============================================================================

func (p *GeminiProvider) EvaluateSpeaking(ctx context.Context, in SpeakingInput) (*ContentEvaluation, error) {
	var result ContentEvaluation
	err := p.generate(ctx, speakingSystemPrompt, buildSpeakingUserPrompt(in), contentEvaluationSchema, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *GeminiProvider) EvaluateSpeakingEnhanced(ctx context.Context, in SpeakingInput) (*EnhancedReview, error) {
	var result EnhancedReview
	err := p.generate(ctx, speakingEnhancedSystemPrompt, buildSpeakingUserPrompt(in), enhancedReviewSchema, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *GeminiProvider) EvaluateWriting(ctx context.Context, in WritingInput) (*WritingEvaluation, error) {
	var result WritingEvaluation
	err := p.generate(ctx, writingSystemPrompt, buildWritingUserPrompt(in), writingEvaluationSchema, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *GeminiProvider) EvaluateWritingEnhanced(ctx context.Context, in WritingInput) (*WritingEnhancedReview, error) {
	var result WritingEnhancedReview
	err := p.generate(ctx, writingEnhancedSystemPrompt, buildWritingUserPrompt(in), writingEnhancedSchema, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// generate makes one schema-constrained call and decodes the response into
// dst. The schema is enforced server-side; validation here only guards
// against out-of-range scores.
func (p *GeminiProvider) generate(ctx context.Context, system, user string, schema *genai.Schema, dst interface{ Validate() error }) error {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	})
	if err != nil {
		return fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return &EvaluationError{Reason: "gemini returned empty response"}
	}
	if err := json.Unmarshal([]byte(text), dst); err != nil {
		return &EvaluationError{Reason: "gemini response does not match schema", Raw: text, Wrapped: err}
	}
	if err := dst.Validate(); err != nil {
		return &EvaluationError{Reason: "schema validation failed", Raw: text, Wrapped: err}
	}
	return nil
}

// ============================================================================
// Response schemas
// ============================================================================

func criterionSchema(desc string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeObject,
		Description: desc,
		Properties: map[string]*genai.Schema{
			"score":    {Type: genai.TypeNumber, Description: "Band score 0-9"},
			"feedback": {Type: genai.TypeString, Description: "Brief examiner feedback for this criterion"},
		},
		Required: []string{"score", "feedback"},
	}
}

func stringListSchema(desc string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: desc,
		Items:       &genai.Schema{Type: genai.TypeString},
	}
}

var grammarCorrectionsSchema = &genai.Schema{
	Type:        genai.TypeArray,
	Description: "Specific grammar errors with corrections",
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"original":    {Type: genai.TypeString, Description: "The original phrase with the error"},
			"corrected":   {Type: genai.TypeString, Description: "The corrected version"},
			"explanation": {Type: genai.TypeString, Description: "Brief grammar rule explanation"},
		},
		Required: []string{"original", "corrected", "explanation"},
	},
}

var vocabularyUpgradesSchema = &genai.Schema{
	Type:        genai.TypeArray,
	Description: "Vocabulary upgrade suggestions",
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"basic_word":   {Type: genai.TypeString, Description: "The basic/common word used"},
			"alternatives": {Type: genai.TypeArray, Description: "2-3 advanced alternatives", Items: &genai.Schema{Type: genai.TypeString}},
			"example":      {Type: genai.TypeString, Description: "Example sentence using one alternative"},
		},
		Required: []string{"basic_word", "alternatives", "example"},
	},
}

var pronunciationWarningsSchema = &genai.Schema{
	Type:        genai.TypeArray,
	Description: "Words the candidate used that are commonly mispronounced",
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"word":     {Type: genai.TypeString, Description: "Word from transcript that may be mispronounced"},
			"phonetic": {Type: genai.TypeString, Description: "Correct pronunciation guide (simplified)"},
			"tip":      {Type: genai.TypeString, Description: "Common mistake and how to fix it"},
		},
		Required: []string{"word", "phonetic", "tip"},
	},
}

var contentEvaluationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"coherence":         criterionSchema("Coherence and cohesion"),
		"lexical_resource":  criterionSchema("Lexical resource / vocabulary"),
		"grammatical_range": criterionSchema("Grammatical range and accuracy"),
		"task_response":     criterionSchema("Task achievement / response relevance"),
		"overall_feedback":  {Type: genai.TypeString, Description: "Overall examiner summary"},
	},
	Required: []string{"coherence", "lexical_resource", "grammatical_range", "task_response", "overall_feedback"},
}

var enhancedReviewSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"coherence":              criterionSchema("Coherence and cohesion"),
		"lexical_resource":       criterionSchema("Lexical resource / vocabulary"),
		"grammatical_range":      criterionSchema("Grammatical range and accuracy"),
		"task_response":          criterionSchema("Task achievement / response relevance"),
		"overall_feedback":       {Type: genai.TypeString, Description: "Overall examiner summary"},
		"grammar_corrections":    grammarCorrectionsSchema,
		"vocabulary_upgrades":    vocabularyUpgradesSchema,
		"pronunciation_warnings": pronunciationWarningsSchema,
		"strengths":              stringListSchema("2-3 specific things done well"),
		"improvement_priorities": stringListSchema("2-3 specific, actionable improvement tips"),
	},
	Required: []string{"coherence", "lexical_resource", "grammatical_range", "task_response", "overall_feedback"},
}

var writingEvaluationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"task_achievement":  criterionSchema("Task 1: Task Achievement; Task 2: Task Response"),
		"coherence":         criterionSchema("Coherence & Cohesion"),
		"lexical_resource":  criterionSchema("Lexical Resource"),
		"grammatical_range": criterionSchema("Grammatical Range & Accuracy"),
		"overall_feedback":  {Type: genai.TypeString, Description: "Overall examiner summary"},
	},
	Required: []string{"task_achievement", "coherence", "lexical_resource", "grammatical_range", "overall_feedback"},
}

var writingEnhancedSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"task_achievement":       criterionSchema("Task 1: Task Achievement; Task 2: Task Response"),
		"coherence":              criterionSchema("Coherence & Cohesion"),
		"lexical_resource":       criterionSchema("Lexical Resource"),
		"grammatical_range":      criterionSchema("Grammatical Range & Accuracy"),
		"overall_feedback":       {Type: genai.TypeString, Description: "Overall examiner summary"},
		"grammar_corrections":    grammarCorrectionsSchema,
		"vocabulary_upgrades":    vocabularyUpgradesSchema,
		"paragraph_feedback":     stringListSchema("Per-paragraph analysis"),
		"strengths":              stringListSchema("2-3 specific things done well"),
		"improvement_priorities": stringListSchema("2-3 specific, actionable improvement tips"),
	},
	Required: []string{"task_achievement", "coherence", "lexical_resource", "grammatical_range", "overall_feedback"},
}
