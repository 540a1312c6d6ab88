package evaluation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// OllamaProvider evaluates answers through a locally hosted chat model
// (Ollama). The model has no output-schema enforcement, so every response
// goes through wrapper stripping and key normalization before validation.
type OllamaProvider struct {
	baseURL string       // e.g. "http://localhost:11434"
	model   string       // e.g. "deepseek-r1:8b"
	client  *http.Client // reused across calls
}

// Compile-time check: *OllamaProvider satisfies the Provider interface.
var _ Provider = (*OllamaProvider)(nil)

// NewOllamaProvider creates a provider for the given Ollama endpoint.
// Structured generation over a full essay is slow on local hardware, so the
// call timeout is generous.
func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (p *OllamaProvider) Name() string  { return "ollama" }
func (p *OllamaProvider) Model() string { return p.model }

// HealthCheck probes the Ollama tags endpoint with a short timeout.
func (p *OllamaProvider) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ollama not reachable at %s: %v", ErrProviderUnavailable, p.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ollama returned status %d", ErrProviderUnavailable, resp.StatusCode)
	}
	return nil
}

// ============================================================================
// Provider interface
// ============================================================================

func (p *OllamaProvider) EvaluateSpeaking(ctx context.Context, in SpeakingInput) (*ContentEvaluation, error) {
	system := speakingSystemPrompt + "\n\n" + speakingFlatSchema
	raw, err := p.chat(ctx, system, buildSpeakingUserPrompt(in))
	if err != nil {
		return nil, err
	}
	var result ContentEvaluation
	if err := parseNormalized(raw, speakingAliases, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *OllamaProvider) EvaluateSpeakingEnhanced(ctx context.Context, in SpeakingInput) (*EnhancedReview, error) {
	system := speakingEnhancedSystemPrompt + "\n\n" + speakingEnhancedFlatSchema
	raw, err := p.chat(ctx, system, buildSpeakingUserPrompt(in))
	if err != nil {
		return nil, err
	}
	var result EnhancedReview
	if err := parseNormalized(raw, speakingAliases, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *OllamaProvider) EvaluateWriting(ctx context.Context, in WritingInput) (*WritingEvaluation, error) {
	system := writingSystemPrompt + "\n\n" + writingFlatSchema
	raw, err := p.chat(ctx, system, buildWritingUserPrompt(in))
	if err != nil {
		return nil, err
	}
	var result WritingEvaluation
	if err := parseNormalized(raw, writingAliases, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *OllamaProvider) EvaluateWritingEnhanced(ctx context.Context, in WritingInput) (*WritingEnhancedReview, error) {
	system := writingEnhancedSystemPrompt + "\n\n" + writingEnhancedFlatSchema
	raw, err := p.chat(ctx, system, buildWritingUserPrompt(in))
	if err != nil {
		return nil, err
	}
	var result WritingEnhancedReview
	if err := parseNormalized(raw, writingAliases, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ============================================================================
// Wire format
// ============================================================================

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Format   string          `json:"format"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaChatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// chat sends one chat-completion request and returns the candidate JSON text:
// reasoning blocks and markdown fences are already stripped. "format": "json"
// is requested but the model is free to ignore it, hence the cleanup.
func (p *OllamaProvider) chat(ctx context.Context, system, user string) (string, error) {
	reqBody := ollamaChatRequest{
		Model: p.model,
		Messages: []ollamaMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Format:  "json",
		Stream:  false,
		Options: ollamaOptions{Temperature: 0.3},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &EvaluationError{Reason: fmt.Sprintf("ollama returned status %d", resp.StatusCode)}
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", &EvaluationError{Reason: "failed to decode ollama response", Wrapped: err}
	}

	content := chatResp.Message.Content
	if content == "" {
		return "", &EvaluationError{Reason: "ollama returned empty content"}
	}

	return extractResponseJSON(stripThinkTags(content)), nil
}

// ============================================================================
// Response cleanup
// ============================================================================

var (
	thinkTagRe = regexp.MustCompile(`(?s)<think>.*?</think>`)
	fenceRe    = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)\n?```")
)

// stripThinkTags removes <think>...</think> reasoning blocks emitted by
// deepseek-r1 style models.
func stripThinkTags(text string) string {
	return strings.TrimSpace(thinkTagRe.ReplaceAllString(text, ""))
}

// extractResponseJSON pulls the JSON payload out of the response text,
// preferring a fenced ```json block, then the outermost brace-matched object,
// then the trimmed text as-is.
func extractResponseJSON(text string) string {
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if obj := extractJSONObject(text); obj != "" {
		return obj
	}
	return strings.TrimSpace(text)
}

// extractJSONObject finds the outermost JSON object in a string. It handles
// nested braces correctly and skips braces inside quoted strings.
func extractJSONObject(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range s {
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if ch == '{' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == '}' {
			depth--
			if depth == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// parseNormalized runs the two-phase decode: parse loose JSON into a map,
// normalize known key variance, then re-decode into the canonical schema and
// validate. Anything the normalizer cannot reconcile fails here — partial or
// guessed scores are worse than an explicit failure.
func parseNormalized(rawText string, tables criterionAliases, dst interface{ Validate() error }) error {
	var m map[string]any
	if err := json.Unmarshal([]byte(rawText), &m); err != nil {
		return &EvaluationError{Reason: "no valid JSON object in model response", Raw: rawText, Wrapped: err}
	}

	m = normalizeKeys(m, tables)

	buf, err := json.Marshal(m)
	if err != nil {
		return &EvaluationError{Reason: "normalized payload not serializable", Raw: rawText, Wrapped: err}
	}
	if err := json.Unmarshal(buf, dst); err != nil {
		return &EvaluationError{Reason: "response does not match evaluation schema", Raw: rawText, Wrapped: err}
	}
	if err := dst.Validate(); err != nil {
		return &EvaluationError{Reason: "schema validation failed", Raw: rawText, Wrapped: err}
	}
	return nil
}
