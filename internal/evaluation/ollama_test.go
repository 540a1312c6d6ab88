package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newOllamaTestServer serves /api/tags (health) and /api/chat with a fixed
// model reply.
func newOllamaTestServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("malformed chat request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("expected system+user messages, got %+v", req.Messages)
		}
		resp := ollamaChatResponse{}
		resp.Message.Content = content
		json.NewEncoder(w).Encode(resp)
	})
	return httptest.NewServer(mux)
}

func TestOllamaProvider_EvaluateSpeaking_MessyLocalOutput(t *testing.T) {
	// deepseek-r1 style reply: reasoning block, markdown fence, aliased flat
	// keys, one bare-number criterion.
	content := "<think>The candidate spoke fluently but made grammar mistakes.</think>\n" +
		"```json\n" +
		`{
            "fluency_score": 7,
            "fluency_and_coherence_feedback": "natural pace",
            "vocabulary": {"score": 6.5, "feedback": "decent range"},
            "grammar_score": 6,
            "grammar_feedback": "article errors",
            "task_achievement": 7,
            "summary": "a confident answer"
        }` + "\n```"

	srv := newOllamaTestServer(t, content)
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "test-model")
	got, err := p.EvaluateSpeaking(context.Background(), SpeakingInput{
		Question:   "Do you enjoy your work?",
		Part:       1,
		Transcript: "Yes I really enjoy it because ...",
	})
	if err != nil {
		t.Fatalf("EvaluateSpeaking: %v", err)
	}

	if got.Coherence.Score != 7 {
		t.Errorf("Coherence.Score = %v, want 7", got.Coherence.Score)
	}
	if got.Coherence.Feedback != "natural pace" {
		t.Errorf("Coherence.Feedback = %q", got.Coherence.Feedback)
	}
	if got.LexicalResource.Score != 6.5 {
		t.Errorf("LexicalResource.Score = %v, want 6.5", got.LexicalResource.Score)
	}
	if got.GrammaticalRange.Feedback != "article errors" {
		t.Errorf("GrammaticalRange.Feedback = %q", got.GrammaticalRange.Feedback)
	}
	if got.TaskResponse.Score != 7 {
		t.Errorf("TaskResponse.Score = %v, want 7", got.TaskResponse.Score)
	}
	if got.OverallFeedback != "a confident answer" {
		t.Errorf("OverallFeedback = %q", got.OverallFeedback)
	}
}

func TestOllamaProvider_EvaluateSpeakingEnhanced_Enrichment(t *testing.T) {
	content := `{
        "coherence_score": 7, "lexical_resource_score": 7,
        "grammatical_range_score": 6.5, "task_response_score": 7,
        "overall_feedback": "good",
        "grammar_corrections": [
            {"original": "he go", "corrected": "he goes", "explanation": "third person s"}
        ],
        "vocabulary_upgrades": [
            {"basic_word": "good", "alternatives": ["excellent", "superb"], "example": "an excellent meal"}
        ],
        "strengths": ["clear structure"],
        "improvement_priorities": ["verb tense"]
    }`

	srv := newOllamaTestServer(t, content)
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "test-model")
	got, err := p.EvaluateSpeakingEnhanced(context.Background(), SpeakingInput{Transcript: "..."})
	if err != nil {
		t.Fatalf("EvaluateSpeakingEnhanced: %v", err)
	}

	if len(got.GrammarCorrections) != 1 || got.GrammarCorrections[0].Corrected != "he goes" {
		t.Errorf("GrammarCorrections = %+v", got.GrammarCorrections)
	}
	if len(got.VocabularyUpgrades) != 1 || len(got.VocabularyUpgrades[0].Alternatives) != 2 {
		t.Errorf("VocabularyUpgrades = %+v", got.VocabularyUpgrades)
	}
	if len(got.Strengths) != 1 || len(got.ImprovementPriorities) != 1 {
		t.Errorf("Strengths/ImprovementPriorities = %v / %v", got.Strengths, got.ImprovementPriorities)
	}
}

func TestOllamaProvider_EvaluateWriting_TaskResponseAlias(t *testing.T) {
	// Task 2 models often emit task_response; writing canonicalizes to
	// task_achievement.
	content := `{
        "task_response_score": 6.5, "task_response_feedback": "addresses the question",
        "coherence_score": 6, "lexical_score": 7, "grammar_score": 6,
        "overall_feedback": "a reasonable essay"
    }`

	srv := newOllamaTestServer(t, content)
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "test-model")
	got, err := p.EvaluateWriting(context.Background(), WritingInput{
		PromptText: "Discuss both views.",
		EssayText:  "In recent years ...",
		TaskType:   2,
	})
	if err != nil {
		t.Fatalf("EvaluateWriting: %v", err)
	}

	if got.TaskAchievement.Score != 6.5 {
		t.Errorf("TaskAchievement.Score = %v, want 6.5", got.TaskAchievement.Score)
	}
	if got.TaskAchievement.Feedback != "addresses the question" {
		t.Errorf("TaskAchievement.Feedback = %q", got.TaskAchievement.Feedback)
	}
	if got.LexicalResource.Score != 7 {
		t.Errorf("LexicalResource.Score = %v, want 7", got.LexicalResource.Score)
	}
}

func TestOllamaProvider_MalformedResponse(t *testing.T) {
	srv := newOllamaTestServer(t, "I cannot evaluate this answer.")
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "test-model")
	_, err := p.EvaluateSpeaking(context.Background(), SpeakingInput{Transcript: "..."})
	if err == nil {
		t.Fatal("expected error for non-JSON model output")
	}

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected *EvaluationError, got %T: %v", err, err)
	}
	if evalErr.Raw == "" {
		t.Error("expected raw model output on the error")
	}
	if errors.Is(err, ErrProviderUnavailable) {
		t.Error("malformed output must not be reported as provider unavailability")
	}
}

func TestOllamaProvider_HealthCheck_Unreachable(t *testing.T) {
	p := NewOllamaProvider("http://127.0.0.1:1", "test-model")
	err := p.HealthCheck(context.Background())
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestStripThinkTags(t *testing.T) {
	in := "<think>long\nreasoning</think>\n{\"a\": 1}"
	if got := stripThinkTags(in); got != `{"a": 1}` {
		t.Errorf("stripThinkTags = %q", got)
	}
}

func TestExtractResponseJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced no lang", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose wrapped", `Here is the result: {"a": {"b": 2}} hope it helps`, `{"a": {"b": 2}}`},
		{"brace in string", `{"a": "закрывающая } скобка"}`, `{"a": "закрывающая } скобка"}`},
		{"bare", `{"a": 1}`, `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractResponseJSON(tt.in); got != tt.want {
				t.Errorf("extractResponseJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
