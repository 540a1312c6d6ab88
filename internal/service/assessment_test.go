package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fluentband/backend/internal/audio"
	"github.com/fluentband/backend/internal/domain/attempt"
	"github.com/fluentband/backend/internal/evallog"
	"github.com/fluentband/backend/internal/evaluation"
	"github.com/fluentband/backend/internal/service"
	"github.com/fluentband/backend/internal/store"
)

// fakeProvider returns fixed band-7 evaluations, or fails every call when
// fail is set.
type fakeProvider struct {
	fail bool
}

func (f *fakeProvider) Name() string                              { return "fake" }
func (f *fakeProvider) Model() string                             { return "fake-model" }
func (f *fakeProvider) HealthCheck(ctx context.Context) error     { return nil }

func (f *fakeProvider) content() evaluation.ContentEvaluation {
	return evaluation.ContentEvaluation{
		Coherence:        evaluation.CriterionScore{Score: 7, Feedback: "coherent"},
		LexicalResource:  evaluation.CriterionScore{Score: 7},
		GrammaticalRange: evaluation.CriterionScore{Score: 7},
		TaskResponse:     evaluation.CriterionScore{Score: 7},
		OverallFeedback:  "a solid answer",
	}
}

func (f *fakeProvider) EvaluateSpeaking(ctx context.Context, in evaluation.SpeakingInput) (*evaluation.ContentEvaluation, error) {
	if f.fail {
		return nil, &evaluation.EvaluationError{Reason: "model returned garbage"}
	}
	c := f.content()
	return &c, nil
}

func (f *fakeProvider) EvaluateSpeakingEnhanced(ctx context.Context, in evaluation.SpeakingInput) (*evaluation.EnhancedReview, error) {
	if f.fail {
		return nil, &evaluation.EvaluationError{Reason: "model returned garbage"}
	}
	return &evaluation.EnhancedReview{
		ContentEvaluation: f.content(),
		GrammarCorrections: []evaluation.GrammarCorrection{
			{Original: "he go", Corrected: "he goes", Explanation: "third person s"},
		},
		Strengths: []string{"clear structure"},
	}, nil
}

func (f *fakeProvider) EvaluateWriting(ctx context.Context, in evaluation.WritingInput) (*evaluation.WritingEvaluation, error) {
	if f.fail {
		return nil, &evaluation.EvaluationError{Reason: "model returned garbage"}
	}
	return &evaluation.WritingEvaluation{
		TaskAchievement:  evaluation.CriterionScore{Score: 6.5},
		Coherence:        evaluation.CriterionScore{Score: 6},
		LexicalResource:  evaluation.CriterionScore{Score: 7},
		GrammaticalRange: evaluation.CriterionScore{Score: 6.5},
		OverallFeedback:  "reasonable essay",
	}, nil
}

func (f *fakeProvider) EvaluateWritingEnhanced(ctx context.Context, in evaluation.WritingInput) (*evaluation.WritingEnhancedReview, error) {
	if f.fail {
		return nil, &evaluation.EvaluationError{Reason: "model returned garbage"}
	}
	w, _ := f.EvaluateWriting(ctx, in)
	return &evaluation.WritingEnhancedReview{
		WritingEvaluation: *w,
		ParagraphFeedback: []string{"intro is clear"},
	}, nil
}

func newTestService(t *testing.T, provider evaluation.Provider) (*service.AssessmentService, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewAssessmentService(
		s, evaluation.NewEvaluator(provider), audio.TimingAnalyzer{},
		evallog.New(filepath.Join(t.TempDir(), "evals")), logger, 2,
	)
	t.Cleanup(svc.Close)
	return svc, s
}

func goodWords() []audio.Word {
	return []audio.Word{
		{Text: "yes", Start: 0.2, End: 0.5, Probability: 0.95},
		{Text: "i", Start: 0.6, End: 0.7, Probability: 0.9},
		{Text: "do", Start: 0.8, End: 1.1, Probability: 0.92},
	}
}

func TestAssessSpeaking_FullPipeline(t *testing.T) {
	svc, s := newTestService(t, &fakeProvider{})
	ctx := context.Background()

	sessionID, _ := s.CreateSession(ctx, attempt.ModePractice)

	rec, err := svc.AssessSpeaking(ctx, service.SpeakingRequest{
		SessionID:    sessionID,
		Part:         1,
		Topic:        "Hometown",
		QuestionText: "Do you like your hometown?",
		Transcript:   "yes i do",
		Duration:     1.5,
		Words:        goodWords(),
	})
	if err != nil {
		t.Fatalf("AssessSpeaking: %v", err)
	}

	if rec.ID == 0 {
		t.Error("record not persisted")
	}
	if rec.OverallBand < 4 || rec.OverallBand > 9 {
		t.Errorf("OverallBand = %v outside [4,9]", rec.OverallBand)
	}
	if rec.LexicalResource != 7 {
		t.Errorf("LexicalResource = %v, want 7 (content passthrough)", rec.LexicalResource)
	}
	if rec.ExaminerFeedback != "a solid answer" {
		t.Errorf("ExaminerFeedback = %q", rec.ExaminerFeedback)
	}
	if !strings.Contains(rec.GrammarCorrections, "he goes") {
		t.Errorf("GrammarCorrections = %q", rec.GrammarCorrections)
	}

	saved, err := s.GetAttemptsForSession(ctx, sessionID)
	if err != nil || len(saved) != 1 {
		t.Fatalf("persisted attempts = %d (%v), want 1", len(saved), err)
	}
}

func TestAssessSpeaking_AudioOnlyFallback(t *testing.T) {
	svc, s := newTestService(t, &fakeProvider{fail: true})
	ctx := context.Background()

	sessionID, _ := s.CreateSession(ctx, attempt.ModePractice)

	rec, err := svc.AssessSpeaking(ctx, service.SpeakingRequest{
		SessionID:  sessionID,
		Part:       1,
		Transcript: "yes i do",
		Duration:   1.5,
		Words:      goodWords(),
	})
	if err != nil {
		t.Fatalf("evaluation failure must not fail the attempt: %v", err)
	}

	if rec.OverallBand != 0 {
		t.Errorf("OverallBand = %v, want 0 without content evaluation", rec.OverallBand)
	}
	if rec.Duration != 1.5 || rec.PronunciationConfidence == 0 {
		t.Errorf("audio metrics lost on fallback: %+v", rec)
	}
	if rec.GrammarCorrections != "" {
		t.Errorf("fallback record carries enrichment: %q", rec.GrammarCorrections)
	}
}

func TestAssessWriting(t *testing.T) {
	svc, s := newTestService(t, &fakeProvider{})
	ctx := context.Background()

	sessionID, _ := s.CreateSession(ctx, attempt.ModeWriting)
	essay := strings.Repeat("word ", 260)

	rec, err := svc.AssessWriting(ctx, service.WritingRequest{
		SessionID:  sessionID,
		PromptID:   1,
		TaskType:   2,
		PromptText: "Discuss both views.",
		EssayText:  essay,
	})
	if err != nil {
		t.Fatalf("AssessWriting: %v", err)
	}

	if rec.WordCount != 260 {
		t.Errorf("WordCount = %d, want 260", rec.WordCount)
	}
	// (6.5 + 6 + 7 + 6.5) / 4 = 6.5
	if rec.OverallBand != 6.5 {
		t.Errorf("OverallBand = %v, want 6.5", rec.OverallBand)
	}
	if rec.ExaminerFeedback != "reasonable essay" {
		t.Errorf("ExaminerFeedback = %q", rec.ExaminerFeedback)
	}
}

func TestAssessWriting_BelowMinimumStillEvaluated(t *testing.T) {
	svc, s := newTestService(t, &fakeProvider{})
	ctx := context.Background()

	sessionID, _ := s.CreateSession(ctx, attempt.ModeWriting)

	rec, err := svc.AssessWriting(ctx, service.WritingRequest{
		SessionID:  sessionID,
		TaskType:   2,
		PromptText: "Discuss both views.",
		EssayText:  "Too short but not empty.",
	})
	if err != nil {
		t.Fatalf("AssessWriting: %v", err)
	}
	if !strings.Contains(rec.ExaminerFeedback, "below the 250-word minimum") {
		t.Errorf("feedback missing word-count note: %q", rec.ExaminerFeedback)
	}
}

func TestAssessWriting_EmptyEssayRejected(t *testing.T) {
	svc, s := newTestService(t, &fakeProvider{})
	ctx := context.Background()

	sessionID, _ := s.CreateSession(ctx, attempt.ModeWriting)

	_, err := svc.AssessWriting(ctx, service.WritingRequest{
		SessionID: sessionID,
		TaskType:  2,
		EssayText: "   ",
	})
	if err == nil {
		t.Fatal("expected error for empty essay")
	}
	var evalErr *evaluation.EvaluationError
	if errors.As(err, &evalErr) {
		t.Error("empty essay must be rejected before the provider is called")
	}
}

func TestSubmitSpeaking_WaitForSession(t *testing.T) {
	svc, s := newTestService(t, &fakeProvider{})
	ctx := context.Background()

	sessionID, _ := s.CreateSession(ctx, attempt.ModePractice)
	svc.TrackSession(sessionID)

	for i := 0; i < 3; i++ {
		svc.SubmitSpeaking(service.SpeakingRequest{
			SessionID:  sessionID,
			Part:       1,
			Transcript: "yes i do",
			Duration:   1.5,
			Words:      goodWords(),
		})
	}

	svc.WaitForSession(sessionID)

	saved, err := s.GetAttemptsForSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetAttemptsForSession: %v", err)
	}
	if len(saved) != 3 {
		t.Errorf("persisted attempts = %d, want 3", len(saved))
	}
}
