// internal/service/assessment.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fluentband/backend/internal/audio"
	"github.com/fluentband/backend/internal/domain/attempt"
	"github.com/fluentband/backend/internal/evallog"
	"github.com/fluentband/backend/internal/evaluation"
	"github.com/fluentband/backend/internal/scoring"
	"github.com/fluentband/backend/internal/store"
	"github.com/fluentband/backend/internal/worker"
)

// SpeakingRequest contains everything needed to assess one spoken answer.
type SpeakingRequest struct {
	SessionID       int64
	Part            int
	Topic           string
	QuestionText    string
	ReferenceAnswer string
	Source          string

	Transcript string
	Duration   float64 // seconds
	Words      []audio.Word
}

// WritingRequest contains everything needed to assess one essay.
type WritingRequest struct {
	SessionID  int64
	PromptID   int64
	TaskType   int // 1 or 2
	PromptText string
	ChartData  string
	EssayText  string
}

type assessmentOutcome struct {
	AttemptID int64
	Err       error
}

// AssessmentService runs the full assessment pipeline: audio metrics and
// content evaluation in parallel, band blending, persistence, and raw
// payload logging. It owns the per-session WaitGroups so the store stays a
// pure persistence layer, and routes async submissions through a bounded
// worker pool so a burst of answers never floods the provider.
type AssessmentService struct {
	store     store.Store
	evaluator *evaluation.Evaluator
	analyzer  audio.Analyzer
	evalLog   *evallog.Logger
	logger    *slog.Logger

	pool *worker.Pool[assessmentOutcome]

	mu      sync.RWMutex
	pending map[int64]*sync.WaitGroup // sessionID → WaitGroup
}

func NewAssessmentService(
	s store.Store,
	e *evaluation.Evaluator,
	analyzer audio.Analyzer,
	evalLog *evallog.Logger,
	logger *slog.Logger,
	workers int,
) *AssessmentService {
	as := &AssessmentService{
		store:     s,
		evaluator: e,
		analyzer:  analyzer,
		evalLog:   evalLog,
		logger:    logger,
		pool:      worker.NewPool[assessmentOutcome](workers, workers*2),
		pending:   make(map[int64]*sync.WaitGroup),
	}
	go as.drainResults()
	return as
}

func (as *AssessmentService) drainResults() {
	for res := range as.pool.Results() {
		if res.Output.Err != nil {
			as.logger.Error("async assessment failed",
				"job_id", res.JobID,
				"error", res.Output.Err,
			)
		}
	}
}

func (as *AssessmentService) Close() {
	as.pool.Close()
}

// TrackSession registers a session for WaitGroup tracking.
// Call this after creating a new session.
func (as *AssessmentService) TrackSession(sessionID int64) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.pending[sessionID] = &sync.WaitGroup{}
}

// WaitForSession blocks until every async assessment for a session has
// finished.
func (as *AssessmentService) WaitForSession(sessionID int64) {
	as.mu.RLock()
	wg, ok := as.pending[sessionID]
	as.mu.RUnlock()

	if ok {
		wg.Wait()
	}
}

// SubmitSpeaking queues an answer for async assessment. The actual call uses
// context.Background because it must not be cancelled when the originating
// HTTP request ends.
func (as *AssessmentService) SubmitSpeaking(req SpeakingRequest) {
	as.mu.RLock()
	wg, ok := as.pending[req.SessionID]
	as.mu.RUnlock()

	if ok {
		wg.Add(1)
	}

	jobID := fmt.Sprintf("session-%d-part-%d", req.SessionID, req.Part)
	as.pool.Submit(jobID, func() assessmentOutcome {
		if ok {
			defer wg.Done()
		}
		rec, err := as.AssessSpeaking(context.Background(), req)
		if err != nil {
			return assessmentOutcome{Err: err}
		}
		return assessmentOutcome{AttemptID: rec.ID}
	})
}

// AssessSpeaking runs one spoken answer through the whole pipeline and
// returns the saved attempt record. Content evaluation failure does not fail
// the attempt: the audio metrics are still worth keeping, so a fallback
// record without content bands is saved instead.
func (as *AssessmentService) AssessSpeaking(ctx context.Context, req SpeakingRequest) (*attempt.AttemptRecord, error) {
	var (
		metrics audio.Metrics
		review  *evaluation.EnhancedReview
		meta    evaluation.CallMetadata
		evalErr error
	)

	// Audio analysis and the provider call are independent; overlap them.
	// The evaluation error is stashed, not returned, so a provider failure
	// cannot cancel the metrics computation.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		metrics = as.analyzer.Analyze(req.Duration, req.Transcript, req.Words)
		return nil
	})
	g.Go(func() error {
		review, meta, evalErr = as.evaluator.EvaluateSpeakingEnhanced(gctx, evaluation.SpeakingInput{
			Question:        req.QuestionText,
			Part:            req.Part,
			Transcript:      req.Transcript,
			ReferenceAnswer: req.ReferenceAnswer,
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	as.logEvaluation(req, review, meta, evalErr)

	rec := &attempt.AttemptRecord{
		SessionID:               req.SessionID,
		Part:                    req.Part,
		Topic:                   req.Topic,
		QuestionText:            req.QuestionText,
		Transcript:              req.Transcript,
		Source:                  req.Source,
		Band9Answer:             req.ReferenceAnswer,
		Duration:                metrics.Duration,
		SpeechRate:              metrics.SpeechRate,
		PauseRatio:              metrics.PauseRatio,
		PronunciationConfidence: metrics.PronunciationConfidence,
	}

	if evalErr != nil {
		as.logger.Error("content evaluation failed, saving audio-only attempt",
			"session_id", req.SessionID,
			"part", req.Part,
			"error", evalErr,
		)
		rec.ExaminerFeedback = "Content evaluation unavailable for this attempt."
	} else {
		bands := scoring.Blend(&review.ContentEvaluation, metrics)
		rec.OverallBand = bands.OverallBand
		rec.FluencyCoherence = bands.FluencyCoherence
		rec.LexicalResource = bands.LexicalResource
		rec.GrammaticalRange = bands.GrammaticalRange
		rec.Pronunciation = bands.Pronunciation
		rec.ExaminerFeedback = review.OverallFeedback
		rec.GrammarCorrections = marshalList(review.GrammarCorrections)
		rec.VocabularyUpgrades = marshalList(review.VocabularyUpgrades)
		rec.PronunciationWarnings = marshalList(review.PronunciationWarnings)
		rec.Strengths = marshalList(review.Strengths)
		rec.ImprovementTips = marshalList(review.ImprovementPriorities)
	}

	id, err := as.store.SaveAttempt(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}
	rec.ID = id
	return rec, nil
}

// AssessWriting evaluates one essay and returns the saved record. An empty
// essay never reaches the provider; below-minimum essays do, since the
// examiner still has something to score.
func (as *AssessmentService) AssessWriting(ctx context.Context, req WritingRequest) (*attempt.WritingAttemptRecord, error) {
	quality := evaluation.CheckWritingQuality(req.EssayText, req.TaskType)
	if quality.IsEmpty {
		return nil, errors.New("essay is empty")
	}

	review, meta, err := as.evaluator.EvaluateWritingEnhanced(ctx, evaluation.WritingInput{
		PromptText:    req.PromptText,
		EssayText:     req.EssayText,
		TaskType:      req.TaskType,
		ChartDataJSON: req.ChartData,
	})
	as.logWritingEvaluation(req, review, meta, err)
	if err != nil {
		return nil, err
	}

	feedback := review.OverallFeedback
	if !quality.MeetsMinimum {
		feedback = fmt.Sprintf(
			"Word count %d is below the %d-word minimum, which caps the Task score. %s",
			quality.WordCount, quality.MinWords, feedback,
		)
	}

	rec := &attempt.WritingAttemptRecord{
		SessionID:          req.SessionID,
		PromptID:           req.PromptID,
		TaskType:           req.TaskType,
		EssayText:          req.EssayText,
		WordCount:          quality.WordCount,
		TaskScore:          review.TaskAchievement.Score,
		CoherenceScore:     review.Coherence.Score,
		LexicalScore:       review.LexicalResource.Score,
		GrammarScore:       review.GrammaticalRange.Score,
		OverallBand:        scoring.WritingBand(&review.WritingEvaluation),
		ExaminerFeedback:   feedback,
		ParagraphFeedback:  marshalList(review.ParagraphFeedback),
		GrammarCorrections: marshalList(review.GrammarCorrections),
		VocabularyUpgrades: marshalList(review.VocabularyUpgrades),
		ImprovementTips:    marshalList(review.ImprovementPriorities),
	}

	id, err := as.store.SaveWritingAttempt(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("save writing attempt: %w", err)
	}
	rec.ID = id
	return rec, nil
}

func (as *AssessmentService) logEvaluation(req SpeakingRequest, review *evaluation.EnhancedReview, meta evaluation.CallMetadata, evalErr error) {
	entry := evallog.Entry{
		Mode:         "speaking",
		Provider:     meta.Provider,
		Model:        meta.Model,
		Question:     req.QuestionText,
		Transcript:   req.Transcript,
		ResponseTime: meta.ResponseTimeMS,
	}
	if evalErr != nil {
		entry.Error = evalErr.Error()
	} else {
		entry.Evaluation = review
	}
	if err := as.evalLog.Log(fmt.Sprintf("session-%d", req.SessionID), "speaking", entry); err != nil {
		as.logger.Warn("eval log write failed", "error", err)
	}
}

func (as *AssessmentService) logWritingEvaluation(req WritingRequest, review *evaluation.WritingEnhancedReview, meta evaluation.CallMetadata, evalErr error) {
	entry := evallog.Entry{
		Mode:         "writing",
		Provider:     meta.Provider,
		Model:        meta.Model,
		Question:     req.PromptText,
		ResponseTime: meta.ResponseTimeMS,
	}
	if evalErr != nil {
		entry.Error = evalErr.Error()
	} else {
		entry.Evaluation = review
	}
	if err := as.evalLog.Log(fmt.Sprintf("session-%d", req.SessionID), "writing", entry); err != nil {
		as.logger.Warn("eval log write failed", "error", err)
	}
}

// marshalList serializes an enrichment list for storage. Empty lists become
// empty strings so the columns stay cheap to scan.
func marshalList(v any) string {
	switch s := v.(type) {
	case []string:
		if len(s) == 0 {
			return ""
		}
	case []evaluation.GrammarCorrection:
		if len(s) == 0 {
			return ""
		}
	case []evaluation.VocabularyUpgrade:
		if len(s) == 0 {
			return ""
		}
	case []evaluation.PronunciationWarning:
		if len(s) == 0 {
			return ""
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
