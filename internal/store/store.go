package store

import (
	"context"
	"errors"

	"github.com/fluentband/backend/internal/domain/attempt"
	"github.com/fluentband/backend/internal/domain/question"
	"github.com/fluentband/backend/internal/domain/writingprompt"
)

var (
	ErrNotFound = errors.New("not found")
)

// BandPoint is one point on the overall-band trend line.
type BandPoint struct {
	Timestamp   string  `json:"timestamp"`
	OverallBand float64 `json:"overall_band"`
}

// CriterionPoint is one point on the per-criterion trend lines.
type CriterionPoint struct {
	Timestamp        string  `json:"timestamp"`
	FluencyCoherence float64 `json:"fluency_coherence"`
	LexicalResource  float64 `json:"lexical_resource"`
	GrammaticalRange float64 `json:"grammatical_range"`
	Pronunciation    float64 `json:"pronunciation"`
}

// GrammarErrorCount is a recurring grammar mistake across recent attempts.
type GrammarErrorCount struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Count     int    `json:"count"`
}

// BasicWordCount is a basic word repeatedly flagged for upgrade.
type BasicWordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TipCount is an improvement tip the examiner keeps repeating.
type TipCount struct {
	Tip   string `json:"tip"`
	Count int    `json:"count"`
}

// CriterionTrend summarizes one criterion over recent attempts: the average
// and whether the second half of the window beat the first.
type CriterionTrend struct {
	Avg       float64 `json:"avg"`
	Direction string  `json:"direction"` // improving, declining, stable, insufficient data
}

// WeaknessReport aggregates recurring weaknesses from stored enrichment
// data. Built entirely from persisted attempts — no LLM calls.
type WeaknessReport struct {
	GrammarErrors   []GrammarErrorCount       `json:"grammar_errors"`
	BasicWords      []BasicWordCount          `json:"basic_words"`
	CriterionTrends map[string]CriterionTrend `json:"criterion_trends"`
	RecurringTips   []TipCount                `json:"recurring_tips"`
}

// Store is the persistence surface the rest of the system depends on.
type Store interface {
	// Sessions and attempts
	CreateSession(ctx context.Context, mode attempt.Mode) (int64, error)
	GetRecentSessions(ctx context.Context, limit int) ([]attempt.SessionRecord, error)
	SaveAttempt(ctx context.Context, rec *attempt.AttemptRecord) (int64, error)
	GetAttemptsForSession(ctx context.Context, sessionID int64) ([]attempt.AttemptRecord, error)
	SaveWritingAttempt(ctx context.Context, rec *attempt.WritingAttemptRecord) (int64, error)
	GetWritingAttemptsForSession(ctx context.Context, sessionID int64) ([]attempt.WritingAttemptRecord, error)

	// Trend analysis
	GetBandTrend(ctx context.Context, limit int) ([]BandPoint, error)
	GetCriterionTrends(ctx context.Context, limit int) ([]CriterionPoint, error)
	GetWeakAreas(ctx context.Context) (map[string]float64, error)
	GetDetailedWeaknesses(ctx context.Context, limit int) (*WeaknessReport, error)

	// Question bank
	ListQuestions(ctx context.Context) ([]question.Question, error)
	GetQuestion(ctx context.Context, id int64) (*question.Question, error)
	SeedQuestions(ctx context.Context, questions []question.Question) (int, error)

	// Writing prompts
	ListWritingPrompts(ctx context.Context, taskType int) ([]writingprompt.WritingPrompt, error)
	GetWritingPrompt(ctx context.Context, id int64) (*writingprompt.WritingPrompt, error)
	SeedWritingPrompts(ctx context.Context, prompts []writingprompt.WritingPrompt) (int, error)
}
