// Package attempt holds the persistence records for practice history: one
// session groups many attempts, and every attempt row carries the full
// blended result plus the serialized enrichment lists so trend queries never
// need a second lookup.
package attempt

import "time"

// Mode labels what kind of session produced the attempts.
type Mode string

const (
	ModeInterview Mode = "interview"
	ModeMockTest  Mode = "mock_test"
	ModePractice  Mode = "practice"
	ModeWriting   Mode = "writing"
)

// SessionRecord is one practice session.
type SessionRecord struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Mode         Mode      `json:"mode"`
	OverallBand  float64   `json:"overall_band"`
	AttemptCount int       `json:"attempt_count"`
}

// AttemptRecord is one spoken answer with its blended scores and delivery
// metrics. Enrichment lists are stored as JSON text; empty means the
// evaluation carried none (or content evaluation failed and only audio
// metrics were saved).
type AttemptRecord struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`

	Part         int    `json:"part"`
	Topic        string `json:"topic"`
	QuestionText string `json:"question_text"`
	Transcript   string `json:"transcript"`
	Source       string `json:"source"`
	Band9Answer  string `json:"band9_answer,omitempty"`

	// Blended band scores.
	OverallBand      float64 `json:"overall_band"`
	FluencyCoherence float64 `json:"fluency_coherence"`
	LexicalResource  float64 `json:"lexical_resource"`
	GrammaticalRange float64 `json:"grammatical_range"`
	Pronunciation    float64 `json:"pronunciation"`

	// Delivery metrics.
	Duration                float64 `json:"duration"`
	SpeechRate              float64 `json:"speech_rate"`
	PauseRatio              float64 `json:"pause_ratio"`
	PronunciationConfidence float64 `json:"pronunciation_confidence"`

	// Examiner feedback and JSON-serialized enrichment lists.
	ExaminerFeedback      string `json:"examiner_feedback"`
	GrammarCorrections    string `json:"grammar_corrections,omitempty"`
	VocabularyUpgrades    string `json:"vocabulary_upgrades,omitempty"`
	ImprovementTips       string `json:"improvement_tips,omitempty"`
	Strengths             string `json:"strengths,omitempty"`
	PronunciationWarnings string `json:"pronunciation_warnings,omitempty"`
}

// WritingAttemptRecord is one submitted essay with its scores.
type WritingAttemptRecord struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`

	PromptID  int64  `json:"prompt_id"`
	TaskType  int    `json:"task_type"`
	EssayText string `json:"essay_text"`
	WordCount int    `json:"word_count"`

	TaskScore      float64 `json:"task_score"`
	CoherenceScore float64 `json:"coherence_score"`
	LexicalScore   float64 `json:"lexical_score"`
	GrammarScore   float64 `json:"grammar_score"`
	OverallBand    float64 `json:"overall_band"`

	ExaminerFeedback   string `json:"examiner_feedback"`
	ParagraphFeedback  string `json:"paragraph_feedback,omitempty"`
	GrammarCorrections string `json:"grammar_corrections,omitempty"`
	VocabularyUpgrades string `json:"vocabulary_upgrades,omitempty"`
	ImprovementTips    string `json:"improvement_tips,omitempty"`
}
