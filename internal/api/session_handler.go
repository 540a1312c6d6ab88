// internal/api/session_handler.go
package api

import (
	"net/http"
	"strconv"

	"github.com/fluentband/backend/internal/audio"
	"github.com/fluentband/backend/internal/domain/attempt"
	"github.com/fluentband/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	Mode string `json:"mode"` // interview, mock_test, practice, writing
}

type CreateSessionResponse struct {
	ID   int64  `json:"id"`
	Mode string `json:"mode"`
}

type SpeakingAttemptRequest struct {
	Part            int          `json:"part"`
	Topic           string       `json:"topic"`
	QuestionText    string       `json:"question_text"`
	ReferenceAnswer string       `json:"reference_answer,omitempty"`
	Source          string       `json:"source,omitempty"`
	Transcript      string       `json:"transcript"`
	Duration        float64      `json:"duration"`
	Words           []audio.Word `json:"words"`
	Async           bool         `json:"async,omitempty"`
}

type WritingAttemptRequest struct {
	PromptID  int64  `json:"prompt_id"`
	EssayText string `json:"essay_text"`
}

type SessionSummary struct {
	Session  attempt.SessionRecord  `json:"session"`
	Attempts []attempt.AttemptRecord `json:"attempts"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /sessions
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	mode := attempt.Mode(req.Mode)
	switch mode {
	case attempt.ModeInterview, attempt.ModeMockTest, attempt.ModePractice, attempt.ModeWriting:
	default:
		respondError(w, http.StatusBadRequest, "unknown session mode")
		return
	}

	id, err := h.store.CreateSession(r.Context(), mode)
	if h.handleStoreError(w, err, "session") {
		return
	}

	h.assessment.TrackSession(id)

	respondJSON(w, http.StatusCreated, CreateSessionResponse{ID: id, Mode: req.Mode})
}

// GET /sessions
func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	sessions, err := h.store.GetRecentSessions(r.Context(), limit)
	if h.handleStoreError(w, err, "sessions") {
		return
	}
	if sessions == nil {
		sessions = []attempt.SessionRecord{}
	}
	respondJSON(w, http.StatusOK, sessions)
}

// GET /sessions/{sessionID}/attempts
func (h *Handler) listAttempts(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	attempts, err := h.store.GetAttemptsForSession(r.Context(), sessionID)
	if h.handleStoreError(w, err, "attempts") {
		return
	}
	writing, err := h.store.GetWritingAttemptsForSession(r.Context(), sessionID)
	if h.handleStoreError(w, err, "writing attempts") {
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"speaking": attempts,
		"writing":  writing,
	})
}

// POST /sessions/{sessionID}/attempts
func (h *Handler) submitSpeakingAttempt(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req SpeakingAttemptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Transcript == "" {
		respondError(w, http.StatusBadRequest, "transcript is required")
		return
	}

	sreq := service.SpeakingRequest{
		SessionID:       sessionID,
		Part:            req.Part,
		Topic:           req.Topic,
		QuestionText:    req.QuestionText,
		ReferenceAnswer: req.ReferenceAnswer,
		Source:          req.Source,
		Transcript:      req.Transcript,
		Duration:        req.Duration,
		Words:           req.Words,
	}

	// Async submissions come back through POST /sessions/{id}/complete.
	if req.Async {
		h.assessment.SubmitSpeaking(sreq)
		respondJSON(w, http.StatusAccepted, map[string]string{"status": "submitted"})
		return
	}

	rec, err := h.assessment.AssessSpeaking(r.Context(), sreq)
	if err != nil {
		h.logger.Error("speaking assessment failed", "session_id", sessionID, "error", err)
		respondError(w, http.StatusBadGateway, "assessment failed")
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// POST /sessions/{sessionID}/writing
func (h *Handler) submitWritingAttempt(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req WritingAttemptRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	prompt, err := h.store.GetWritingPrompt(r.Context(), req.PromptID)
	if h.handleStoreError(w, err, "writing prompt") {
		return
	}

	rec, err := h.assessment.AssessWriting(r.Context(), service.WritingRequest{
		SessionID:  sessionID,
		PromptID:   prompt.ID,
		TaskType:   prompt.TaskType,
		PromptText: prompt.PromptText,
		ChartData:  prompt.Task1DataJSON,
		EssayText:  req.EssayText,
	})
	if err != nil {
		h.logger.Error("writing assessment failed", "session_id", sessionID, "error", err)
		respondError(w, http.StatusBadGateway, "assessment failed")
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// POST /sessions/{sessionID}/complete
func (h *Handler) completeSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	// Wait for all async assessments to finish
	h.assessment.WaitForSession(sessionID)

	attempts, err := h.store.GetAttemptsForSession(r.Context(), sessionID)
	if h.handleStoreError(w, err, "attempts") {
		return
	}
	if attempts == nil {
		attempts = []attempt.AttemptRecord{}
	}

	var sum float64
	for _, a := range attempts {
		sum += a.OverallBand
	}
	overall := 0.0
	if len(attempts) > 0 {
		overall = sum / float64(len(attempts))
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"session_id":   sessionID,
		"overall_band": overall,
		"attempts":     attempts,
	})
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("sessionID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session id")
		return 0, false
	}
	return id, true
}
