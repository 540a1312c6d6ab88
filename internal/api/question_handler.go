// internal/api/question_handler.go
package api

import (
	"net/http"
	"strconv"

	"github.com/fluentband/backend/internal/domain/question"
)

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /questions
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.store.ListQuestions(r.Context())
	if h.handleStoreError(w, err, "questions") {
		return
	}
	if questions == nil {
		questions = []question.Question{}
	}

	if part := r.URL.Query().Get("part"); part != "" {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > 3 {
			respondError(w, http.StatusBadRequest, "part must be 1, 2, or 3")
			return
		}
		filtered := make([]question.Question, 0, len(questions))
		for _, q := range questions {
			if q.Part == n {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}

	respondJSON(w, http.StatusOK, questions)
}

// GET /questions/{questionID}
func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("questionID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid question id")
		return
	}

	q, err := h.store.GetQuestion(r.Context(), id)
	if h.handleStoreError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, q)
}

// GET /mock-test
func (h *Handler) buildMockTest(w http.ResponseWriter, r *http.Request) {
	questions, err := h.store.ListQuestions(r.Context())
	if h.handleStoreError(w, err, "questions") {
		return
	}

	plan := question.AssembleMockTest(questions)
	if len(plan.Part1Questions) == 0 && plan.Part2CueCard == nil {
		respondError(w, http.StatusConflict, "question bank is empty")
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// GET /writing/prompts
func (h *Handler) listWritingPrompts(w http.ResponseWriter, r *http.Request) {
	taskType := 0
	if task := r.URL.Query().Get("task"); task != "" {
		n, err := strconv.Atoi(task)
		if err != nil || (n != 1 && n != 2) {
			respondError(w, http.StatusBadRequest, "task must be 1 or 2")
			return
		}
		taskType = n
	}

	prompts, err := h.store.ListWritingPrompts(r.Context(), taskType)
	if h.handleStoreError(w, err, "writing prompts") {
		return
	}
	respondJSON(w, http.StatusOK, prompts)
}

// GET /writing/prompts/{promptID}
func (h *Handler) getWritingPrompt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("promptID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid prompt id")
		return
	}

	p, err := h.store.GetWritingPrompt(r.Context(), id)
	if h.handleStoreError(w, err, "writing prompt") {
		return
	}
	respondJSON(w, http.StatusOK, p)
}
