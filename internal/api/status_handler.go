// internal/api/status_handler.go
package api

import (
	"net/http"

	"github.com/fluentband/backend/internal/evaluation"
)

// ── Request / Response types ────────────────────────────────────────────────

type ProviderStatusResponse struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

type DetectFillersRequest struct {
	Transcript string `json:"transcript"`
}

type DetectFillersResponse struct {
	Fillers map[string]int `json:"fillers"`
	Total   int            `json:"total"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /provider/status
func (h *Handler) providerStatus(w http.ResponseWriter, r *http.Request) {
	resp := ProviderStatusResponse{
		Provider: h.evaluator.ProviderName(),
		Model:    h.evaluator.ModelName(),
	}
	if err := h.evaluator.HealthCheck(r.Context()); err != nil {
		resp.Error = err.Error()
	} else {
		resp.Available = true
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /tools/fillers
func (h *Handler) detectFillers(w http.ResponseWriter, r *http.Request) {
	var req DetectFillersRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fillers := evaluation.DetectFillers(req.Transcript)
	total := 0
	for _, n := range fillers {
		total += n
	}
	respondJSON(w, http.StatusOK, DetectFillersResponse{Fillers: fillers, Total: total})
}
