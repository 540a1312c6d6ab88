// internal/api/progress_handler.go
package api

import (
	"net/http"
	"strconv"

	"github.com/fluentband/backend/internal/store"
)

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /progress/band-trend
func (h *Handler) bandTrend(w http.ResponseWriter, r *http.Request) {
	limit := h.trendLimit(w, r)
	if limit == 0 {
		return
	}

	points, err := h.store.GetBandTrend(r.Context(), limit)
	if h.handleStoreError(w, err, "band trend") {
		return
	}
	if points == nil {
		points = []store.BandPoint{}
	}
	respondJSON(w, http.StatusOK, points)
}

// GET /progress/criteria
func (h *Handler) criterionTrends(w http.ResponseWriter, r *http.Request) {
	limit := h.trendLimit(w, r)
	if limit == 0 {
		return
	}

	points, err := h.store.GetCriterionTrends(r.Context(), limit)
	if h.handleStoreError(w, err, "criterion trends") {
		return
	}
	if points == nil {
		points = []store.CriterionPoint{}
	}
	respondJSON(w, http.StatusOK, points)
}

// GET /progress/weak-areas
func (h *Handler) weakAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.store.GetWeakAreas(r.Context())
	if h.handleStoreError(w, err, "weak areas") {
		return
	}
	respondJSON(w, http.StatusOK, areas)
}

// GET /progress/weaknesses
func (h *Handler) detailedWeaknesses(w http.ResponseWriter, r *http.Request) {
	limit := h.trendLimit(w, r)
	if limit == 0 {
		return
	}

	report, err := h.store.GetDetailedWeaknesses(r.Context(), limit)
	if h.handleStoreError(w, err, "weaknesses") {
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) trendLimit(w http.ResponseWriter, r *http.Request) int {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return 0
		}
		limit = n
	}
	return limit
}
