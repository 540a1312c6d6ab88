// internal/api/export_handler.go
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fluentband/backend/internal/domain/attempt"
)

// ── Request / Response types ────────────────────────────────────────────────

type ExportSession struct {
	Session         attempt.SessionRecord          `json:"session"`
	Attempts        []attempt.AttemptRecord        `json:"attempts"`
	WritingAttempts []attempt.WritingAttemptRecord `json:"writing_attempts"`
}

type ExportData struct {
	Version    string          `json:"version"`
	ExportedAt string          `json:"exported_at"`
	Sessions   []ExportSession `json:"sessions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /export
func (h *Handler) exportHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessions, err := h.store.GetRecentSessions(ctx, 1000)
	if h.handleStoreError(w, err, "sessions") {
		return
	}

	exportData := ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Sessions:   make([]ExportSession, 0, len(sessions)),
	}

	for _, s := range sessions {
		attempts, err := h.store.GetAttemptsForSession(ctx, s.ID)
		if err != nil {
			h.logger.Error("export: failed to load attempts", "session_id", s.ID, "error", err)
			continue
		}
		writing, err := h.store.GetWritingAttemptsForSession(ctx, s.ID)
		if err != nil {
			h.logger.Error("export: failed to load writing attempts", "session_id", s.ID, "error", err)
			continue
		}
		exportData.Sessions = append(exportData.Sessions, ExportSession{
			Session:         s,
			Attempts:        attempts,
			WritingAttempts: writing,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=fluentband-export.json")
	json.NewEncoder(w).Encode(exportData)
}
