// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Status
	mux.HandleFunc("GET /provider/status", h.providerStatus)

	// Question bank
	mux.HandleFunc("GET /questions", h.listQuestions)
	mux.HandleFunc("GET /questions/{questionID}", h.getQuestion)
	mux.HandleFunc("GET /mock-test", h.buildMockTest)

	// Writing prompts
	mux.HandleFunc("GET /writing/prompts", h.listWritingPrompts)
	mux.HandleFunc("GET /writing/prompts/{promptID}", h.getWritingPrompt)

	// Sessions and attempts
	mux.HandleFunc("POST /sessions", h.createSession)
	mux.HandleFunc("GET /sessions", h.listSessions)
	mux.HandleFunc("GET /sessions/{sessionID}/attempts", h.listAttempts)
	mux.HandleFunc("POST /sessions/{sessionID}/attempts", h.submitSpeakingAttempt)
	mux.HandleFunc("POST /sessions/{sessionID}/writing", h.submitWritingAttempt)
	mux.HandleFunc("POST /sessions/{sessionID}/complete", h.completeSession)

	// Progress
	mux.HandleFunc("GET /progress/band-trend", h.bandTrend)
	mux.HandleFunc("GET /progress/criteria", h.criterionTrends)
	mux.HandleFunc("GET /progress/weak-areas", h.weakAreas)
	mux.HandleFunc("GET /progress/weaknesses", h.detailedWeaknesses)
	mux.HandleFunc("GET /export", h.exportHistory)

	// Tools
	mux.HandleFunc("POST /tools/fillers", h.detectFillers)
}
