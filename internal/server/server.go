package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"mamafit-chatbot/internal/config"
	"mamafit-chatbot/internal/dialog"
	"mamafit-chatbot/internal/messenger"
	"mamafit-chatbot/internal/store"
	"mamafit-chatbot/internal/types"
)

type Server struct {
	router  *chi.Mux
	engine  *dialog.Engine
	sender  messenger.Sender
	turnlog *store.TurnLog // nil when no database is configured
	cfg     config.Config
}

// New wires the HTTP surface around an already-built engine. The sender
// and turn log may be nil; webhook delivery and persistence are then
// skipped with a logged notice.
func New(cfg config.Config, engine *dialog.Engine, sender messenger.Sender, turnlog *store.TurnLog) *Server {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Hub-Signature-256"},
		MaxAge:         300,
	}))
	s := &Server{router: r, engine: engine, sender: sender, turnlog: turnlog, cfg: cfg}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/", s.handleHealth)
	s.router.Get("/webhook", s.handleWebhookVerify)
	s.router.Post("/webhook", s.handleWebhook)
	s.router.Post("/test-message", s.handleTestMessage)
	s.router.Post("/admin/reset-manual-mode", s.handleResetManualMode)
	s.router.Get("/admin/manual-mode-status/{userID}", s.handleManualModeStatus)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, types.StatusResponse{Status: "ok", Message: "messenger chatbot is running"})
}

func (s *Server) handleTestMessage(w http.ResponseWriter, r *http.Request) {
	var req types.TestMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		s.writeError(w, http.StatusBadRequest, "message text is required")
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = "test_user"
	}
	result := s.engine.ProcessTurn(r.Context(), req.Text, userID)
	s.logTurn(userID, result)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleResetManualMode(w http.ResponseWriter, r *http.Request) {
	var req types.AdminResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		s.writeError(w, http.StatusBadRequest, "user ID is required")
		return
	}
	if s.engine.ResetManualMode(req.UserID) {
		s.writeJSON(w, http.StatusOK, types.AdminResetResponse{
			Status:  "success",
			Message: "manual mode reset for user " + req.UserID,
		})
		return
	}
	s.writeJSON(w, http.StatusOK, types.AdminResetResponse{
		Status:  "error",
		Message: "user " + req.UserID + " not found",
	})
}

func (s *Server) handleManualModeStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	manual := s.engine.ManualModeStatus(userID)
	status := "auto"
	if manual {
		status = "manual"
	}
	s.writeJSON(w, http.StatusOK, types.ManualModeStatusResponse{
		UserID:     userID,
		ManualMode: manual,
		Status:     status,
	})
}

func (s *Server) logTurn(userID string, result dialog.TurnResult) {
	if s.turnlog == nil {
		return
	}
	if err := s.turnlog.SaveTurn(userID, result); err != nil {
		log.Printf("[turnlog] failed to save turn for %s: %v", userID, err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}
