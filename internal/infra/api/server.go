package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"honeypot-arena/internal/usecase"
)

// Server exposes the session engine to the presentation layer. It owns no
// session state of its own; everything goes through the use case.
type Server struct {
	sessions  usecase.SessionUseCase
	gatewayUp func() bool
	log       *zerolog.Logger
}

func NewServer(sessions usecase.SessionUseCase, gatewayUp func() bool, logger *zerolog.Logger) *Server {
	srvLog := logger.With().Str("component", "API").Logger()
	if gatewayUp == nil {
		gatewayUp = func() bool { return false }
	}
	return &Server{sessions: sessions, gatewayUp: gatewayUp, log: &srvLog}
}

// Router builds the chi router with the standard middleware chain.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log))

	r.Route("/api/v1/session", func(r chi.Router) {
		// The stream route stays outside the timeout: websocket
		// connections are long-lived on purpose.
		r.Get("/stream", s.handleStream)

		r.Group(func(r chi.Router) {
			r.Use(Timeout(60 * time.Second))
			r.Post("/message", s.handleSubmit)
			r.Get("/", s.handleSnapshot)
			r.Post("/reset", s.handleReset)
			r.Get("/summary", s.handleSummary)
		})
	})

	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type submitRequest struct {
	Text string `json:"text"`
}

type submitResponse struct {
	Accepted bool        `json:"accepted"`
	Snapshot interface{} `json:"snapshot"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	snap, err := s.sessions.Submit(r.Context(), req.Text)
	// Rejections are silent no-ops for the session; the caller still gets
	// the unchanged snapshot plus an accepted flag.
	writeJSON(w, http.StatusOK, submitResponse{Accepted: err == nil, Snapshot: snap})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.Reset(r.Context()))
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.Summary())
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"gatewayUp": s.gatewayUp(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
