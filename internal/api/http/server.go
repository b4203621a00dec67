package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hros/ess-gateway/internal/config"
	"github.com/hros/ess-gateway/internal/session"
	"github.com/hros/ess-gateway/internal/upstream"
)

type Deps struct {
	Config   *config.Config
	Sessions session.Store
	Upstream *upstream.Client
	Logger   *slog.Logger
}

type Server struct {
	deps *Deps
}

func NewServer(deps *Deps) *Server {
	return &Server{deps: deps}
}

// Register wires the portal's REST surface. Read routes degrade to a
// fallback payload when the HR service cannot answer; write routes surface
// the failure instead.
func (s *Server) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.AuthLogin)
		r.Post("/auth/logout", s.AuthLogout)
		r.Get("/auth/user", s.AuthUser)

		r.Get("/dashboard/stats", s.relayRead("/dashboard/stats", fallbackStats))

		r.Get("/attendance", s.relayRead("/attendance", fallbackList))
		r.Get("/attendance/today", s.relayRead("/attendance/today", fallbackNull))
		r.Post("/attendance/checkin", s.CheckIn)
		r.Post("/attendance/checkout", s.CheckOut)

		r.Get("/leave/requests", s.relayRead("/leave/requests", fallbackList))
		r.Get("/leave/balances", s.relayRead("/leave/balances", fallbackList))
		r.Post("/leave/request", s.ApplyLeave)
		r.Post("/leave/apply", s.ApplyLeave)

		r.Get("/payroll", s.relayRead("/payroll", fallbackList))
		r.Get("/payroll/current", s.relayRead("/payroll/current", fallbackNull))

		r.Get("/documents", s.relayRead("/documents", fallbackList))
		r.Get("/employee/details", s.relayRead("/employee/details", fallbackNull))
		r.Get("/notices", s.relayRead("/notices", fallbackList))
		r.Get("/holidays", s.relayRead("/holidays", fallbackList))
	})
}

func (s *Server) httpJSON(w http.ResponseWriter, status int, data any) {
	respData, marshalErr := json.Marshal(data)
	if marshalErr != nil {
		s.deps.Logger.Error("Error marshaling response", slog.String("error", marshalErr.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	s.httpRaw(w, status, respData)
}

func (s *Server) httpMessage(w http.ResponseWriter, status int, message string) {
	s.httpJSON(w, status, map[string]string{"message": message})
}

func (s *Server) httpRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		s.deps.Logger.Error("Error writing response", slog.String("error", err.Error()))
	}
}
