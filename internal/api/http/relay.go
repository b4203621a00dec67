package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hros/ess-gateway/internal/entity"
	"github.com/hros/ess-gateway/internal/upstream"
)

var (
	fallbackList  = []byte("[]")
	fallbackNull  = []byte("null")
	fallbackStats = mustJSON(entity.DefaultDashboardStats())
)

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return data
}

// relayRead builds a handler that passes the upstream body through
// unmodified, or serves the fallback when the HR service cannot answer. The
// degraded response is a 200: the UI shows an empty state instead of an
// error.
func (s *Server) relayRead(upstreamPath string, fallback []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _, err := s.sessionFromRequest(r)
		if err != nil {
			s.httpMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		body, err := s.deps.Upstream.Get(r.Context(), upstreamPath, sess.UpstreamToken)
		if err != nil {
			s.deps.Logger.Warn("Read route degraded to fallback",
				slog.String("path", upstreamPath),
				slog.String("error", err.Error()),
			)
			s.httpRaw(w, http.StatusOK, fallback)
			return
		}

		s.httpRaw(w, http.StatusOK, body)
	}
}

// CheckIn stamps the server-side timestamp and relays. The browser never
// supplies its own check-in time.
func (s *Server) CheckIn(w http.ResponseWriter, r *http.Request) {
	s.relayCheck(w, r, "/attendance/checkin", "check in")
}

func (s *Server) CheckOut(w http.ResponseWriter, r *http.Request) {
	s.relayCheck(w, r, "/attendance/checkout", "check out")
}

func (s *Server) relayCheck(w http.ResponseWriter, r *http.Request, upstreamPath, action string) {
	sess, _, err := s.sessionFromRequest(r)
	if err != nil {
		s.httpMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	body, err := s.deps.Upstream.Post(r.Context(), upstreamPath, sess.UpstreamToken, entity.CheckRequest{
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.relayWriteError(w, err, action)
		return
	}

	s.httpRaw(w, http.StatusOK, body)
}

// ApplyLeave forwards the application as-is; date and balance validation is
// the HR system's call, not the gateway's.
func (s *Server) ApplyLeave(w http.ResponseWriter, r *http.Request) {
	sess, _, err := s.sessionFromRequest(r)
	if err != nil {
		s.httpMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var application entity.LeaveApplication
	if err := json.NewDecoder(r.Body).Decode(&application); err != nil {
		s.deps.Logger.Error("Error decoding request body", slog.String("error", err.Error()))
		s.httpMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	body, err := s.deps.Upstream.Post(r.Context(), "/leave/apply", sess.UpstreamToken, application)
	if err != nil {
		s.relayWriteError(w, err, "submit leave request")
		return
	}

	s.httpRaw(w, http.StatusOK, body)
}

func (s *Server) relayWriteError(w http.ResponseWriter, err error, action string) {
	if rejected, ok := upstream.AsRejected(err); ok {
		status := http.StatusBadRequest
		if rejected.StatusCode == http.StatusUnauthorized {
			status = http.StatusUnauthorized
		}

		s.httpMessage(w, status, rejected.Message)
		return
	}

	if errors.Is(err, upstream.ErrUnavailable) {
		s.deps.Logger.Error("Write route failed, HR service unavailable", slog.String("error", err.Error()))
		s.httpMessage(w, http.StatusServiceUnavailable, "HR service unavailable")
		return
	}

	s.deps.Logger.Error("Error relaying request", slog.String("error", err.Error()))
	s.httpMessage(w, http.StatusInternalServerError, "Failed to "+action)
}
