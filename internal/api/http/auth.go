package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hros/ess-gateway/internal/entity"
	"github.com/hros/ess-gateway/internal/session"
	"github.com/hros/ess-gateway/internal/upstream"
)

// AuthLogin validates credentials locally, relays them to the HR service and
// on success creates a session keyed by a fresh token ID.
func (s *Server) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req entity.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.deps.Logger.Error("Error decoding request body", slog.String("error", err.Error()))
		s.httpMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.EmployeeID) == "" {
		s.httpMessage(w, http.StatusBadRequest, "Employee ID is required")
		return
	}

	if req.Password == "" {
		s.httpMessage(w, http.StatusBadRequest, "Password is required")
		return
	}

	result, err := s.deps.Upstream.Login(r.Context(), req.EmployeeID, req.Password)
	if err != nil {
		if rejected, ok := upstream.AsRejected(err); ok {
			s.deps.Logger.Warn("Login rejected", slog.String("employee_id", req.EmployeeID))
			s.httpMessage(w, http.StatusUnauthorized, rejected.Message)
			return
		}

		if errors.Is(err, upstream.ErrUnavailable) {
			s.deps.Logger.Error("Login failed, HR service unavailable", slog.String("error", err.Error()))
			s.httpMessage(w, http.StatusServiceUnavailable, "HR service unavailable")
			return
		}

		s.deps.Logger.Error("Error logging in", slog.String("error", err.Error()))
		s.httpMessage(w, http.StatusInternalServerError, "Login failed")
		return
	}

	tokenID, err := session.NewTokenID()
	if err != nil {
		s.deps.Logger.Error("Error generating token ID", slog.String("error", err.Error()))
		s.httpMessage(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := session.NewToken(s.deps.Config.Server.JWTSecret, result.User.EmployeeID, tokenID, s.deps.Config.Sessions.SessionTTL)
	if err != nil {
		s.deps.Logger.Error("Error signing token", slog.String("error", err.Error()))
		s.httpMessage(w, http.StatusInternalServerError, "Login failed")
		return
	}

	sess := entity.Session{
		User:          result.User,
		UpstreamToken: result.Token,
		CreatedAt:     time.Now(),
	}

	if err := s.deps.Sessions.Create(r.Context(), tokenID, sess, s.deps.Config.Sessions.SessionTTL); err != nil {
		s.deps.Logger.Error("Error storing session", slog.String("error", err.Error()))
		s.httpMessage(w, http.StatusInternalServerError, "Login failed")
		return
	}

	s.httpJSON(w, http.StatusOK, entity.LoginResponse{User: result.User, Token: token})
}

// AuthLogout must never fail from the caller's perspective. Upstream
// invalidation is best effort; the local session is always destroyed.
func (s *Server) AuthLogout(w http.ResponseWriter, r *http.Request) {
	if sess, tokenID, err := s.sessionFromRequest(r); err == nil {
		if sess.UpstreamToken != "" {
			if logoutErr := s.deps.Upstream.Logout(r.Context(), sess.UpstreamToken); logoutErr != nil {
				s.deps.Logger.Warn("Upstream logout failed", slog.String("error", logoutErr.Error()))
			}
		}

		if destroyErr := s.deps.Sessions.Destroy(r.Context(), tokenID); destroyErr != nil {
			s.deps.Logger.Warn("Error destroying session", slog.String("error", destroyErr.Error()))
		}
	}

	s.httpMessage(w, http.StatusOK, "Logged out successfully")
}

// AuthUser returns the session user without another upstream round trip.
func (s *Server) AuthUser(w http.ResponseWriter, r *http.Request) {
	sess, _, err := s.sessionFromRequest(r)
	if err != nil {
		s.httpMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.httpJSON(w, http.StatusOK, sess.User)
}

func (s *Server) sessionFromRequest(r *http.Request) (*entity.Session, string, error) {
	authHeader := r.Header.Get("Authorization")
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenStr == authHeader || tokenStr == "" {
		return nil, "", errors.New("invalid bearer token")
	}

	claims, err := session.ParseToken(s.deps.Config.Server.JWTSecret, tokenStr)
	if err != nil {
		return nil, "", err
	}

	sess, err := s.deps.Sessions.Lookup(r.Context(), claims.TokenID)
	if err != nil {
		return nil, "", err
	}

	return sess, claims.TokenID, nil
}
