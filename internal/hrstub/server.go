package hrstub

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hros/ess-gateway/internal/entity"
)

// Server exposes Storage over the upstream API's route and envelope shapes:
// reads answer with bare JSON payloads, login and mutations answer with
// {status, message?, data?, token?}.
type Server struct {
	storage *Storage
	logger  *slog.Logger

	mu     sync.Mutex
	tokens map[string]string
}

func NewServer(storage *Storage, logger *slog.Logger) *Server {
	return &Server{
		storage: storage,
		logger:  logger,
		tokens:  make(map[string]string),
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)

	r.Get("/dashboard/stats", s.authed(func(w http.ResponseWriter, r *http.Request, empID string) {
		s.writeData(w, s.storage.Stats(empID, time.Now()))
	}))

	r.Get("/attendance", s.authed(func(w http.ResponseWriter, r *http.Request, empID string) {
		s.writeData(w, s.storage.AttendanceFor(empID))
	}))
	r.Get("/attendance/today", s.authed(func(w http.ResponseWriter, r *http.Request, empID string) {
		s.writeData(w, s.storage.AttendanceToday(empID, time.Now()))
	}))
	r.Post("/attendance/checkin", s.authed(s.handleCheckIn))
	r.Post("/attendance/checkout", s.authed(s.handleCheckOut))

	r.Get("/leave/requests", s.authed(func(w http.ResponseWriter, r *http.Request, empID string) {
		s.writeData(w, s.storage.LeaveRequestsFor(empID))
	}))
	r.Get("/leave/balances", s.authed(func(w http.ResponseWriter, r *http.Request, empID string) {
		s.writeData(w, s.storage.LeaveBalancesFor(empID))
	}))
	r.Post("/leave/apply", s.authed(s.handleApplyLeave))

	r.Get("/payroll", s.authed(func(w http.ResponseWriter, r *http.Request, empID string) {
		s.writeData(w, s.storage.PayrollFor(empID))
	}))
	r.Get("/payroll/current", s.authed(func(w http.ResponseWriter, r *http.Request, empID string) {
		s.writeData(w, s.storage.CurrentPayroll(empID, time.Now()))
	}))

	r.Get("/documents", s.authed(func(w http.ResponseWriter, r *http.Request, empID string) {
		s.writeData(w, s.storage.DocumentsFor(empID))
	}))
	r.Get("/employee/details", s.authed(func(w http.ResponseWriter, r *http.Request, empID string) {
		s.writeData(w, s.storage.EmployeeDetails(empID))
	}))
	r.Get("/notices", s.authed(func(w http.ResponseWriter, r *http.Request, empID string) {
		s.writeData(w, s.storage.Notices())
	}))
	r.Get("/holidays", s.authed(func(w http.ResponseWriter, r *http.Request, empID string) {
		s.writeData(w, s.storage.Holidays())
	}))

	return r
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req entity.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.storage.Authenticate(req.EmployeeID, req.Password)
	if err != nil {
		s.writeFail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// The upstream's historical token shape, kept for wire compatibility.
	token := fmt.Sprintf("session_%d_%s", time.Now().UnixNano(), user.EmployeeID)

	s.mu.Lock()
	s.tokens[token] = user.EmployeeID
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"token":  token,
		"data":   user,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request, empID string) {
	var req entity.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}

	record, err := s.storage.CheckIn(empID, req.Timestamp)
	if err != nil {
		s.writeFail(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": record})
}

func (s *Server) handleCheckOut(w http.ResponseWriter, r *http.Request, empID string) {
	var req entity.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}

	record, err := s.storage.CheckOut(empID, req.Timestamp)
	if err != nil {
		s.writeFail(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": record})
}

func (s *Server) handleApplyLeave(w http.ResponseWriter, r *http.Request, empID string) {
	var application entity.LeaveApplication
	if err := json.NewDecoder(r.Body).Decode(&application); err != nil {
		s.writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if application.Type == "" || application.StartDate == "" || application.EndDate == "" {
		s.writeFail(w, http.StatusBadRequest, "Leave type and dates are required")
		return
	}

	if application.EndDate < application.StartDate {
		s.writeFail(w, http.StatusBadRequest, "End date must not be before start date")
		return
	}

	record := s.storage.ApplyLeave(empID, application)
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": record})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, empID string)

func (s *Server) authed(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)

		s.mu.Lock()
		empID, ok := s.tokens[token]
		s.mu.Unlock()

		if !ok {
			s.writeFail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next(w, r, empID)
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}

	return token
}

func (s *Server) writeData(w http.ResponseWriter, data any) {
	s.writeJSON(w, http.StatusOK, data)
}

func (s *Server) writeFail(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{"status": "fail", "message": message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	respData, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("Error marshaling response", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(respData); err != nil {
		s.logger.Error("Error writing response", slog.String("error", err.Error()))
	}
}
