package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hros/ess-gateway/internal/entity"
	"github.com/hros/ess-gateway/internal/hrstub"
)

func TestReadRoutesRequireAuth(t *testing.T) {
	paths := []string{
		"/api/dashboard/stats",
		"/api/attendance",
		"/api/attendance/today",
		"/api/leave/requests",
		"/api/leave/balances",
		"/api/payroll",
		"/api/payroll/current",
		"/api/documents",
		"/api/employee/details",
		"/api/notices",
		"/api/holidays",
	}

	env := seededEnv(t)

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			status, body := env.do(t, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "Unauthorized", messageOf(t, body))
		})
	}
}

func TestDashboardStats(t *testing.T) {
	env := seededEnv(t)
	token := env.login(t, "EMP001", "password123")

	status, body := env.do(t, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, status)

	var stats entity.DashboardStats
	require.NoError(t, json.Unmarshal(body, &stats))

	// The demo dataset has an open check-in and untouched balances.
	assert.Equal(t, "Present", stats.TodayStatus)
	assert.Equal(t, "23 Days", stats.LeaveBalance)
	assert.Equal(t, "1/22 Days", stats.MonthlyAttendance)
	assert.True(t, stats.IsCheckedIn)
}

func TestReadRoutesDegradeWhenUpstreamDown(t *testing.T) {
	env := seededEnv(t)
	token := env.login(t, "EMP001", "password123")

	env.stub.Close()

	status, body := env.do(t, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, status)

	var stats entity.DashboardStats
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, entity.DefaultDashboardStats(), stats)

	status, body = env.do(t, http.MethodGet, "/api/attendance", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))

	status, body = env.do(t, http.MethodGet, "/api/attendance/today", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(body))

	status, body = env.do(t, http.MethodGet, "/api/employee/details", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(body))
}

func TestWriteRoutesFailWhenUpstreamDown(t *testing.T) {
	env := seededEnv(t)
	token := env.login(t, "EMP001", "password123")

	env.stub.Close()

	status, body := env.do(t, http.MethodPost, "/api/attendance/checkin", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "HR service unavailable", messageOf(t, body))
}

func TestCheckInCheckOutFlow(t *testing.T) {
	storage := hrstub.NewStorage()
	require.NoError(t, storage.AddUser(entity.User{
		EmployeeID: "EMP002",
		Name:       "Jane Roe",
		Email:      "jane.roe@company.com",
	}, "secret"))

	env := newTestEnv(t, storage)
	token := env.login(t, "EMP002", "secret")

	// Checking out before checking in is the day's classic mistake.
	status, body := env.do(t, http.MethodPost, "/api/attendance/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No active check-in found", messageOf(t, body))

	status, _ = env.do(t, http.MethodPost, "/api/attendance/checkin", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, http.MethodGet, "/api/attendance/today", token, nil)
	require.Equal(t, http.StatusOK, status)

	var today entity.Attendance
	require.NoError(t, json.Unmarshal(body, &today))
	require.NotNil(t, today.CheckIn)
	assert.Nil(t, today.CheckOut)
	assert.Equal(t, "present", today.Status)

	status, _ = env.do(t, http.MethodPost, "/api/attendance/checkout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, http.MethodGet, "/api/attendance/today", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &today))
	assert.NotNil(t, today.CheckOut)

	// A second checkout has no open check-in to close.
	status, body = env.do(t, http.MethodPost, "/api/attendance/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No active check-in found", messageOf(t, body))
}

func TestApplyLeave(t *testing.T) {
	env := seededEnv(t)
	token := env.login(t, "EMP001", "password123")

	status, body := env.do(t, http.MethodPost, "/api/leave/apply", token, entity.LeaveApplication{
		Type:      "Annual Leave",
		StartDate: "2025-01-06",
		EndDate:   "2025-01-08",
		Reason:    "Family trip",
	})
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, http.MethodGet, "/api/leave/requests", token, nil)
	require.Equal(t, http.StatusOK, status)

	var requests []entity.LeaveRequest
	require.NoError(t, json.Unmarshal(body, &requests))
	require.Len(t, requests, 1)
	assert.Equal(t, "Annual Leave", requests[0].Type)
	assert.Equal(t, entity.LeaveStatusPending, requests[0].Status)
}

func TestApplyLeaveRejected(t *testing.T) {
	env := seededEnv(t)
	token := env.login(t, "EMP001", "password123")

	tests := []struct {
		name        string
		payload     entity.LeaveApplication
		wantMessage string
	}{
		{
			name:        "missing type",
			payload:     entity.LeaveApplication{StartDate: "2025-01-06", EndDate: "2025-01-08"},
			wantMessage: "Leave type and dates are required",
		},
		{
			name: "end before start",
			payload: entity.LeaveApplication{
				Type:      "Annual Leave",
				StartDate: "2025-01-08",
				EndDate:   "2025-01-06",
			},
			wantMessage: "End date must not be before start date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.do(t, http.MethodPost, "/api/leave/apply", token, tt.payload)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.wantMessage, messageOf(t, body))
		})
	}
}

func TestLeaveRequestAlias(t *testing.T) {
	env := seededEnv(t)
	token := env.login(t, "EMP001", "password123")

	// The portal's older builds post to /leave/request instead of /leave/apply.
	status, _ := env.do(t, http.MethodPost, "/api/leave/request", token, entity.LeaveApplication{
		Type:      "Sick Leave",
		StartDate: "2025-02-03",
		EndDate:   "2025-02-03",
	})
	assert.Equal(t, http.StatusOK, status)
}

func TestReadRoutesPassThrough(t *testing.T) {
	env := seededEnv(t)
	token := env.login(t, "EMP001", "password123")

	status, body := env.do(t, http.MethodGet, "/api/holidays", token, nil)
	require.Equal(t, http.StatusOK, status)

	var holidays []entity.Holiday
	require.NoError(t, json.Unmarshal(body, &holidays))
	require.Len(t, holidays, 2)
	assert.Equal(t, "New Year's Day", holidays[0].HolidayName)

	status, body = env.do(t, http.MethodGet, "/api/payroll", token, nil)
	require.Equal(t, http.StatusOK, status)

	var payroll []entity.Payroll
	require.NoError(t, json.Unmarshal(body, &payroll))
	require.Len(t, payroll, 4)
	assert.Equal(t, "December", payroll[0].Month)
	assert.Equal(t, 4500, payroll[0].NetSalary)
}
