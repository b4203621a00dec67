package hrstub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hros/ess-gateway/internal/entity"
)

func testStorage(t *testing.T) *Storage {
	t.Helper()

	s := NewStorage()
	require.NoError(t, s.AddUser(entity.User{
		EmployeeID: "EMP010",
		Name:       "Alex Kim",
		Email:      "alex.kim@company.com",
	}, "letmein"))

	return s
}

func TestAuthenticate(t *testing.T) {
	s := testStorage(t)

	user, err := s.Authenticate("EMP010", "letmein")
	require.NoError(t, err)
	assert.Equal(t, "Alex Kim", user.Name)

	_, err = s.Authenticate("EMP010", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate("EMP999", "letmein")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCheckInCheckOut(t *testing.T) {
	s := testStorage(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	_, err := s.CheckOut("EMP010", now)
	assert.ErrorIs(t, err, ErrNoActiveCheckIn)

	record, err := s.CheckIn("EMP010", now)
	require.NoError(t, err)
	require.NotNil(t, record.CheckIn)
	assert.Equal(t, "present", record.Status)

	record, err = s.CheckOut("EMP010", now.Add(8*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, record.CheckOut)
	assert.InDelta(t, 8.0, record.HoursWorked, 0.01)

	// The day's check-in is closed now.
	_, err = s.CheckOut("EMP010", now.Add(9*time.Hour))
	assert.ErrorIs(t, err, ErrNoActiveCheckIn)

	// Yesterday's open check-in does not satisfy today's checkout.
	_, err = s.CheckIn("EMP010", now.AddDate(0, 0, 1))
	require.NoError(t, err)
	_, err = s.CheckOut("EMP010", now.AddDate(0, 0, 2))
	assert.ErrorIs(t, err, ErrNoActiveCheckIn)

	_, err = s.CheckIn("EMP999", now)
	assert.ErrorIs(t, err, ErrUnknownEmployee)
}

func TestAttendanceQueries(t *testing.T) {
	s := testStorage(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Empty(t, s.AttendanceFor("EMP010"))
	assert.Nil(t, s.AttendanceToday("EMP010", now))

	_, err := s.CheckIn("EMP010", now)
	require.NoError(t, err)

	assert.Len(t, s.AttendanceFor("EMP010"), 1)
	require.NotNil(t, s.AttendanceToday("EMP010", now))
	assert.Nil(t, s.AttendanceToday("EMP010", now.AddDate(0, 0, 1)))
}

func TestApplyLeave(t *testing.T) {
	s := testStorage(t)

	record := s.ApplyLeave("EMP010", entity.LeaveApplication{
		Type:      "Annual Leave",
		StartDate: "2025-04-01",
		EndDate:   "2025-04-03",
		Reason:    "Holiday",
	})

	assert.Equal(t, entity.LeaveStatusPending, record.Status)
	assert.NotEmpty(t, record.AppliedDate)

	requests := s.LeaveRequestsFor("EMP010")
	require.Len(t, requests, 1)
	assert.Equal(t, "Annual Leave", requests[0].Type)

	assert.Empty(t, s.LeaveRequestsFor("EMP999"))
}

func TestStats(t *testing.T) {
	s := testStorage(t)
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	stats := s.Stats("EMP010", now)
	assert.Equal(t, "Not Checked In", stats.TodayStatus)
	assert.Equal(t, "0 Days", stats.LeaveBalance)
	assert.Equal(t, "0/22 Days", stats.MonthlyAttendance)
	assert.False(t, stats.IsCheckedIn)

	s.SetLeaveBalances("EMP010", []entity.LeaveBalance{
		{Type: "Annual Leave", Total: 12, Used: 2, Remaining: 10},
		{Type: "Sick Leave", Total: 8, Used: 0, Remaining: 8},
	})

	_, err := s.CheckIn("EMP010", now)
	require.NoError(t, err)

	stats = s.Stats("EMP010", now)
	assert.Equal(t, "Present", stats.TodayStatus)
	assert.Equal(t, "18 Days", stats.LeaveBalance)
	assert.Equal(t, "1/22 Days", stats.MonthlyAttendance)
	assert.True(t, stats.IsCheckedIn)
}

func TestSeedDemo(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.SeedDemo())

	user, err := s.Authenticate("EMP001", "password123")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", user.Name)

	assert.Len(t, s.LeaveBalancesFor("EMP001"), 3)
	assert.Len(t, s.PayrollFor("EMP001"), 4)
	assert.Len(t, s.DocumentsFor("EMP001"), 3)
	assert.Len(t, s.Notices(), 2)
	assert.Len(t, s.Holidays(), 2)

	details := s.EmployeeDetails("EMP001")
	require.NotNil(t, details)
	assert.Equal(t, "EMP001", details.EmpNo)

	// The demo day is in progress.
	stats := s.Stats("EMP001", time.Now())
	assert.True(t, stats.IsCheckedIn)
}
