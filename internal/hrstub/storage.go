// Package hrstub is an in-memory stand-in for the external HR/payroll API.
// It serves the upstream's route shapes from seeded sample data, for local
// development and as the stub upstream in gateway tests.
package hrstub

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hros/ess-gateway/internal/entity"
)

var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrNoActiveCheckIn    = errors.New("No active check-in found")
	ErrUnknownEmployee    = errors.New("employee not found")
)

type attendanceRecord struct {
	entity.Attendance
	EmployeeID string
}

type leaveRecord struct {
	entity.LeaveRequest
	EmployeeID string
}

type Storage struct {
	mu sync.Mutex

	users      map[string]*stubUser
	attendance []*attendanceRecord
	leaves     []*leaveRecord
	balances   map[string][]entity.LeaveBalance
	payroll    map[string][]entity.Payroll
	documents  map[string][]entity.Document
	details    map[string]entity.EmployeeDetails
	notices    []entity.Notice
	holidays   []entity.Holiday
	nextID     int
}

type stubUser struct {
	user         entity.User
	passwordHash string
}

func NewStorage() *Storage {
	return &Storage{
		users:     make(map[string]*stubUser),
		balances:  make(map[string][]entity.LeaveBalance),
		payroll:   make(map[string][]entity.Payroll),
		documents: make(map[string][]entity.Document),
		details:   make(map[string]entity.EmployeeDetails),
		nextID:    1,
	}
}

// AddUser registers an employee with a bcrypt-hashed password.
func (s *Storage) AddUser(user entity.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == 0 {
		user.ID = s.nextID
		s.nextID++
	}

	s.users[user.EmployeeID] = &stubUser{user: user, passwordHash: string(hash)}
	return nil
}

func (s *Storage) Authenticate(employeeID, password string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stub, ok := s.users[employeeID]
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stub.passwordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user := stub.user
	return &user, nil
}

func (s *Storage) CheckIn(employeeID string, ts time.Time) (*entity.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[employeeID]; !ok {
		return nil, ErrUnknownEmployee
	}

	checkIn := ts
	record := &attendanceRecord{
		Attendance: entity.Attendance{
			ID:      s.nextID,
			Date:    ts,
			CheckIn: &checkIn,
			Status:  "present",
		},
		EmployeeID: employeeID,
	}
	s.nextID++
	s.attendance = append(s.attendance, record)

	att := record.Attendance
	return &att, nil
}

func (s *Storage) CheckOut(employeeID string, ts time.Time) (*entity.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.activeCheckIn(employeeID, ts)
	if record == nil {
		return nil, ErrNoActiveCheckIn
	}

	checkOut := ts
	record.CheckOut = &checkOut
	record.HoursWorked = checkOut.Sub(*record.CheckIn).Hours()

	att := record.Attendance
	return &att, nil
}

func (s *Storage) activeCheckIn(employeeID string, today time.Time) *attendanceRecord {
	for _, record := range s.attendance {
		if record.EmployeeID == employeeID && sameDay(record.Date, today) &&
			record.CheckIn != nil && record.CheckOut == nil {
			return record
		}
	}

	return nil
}

func (s *Storage) AttendanceFor(employeeID string) []entity.Attendance {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := []entity.Attendance{}
	for _, record := range s.attendance {
		if record.EmployeeID == employeeID {
			records = append(records, record.Attendance)
		}
	}

	return records
}

func (s *Storage) AttendanceToday(employeeID string, today time.Time) *entity.Attendance {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.attendance {
		if record.EmployeeID == employeeID && sameDay(record.Date, today) {
			att := record.Attendance
			return &att
		}
	}

	return nil
}

func (s *Storage) ApplyLeave(employeeID string, application entity.LeaveApplication) entity.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := &leaveRecord{
		LeaveRequest: entity.LeaveRequest{
			ID:          s.nextID,
			Type:        application.Type,
			StartDate:   application.StartDate,
			EndDate:     application.EndDate,
			Reason:      application.Reason,
			Status:      entity.LeaveStatusPending,
			AppliedDate: time.Now().Format("2006-01-02"),
		},
		EmployeeID: employeeID,
	}
	s.nextID++
	s.leaves = append(s.leaves, record)

	return record.LeaveRequest
}

func (s *Storage) LeaveRequestsFor(employeeID string) []entity.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests := []entity.LeaveRequest{}
	for _, record := range s.leaves {
		if record.EmployeeID == employeeID {
			requests = append(requests, record.LeaveRequest)
		}
	}

	return requests
}

func (s *Storage) SetLeaveBalances(employeeID string, balances []entity.LeaveBalance) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[employeeID] = balances
}

func (s *Storage) LeaveBalancesFor(employeeID string) []entity.LeaveBalance {
	s.mu.Lock()
	defer s.mu.Unlock()

	balances := s.balances[employeeID]
	if balances == nil {
		return []entity.LeaveBalance{}
	}

	return balances
}

func (s *Storage) SetPayroll(employeeID string, records []entity.Payroll) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payroll[employeeID] = records
}

func (s *Storage) PayrollFor(employeeID string) []entity.Payroll {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.payroll[employeeID]
	if records == nil {
		return []entity.Payroll{}
	}

	return records
}

func (s *Storage) CurrentPayroll(employeeID string, now time.Time) *entity.Payroll {
	s.mu.Lock()
	defer s.mu.Unlock()

	month := now.Month().String()
	for _, record := range s.payroll[employeeID] {
		if record.Month == month && record.Year == now.Year() {
			current := record
			return &current
		}
	}

	return nil
}

func (s *Storage) SetDocuments(employeeID string, docs []entity.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[employeeID] = docs
}

func (s *Storage) DocumentsFor(employeeID string) []entity.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.documents[employeeID]
	if docs == nil {
		return []entity.Document{}
	}

	return docs
}

func (s *Storage) SetEmployeeDetails(employeeID string, details entity.EmployeeDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.details[employeeID] = details
}

func (s *Storage) EmployeeDetails(employeeID string) *entity.EmployeeDetails {
	s.mu.Lock()
	defer s.mu.Unlock()

	details, ok := s.details[employeeID]
	if !ok {
		return nil
	}

	return &details
}

func (s *Storage) SetNotices(notices []entity.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notices = notices
}

func (s *Storage) Notices() []entity.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.notices == nil {
		return []entity.Notice{}
	}

	return s.notices
}

func (s *Storage) SetHolidays(holidays []entity.Holiday) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.holidays = holidays
}

func (s *Storage) Holidays() []entity.Holiday {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.holidays == nil {
		return []entity.Holiday{}
	}

	return s.holidays
}

const workingDaysInMonth = 22 // simplified, matches the portal's display

func (s *Storage) Stats(employeeID string, now time.Time) entity.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	isCheckedIn := s.activeCheckIn(employeeID, now) != nil

	totalBalance := 0
	for _, balance := range s.balances[employeeID] {
		totalBalance += balance.Remaining
	}

	monthly := 0
	for _, record := range s.attendance {
		if record.EmployeeID == employeeID && record.Status == "present" &&
			record.Date.Year() == now.Year() && record.Date.Month() == now.Month() {
			monthly++
		}
	}

	todayStatus := "Not Checked In"
	if isCheckedIn {
		todayStatus = "Present"
	}

	return entity.DashboardStats{
		TodayStatus:       todayStatus,
		LeaveBalance:      fmt.Sprintf("%d Days", totalBalance),
		MonthlyAttendance: fmt.Sprintf("%d/%d Days", monthly, workingDaysInMonth),
		IsCheckedIn:       isCheckedIn,
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
