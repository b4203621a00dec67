package hrstub

import (
	"time"

	"github.com/hros/ess-gateway/internal/entity"
)

// SeedDemo loads the sample dataset used in local development: one employee
// (EMP001 / password123) with attendance, leave, payroll and documents.
func (s *Storage) SeedDemo() error {
	if err := s.AddUser(entity.User{
		EmployeeID: "EMP001",
		Name:       "John Doe",
		Email:      "john.doe@company.com",
		Phone:      "+1 (555) 123-4567",
		Position:   "Senior Software Engineer",
		Department: "Technology Department",
	}, "password123"); err != nil {
		return err
	}

	s.SetLeaveBalances("EMP001", []entity.LeaveBalance{
		{Type: "Annual Leave", Total: 12, Used: 0, Remaining: 12},
		{Type: "Sick Leave", Total: 8, Used: 0, Remaining: 8},
		{Type: "Emergency Leave", Total: 3, Used: 0, Remaining: 3},
	})

	s.SetPayroll("EMP001", []entity.Payroll{
		{ID: 1, Month: "December", Year: 2024, BasicSalary: 3500, Allowances: 1200, Deductions: 200, NetSalary: 4500, Status: "paid"},
		{ID: 2, Month: "November", Year: 2024, BasicSalary: 3500, Allowances: 1050, Deductions: 200, NetSalary: 4350, Status: "paid"},
		{ID: 3, Month: "October", Year: 2024, BasicSalary: 3500, Allowances: 1200, Deductions: 200, NetSalary: 4500, Status: "paid"},
		{ID: 4, Month: "September", Year: 2024, BasicSalary: 3500, Allowances: 1100, Deductions: 200, NetSalary: 4400, Status: "paid"},
	})

	s.SetDocuments("EMP001", []entity.Document{
		{ID: 1, Name: "Employment Contract 2024", Type: "PDF", Size: "1.2 MB", UploadDate: "2024-01-15", Category: "Contracts"},
		{ID: 2, Name: "Tax Certificate 2024", Type: "PDF", Size: "0.8 MB", UploadDate: "2024-03-02", Category: "Certificates"},
		{ID: 3, Name: "Training Certificate", Type: "PDF", Size: "2.1 MB", UploadDate: "2024-06-20", Category: "Certificates"},
	})

	s.SetEmployeeDetails("EMP001", entity.EmployeeDetails{
		EmpNo:         "EMP001",
		Name:          "John Doe",
		Designation:   "Senior Software Engineer",
		Department:    "Technology Department",
		ContactNumber: "+1 (555) 123-4567",
		EmpEmail:      "john.doe@company.com",
	})

	s.SetNotices([]entity.Notice{
		{ID: "1", Title: "Office Renovation", Content: "The third floor will be closed next week.", CreatedAt: "2024-12-01"},
		{ID: "2", Title: "Annual Dinner", Content: "The staff dinner is on December 20th.", CreatedAt: "2024-11-28"},
	})

	s.SetHolidays([]entity.Holiday{
		{ID: "1", HolidayName: "New Year's Day", Date: "2025-01-01", Type: "public"},
		{ID: "2", HolidayName: "National Day", Date: "2025-07-26", Type: "public"},
	})

	// Sample day already in progress, like the original demo data.
	if _, err := s.CheckIn("EMP001", time.Now().Add(-2*time.Hour)); err != nil {
		return err
	}

	return nil
}
