package entity

type User struct {
	ID         int    `json:"id"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
}

type LoginRequest struct {
	EmployeeID string `json:"employeeId"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// EmployeeDetails mirrors the upstream HR record shape, which uses
// snake_case field names.
type EmployeeDetails struct {
	EmpNo         string `json:"emp_no"`
	Name          string `json:"name"`
	Designation   string `json:"designation,omitempty"`
	Department    string `json:"department,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
	EmpEmail      string `json:"emp_email,omitempty"`
	PhotoFileName string `json:"photo_file_name,omitempty"`
}
