package entity

type Payroll struct {
	ID          int    `json:"id"`
	Month       string `json:"month"`
	Year        int    `json:"year"`
	BasicSalary int    `json:"basicSalary"`
	Allowances  int    `json:"allowances"`
	Deductions  int    `json:"deductions"`
	NetSalary   int    `json:"netSalary"`
	Status      string `json:"status"`
}
