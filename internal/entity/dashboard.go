package entity

type DashboardStats struct {
	TodayStatus       string `json:"todayStatus"`
	LeaveBalance      string `json:"leaveBalance"`
	MonthlyAttendance string `json:"monthlyAttendance"`
	IsCheckedIn       bool   `json:"isCheckedIn"`
}

// DefaultDashboardStats is what the gateway serves when the HR service
// cannot answer. The UI renders it as an empty day rather than an error.
func DefaultDashboardStats() DashboardStats {
	return DashboardStats{
		TodayStatus:       "Not Checked In",
		LeaveBalance:      "0 Days",
		MonthlyAttendance: "0/22 Days",
		IsCheckedIn:       false,
	}
}

// Notice and Holiday keep the upstream's snake_case field names.
type Notice struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Holiday struct {
	ID          string `json:"id"`
	HolidayName string `json:"holiday_name"`
	Date        string `json:"date"`
	Type        string `json:"type,omitempty"`
}
