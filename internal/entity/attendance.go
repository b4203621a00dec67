package entity

import (
	"time"
)

type Attendance struct {
	ID          int        `json:"id"`
	Date        time.Time  `json:"date"`
	CheckIn     *time.Time `json:"checkIn,omitempty"`
	CheckOut    *time.Time `json:"checkOut,omitempty"`
	Status      string     `json:"status"`
	HoursWorked float64    `json:"hoursWorked,omitempty"`
}

// CheckRequest is the body the gateway forwards on check-in/check-out.
// The timestamp is always stamped server-side, never taken from the browser.
type CheckRequest struct {
	Timestamp time.Time `json:"timestamp"`
}
