package entity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is one authenticated portal user. Records live in the session
// store keyed by token ID, so any number of users can be signed in at once.
type Session struct {
	User          User      `json:"user"`
	UpstreamToken string    `json:"upstream_token,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type Claims struct {
	EmployeeID string `json:"employee_id"`
	TokenID    string `json:"token_id"`
	jwt.RegisteredClaims
}
