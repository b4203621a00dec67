package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hros/ess-gateway/internal/entity"
)

const TokenIDSize = 16

// NewTokenID generates the random identifier the session record is keyed by.
func NewTokenID() (string, error) {
	b := make([]byte, TokenIDSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// NewToken signs the bearer token handed to the browser. The token only
// carries the employee ID and the session key; everything else lives in the
// store so it can be revoked.
func NewToken(secret, employeeID, tokenID string, ttl time.Duration) (string, error) {
	claims := entity.Claims{
		EmployeeID: employeeID,
		TokenID:    tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenStr string) (*entity.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &entity.Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.New("invalid token")
	}

	if claims, ok := token.Claims.(*entity.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
