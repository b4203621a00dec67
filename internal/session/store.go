// Package session holds the gateway's session store. Each signed-in portal
// user gets a record keyed by a random token ID, so concurrent users never
// share state.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/hros/ess-gateway/internal/entity"
)

var ErrNotFound = errors.New("session not found")

type Store interface {
	Create(ctx context.Context, tokenID string, sess entity.Session, ttl time.Duration) error
	Lookup(ctx context.Context, tokenID string) (*entity.Session, error)
	Destroy(ctx context.Context, tokenID string) error
}
