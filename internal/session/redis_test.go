package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hros/ess-gateway/internal/entity"
)

type MockRedis struct {
	mock.Mock
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *MockRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}

func TestRedisStoreCreate(t *testing.T) {
	ctx := context.Background()
	mockRedis := new(MockRedis)

	okCmd := redis.NewStatusCmd(ctx)
	mockRedis.On("Set", mock.Anything, "session:token-a", mock.Anything, time.Hour).Return(okCmd)

	store := NewRedisStore(mockRedis)
	err := store.Create(ctx, "token-a", entity.Session{
		User: entity.User{EmployeeID: "EMP001"},
	}, time.Hour)

	require.NoError(t, err)
	mockRedis.AssertExpectations(t)
}

func TestRedisStoreLookup(t *testing.T) {
	ctx := context.Background()
	mockRedis := new(MockRedis)

	sess := entity.Session{
		User:          entity.User{EmployeeID: "EMP001", Name: "John Doe"},
		UpstreamToken: "session_42_EMP001",
	}
	data, err := json.Marshal(sess)
	require.NoError(t, err)

	foundCmd := redis.NewStringCmd(ctx)
	foundCmd.SetVal(string(data))
	mockRedis.On("Get", mock.Anything, "session:token-a").Return(foundCmd)

	missingCmd := redis.NewStringCmd(ctx)
	missingCmd.SetErr(redis.Nil)
	mockRedis.On("Get", mock.Anything, "session:token-b").Return(missingCmd)

	store := NewRedisStore(mockRedis)

	got, err := store.Lookup(ctx, "token-a")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.User.Name)
	assert.Equal(t, "session_42_EMP001", got.UpstreamToken)

	_, err = store.Lookup(ctx, "token-b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreDestroy(t *testing.T) {
	ctx := context.Background()
	mockRedis := new(MockRedis)

	okCmd := redis.NewIntCmd(ctx)
	mockRedis.On("Del", mock.Anything, []string{"session:token-a"}).Return(okCmd)

	store := NewRedisStore(mockRedis)
	require.NoError(t, store.Destroy(ctx, "token-a"))
	mockRedis.AssertExpectations(t)
}
