package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/hros/ess-gateway/internal/config"
	"github.com/hros/ess-gateway/internal/entity"
	"github.com/hros/ess-gateway/internal/hrstub"
	"github.com/hros/ess-gateway/internal/session"
	"github.com/hros/ess-gateway/internal/upstream"
)

// testEnv runs the gateway over a live HR stub, so handler tests exercise the
// real relay path instead of mocks.
type testEnv struct {
	storage *hrstub.Storage
	stub    *httptest.Server
	gateway *httptest.Server
}

func newTestEnv(t *testing.T, storage *hrstub.Storage) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	stub := httptest.NewServer(hrstub.NewServer(storage, logger).Router())

	cfg := &config.Config{}
	cfg.Server.JWTSecret = "test-secret"
	cfg.Sessions.SessionTTL = time.Hour

	r := chi.NewRouter()
	NewServer(&Deps{
		Config:   cfg,
		Sessions: session.NewMemoryStore(),
		Upstream: upstream.NewClient(stub.URL, 5*time.Second, logger),
		Logger:   logger,
	}).Register(r)

	gateway := httptest.NewServer(r)

	t.Cleanup(func() {
		gateway.Close()
		stub.Close()
	})

	return &testEnv{storage: storage, stub: stub, gateway: gateway}
}

func seededEnv(t *testing.T) *testEnv {
	t.Helper()

	storage := hrstub.NewStorage()
	require.NoError(t, storage.SeedDemo())

	return newTestEnv(t, storage)
}

func (e *testEnv) do(t *testing.T, method, path, token string, payload any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.gateway.URL+path, reqBody)
	require.NoError(t, err)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, body
}

func (e *testEnv) login(t *testing.T, employeeID, password string) string {
	t.Helper()

	status, body := e.do(t, http.MethodPost, "/api/auth/login", "", entity.LoginRequest{
		EmployeeID: employeeID,
		Password:   password,
	})
	require.Equal(t, http.StatusOK, status)

	var resp entity.LoginResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotEmpty(t, resp.Token)

	return resp.Token
}

func messageOf(t *testing.T, body []byte) string {
	t.Helper()

	var parsed struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))

	return parsed.Message
}
