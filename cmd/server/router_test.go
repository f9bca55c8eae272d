package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/mesto-api/internal/api"
	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/config"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			LogLevel:       "debug",
			Environment:    "test",
			RequestTimeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{Backend: config.BackendMemory},
		Auth: config.AuthConfig{
			BcryptCost:        4,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
	}
}

type testServer struct {
	t   *testing.T
	srv *httptest.Server
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	app, err := newApplication(context.Background(), cfg, log)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return &testServer{t: t, srv: srv}
}

// do sends a JSON request and decodes the JSON response into a map.
func (s *testServer) do(method, path, token string, body any) (int, map[string]any) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.srv.URL+path, &buf)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.srv.Client().Do(req)
	require.NoError(s.t, err)
	defer func() { _ = resp.Body.Close() }()

	var out map[string]any
	require.NoError(s.t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// register signs up and signs in a user, returning the user ID and token.
func (s *testServer) register(email string) (string, string) {
	s.t.Helper()
	status, body := s.do(http.MethodPost, "/signup", "", map[string]string{
		"email": email, "password": "correct horse",
	})
	require.Equal(s.t, http.StatusCreated, status, body)
	id := body["data"].(map[string]any)["_id"].(string)

	status, body = s.do(http.MethodPost, "/signin", "", map[string]string{
		"email": email, "password": "correct horse",
	})
	require.Equal(s.t, http.StatusOK, status, body)
	return id, body["token"].(string)
}

func TestRouter_CardLifecycle(t *testing.T) {
	s := newTestServer(t, testConfig())
	ownerID, ownerToken := s.register("owner@example.com")
	_, otherToken := s.register("other@example.com")

	status, body := s.do(http.MethodPost, "/cards", ownerToken, map[string]string{
		"name": "Lake Baikal", "link": "https://example.com/baikal.jpg",
	})
	require.Equal(t, http.StatusCreated, status, body)
	card := body["data"].(map[string]any)
	cardID := card["_id"].(string)
	assert.Equal(t, ownerID, card["owner"])

	status, body = s.do(http.MethodPut, "/cards/"+cardID+"/likes", otherToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].(map[string]any)["likes"], 1)

	status, body = s.do(http.MethodDelete, "/cards/"+cardID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apperr.MsgForbidden, body["message"])

	status, _ = s.do(http.MethodDelete, "/cards/"+cardID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(http.MethodDelete, "/cards/"+cardID, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(http.MethodDelete, "/cards/123", ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRouter_Users(t *testing.T) {
	s := newTestServer(t, testConfig())
	id, token := s.register("me@example.com")

	status, body := s.do(http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, body["data"].(map[string]any)["_id"])

	status, body = s.do(http.MethodPatch, "/users/me", token, map[string]string{"about": "Sailor"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Sailor", body["data"].(map[string]any)["about"])

	status, _ = s.do(http.MethodPatch, "/users/me/avatar", token, map[string]string{"avatar": "nope"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(http.MethodGet, "/users/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "me@example.com", body["data"].(map[string]any)["email"])

	status, body = s.do(http.MethodPost, "/signup", "", map[string]string{
		"email": "me@example.com", "password": "another one",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body["message"], "me@example.com")
}

func TestRouter_AuthAndFallbacks(t *testing.T) {
	s := newTestServer(t, testConfig())

	for _, path := range []string{"/users", "/users/me", "/cards"} {
		status, body := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, apperr.MsgUnauthorized, body["message"])

		status, _ = s.do(http.MethodGet, path, "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}

	status, body := s.do(http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, api.MsgRouteNotFound, body["message"])

	status, body = s.do(http.MethodGet, "/signin", "", nil)
	assert.Equal(t, http.StatusNotFound, status, "unsupported method is reported as not found")
	assert.Equal(t, api.MsgRouteNotFound, body["message"])

	status, body = s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body["message"])
}

func TestRouter_RateLimitsSignin(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.RateLimitRequests = 2
	s := newTestServer(t, cfg)

	creds := map[string]string{"email": "nobody@example.com", "password": "x"}
	for i := 0; i < 2; i++ {
		status, _ := s.do(http.MethodPost, "/signin", "", creds)
		assert.Equal(t, http.StatusUnauthorized, status)
	}

	status, body := s.do(http.MethodPost, "/signin", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, msgTooManyRequests, body["message"])
}

func TestRouter_CardIDCaseInsensitive(t *testing.T) {
	s := newTestServer(t, testConfig())
	_, token := s.register("case@example.com")

	status, body := s.do(http.MethodPost, "/cards", token, map[string]string{
		"name": "Arkhyz", "link": "https://example.com/arkhyz.jpg",
	})
	require.Equal(t, http.StatusCreated, status, body)
	cardID := body["data"].(map[string]any)["_id"].(string)

	status, body = s.do(http.MethodPut, "/cards/"+strings.ToUpper(cardID)+"/likes", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, cardID, body["data"].(map[string]any)["_id"])

	status, body = s.do(http.MethodDelete, "/cards/"+strings.ToUpper(cardID), token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, cardID, body["data"].(map[string]any)["_id"])

	status, _ = s.do(http.MethodDelete, "/cards/"+cardID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_DuplicateEmailEchoesStoredAddress(t *testing.T) {
	s := newTestServer(t, testConfig())
	s.register("Dup@Example.com")

	status, body := s.do(http.MethodPost, "/signup", "", map[string]string{
		"email": "DUP@example.COM", "password": "correct horse",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "email dup@example.com is already in use", body["message"])
}
