package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/repforge/repforge/internal/auth"
	"github.com/repforge/repforge/internal/users"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// registerUser registers a fresh random user and returns its credentials
// together with the created user.
func (s *IntegrationTestSuite) registerUser(ctx context.Context, t *testing.T) (credentials, users.User) {
	t.Helper()

	creds := credentials{
		Username: gofakeit.Username() + gofakeit.DigitN(4),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	}

	registerReq := map[string]string{
		"username":    creds.Username,
		"password":    creds.Password,
		"displayName": gofakeit.Name(),
		"goals":       gofakeit.Sentence(4),
	}
	registerReqJson, err := json.Marshal(registerReq)
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(
		ctx, "POST",
		fmt.Sprintf("%s/a/register", serverEndpoint),
		bytes.NewBuffer(registerReqJson),
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var user users.User
	require.NoError(t, json.Unmarshal(respBytes, &user))
	require.NotZero(t, user.ID)

	return creds, user
}

// doLogin logs the user in and returns the session token.
func (s *IntegrationTestSuite) doLogin(ctx context.Context, t *testing.T, creds credentials) string {
	t.Helper()

	loginReqJson, err := json.Marshal(creds)
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(
		ctx, "POST",
		fmt.Sprintf("%s/a/login", serverEndpoint),
		bytes.NewBuffer(loginReqJson),
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotEmpty(t, respBytes)

	var loginResp loginResponse
	require.NoError(t, json.Unmarshal(respBytes, &loginResp))
	require.NotEmpty(t, loginResp.Token)

	return loginResp.Token
}

// registerAndLogin is the common test entry point: fresh user, logged in.
func (s *IntegrationTestSuite) registerAndLogin(ctx context.Context, t *testing.T) (string, users.User) {
	t.Helper()
	creds, user := s.registerUser(ctx, t)
	return s.doLogin(ctx, t, creds), user
}

// doRequest fires an authenticated JSON request and returns the parsed
// response body bytes, asserting the expected status code.
func (s *IntegrationTestSuite) doRequest(
	ctx context.Context, t *testing.T,
	method, path, token string,
	body any,
	expectedStatusCode int,
) []byte {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewBuffer(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, bodyReader)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equalf(t, expectedStatusCode, resp.StatusCode, "response: %s", respBytes)

	return respBytes
}
