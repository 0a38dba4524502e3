package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repforge/repforge/internal/auth"
)

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	creds, _ := s.registerUser(ctx, t)

	cases := map[string]struct {
		loginReq           credentials
		expectedStatusCode int
		assertFunc         func(respBytes []byte)
	}{
		"good creds": {
			loginReq:           creds,
			expectedStatusCode: http.StatusOK,
			assertFunc: func(respBytes []byte) {
				var loginResp loginResponse
				require.NoError(t, json.Unmarshal(respBytes, &loginResp))
				assert.NotEmpty(t, loginResp.Token)
			},
		},
		"good creds, then logout": {
			loginReq:           creds,
			expectedStatusCode: http.StatusOK,
			assertFunc: func(respBytes []byte) {
				var loginResp loginResponse
				require.NoError(t, json.Unmarshal(respBytes, &loginResp))
				require.NotEmpty(t, loginResp.Token)

				req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/a/logout", serverEndpoint), nil)
				require.NoError(t, err)
				req.Header.Set("User-Agent", "test-agent")
				req.Header.Set(auth.TokenHeader, loginResp.Token)

				logoutResp, err := s.httpClient.Do(req)
				require.NoError(t, err)
				defer logoutResp.Body.Close()
				assert.Equal(t, http.StatusOK, logoutResp.StatusCode)

				// the token is dead now
				meReq, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/users/me", serverEndpoint), nil)
				require.NoError(t, err)
				meReq.Header.Set("User-Agent", "test-agent")
				meReq.Header.Set(auth.TokenHeader, loginResp.Token)

				meResp, err := s.httpClient.Do(meReq)
				require.NoError(t, err)
				defer meResp.Body.Close()
				assert.Equal(t, http.StatusUnauthorized, meResp.StatusCode)
			},
		},
		"bad password": {
			loginReq: credentials{
				Username: creds.Username,
				Password: "bad-password",
			},
			expectedStatusCode: http.StatusUnauthorized,
			assertFunc: func(respBytes []byte) {
				assert.Equal(t, "error, wrong credentials", strings.TrimSpace(string(respBytes)))
			},
		},
		"bad username": {
			loginReq: credentials{
				Username: "who-is-this",
				Password: creds.Password,
			},
			expectedStatusCode: http.StatusUnauthorized,
			assertFunc: func(respBytes []byte) {
				assert.Equal(t, "error, wrong credentials", strings.TrimSpace(string(respBytes)))
			},
		},
	}

	for tn, tc := range cases {
		s.T().Run(tn, func(t *testing.T) {
			loginReqJson, err := json.Marshal(tc.loginReq)
			require.NoError(t, err)

			req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/a/login", serverEndpoint), bytes.NewBuffer(loginReqJson))
			require.NoError(t, err)
			req.Header.Set("User-Agent", "test-agent")
			req.Header.Set("Content-Type", "application/json")

			resp, err := s.httpClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tc.expectedStatusCode, resp.StatusCode)

			respBytes, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			tc.assertFunc(respBytes)
		})
	}
}

func (s *IntegrationTestSuite) TestRegister_usernameTaken() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	creds, _ := s.registerUser(ctx, t)

	registerReqJson, err := json.Marshal(map[string]string{
		"username": creds.Username,
		"password": "another-password",
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/a/register", serverEndpoint), bytes.NewBuffer(registerReqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
