package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/squadfit/squadfit/internal/leaderboard"
	"github.com/squadfit/squadfit/internal/middleware"
	"github.com/squadfit/squadfit/internal/users"
	"github.com/squadfit/squadfit/internal/workouts"

	"github.com/stretchr/testify/require"
)

const testPassword = "testpass"

func doRequest(
	ctx context.Context,
	t *testing.T,
	method, path, token string,
	payload interface{},
) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		payloadJson, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(payloadJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, body)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.AuthTokenHeader, token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func registerUser(ctx context.Context, t *testing.T, username string, squadron *string) {
	t.Helper()

	resp := doRequest(ctx, t, "POST", "/a/register", "", users.RegisterRequest{
		Username: username,
		Password: testPassword,
		Squadron: squadron,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func doLogin(ctx context.Context, t *testing.T, username string) string {
	t.Helper()

	resp := doRequest(ctx, t, "POST", "/a/login", "", users.LoginRequest{
		Username: username,
		Password: testPassword,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp users.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	require.NotEmpty(t, loginResp.Token)
	return loginResp.Token
}

func addWorkout(ctx context.Context, t *testing.T, token string, workout map[string]interface{}) *workouts.Workout {
	t.Helper()

	resp := doRequest(ctx, t, "POST", "/workouts", token, workout)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var added workouts.Workout
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&added))
	return &added
}

func getLeaderboard(ctx context.Context, t *testing.T, token, view, metric string) *leaderboard.Board {
	t.Helper()

	path := fmt.Sprintf("/leaderboard?view=%s&metric=%s", view, metric)
	resp := doRequest(ctx, t, "GET", path, token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var board leaderboard.Board
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&board))
	return &board
}
