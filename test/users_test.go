package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/squadfit/squadfit/internal/users"
)

func (s *IntegrationTestSuite) TestRegister_duplicateUsername() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registerUser(ctx, t, "ana", nil)

	resp := doRequest(ctx, t, "POST", "/a/register", "", users.RegisterRequest{
		Username: "ana",
		Password: "another-pass",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusConflict, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(strings.TrimSpace(string(respBytes)), "username taken")

	// exactly one row survived both attempts
	var count int
	err = s.db.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM public.users WHERE username = $1", "ana",
	).Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *IntegrationTestSuite) TestLogin_wrongPassword() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registerUser(ctx, t, "ana", nil)

	resp := doRequest(ctx, t, "POST", "/a/login", "", users.LoginRequest{
		Username: "ana",
		Password: "bad-password",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestLoginLogoutProfile() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	squadron := "alpha"
	registerUser(ctx, t, "ana", &squadron)
	token := doLogin(ctx, t, "ana")

	profileResp := doRequest(ctx, t, "GET", "/profile", token, nil)
	s.Require().Equal(http.StatusOK, profileResp.StatusCode)

	var profile users.ProfileResponse
	s.Require().NoError(json.NewDecoder(profileResp.Body).Decode(&profile))
	profileResp.Body.Close()
	s.Equal("ana", profile.User.Username)
	s.Require().NotNil(profile.User.Squadron)
	s.Equal("alpha", *profile.User.Squadron)
	s.Zero(profile.WorkoutsCount)

	logoutResp := doRequest(ctx, t, "POST", "/a/logout", token, nil)
	logoutResp.Body.Close()
	s.Equal(http.StatusOK, logoutResp.StatusCode)

	// the session is gone now
	afterLogout := doRequest(ctx, t, "GET", "/profile", token, nil)
	afterLogout.Body.Close()
	s.Equal(http.StatusUnauthorized, afterLogout.StatusCode)
}

func (s *IntegrationTestSuite) TestProtectedRoutes_requireSession() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, path := range []string{"/", "/profile", "/workouts", "/dashboard", "/leaderboard"} {
		resp := doRequest(ctx, t, "GET", path, "", nil)
		resp.Body.Close()
		s.Equalf(http.StatusUnauthorized, resp.StatusCode, "path %s", path)
	}
}
