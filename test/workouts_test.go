package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/squadfit/squadfit/internal/workouts"
)

func (s *IntegrationTestSuite) TestWorkouts_addAndList() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registerUser(ctx, t, "ana", nil)
	token := doLogin(ctx, t, "ana")

	addWorkout(ctx, t, token, map[string]interface{}{
		"exerciseType": "running",
		"distance":     3.1,
		"duration":     30,
		"date":         dateDaysAgo(1),
	})
	// sloppy numeric input coerces to null instead of failing
	addWorkout(ctx, t, token, map[string]interface{}{
		"exerciseType": "bench press",
		"reps":         "eight",
		"weight":       "135",
		"date":         dateDaysAgo(0),
	})

	resp := doRequest(ctx, t, "GET", "/workouts", token, nil)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var listed []workouts.Workout
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&listed))
	s.Require().Len(listed, 2)

	// newest first
	s.Equal("bench press", listed[0].ExerciseType)
	s.Nil(listed[0].Reps)
	s.Require().NotNil(listed[0].Weight)
	s.InDelta(135, *listed[0].Weight, 0.001)

	s.Equal("running", listed[1].ExerciseType)
	s.Require().NotNil(listed[1].Distance)
	s.InDelta(3.1, *listed[1].Distance, 0.001)
}

func (s *IntegrationTestSuite) TestWorkouts_getSingle() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registerUser(ctx, t, "ana", nil)
	anaToken := doLogin(ctx, t, "ana")
	registerUser(ctx, t, "bob", nil)
	bobToken := doLogin(ctx, t, "bob")

	added := addWorkout(ctx, t, anaToken, map[string]interface{}{
		"exerciseType": "running",
		"distance":     3.1,
		"date":         dateDaysAgo(1),
	})

	resp := doRequest(ctx, t, "GET", fmt.Sprintf("/workouts/%d", added.ID), anaToken, nil)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var workout workouts.Workout
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&workout))
	s.Equal(added.ID, workout.ID)
	s.Equal("running", workout.ExerciseType)
	s.Require().NotNil(workout.Distance)
	s.InDelta(3.1, *workout.Distance, 0.001)

	// bob must not see ana's workout
	bobResp := doRequest(ctx, t, "GET", fmt.Sprintf("/workouts/%d", added.ID), bobToken, nil)
	bobResp.Body.Close()
	s.Equal(http.StatusNotFound, bobResp.StatusCode)

	missingResp := doRequest(ctx, t, "GET", "/workouts/999999", anaToken, nil)
	missingResp.Body.Close()
	s.Equal(http.StatusNotFound, missingResp.StatusCode)
}

func (s *IntegrationTestSuite) TestWorkouts_dashboard() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registerUser(ctx, t, "ana", nil)
	token := doLogin(ctx, t, "ana")

	addWorkout(ctx, t, token, map[string]interface{}{
		"exerciseType": "running",
		"date":         dateDaysAgo(0),
	})
	addWorkout(ctx, t, token, map[string]interface{}{
		"exerciseType": "running",
		"date":         dateDaysAgo(2),
	})
	addWorkout(ctx, t, token, map[string]interface{}{
		"exerciseType": "yoga",
		"date":         dateDaysAgo(2),
	})

	resp := doRequest(ctx, t, "GET", "/dashboard", token, nil)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var dashboard workouts.Dashboard
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&dashboard))

	s.Equal(3, dashboard.Total)
	s.Require().Len(dashboard.WeekValues, 7)
	s.Equal(1, dashboard.WeekValues[6])
	s.Equal(2, dashboard.WeekValues[4])
	s.Equal([]string{"running", "yoga"}, dashboard.TypeLabels)
	s.Equal([]int{2, 1}, dashboard.TypeValues)

	// the root route serves the same dashboard for a logged in user
	rootResp := doRequest(ctx, t, "GET", "/", token, nil)
	defer rootResp.Body.Close()
	s.Require().Equal(http.StatusOK, rootResp.StatusCode)

	var rootDashboard workouts.Dashboard
	s.Require().NoError(json.NewDecoder(rootResp.Body).Decode(&rootDashboard))
	s.Equal(dashboard, rootDashboard)
}
