package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/squadfit/squadfit/internal/auth"
	"github.com/squadfit/squadfit/internal/telemetry/metrics"
	"github.com/squadfit/squadfit/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, workout Workout) (*Workout, error)
	Get(ctx context.Context, id int) (*Workout, error)
	ListForUser(ctx context.Context, userID int) ([]Workout, error)
}

type dashboardProvider interface {
	Dashboard(ctx context.Context, userID int) (*Dashboard, error)
}

type Handler struct {
	repo           workoutsRepo
	stats          dashboardProvider
	metricsManager *metrics.Manager
}

func NewHandler(
	repo workoutsRepo,
	stats dashboardProvider,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		stats:          stats,
		metricsManager: metricsManager,
	}
}

type AddWorkoutRequest struct {
	ExerciseType string        `json:"exerciseType"`
	Duration     OptionalInt   `json:"duration"`
	Distance     OptionalFloat `json:"distance"`
	Reps         OptionalInt   `json:"reps"`
	Weight       OptionalFloat `json:"weight"`
	Date         string        `json:"date"`
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if session == nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if contentType := r.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "application/json") {
		http.Error(w, "expected JSON", http.StatusBadRequest)
		return
	}

	var req AddWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("add workout: decode request: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	req.ExerciseType = strings.TrimSpace(req.ExerciseType)
	if req.ExerciseType == "" {
		http.Error(w, "error, exercise type empty", http.StatusBadRequest)
		return
	}

	if req.Date == "" {
		req.Date = time.Now().Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, req.Date); err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	workout := Workout{
		UserID:       session.UserID,
		ExerciseType: req.ExerciseType,
		Duration:     req.Duration.Value,
		Distance:     req.Distance.Value,
		Reps:         req.Reps.Value,
		Weight:       req.Weight.Value,
		Date:         req.Date,
	}

	added, err := h.repo.Add(r.Context(), workout)
	if err != nil {
		log.Errorf("add workout for user %d: %s", session.UserID, err)
		http.Error(w, "add workout failed", http.StatusInternalServerError)
		return
	}

	h.metricsManager.CounterWorkoutsLogged.Inc()
	log.Tracef("user %d logged workout %d [%s]", session.UserID, added.ID, added.ExerciseType)

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal added workout: %s", err)
		http.Error(w, "add workout failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if session == nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	workouts, err := h.repo.ListForUser(r.Context(), session.UserID)
	if err != nil {
		log.Errorf("list workouts for user %d: %s", session.UserID, err)
		http.Error(w, "list workouts failed", http.StatusInternalServerError)
		return
	}

	workoutsJson, err := json.Marshal(workouts)
	if err != nil {
		log.Errorf("marshal workouts: %s", err)
		http.Error(w, "list workouts failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, workoutsJson)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if session == nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid workout id", http.StatusBadRequest)
		return
	}

	workout, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("get workout %d: %s", id, err)
		http.Error(w, "get workout failed", http.StatusInternalServerError)
		return
	}

	// a user can only see their own workouts
	if workout.UserID != session.UserID {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("marshal workout: %s", err)
		http.Error(w, "get workout failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, workoutJson)
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if session == nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	dashboard, err := h.stats.Dashboard(r.Context(), session.UserID)
	if err != nil {
		log.Errorf("dashboard for user %d: %s", session.UserID, err)
		http.Error(w, "dashboard failed", http.StatusInternalServerError)
		return
	}

	dashboardJson, err := json.Marshal(dashboard)
	if err != nil {
		log.Errorf("marshal dashboard: %s", err)
		http.Error(w, "dashboard failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, dashboardJson)
}
