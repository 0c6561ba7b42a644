package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/squadfit/squadfit/internal/auth"
	"github.com/squadfit/squadfit/internal/telemetry/metrics"
	"github.com/squadfit/squadfit/internal/telemetry/tracing"
	"github.com/squadfit/squadfit/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=users_test

type usersRepo interface {
	Create(ctx context.Context, user User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Get(ctx context.Context, id int) (*User, error)
}

type sessionService interface {
	Login(ctx context.Context, userID int, username string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) error
}

type workoutsCounter interface {
	CountForUser(ctx context.Context, userID int) (int, error)
}

type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Rank     *string `json:"rank,omitempty"`
	Squadron *string `json:"squadron,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type ProfileResponse struct {
	User          *User `json:"user"`
	WorkoutsCount int   `json:"workoutsCount"`
}

type Handler struct {
	repo           usersRepo
	sessions       sessionService
	workouts       workoutsCounter
	metricsManager *metrics.Manager
}

func NewHandler(
	repo usersRepo,
	sessions sessionService,
	workouts workoutsCounter,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		sessions:       sessions,
		workouts:       workouts,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var registerReq RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		log.Errorf("register, unmarshal json params: %s", err)
		http.Error(w, "register failed", http.StatusBadRequest)
		return
	}

	if registerReq.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if registerReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(registerReq.Password)
	if err != nil {
		log.Errorf("register, hash password: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	createdUser, err := handler.repo.Create(ctx, User{
		Username:     registerReq.Username,
		PasswordHash: passwordHash,
		Rank:         registerReq.Rank,
		Squadron:     registerReq.Squadron,
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			http.Error(w, "username taken", http.StatusConflict)
			return
		}
		log.Errorf("register user [%s]: %s", registerReq.Username, err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterRegistrations.Inc()
	}
	log.Debugf("new user registered: [%s] %d", createdUser.Username, createdUser.ID)

	createdUserJson, err := json.Marshal(createdUser)
	if err != nil {
		log.Errorf("register, marshal created user: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, createdUserJson, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Errorf("login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	if loginReq.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByUsername(ctx, loginReq.Username)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Errorf("login, get user [%s]: %s", loginReq.Username, err)
		}
		log.Tracef("[username] failed login attempt for user: %s", loginReq.Username)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}

	if !pkg.CheckPasswordHash(loginReq.Password, user.PasswordHash) {
		log.Tracef("[password] failed login attempt for user: %s", loginReq.Username)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}

	token, err := handler.sessions.Login(ctx, user.ID, user.Username, time.Now())
	if err != nil {
		log.Errorf("login failed, create session: %s", err)
		http.Error(w, "create session error", http.StatusInternalServerError)
		return
	}

	loginRespJson, err := json.Marshal(LoginResponse{
		Token: token,
		User:  user,
	})
	if err != nil {
		log.Errorf("login, marshal response: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, loginRespJson)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	authToken := r.Header.Get("X-SQUADFIT-TOKEN")
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.sessions.Logout(ctx, authToken); err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		log.Errorf("logout: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"logged-out":true}`)
}

func (handler *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.profile")
	defer span.End()

	session := auth.SessionFromContext(ctx)
	if session == nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.Get(ctx, session.UserID)
	if err != nil {
		log.Errorf("profile, get user %d: %s", session.UserID, err)
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	workoutsCount, err := handler.workouts.CountForUser(ctx, session.UserID)
	if err != nil {
		log.Errorf("profile, count workouts for user %d: %s", session.UserID, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(ProfileResponse{
		User:          user,
		WorkoutsCount: workoutsCount,
	})
	if err != nil {
		log.Errorf("profile, marshal response: %s", err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, profileJson)
}
