package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/squadfit/squadfit/internal/auth"
	"github.com/squadfit/squadfit/internal/telemetry/metrics"
	"github.com/squadfit/squadfit/pkg"

	log "github.com/sirupsen/logrus"
)

type boardProvider interface {
	Board(ctx context.Context, view View, metric Metric, requesterID int) (*Board, error)
}

type Handler struct {
	service        boardProvider
	metricsManager *metrics.Manager
}

func NewHandler(service boardProvider, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (h *Handler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if session == nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	view := ParseView(r.URL.Query().Get("view"))
	metric := ParseMetric(r.URL.Query().Get("metric"))

	h.metricsManager.CounterLeaderboardQueries.
		WithLabelValues(string(view), string(metric)).Inc()

	board, err := h.service.Board(r.Context(), view, metric, session.UserID)
	if err != nil {
		log.Errorf("leaderboard [%s/%s] for user %d: %s", view, metric, session.UserID, err)
		http.Error(w, "leaderboard failed", http.StatusInternalServerError)
		return
	}

	boardJson, err := json.Marshal(board)
	if err != nil {
		log.Errorf("marshal leaderboard: %s", err)
		http.Error(w, "leaderboard failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, boardJson)
}
