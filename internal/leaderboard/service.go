package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/squadfit/squadfit/internal/telemetry/tracing"
	"github.com/squadfit/squadfit/internal/users"
	"github.com/squadfit/squadfit/internal/workouts"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=leaderboard_test

type boardRepo interface {
	Top(ctx context.Context, query Query, limit int) ([]Entry, error)
	Standing(ctx context.Context, query Query, userID int) (*Standing, error)
}

type squadronResolver interface {
	Get(ctx context.Context, id int) (*users.User, error)
}

// Service resolves a view/metric pair and the requester into a concrete
// Query, then assembles the board.
type Service struct {
	repo  boardRepo
	users squadronResolver
	// injectable clock for deterministic tests
	NowFunc func() time.Time
}

func NewService(repo boardRepo, users squadronResolver) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		NowFunc: time.Now,
	}
}

// Board computes the leaderboard for the requester. The squadron view
// of a requester without a squadron falls back to the full population.
func (s *Service) Board(
	ctx context.Context,
	view View,
	metric Metric,
	requesterID int,
) (_ *Board, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "leaderboard.board")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := Query{Metric: metric}
	switch view {
	case ViewWeek:
		dateFrom := s.NowFunc().AddDate(0, 0, -7).Format(workouts.DateLayout)
		query.DateFrom = &dateFrom
	case ViewMonth:
		dateFrom := s.NowFunc().AddDate(0, 0, -30).Format(workouts.DateLayout)
		query.DateFrom = &dateFrom
	case ViewSquadron:
		requester, err := s.users.Get(ctx, requesterID)
		if err != nil {
			return nil, fmt.Errorf("get requester %d: %w", requesterID, err)
		}
		if requester.Squadron != nil && *requester.Squadron != "" {
			query.Squadron = requester.Squadron
		}
	}

	entries, err := s.repo.Top(ctx, query, TopLimit)
	if err != nil {
		return nil, fmt.Errorf("top entries: %w", err)
	}

	standing, err := s.repo.Standing(ctx, query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("requester standing: %w", err)
	}

	return &Board{
		Entries:     entries,
		MetricLabel: metric.Label(),
		Requester:   standing,
	}, nil
}
