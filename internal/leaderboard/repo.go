package leaderboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/squadfit/squadfit/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Top returns the visible board for the query, at most limit entries,
// ordered by score descending. Zero scores never appear.
func (r *Repo) Top(ctx context.Context, query Query, limit int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.top")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sql, args := query.buildTop(limit)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(
			&entry.UserID, &entry.Username, &entry.Rank,
			&entry.Squadron, &entry.Score,
		); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard rows: %w", err)
	}

	return entries, nil
}

// Standing returns the user's true position over the full ranking,
// regardless of the visible cap. Nil when the user's score is zero.
func (r *Repo) Standing(ctx context.Context, query Query, userID int) (_ *Standing, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.standing")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sql, args := query.buildStanding(userID)

	var standing Standing
	err = r.db.QueryRow(ctx, sql, args...).Scan(&standing.Position, &standing.Score)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query standing: %w", err)
	}

	return &standing, nil
}
