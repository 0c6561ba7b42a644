package workouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/squadfit/squadfit/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", workout.UserID))
	span.SetAttributes(attribute.String("exercise_type", workout.ExerciseType))

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO workouts
				(user_id, exercise_type, duration, distance, reps, weight, date)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id;`,
		workout.UserID, workout.ExerciseType,
		workout.Duration, workout.Distance, workout.Reps, workout.Weight,
		workout.Date,
	).Scan(&workout.ID)
	if err != nil {
		return nil, err
	}

	return &workout, nil
}

// ListForUser returns all workouts of a user, most recent first.
func (r *Repo) ListForUser(ctx context.Context, userID int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listForUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, exercise_type, duration, distance, reps, weight, date
			FROM workouts
			WHERE user_id = $1
			ORDER BY date DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2workouts: %w", err)
	}
	return workouts, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var workout Workout
	err = r.db.QueryRow(
		ctx,
		`SELECT id, user_id, exercise_type, duration, distance, reps, weight, date
			FROM workouts WHERE id = $1;`,
		id,
	).Scan(
		&workout.ID, &workout.UserID, &workout.ExerciseType,
		&workout.Duration, &workout.Distance, &workout.Reps, &workout.Weight,
		&workout.Date,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *Repo) CountForUser(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.countForUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var count int
	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1;`,
		userID,
	).Scan(&count); err != nil {
		return -1, err
	}
	return count, nil
}

func (r *Repo) rows2workouts(rows pgx.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		var workout Workout
		if err := rows.Scan(
			&workout.ID, &workout.UserID, &workout.ExerciseType,
			&workout.Duration, &workout.Distance, &workout.Reps, &workout.Weight,
			&workout.Date,
		); err != nil {
			return nil, err
		}
		workouts = append(workouts, workout)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if workouts == nil {
		workouts = make([]Workout, 0)
	}
	return workouts, nil
}
