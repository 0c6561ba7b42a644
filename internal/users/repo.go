package users

import (
	"context"
	"errors"

	"github.com/squadfit/squadfit/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username taken")
)

const pgUniqueViolationCode = "23505"

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create inserts a new user. A duplicate username surfaces as
// ErrUsernameTaken, existing rows stay untouched.
func (r *Repo) Create(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", user.Username))

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO users (username, password_hash, rank, squadron)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at;`,
		user.Username, user.PasswordHash, user.Rank, user.Squadron,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return &user, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByUsername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", username))

	return r.scanOne(r.db.QueryRow(
		ctx,
		`SELECT id, username, password_hash, rank, squadron, created_at
			FROM users WHERE username = $1;`,
		username,
	))
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return r.scanOne(r.db.QueryRow(
		ctx,
		`SELECT id, username, password_hash, rank, squadron, created_at
			FROM users WHERE id = $1;`,
		id,
	))
}

func (r *Repo) scanOne(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Username, &user.PasswordHash,
		&user.Rank, &user.Squadron, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
