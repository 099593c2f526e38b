package repository

import (
	"context"
	"errors"

	"codebreak/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with a zero score. The user_name unique index
// makes the check-and-insert atomic; a duplicate name surfaces as
// domain.ErrNameTaken instead of racing a prior SELECT.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (user_key, user_name)
		 VALUES ($1, $2)
		 RETURNING created_at`,
		u.UserKey,
		u.UserName,
	).Scan(&u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrNameTaken
	}
	return err
}

func (r *UserRepository) GetByKey(ctx context.Context, userKey string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_key, user_name, score, created_at
		 FROM users
		 WHERE user_key = $1`,
		userKey,
	)

	var u domain.User
	if err := row.Scan(&u.UserKey, &u.UserName, &u.Score, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// IncrementScore adds delta to the user's score in a single UPDATE. No
// prior read of the current value is needed, so concurrent wins from other
// games never clobber each other.
func (r *UserRepository) IncrementScore(ctx context.Context, userKey string, delta int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET score = score + $1 WHERE user_key = $2`,
		delta, userKey,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Leaderboard returns all users ordered by score descending. Ties break on
// user_name so two consecutive listings agree.
func (r *UserRepository) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_name, score
		 FROM users
		 ORDER BY score DESC, user_name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserName, &e.Score); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
