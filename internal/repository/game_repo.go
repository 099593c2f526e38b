package repository

import (
	"context"
	"errors"
	"time"

	"codebreak/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameRepository struct {
	db *pgxpool.Pool
}

func NewGameRepository(db *pgxpool.Pool) *GameRepository {
	return &GameRepository{db: db}
}

// Create inserts a WAITING game with the creator as its sole player. Game
// row and roster row commit together.
func (r *GameRepository) Create(ctx context.Context, g *domain.GameSession) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx,
		`INSERT INTO games (game_key, secret_code, creator_user_key, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		g.GameKey, g.SecretCode, g.CreatorUserKey, g.Status,
	).Scan(&g.CreatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO game_players (game_key, user_key) VALUES ($1, $2)`,
		g.GameKey, g.CreatorUserKey,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByKey loads a full session snapshot: game row, roster in join order,
// and each player's guess history in submission order.
func (r *GameRepository) GetByKey(ctx context.Context, gameKey string) (*domain.GameSession, error) {
	var g domain.GameSession
	err := r.db.QueryRow(ctx,
		`SELECT game_key, secret_code, creator_user_key, status, start_time, created_at
		 FROM games
		 WHERE game_key = $1`,
		gameKey,
	).Scan(&g.GameKey, &g.SecretCode, &g.CreatorUserKey, &g.Status, &g.StartTime, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_key FROM game_players WHERE game_key = $1 ORDER BY joined_at, user_key`,
		gameKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var userKey string
		if err := rows.Scan(&userKey); err != nil {
			return nil, err
		}
		index[userKey] = len(g.Players)
		g.Players = append(g.Players, domain.PlayerEntry{UserKey: userKey})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	guessRows, err := r.db.Query(ctx,
		`SELECT user_key, code, exact, near, created_at
		 FROM guesses
		 WHERE game_key = $1
		 ORDER BY id`,
		gameKey,
	)
	if err != nil {
		return nil, err
	}
	defer guessRows.Close()

	for guessRows.Next() {
		var (
			userKey string
			guess   domain.Guess
		)
		if err := guessRows.Scan(&userKey, &guess.Code, &guess.Exact, &guess.Near, &guess.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[userKey]; ok {
			g.Players[i].Guesses = append(g.Players[i].Guesses, guess)
		}
	}
	if err := guessRows.Err(); err != nil {
		return nil, err
	}

	return &g, nil
}

// AppendPlayer adds a user to the roster. The composite primary key turns a
// double join into domain.ErrAlreadyJoined.
func (r *GameRepository) AppendPlayer(ctx context.Context, gameKey, userKey string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO game_players (game_key, user_key) VALUES ($1, $2)`,
		gameKey, userKey,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrAlreadyJoined
	}
	return err
}

// AppendGuess records one guess for one player. A plain INSERT scoped to
// that player's history: nothing here reads or rewrites the roster.
func (r *GameRepository) AppendGuess(ctx context.Context, gameKey, userKey string, guess domain.Guess) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO guesses (game_key, user_key, code, exact, near)
		 VALUES ($1, $2, $3, $4, $5)`,
		gameKey, userKey, guess.Code, guess.Exact, guess.Near,
	)
	return err
}

// Start flips a WAITING game to STARTED and stamps the clock, atomically
// and idempotently: when two first guesses race, COALESCE keeps whichever
// start_time landed first and both callers read the same value back.
func (r *GameRepository) Start(ctx context.Context, gameKey string, now time.Time) (time.Time, error) {
	var start time.Time
	err := r.db.QueryRow(ctx,
		`UPDATE games
		 SET status = 'STARTED', start_time = COALESCE(start_time, $2)
		 WHERE game_key = $1 AND status IN ('WAITING', 'STARTED')
		 RETURNING start_time`,
		gameKey, now,
	).Scan(&start)
	if errors.Is(err, pgx.ErrNoRows) {
		// Already terminal; the caller re-reads and reports accordingly.
		return time.Time{}, domain.ErrStatusConflict
	}
	return start, err
}

// SetStatus performs the conditional transition expectedPrior -> status.
// If the game is no longer in expectedPrior the update matches nothing and
// domain.ErrStatusConflict is returned.
func (r *GameRepository) SetStatus(ctx context.Context, gameKey string, status, expectedPrior domain.GameStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE games SET status = $1 WHERE game_key = $2 AND status = $3`,
		status, gameKey, expectedPrior,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStatusConflict
	}
	return nil
}

// Finish commits the winning transition: STARTED -> SOLVED and the score
// award to the solver, in one transaction. An observer can never see the
// terminal status without the score or the score without the status. If
// another player already ended the game the conditional update matches
// nothing and the whole transaction is abandoned.
func (r *GameRepository) Finish(ctx context.Context, gameKey, userKey string, score int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE games SET status = 'SOLVED' WHERE game_key = $1 AND status = 'STARTED'`,
		gameKey,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStatusConflict
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET score = score + $1 WHERE user_key = $2`,
		score, userKey,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
