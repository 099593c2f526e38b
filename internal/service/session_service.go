package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codebreak/internal/cache"
	"codebreak/internal/domain"
	"codebreak/internal/game"
	"codebreak/internal/logger"
	"codebreak/internal/metrics"

	"github.com/google/uuid"
)

// UserStore is the persistence contract for user records. Satisfied by
// repository.UserRepository; tests use an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByKey(ctx context.Context, userKey string) (*domain.User, error)
	Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// GameStore is the persistence contract for game sessions. All mutations
// are atomic at the store boundary: appends are scoped to one roster row or
// one guess row, status transitions are conditional on the expected prior
// status, and Finish couples the SOLVED transition with the score award.
type GameStore interface {
	Create(ctx context.Context, g *domain.GameSession) error
	GetByKey(ctx context.Context, gameKey string) (*domain.GameSession, error)
	AppendPlayer(ctx context.Context, gameKey, userKey string) error
	AppendGuess(ctx context.Context, gameKey, userKey string, guess domain.Guess) error
	Start(ctx context.Context, gameKey string, now time.Time) (time.Time, error)
	SetStatus(ctx context.Context, gameKey string, status, expectedPrior domain.GameStatus) error
	Finish(ctx context.Context, gameKey, userKey string, score int64) error
}

// SessionService orchestrates game sessions against the store: it loads a
// snapshot, runs the pure state machine, and writes back only the fields
// the transition changed.
type SessionService struct {
	users UserStore
	games GameStore
	lb    *cache.LeaderboardCache

	// Injectable clock for expiry tests.
	now func() time.Time
}

func NewSessionService(users UserStore, games GameStore, lb *cache.LeaderboardCache) *SessionService {
	return &SessionService{
		users: users,
		games: games,
		lb:    lb,
		now:   time.Now,
	}
}

// CreatedUser is the CreateUser response.
type CreatedUser struct {
	UserKey  string `json:"userKey"`
	UserName string `json:"userName"`
}

// CreateUser registers a new player with a server-generated key and a zero
// score. Uniqueness of the name is enforced by the store insert itself.
func (s *SessionService) CreateUser(ctx context.Context, userName string) (*CreatedUser, error) {
	if userName == "" {
		return nil, domain.ErrEmptyUserName
	}

	u := &domain.User{
		UserKey:  uuid.NewString(),
		UserName: userName,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("user created", "user_key", u.UserKey, "user_name", userName)
	return &CreatedUser{UserKey: u.UserKey, UserName: userName}, nil
}

// CreatedGame is the CreateGame response.
type CreatedGame struct {
	GameKey        string `json:"gameKey"`
	UserKey        string `json:"userKey"`
	PossibleColors string `json:"possibleColors"`
	CodeLength     int    `json:"codeLength"`
}

// CreateGame opens a new WAITING session with a fresh secret and the
// creator as sole player.
func (s *SessionService) CreateGame(ctx context.Context, userKey string) (*CreatedGame, error) {
	if _, err := s.users.GetByKey(ctx, userKey); err != nil {
		return nil, err
	}

	g := &domain.GameSession{
		GameKey:        uuid.NewString(),
		SecretCode:     game.NewSecret(),
		CreatorUserKey: userKey,
		Status:         domain.StatusWaiting,
	}
	if err := s.games.Create(ctx, g); err != nil {
		return nil, err
	}

	metrics.GamesCreated.Inc()
	logger.Info("game created", "game_key", g.GameKey, "creator", userKey)
	return &CreatedGame{
		GameKey:        g.GameKey,
		UserKey:        userKey,
		PossibleColors: game.Alphabet,
		CodeLength:     game.CodeLength,
	}, nil
}

// JoinedGame is the JoinGame response.
type JoinedGame struct {
	GameKey string `json:"gameKey"`
	UserKey string `json:"userKey"`
}

// JoinGame adds a user to a WAITING game's roster.
func (s *SessionService) JoinGame(ctx context.Context, gameKey, userKey string) (*JoinedGame, error) {
	g, err := s.games.GetByKey(ctx, gameKey)
	if err != nil {
		return nil, err
	}
	if g.Status != domain.StatusWaiting {
		return nil, domain.ErrGameNotJoinable
	}
	if g.Player(userKey) != nil {
		return nil, domain.ErrAlreadyJoined
	}
	if _, err := s.users.GetByKey(ctx, userKey); err != nil {
		return nil, err
	}

	// The roster insert re-checks membership atomically; the snapshot
	// check above only exists to give a precise error before mutating.
	if err := s.games.AppendPlayer(ctx, gameKey, userKey); err != nil {
		return nil, err
	}

	logger.Info("player joined", "game_key", gameKey, "user_key", userKey)
	return &JoinedGame{GameKey: gameKey, UserKey: userKey}, nil
}

// GuessResult is the SubmitGuess response. Time and Score are present only
// when this very guess solved the game; Message carries valid-but-
// unfortunate outcomes (expired, solved by someone else).
type GuessResult struct {
	GameKey     string         `json:"gameKey"`
	UserKey     string         `json:"userKey"`
	PastGuesses []domain.Guess `json:"pastGuesses"`
	NumGuesses  int            `json:"numGuesses"`
	Solved      bool           `json:"solved"`
	Time        string         `json:"time,omitempty"`
	Score       int            `json:"score,omitempty"`
	Message     string         `json:"message,omitempty"`
}

// SubmitGuess validates and evaluates one guess, applying whatever state
// transition it triggers: clock start on the first guess, lazy expiry,
// recording, or the winning SOLVED transition with score award.
func (s *SessionService) SubmitGuess(ctx context.Context, gameKey, userKey, code string) (*GuessResult, error) {
	if !game.ValidCode(code) {
		if len(code) != game.CodeLength {
			return nil, domain.ErrBadCode
		}
		return nil, domain.ErrCodeSymbols
	}

	g, err := s.games.GetByKey(ctx, gameKey)
	if err != nil {
		return nil, err
	}
	player := g.Player(userKey)
	if player == nil {
		return nil, domain.ErrNotAPlayer
	}

	now := s.now()
	res := &GuessResult{GameKey: gameKey, UserKey: userKey}

	d := game.Advance(g, code, now)
	switch d.Outcome {
	case game.OutcomeRejected:
		res.Message = d.Message
		res.PastGuesses = player.Guesses
		res.NumGuesses = len(player.Guesses)
		return res, nil

	case game.OutcomeExpire:
		if err := s.expire(ctx, gameKey); err != nil {
			return nil, err
		}
		res.Message = d.Message
		res.PastGuesses = player.Guesses
		res.NumGuesses = len(player.Guesses)
		return res, nil
	}

	if d.StartClock {
		start, err := s.games.Start(ctx, gameKey, now)
		if err != nil {
			if errors.Is(err, domain.ErrStatusConflict) {
				// Game went terminal between load and start; report
				// it like any other late guess.
				return s.lateGuess(ctx, gameKey, userKey)
			}
			return nil, err
		}
		// A concurrent first guess may have started the clock a moment
		// earlier; the store returned the authoritative start time, so
		// re-run the deadline check against it.
		if game.IsExpired(start, now) {
			if err := s.expire(ctx, gameKey); err != nil {
				return nil, err
			}
			res.Message = game.MsgExpired
			res.PastGuesses = player.Guesses
			res.NumGuesses = len(player.Guesses)
			return res, nil
		}
	}

	if err := s.games.AppendGuess(ctx, gameKey, userKey, d.Guess); err != nil {
		return nil, err
	}
	metrics.GuessesEvaluated.Inc()

	history := append(player.Guesses, d.Guess)
	res.PastGuesses = history
	res.NumGuesses = len(history)

	if d.Outcome == game.OutcomeSolve {
		if err := s.games.Finish(ctx, gameKey, userKey, int64(d.Score)); err != nil {
			if errors.Is(err, domain.ErrStatusConflict) {
				// Another player's winning guess committed first. This
				// guess stays recorded, the win does not count twice.
				res.Message = game.MsgSolvedByOther
				return res, nil
			}
			return nil, err
		}

		s.lb.Invalidate(ctx)
		metrics.GamesSolved.Inc()
		logger.Info("game solved",
			"game_key", gameKey, "user_key", userKey,
			"elapsed_secs", d.ElapsedSeconds, "score", d.Score)

		res.Solved = true
		res.Time = fmt.Sprintf("%d secs", d.ElapsedSeconds)
		res.Score = d.Score
	}

	return res, nil
}

// expire applies the lazy STARTED -> EXPIRED transition. Losing the
// conditional update to a concurrent request is fine: the game is terminal
// either way.
func (s *SessionService) expire(ctx context.Context, gameKey string) error {
	err := s.games.SetStatus(ctx, gameKey, domain.StatusExpired, domain.StatusStarted)
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return nil
		}
		return err
	}
	metrics.GamesExpired.Inc()
	logger.Info("game expired", "game_key", gameKey)
	return nil
}

// lateGuess reports the terminal outcome for a guess that lost a race with
// the transition that ended the game.
func (s *SessionService) lateGuess(ctx context.Context, gameKey, userKey string) (*GuessResult, error) {
	g, err := s.games.GetByKey(ctx, gameKey)
	if err != nil {
		return nil, err
	}
	player := g.Player(userKey)
	if player == nil {
		return nil, domain.ErrNotAPlayer
	}

	msg := game.MsgExpired
	if g.Status == domain.StatusSolved {
		msg = game.MsgSolvedByOther
	}
	return &GuessResult{
		GameKey:     gameKey,
		UserKey:     userKey,
		PastGuesses: player.Guesses,
		NumGuesses:  len(player.Guesses),
		Message:     msg,
	}, nil
}

// Leaderboard lists all users by score, highest first, via the redis cache
// when one is configured.
func (s *SessionService) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	if entries, ok := s.lb.Get(ctx); ok {
		return entries, nil
	}

	entries, err := s.users.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	s.lb.Set(ctx, entries)
	return entries, nil
}
