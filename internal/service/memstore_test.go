package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"codebreak/internal/domain"
)

// memStore backs the in-memory fakes for both store ports. Every operation
// takes the lock, mirroring the per-operation atomicity of the real store:
// roster and guess appends are row-scoped, status transitions conditional.
type memStore struct {
	mu    sync.Mutex
	users map[string]*domain.User
	names map[string]bool
	games map[string]*domain.GameSession
}

func newMemStore() (*memStore, *memUsers, *memGames) {
	m := &memStore{
		users: make(map[string]*domain.User),
		names: make(map[string]bool),
		games: make(map[string]*domain.GameSession),
	}
	return m, &memUsers{m}, &memGames{m}
}

type memUsers struct{ *memStore }

func (m *memUsers) Create(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.names[u.UserName] {
		return domain.ErrNameTaken
	}
	m.names[u.UserName] = true
	cp := *u
	m.users[u.UserKey] = &cp
	return nil
}

func (m *memUsers) GetByKey(ctx context.Context, userKey string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userKey]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []domain.LeaderboardEntry
	for _, u := range m.users {
		res = append(res, domain.LeaderboardEntry{UserName: u.UserName, Score: u.Score})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Score != res[j].Score {
			return res[i].Score > res[j].Score
		}
		return res[i].UserName < res[j].UserName
	})
	return res, nil
}

type memGames struct{ *memStore }

func (m *memGames) Create(ctx context.Context, g *domain.GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := copySession(g)
	cp.Players = []domain.PlayerEntry{{UserKey: g.CreatorUserKey}}
	m.games[g.GameKey] = cp
	return nil
}

func (m *memGames) GetByKey(ctx context.Context, gameKey string) (*domain.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameKey]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return copySession(g), nil
}

func (m *memGames) AppendPlayer(ctx context.Context, gameKey, userKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameKey]
	if !ok {
		return domain.ErrGameNotFound
	}
	if g.Player(userKey) != nil {
		return domain.ErrAlreadyJoined
	}
	g.Players = append(g.Players, domain.PlayerEntry{UserKey: userKey})
	return nil
}

func (m *memGames) AppendGuess(ctx context.Context, gameKey, userKey string, guess domain.Guess) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameKey]
	if !ok {
		return domain.ErrGameNotFound
	}
	p := g.Player(userKey)
	if p == nil {
		return domain.ErrNotAPlayer
	}
	p.Guesses = append(p.Guesses, guess)
	return nil
}

func (m *memGames) Start(ctx context.Context, gameKey string, now time.Time) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameKey]
	if !ok {
		return time.Time{}, domain.ErrGameNotFound
	}
	if g.Status.Terminal() {
		return time.Time{}, domain.ErrStatusConflict
	}
	g.Status = domain.StatusStarted
	if g.StartTime == nil {
		t := now
		g.StartTime = &t
	}
	return *g.StartTime, nil
}

func (m *memGames) SetStatus(ctx context.Context, gameKey string, status, expectedPrior domain.GameStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameKey]
	if !ok {
		return domain.ErrGameNotFound
	}
	if g.Status != expectedPrior {
		return domain.ErrStatusConflict
	}
	g.Status = status
	return nil
}

func (m *memGames) Finish(ctx context.Context, gameKey, userKey string, score int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameKey]
	if !ok {
		return domain.ErrGameNotFound
	}
	if g.Status != domain.StatusStarted {
		return domain.ErrStatusConflict
	}
	u, ok := m.users[userKey]
	if !ok {
		return domain.ErrUserNotFound
	}
	g.Status = domain.StatusSolved
	u.Score += score
	return nil
}

func copySession(g *domain.GameSession) *domain.GameSession {
	cp := *g
	if g.StartTime != nil {
		t := *g.StartTime
		cp.StartTime = &t
	}
	cp.Players = make([]domain.PlayerEntry, len(g.Players))
	for i, p := range g.Players {
		cp.Players[i] = domain.PlayerEntry{
			UserKey: p.UserKey,
			Guesses: append([]domain.Guess(nil), p.Guesses...),
		}
	}
	return &cp
}
