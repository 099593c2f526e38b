package domain

import "time"

// GameStatus - lifecycle state of a game session
type GameStatus string

const (
	StatusWaiting GameStatus = "WAITING"
	StatusStarted GameStatus = "STARTED"
	StatusSolved  GameStatus = "SOLVED"
	StatusExpired GameStatus = "EXPIRED"
)

// Terminal reports whether the session accepts no further mutation.
func (s GameStatus) Terminal() bool {
	return s == StatusSolved || s == StatusExpired
}

// Guess is one scored submission. Exact counts symbols matching the secret
// at the same position, Near counts symbols present elsewhere in the secret
// under multiset consumption.
type Guess struct {
	Code      string    `db:"code" json:"code"`
	Exact     int       `db:"exact" json:"exact"`
	Near      int       `db:"near" json:"near"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// PlayerEntry is one member of a game's roster together with their
// append-only guess history.
type PlayerEntry struct {
	UserKey string  `db:"user_key" json:"userKey"`
	Guesses []Guess `json:"guesses"`
}

// GameSession is a full snapshot of one playthrough: one secret, one status,
// and the roster of players racing to break the code. StartTime is nil until
// the first accepted guess starts the clock.
type GameSession struct {
	GameKey        string      `db:"game_key"`
	SecretCode     string      `db:"secret_code"`
	CreatorUserKey string      `db:"creator_user_key"`
	Status         GameStatus  `db:"status"`
	StartTime      *time.Time  `db:"start_time"`
	Players        []PlayerEntry
	CreatedAt      time.Time   `db:"created_at"`
}

// Player returns the roster entry for userKey, or nil if they never joined.
func (g *GameSession) Player(userKey string) *PlayerEntry {
	for i := range g.Players {
		if g.Players[i].UserKey == userKey {
			return &g.Players[i]
		}
	}
	return nil
}
