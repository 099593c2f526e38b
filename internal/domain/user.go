package domain

import "time"

type User struct {
	UserKey   string    `db:"user_key" json:"userKey"`
	UserName  string    `db:"user_name" json:"userName"`
	Score     int64     `db:"score" json:"score"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// LeaderboardEntry is one row of the global leaderboard, ordered by score
// descending with ties broken by user name so repeated listings are stable.
type LeaderboardEntry struct {
	UserName string `json:"userName"`
	Score    int64  `json:"score"`
}
