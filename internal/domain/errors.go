package domain

import "errors"

// Domain errors surfaced to callers. Handlers map them onto HTTP status
// codes: parameter errors to 400, missing records to 404, conflicts and
// state violations to 409. Store-layer failures pass through untouched.
var (
	ErrEmptyUserName   = errors.New("missing userName parameter")
	ErrBadCode         = errors.New("the code must be 8 characters long")
	ErrCodeSymbols     = errors.New("the code may only use the possible colors")
	ErrUserNotFound    = errors.New("userKey does not match any created user")
	ErrGameNotFound    = errors.New("gameKey does not match any created game")
	ErrNotAPlayer      = errors.New("your user is not a player of this game")
	ErrNameTaken       = errors.New("username is already taken")
	ErrAlreadyJoined   = errors.New("you are a player in this game already")
	ErrGameNotJoinable = errors.New("the game does not accept players anymore")

	// ErrStatusConflict means a conditional status transition found the
	// game in a different state than expected, e.g. two players solving
	// at once: only the first transition applies, the loser gets this.
	ErrStatusConflict = errors.New("game status changed concurrently")
)
