package game

import (
	"time"

	"codebreak/internal/domain"
)

// Messages for valid-but-unfortunate outcomes. These travel in successful
// responses, never as errors: the request was fine, the game world moved on.
const (
	MsgSolvedByOther = "Too late mate, other player solved it quicker than you! Start a new one as a revenge."
	MsgExpired       = "This game is expired, nobody figured out how to break the code :("
)

// Outcome says which store mutations a guess submission requires.
type Outcome int

const (
	// OutcomeRejected - terminal game, nothing to do, return Message.
	OutcomeRejected Outcome = iota
	// OutcomeExpire - deadline passed: flip STARTED to EXPIRED, do not
	// record the guess, return Message.
	OutcomeExpire
	// OutcomeRecord - evaluate and append the guess.
	OutcomeRecord
	// OutcomeSolve - like OutcomeRecord, plus the guess broke the code:
	// transition to SOLVED and award Score in one atomic unit.
	OutcomeSolve
)

// Decision is the result of advancing the session state machine for one
// guess. It captures every write the orchestrator must perform so the
// transition logic stays pure and testable.
type Decision struct {
	Outcome Outcome
	Message string

	// StartClock is set when this is the first accepted guess of a
	// WAITING game: persist StartTime and the STARTED status before the
	// guess itself.
	StartClock bool

	Guess domain.Guess

	// Populated for OutcomeSolve only.
	ElapsedSeconds int
	Score          int
}

// Advance runs one SubmitGuess event through the session state machine.
// The snapshot is not mutated; the caller applies the returned decision
// through the store. Callers have already verified that the requester is a
// player and that code is well-formed.
//
// Transitions:
//
//	WAITING -> STARTED            first guess, clock starts now
//	STARTED -> EXPIRED            deadline passed, guess rejected
//	STARTED -> STARTED | SOLVED   guess evaluated and recorded
//	SOLVED/EXPIRED                read-only, informational message
func Advance(sess *domain.GameSession, code string, now time.Time) Decision {
	switch sess.Status {
	case domain.StatusSolved:
		return Decision{Outcome: OutcomeRejected, Message: MsgSolvedByOther}
	case domain.StatusExpired:
		return Decision{Outcome: OutcomeRejected, Message: MsgExpired}
	}

	start := now
	startClock := sess.StartTime == nil
	if !startClock {
		start = *sess.StartTime
		if IsExpired(start, now) {
			return Decision{Outcome: OutcomeExpire, Message: MsgExpired}
		}
	}

	exact, near := Evaluate(sess.SecretCode, code)
	d := Decision{
		Outcome:    OutcomeRecord,
		StartClock: startClock,
		Guess:      domain.Guess{Code: code, Exact: exact, Near: near},
	}

	if exact == CodeLength {
		d.Outcome = OutcomeSolve
		d.ElapsedSeconds = int(now.Sub(start).Seconds())
		d.Score = Score(d.ElapsedSeconds)
	}
	return d
}
