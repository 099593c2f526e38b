package game

import "time"

// Game rules. The alphabet has exactly CodeLength distinct symbols; secrets
// and guesses are CodeLength symbols drawn from it, repetition allowed.
const (
	Alphabet   = "RBGYOPCM"
	CodeLength = len(Alphabet)

	// Timeout is how long a started game stays solvable. Expiry is lazy:
	// it is only detected when the next guess arrives.
	Timeout = 300 * time.Second

	scoreBase = 250
)

// ValidCode reports whether code has the right length and uses only
// symbols from the alphabet.
func ValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		found := false
		for j := 0; j < len(Alphabet); j++ {
			if code[i] == Alphabet[j] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Score computes the final score for a game solved after elapsedSeconds.
// Callers guarantee elapsedSeconds < 300 (the expiry check runs first), so
// the result is always above 250. No extra clamping: faster solves earn
// more, one point per second towards the deadline.
func Score(elapsedSeconds int) int {
	return scoreBase + (300 - elapsedSeconds)
}

// IsExpired reports whether a game started at startTime has run out of time
// as of now. Stored status is not consulted; callers that need an accurate
// answer for a possibly stale record must re-apply this check themselves.
func IsExpired(startTime, now time.Time) bool {
	return now.Sub(startTime) >= Timeout
}
