package game

// Evaluate scores guess against secret, returning the number of exact
// matches (right symbol, right position) and near matches (right symbol,
// wrong position). Both strings must be the same length; callers validate
// before calling.
//
// Near matching uses multiset consumption: every secret position feeds at
// most one of exact or near, and every guess symbol claims at most one
// secret position. Naive per-symbol frequency overlap would over-count
// when symbols repeat.
func Evaluate(secret, guess string) (exact, near int) {
	n := len(secret)
	consumed := make([]bool, n)

	// Exact pass first: consumed positions are off the table for nears.
	remaining := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			exact++
			consumed[i] = true
		} else {
			remaining = append(remaining, guess[i])
		}
	}

	// Each leftover guess symbol claims the first unconsumed secret
	// position holding it, if any.
	for _, g := range remaining {
		for i := 0; i < n; i++ {
			if !consumed[i] && secret[i] == g {
				consumed[i] = true
				near++
				break
			}
		}
	}

	return exact, near
}
