package game

import (
	"crypto/rand"
	"math/big"
)

// NewSecret draws CodeLength independent uniform symbols from the alphabet.
// Secrets may repeat symbols or omit them entirely; this is intentionally
// not a permutation, duplicates are part of the game's difficulty.
func NewSecret() string {
	buf := make([]byte, CodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(Alphabet))))
		if err != nil {
			// crypto/rand failing means the process is in bad shape;
			// fall back to the first symbol rather than crash mid-request.
			buf[i] = Alphabet[0]
			continue
		}
		buf[i] = Alphabet[n.Int64()]
	}
	return string(buf)
}
