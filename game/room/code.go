package room

import (
	"crypto/rand"
	"time"
)

// CodeLength is the fixed length of a join code.
const CodeLength = 5

// codeAlphabet excludes 0, O, 1 and I so codes survive being read aloud or
// copied by hand. 32 symbols keeps the byte sampling unbiased.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateCode samples a code and retries until it does not collide with an
// active room. With 32^5 possible codes against a handful of live rooms,
// retries are vanishingly rare.
func (s *Store) generateCode() string {
	for {
		b := make([]byte, CodeLength)
		for i := range b {
			b[i] = codeAlphabet[randInt(len(codeAlphabet))]
		}
		code := string(b)
		if _, taken := s.rooms[code]; !taken {
			return code
		}
	}
}

// randInt returns a random int in [0, max).
func randInt(max int) int {
	b := make([]byte, 1)
	if _, err := rand.Read(b); err != nil {
		// Fall back to the clock if the random source fails
		return int(time.Now().UnixNano()) % max
	}
	return int(b[0]) % max
}
