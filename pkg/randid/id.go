// Package randid generates short random identifiers.
package randid

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Generate returns a random lowercase alphanumeric string of the given
// length. Uses crypto/rand; panics only if the OS entropy source is broken.
func Generate(length int) string {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("randid: " + err.Error())
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf)
}
