package booking

import (
	"math/rand/v2"
	"strings"
)

const pnrAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const pnrLength = 6

// generatePNR returns a 6-character booking reference. Uniqueness is not
// enforced here; the bookings table carries a unique index on pnr.
func generatePNR() string {
	code := make([]byte, pnrLength)
	for i := range code {
		code[i] = pnrAlphabet[rand.IntN(len(pnrAlphabet))]
	}
	return string(code)
}

func normalizePNR(pnr string) string {
	return strings.ToUpper(strings.TrimSpace(pnr))
}
