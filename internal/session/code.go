package session

import (
	"math/rand"
)

const codeLength = 5
const maxRetries = 100

// Ambiguous glyphs (I, O, 0, 1) are left out so codes can be read aloud.
var codeAlphabet = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

// GenerateCode creates a random session code that is not in taken.
func GenerateCode(taken func(code string) bool) string {
	for range maxRetries {
		code := randomCode()
		if !taken(code) {
			return code
		}
	}
	// 32^5 combinations; running out of retries means the server is badly overloaded
	return randomCode()
}

func randomCode() string {
	b := make([]rune, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
