// Package randid provides random identifier generation utilities.
package randid

import "math/rand/v2"

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Generate creates a random alphanumeric ID of the specified length.
// Useful as a seed for derived values like placeholder avatars.
func Generate(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
