package identifier

import nanoid "github.com/matoous/go-nanoid/v2"

const (
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultLength is the length of public paste ids.
	DefaultLength = 20
)

// Generate returns a random string of exactly length characters from Alphabet.
// Collisions are not checked.
func Generate(length int) string {
	return nanoid.MustGenerate(Alphabet, length)
}
