package shortcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Alphabet excludes visually ambiguous characters (0/O, 1/I/l). Codes
// double as unguessable tokens, so symbols are drawn from crypto/rand.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

// DefaultLength is the code length used when none is configured.
const DefaultLength = 6

// Generator produces random short codes of a fixed length.
type Generator struct {
	alphabet string
	length   int
}

// NewGenerator creates a generator with the given length (DefaultLength if <= 0).
func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{
		alphabet: Alphabet,
		length:   length,
	}
}

// Generate returns a new random code. It fails only when the random
// source itself is unavailable.
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.length)
	size := big.NewInt(int64(len(g.alphabet)))

	for i := range buf {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("shortcode: read random source: %w", err)
		}
		buf[i] = g.alphabet[n.Int64()]
	}
	return string(buf), nil
}
