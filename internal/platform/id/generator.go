package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator produces opaque identifiers for newly created records.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator returns 32-character hex identifiers backed by
// crypto/rand.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
