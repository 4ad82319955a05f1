// Package idgen generates random identifiers.
package idgen

import gonanoid "github.com/matoous/go-nanoid/v2"

// NodeIDLength is the number of characters in a generated node identifier.
const NodeIDLength = 8

const hexAlphabet = "0123456789abcdef"

// NodeID returns 8 lowercase hex characters drawn from crypto/rand.
// Uniqueness is probabilistic; callers that need a guarantee must check
// their registry themselves.
func NodeID() string {
	return gonanoid.MustGenerate(hexAlphabet, NodeIDLength)
}
