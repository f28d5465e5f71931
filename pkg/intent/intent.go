// Package intent canonicalizes action payloads into the opaque field
// elements the attestation core binds its proofs to. The core never hashes
// anything itself; this package is the upstream collaborator that does.
package intent

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"

	"github.com/yourorg/vanguardzk/circuits"
)

// Action is one concrete thing an agent wants to do.
type Action struct {
	Intent    string    `json:"intent"`
	TaskData  string    `json:"task_data"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

// Canonicalize produces the deterministic encoding of an action: fixed
// field order, UTC timestamp at second precision. Two payloads that differ
// in any field produce different bytes.
func Canonicalize(a Action) ([]byte, error) {
	a.Timestamp = a.Timestamp.UTC().Truncate(time.Second)
	return json.Marshal(a)
}

// Commitment hashes the canonical encoding with Keccak-256 and reduces the
// digest into the BN254 scalar field, yielding the public input the circuit
// consumes opaquely.
func Commitment(a Action) (*big.Int, error) {
	raw, err := Canonicalize(a)
	if err != nil {
		return nil, fmt.Errorf("canonicalize action: %w", err)
	}
	c := new(big.Int).SetBytes(crypto.Keccak256(raw))
	return c.Mod(c, circuits.Curve().ScalarField()), nil
}

// NewNonce returns a fresh 128-bit nonce. Paired with the commitment it
// identifies exactly one action instance for replay detection.
func NewNonce() *big.Int {
	id := uuid.New()
	return new(big.Int).SetBytes(id[:])
}
