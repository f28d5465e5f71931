package attest

import (
	"fmt"
	"math/big"

	"github.com/yourorg/vanguardzk/circuits"
)

// PrivateInputs never leave the prover.
type PrivateInputs struct {
	Confidence uint64 // basis points, [0,10000]
}

// Statement is the per-action public half of the witness. IntentCommitment
// and Nonce come from the canonicalizer and are consumed opaquely; the core
// performs no hashing of its own.
type Statement struct {
	Threshold        uint64 // basis points, [0,10000]
	IntentCommitment *big.Int
	Nonce            *big.Int
}

// PublicInputs is the serialized statement an attestation carries. Field
// elements travel as decimal strings, the same convention the upstream
// snarkjs tooling uses for public signals.
type PublicInputs struct {
	Threshold        uint64 `json:"threshold"`
	IntentCommitment string `json:"intentCommitment"`
	Nonce            string `json:"nonce"`
	Valid            uint64 `json:"valid"`
	CircuitDigest    string `json:"circuitDigest"`
}

// Statement parses the string-encoded field elements back out.
func (p PublicInputs) Statement() (Statement, error) {
	commitment, ok := new(big.Int).SetString(p.IntentCommitment, 10)
	if !ok {
		return Statement{}, fmt.Errorf("parse intent commitment %q: %w", p.IntentCommitment, ErrProofMalformed)
	}
	nonce, ok := new(big.Int).SetString(p.Nonce, 10)
	if !ok {
		return Statement{}, fmt.Errorf("parse nonce %q: %w", p.Nonce, ErrProofMalformed)
	}
	return Statement{
		Threshold:        p.Threshold,
		IntentCommitment: commitment,
		Nonce:            nonce,
	}, nil
}

func (s Statement) validate() error {
	if s.Threshold > circuits.MaxBasisPoints {
		return fmt.Errorf("threshold %d exceeds %d: %w", s.Threshold, circuits.MaxBasisPoints, ErrInputRange)
	}
	modulus := circuits.Curve().ScalarField()
	for name, v := range map[string]*big.Int{
		"intent commitment": s.IntentCommitment,
		"nonce":             s.Nonce,
	} {
		if v == nil {
			return fmt.Errorf("%s is nil: %w", name, ErrInputRange)
		}
		if v.Sign() < 0 || v.Cmp(modulus) >= 0 {
			return fmt.Errorf("%s outside scalar field: %w", name, ErrInputRange)
		}
	}
	return nil
}
