// Package attest drives the proof lifecycle for threshold attestations:
// compile the circuit once, run the trusted setup once per circuit version,
// then any number of independent prove and verify calls. Every failure path
// is fail-closed: no partial witness, no placeholder proof, no permissive
// default on verification.
package attest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/yourorg/vanguardzk/circuits"
)

// Attestation is the immutable artifact Prove emits. The downstream ledger
// layer re-verifies it and records (intentCommitment, nonce) for replay
// bookkeeping; the core itself keeps no state between attestations.
type Attestation struct {
	Proof  []byte       `json:"proof"`
	Public PublicInputs `json:"public"`
}

// System holds the compiled constraint system and, after Setup, the
// versioned key pair. Keys are read-only once set, so a single System is
// safe for unsynchronized concurrent Prove calls across workers.
type System struct {
	cs     constraint.ConstraintSystem
	digest [32]byte
	pk     *ProvingKey
	vk     *VerifyingKey
}

// Compile builds the R1CS for the intent threshold circuit and derives the
// circuit version digest from its serialized form. The digest stamps every
// key pair and attestation produced afterwards.
func Compile() (*System, error) {
	cs, err := frontend.Compile(
		circuits.Curve().ScalarField(),
		r1cs.NewBuilder,
		&circuits.IntentThresholdCircuit{},
	)
	if err != nil {
		return nil, fmt.Errorf("compile circuit: %w", err)
	}
	var buf bytes.Buffer
	if _, err := cs.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize constraint system: %w", err)
	}
	return &System{cs: cs, digest: sha256.Sum256(buf.Bytes())}, nil
}

// DigestHex is the circuit version identifier.
func (s *System) DigestHex() string { return hex.EncodeToString(s.digest[:]) }

// SetupComplete reports whether proving may begin.
func (s *System) SetupComplete() bool { return s.pk != nil }

// Setup runs the one-time Groth16 trusted setup for this circuit version.
// Single-writer: it must complete, and its outputs be distributed, before
// any prover starts.
func (s *System) Setup() error {
	if s.pk != nil {
		return fmt.Errorf("setup already complete for circuit %s", s.DigestHex())
	}
	pk, vk, err := groth16.Setup(s.cs)
	if err != nil {
		return fmt.Errorf("groth16 setup: %w", err)
	}
	s.pk = &ProvingKey{Digest: s.digest, PK: pk}
	s.vk = &VerifyingKey{Digest: s.digest, VK: vk}
	return nil
}

// UseKeys attaches a previously generated key pair, e.g. loaded from disk.
// The pair must have been set up for this exact circuit version.
func (s *System) UseKeys(pk *ProvingKey, vk *VerifyingKey) error {
	if pk.Digest != s.digest || vk.Digest != s.digest {
		return fmt.Errorf("keys were set up for a different circuit version: %w", ErrKeyMismatch)
	}
	s.pk = pk
	s.vk = vk
	return nil
}

// Keys returns the pair produced by Setup, or nil before it ran.
func (s *System) Keys() (*ProvingKey, *VerifyingKey) { return s.pk, s.vk }

// Prove generates an attestation for one action instance. It succeeds for
// both outcomes of the threshold predicate: the resulting proof states that
// confidence was evaluated against the threshold correctly, and the public
// Valid signal carries the outcome. Out-of-domain inputs fail before any
// witness is built; an unsatisfiable assignment fails during solving. In
// both cases no proof object exists afterwards.
func (s *System) Prove(priv PrivateInputs, stmt Statement) (*Attestation, error) {
	if s.pk == nil {
		return nil, fmt.Errorf("prove: %w", ErrSetupMissing)
	}
	if priv.Confidence > circuits.MaxBasisPoints {
		return nil, fmt.Errorf("confidence %d exceeds %d: %w", priv.Confidence, circuits.MaxBasisPoints, ErrInputRange)
	}
	if err := stmt.validate(); err != nil {
		return nil, err
	}

	var valid uint64
	if priv.Confidence >= stmt.Threshold {
		valid = 1
	}

	assignment := &circuits.IntentThresholdCircuit{
		Threshold:        stmt.Threshold,
		IntentCommitment: stmt.IntentCommitment,
		Nonce:            stmt.Nonce,
		Valid:            valid,
		Confidence:       priv.Confidence,
	}
	full, err := frontend.NewWitness(assignment, circuits.Curve().ScalarField())
	if err != nil {
		return nil, fmt.Errorf("build witness: %v: %w", err, ErrWitnessInvalid)
	}
	proof, err := groth16.Prove(s.cs, s.pk.PK, full)
	if err != nil {
		return nil, fmt.Errorf("groth16 prove: %v: %w", err, ErrWitnessInvalid)
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize proof: %w", err)
	}
	return &Attestation{
		Proof: buf.Bytes(),
		Public: PublicInputs{
			Threshold:        stmt.Threshold,
			IntentCommitment: stmt.IntentCommitment.String(),
			Nonce:            stmt.Nonce.String(),
			Valid:            valid,
			CircuitDigest:    s.DigestHex(),
		},
	}, nil
}

// Verify checks an attestation against a verifying key. It is a pure,
// stateless, total function: malformed input never panics or errors the
// process, it yields false plus a reason. A well-formed proof that simply
// does not verify yields (false, nil).
func Verify(vk *VerifyingKey, pub PublicInputs, proofBytes []byte) (bool, error) {
	if pub.CircuitDigest != vk.DigestHex() {
		return false, fmt.Errorf("attestation digest %s vs key digest %s: %w",
			pub.CircuitDigest, vk.DigestHex(), ErrKeyMismatch)
	}
	stmt, err := pub.Statement()
	if err != nil {
		return false, err
	}

	proof := groth16.NewProof(circuits.Curve())
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return false, fmt.Errorf("decode proof: %v: %w", err, ErrProofMalformed)
	}

	assignment := &circuits.IntentThresholdCircuit{
		Threshold:        stmt.Threshold,
		IntentCommitment: stmt.IntentCommitment,
		Nonce:            stmt.Nonce,
		Valid:            pub.Valid,
	}
	pubWit, err := frontend.NewWitness(assignment, circuits.Curve().ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false, fmt.Errorf("build public witness: %v: %w", err, ErrProofMalformed)
	}

	if err := groth16.Verify(proof, vk.VK, pubWit); err != nil {
		return false, nil
	}
	return true, nil
}

// Verify on a System uses the key pair from its own setup.
func (s *System) Verify(pub PublicInputs, proofBytes []byte) (bool, error) {
	if s.vk == nil {
		return false, fmt.Errorf("verify: %w", ErrSetupMissing)
	}
	return Verify(s.vk, pub, proofBytes)
}
