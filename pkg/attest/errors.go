package attest

import "errors"

// Every failure in the proving path maps onto one of these sentinels so
// callers can fail closed without string matching. Verification reports
// reasons the same way but never as a fault: Verify returns (false, reason).
var (
	// ErrInputRange flags a confidence score, threshold, commitment or
	// nonce outside its declared domain. Inputs are never clamped.
	ErrInputRange = errors.New("attest: input outside declared domain")

	// ErrWitnessInvalid means no satisfying assignment exists for the
	// supplied inputs. No partial or placeholder proof is emitted.
	ErrWitnessInvalid = errors.New("attest: no satisfying witness")

	// ErrSetupMissing is returned by Prove before Setup has completed.
	ErrSetupMissing = errors.New("attest: trusted setup has not completed")

	// ErrProofMalformed covers proofs or public inputs that fail to
	// deserialize.
	ErrProofMalformed = errors.New("attest: malformed proof")

	// ErrKeyMismatch means the attestation was produced under a different
	// circuit version than the verifying key in use.
	ErrKeyMismatch = errors.New("attest: verification key does not match circuit version")
)
