package circuits

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"

	"github.com/yourorg/vanguardzk/pkg/gadgets"
)

func Curve() ecc.ID { return ecc.BN254 }

const (
	// MaxBasisPoints caps both score and threshold: 10000 = 100.00%.
	MaxBasisPoints = 10000

	// ScoreBits is the smallest power-of-two bound strictly above
	// MaxBasisPoints: 2^14 = 16384.
	ScoreBits = 14
)

// IntentThresholdCircuit proves that a private confidence score was
// evaluated against a public threshold. Valid carries the outcome of the
// comparison, so a proof exists for both outcomes; the statement is that
// the evaluation was performed correctly, not that it passed.
//
// IntentCommitment and Nonce are opaque field elements produced upstream.
// They take part in no constraint beyond membership in the public statement,
// which is what ties the proof to a single action instance.
type IntentThresholdCircuit struct {
	Threshold        frontend.Variable `gnark:",public"`
	IntentCommitment frontend.Variable `gnark:",public"`
	Nonce            frontend.Variable `gnark:",public"`
	Valid            frontend.Variable `gnark:",public"`

	Confidence frontend.Variable
}

func (c *IntentThresholdCircuit) Define(api frontend.API) error {
	gadgets.AssertInRange(api, c.Confidence, MaxBasisPoints, ScoreBits)
	gadgets.AssertInRange(api, c.Threshold, MaxBasisPoints, ScoreBits)

	met := gadgets.IsGreaterOrEqual(api, c.Confidence, c.Threshold, ScoreBits)
	api.AssertIsEqual(c.Valid, met)

	return nil
}
