// Package gadgets holds the arithmetic building blocks shared by every
// circuit in this repository: fixed-width bit decomposition and the
// borrow-bit comparator built on top of it. Everything that looks like a
// branch at the constraint level is expressed through these two primitives.
package gadgets

import (
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
)

func init() {
	solver.RegisterHint(decomposeHint)
}

// decomposeHint fills outputs with the little-endian bits of inputs[0].
// The hint is advisory only; Decompose re-constrains every bit.
func decomposeHint(_ *big.Int, inputs, outputs []*big.Int) error {
	v := inputs[0]
	for i := range outputs {
		outputs[i].SetUint64(uint64(v.Bit(i)))
	}
	return nil
}

// Decompose splits v into width bits, least significant first. Each bit is
// constrained boolean (b*(b-1)=0) and the weighted sum of the bits is
// asserted equal to v, so the decomposition doubles as a range check: no
// satisfying assignment exists when v >= 2^width and witness solving fails
// rather than producing a truncated value.
func Decompose(api frontend.API, v frontend.Variable, width int) []frontend.Variable {
	bits, err := api.Compiler().NewHint(decomposeHint, width, v)
	if err != nil {
		panic(err)
	}

	coeff := big.NewInt(1)
	sum := frontend.Variable(0)
	for _, b := range bits {
		api.AssertIsBoolean(b)
		sum = api.Add(sum, api.Mul(b, new(big.Int).Set(coeff)))
		coeff.Lsh(coeff, 1)
	}
	api.AssertIsEqual(sum, v)

	return bits
}

// FromBits recomposes a little-endian bit slice into a single variable.
func FromBits(api frontend.API, bits []frontend.Variable) frontend.Variable {
	coeff := big.NewInt(1)
	acc := frontend.Variable(0)
	for _, b := range bits {
		acc = api.Add(acc, api.Mul(b, new(big.Int).Set(coeff)))
		coeff.Lsh(coeff, 1)
	}
	return acc
}
