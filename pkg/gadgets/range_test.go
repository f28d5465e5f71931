package gadgets

import (
	"math/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

type decomposeCircuit struct {
	Width int
	V     frontend.Variable
}

func (c *decomposeCircuit) Define(api frontend.API) error {
	Decompose(api, c.V, c.Width)
	return nil
}

type decomposeBitsCircuit struct {
	V    frontend.Variable
	Bits [14]frontend.Variable
}

func (c *decomposeBitsCircuit) Define(api frontend.API) error {
	bits := Decompose(api, c.V, len(c.Bits))
	for i := range bits {
		api.AssertIsEqual(bits[i], c.Bits[i])
	}
	return nil
}

type recomposeCircuit struct {
	Width int
	V     frontend.Variable
}

func (c *recomposeCircuit) Define(api frontend.API) error {
	bits := Decompose(api, c.V, c.Width)
	api.AssertIsEqual(FromBits(api, bits), c.V)
	return nil
}

func TestDecomposeExhaustiveSmallWidth(t *testing.T) {
	circuit := &decomposeCircuit{Width: 3}
	for v := uint64(0); v < 8; v++ {
		err := test.IsSolved(circuit, &decomposeCircuit{Width: 3, V: v}, ecc.BN254.ScalarField())
		require.NoError(t, err, "v=%d", v)
	}
	for v := uint64(8); v < 16; v++ {
		err := test.IsSolved(circuit, &decomposeCircuit{Width: 3, V: v}, ecc.BN254.ScalarField())
		require.Error(t, err, "v=%d must not fit in 3 bits", v)
	}
}

func TestDecomposeBitsMatchValue(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	circuit := &decomposeBitsCircuit{}

	for trial := 0; trial < 50; trial++ {
		v := uint64(rng.Intn(1 << 14))
		assignment := &decomposeBitsCircuit{V: v}
		for i := 0; i < 14; i++ {
			assignment.Bits[i] = (v >> i) & 1
		}
		err := test.IsSolved(circuit, assignment, ecc.BN254.ScalarField())
		require.NoError(t, err, "v=%d", v)
	}

	// A flipped bit breaks the weighted-sum equality.
	bad := &decomposeBitsCircuit{V: uint64(5)}
	for i := 0; i < 14; i++ {
		bad.Bits[i] = (uint64(5) >> i) & 1
	}
	bad.Bits[1] = 1
	err := test.IsSolved(circuit, bad, ecc.BN254.ScalarField())
	require.Error(t, err)
}

func TestRecomposeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	circuit := &recomposeCircuit{Width: 14}
	for trial := 0; trial < 50; trial++ {
		v := uint64(rng.Intn(1 << 14))
		err := test.IsSolved(circuit, &recomposeCircuit{Width: 14, V: v}, ecc.BN254.ScalarField())
		require.NoError(t, err, "v=%d", v)
	}
}

func TestDecomposeRejectsAboveWidth(t *testing.T) {
	circuit := &decomposeCircuit{Width: 14}
	for _, v := range []uint64{1 << 14, (1 << 14) + 1, 1 << 20} {
		err := test.IsSolved(circuit, &decomposeCircuit{Width: 14, V: v}, ecc.BN254.ScalarField())
		require.Error(t, err, "v=%d", v)
	}
}

func TestDecomposeProver(t *testing.T) {
	assert := test.NewAssert(t)
	assert.CheckCircuit(
		&decomposeCircuit{Width: 14},
		test.WithValidAssignment(&decomposeCircuit{Width: 14, V: uint64(10000)}),
		test.WithInvalidAssignment(&decomposeCircuit{Width: 14, V: uint64(1 << 14)}),
		test.WithCurves(ecc.BN254),
	)
}
