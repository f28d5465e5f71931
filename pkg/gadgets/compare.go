package gadgets

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// IsLess returns 1 when a < b and 0 otherwise, for a and b already known to
// lie in [0, 2^width). It computes shifted = a + 2^width - b and decomposes
// the sum into width+1 bits: the top bit is 1 exactly when a >= b, so the
// borrow bit alone decides the comparison. No quotient appears anywhere, so
// there is no denominator a dishonest prover could drive to zero.
func IsLess(api frontend.API, a, b frontend.Variable, width int) frontend.Variable {
	pow := new(big.Int).Lsh(big.NewInt(1), uint(width))
	shifted := api.Sub(api.Add(a, pow), b)
	bits := Decompose(api, shifted, width+1)
	return api.Sub(1, bits[width])
}

// IsGreaterOrEqual returns 1 when a >= b and 0 otherwise. Equality counts.
func IsGreaterOrEqual(api frontend.API, a, b frontend.Variable, width int) frontend.Variable {
	return api.Sub(1, IsLess(api, a, b, width))
}

// AssertInRange constrains v to [0, bound]. The decomposition bounds v below
// 2^width; the comparator against the constant bound closes the gap between
// the power-of-two ceiling and the declared domain maximum.
func AssertInRange(api frontend.API, v frontend.Variable, bound uint64, width int) {
	Decompose(api, v, width)
	exceeds := IsLess(api, bound, v, width)
	api.AssertIsEqual(exceeds, 0)
}
