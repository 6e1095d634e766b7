package sample

import (
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
)

func modulus(x uint64) *saferith.Modulus {
	return saferith.ModulusFromNat(new(saferith.Nat).SetUint64(x))
}

func TestModN(t *testing.T) {
	n := modulus(1000000007)
	for i := 0; i < 64; i++ {
		x := ModN(rand.Reader, n)
		_, _, lt := x.CmpMod(n)
		assert.EqualValues(t, 1, lt, "sample must be reduced")
	}
}

func TestUnitModN(t *testing.T) {
	// 1000000014 is even, so half the residues are non-units and
	// rejection actually happens here.
	n := modulus(1000000014)
	for i := 0; i < 64; i++ {
		u := UnitModN(rand.Reader, n)
		assert.EqualValues(t, 1, u.IsUnit(n), "sample must be a unit")
	}
}

func TestSecret(t *testing.T) {
	n := modulus(1000000007)
	nMinusOne := new(saferith.Nat).SetUint64(1000000006)
	for i := 0; i < 64; i++ {
		s := Secret(rand.Reader, n)
		assert.NotEqualValues(t, 1, s.EqZero(), "secret must be nonzero")
		assert.NotEqualValues(t, 1, s.Eq(nMinusOne), "secret must be below n-1")
	}
}
