package arith

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func natFromUint64(x uint64) *saferith.Nat {
	return new(saferith.Nat).SetUint64(x)
}

func TestExpKnownValues(t *testing.T) {
	m := ModulusFromUint64(1000000007)

	tests := []struct {
		base, exp, want uint64
	}{
		{7, 123456, 684435902},
		{2, 10, 1024},
		{5, 0, 1},
		{0, 0, 1},
		{0, 5, 0},
		{1000000007, 3, 0}, // base ≡ 0 after reduction
		{1000000008, 2, 1}, // base ≡ 1 after reduction
		{1000000006, 2, 1}, // (-1)² ≡ 1
	}
	for _, tc := range tests {
		got := m.Exp(natFromUint64(tc.base), natFromUint64(tc.exp))
		assert.Equal(t, tc.want, got.Uint64(), "%d^%d mod 1000000007", tc.base, tc.exp)
	}
}

func TestExpAgainstBig(t *testing.T) {
	p, err := rand.Prime(rand.Reader, 256)
	require.NoError(t, err)
	m := ModulusFromBytes(p.Bytes())

	for i := 0; i < 32; i++ {
		x, err := rand.Int(rand.Reader, p)
		require.NoError(t, err)
		e, err := rand.Int(rand.Reader, p)
		require.NoError(t, err)

		want := new(big.Int).Exp(x, e, p)
		got := m.Exp(
			new(saferith.Nat).SetBytes(x.Bytes()),
			new(saferith.Nat).SetBytes(e.Bytes()),
		)
		assert.Zero(t, want.Cmp(got.Big()))
	}
}

func TestInverse(t *testing.T) {
	p, err := rand.Prime(rand.Reader, 256)
	require.NoError(t, err)
	m := ModulusFromBytes(p.Bytes())
	one := natFromUint64(1)

	for i := 0; i < 16; i++ {
		a, err := rand.Int(rand.Reader, p)
		require.NoError(t, err)
		if a.Sign() == 0 {
			continue
		}
		aNat := new(saferith.Nat).SetBytes(a.Bytes())
		inv, err := m.Inverse(aNat)
		require.NoError(t, err)

		prod := new(saferith.Nat).ModMul(aNat, inv, m.Modulus)
		assert.True(t, prod.Eq(one) == 1, "a·a⁻¹ must be 1")
	}
}

func TestInverseKnown(t *testing.T) {
	m := ModulusFromUint64(1000000007)
	inv, err := m.Inverse(natFromUint64(99))
	require.NoError(t, err)
	assert.Equal(t, uint64(646464651), inv.Uint64())
}

func TestInverseZero(t *testing.T) {
	m := ModulusFromUint64(1000000007)

	_, err := m.Inverse(natFromUint64(0))
	assert.ErrorIs(t, err, ErrNoInverse)

	// a multiple of the modulus is zero after reduction
	_, err = m.Inverse(new(saferith.Nat).Mul(m.Nat(), natFromUint64(3), -1))
	assert.ErrorIs(t, err, ErrNoInverse)
}

func TestProbablyPrime(t *testing.T) {
	assert.True(t, ModulusFromUint64(1000000007).ProbablyPrime())
	assert.False(t, ModulusFromUint64(1000000008).ProbablyPrime())
}
