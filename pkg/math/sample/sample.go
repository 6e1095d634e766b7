package sample

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
)

const maxIterations = 255

var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// ModN samples an element of ℤₙ.
func ModN(rand io.Reader, n *saferith.Modulus) *saferith.Nat {
	out := new(saferith.Nat)
	buf := make([]byte, (n.BitLen()+7)/8)
	for {
		mustReadBits(rand, buf)
		out.SetBytes(buf)
		_, _, lt := out.CmpMod(n)
		if lt == 1 {
			break
		}
	}
	return out
}

// UnitModN returns a u ∈ ℤₙˣ.
func UnitModN(rand io.Reader, n *saferith.Modulus) *saferith.Nat {
	for i := 0; i < maxIterations; i++ {
		u := ModN(rand, n)
		if u.IsUnit(n) == 1 {
			return u
		}
	}
	panic(ErrMaxIterations)
}

// Secret samples a secret exponent in [1, n-2], the usable range for a
// commitment secret when n is prime.
func Secret(rand io.Reader, n *saferith.Modulus) *saferith.Nat {
	nMinusOne := new(saferith.Nat).Sub(n.Nat(), new(saferith.Nat).SetUint64(1), n.BitLen())
	for i := 0; i < maxIterations; i++ {
		s := ModN(rand, n)
		if s.EqZero() == 1 {
			continue
		}
		if s.Eq(nMinusOne) == 1 {
			continue
		}
		return s
	}
	panic(ErrMaxIterations)
}
