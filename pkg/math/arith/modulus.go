package arith

import (
	"errors"

	"github.com/cronokirby/saferith"
)

// ErrNoInverse is returned when an inverse is requested for a residue
// that has none, i.e. a ≡ 0 (mod m).
var ErrNoInverse = errors.New("arith: no modular inverse exists")

// Modulus wraps a saferith.Modulus and caches m-2, which Inverse uses
// as the Fermat exponent.
//
// Inverse is only correct when the modulus is prime; this is a
// precondition of the scheme, checked at parameter construction when
// requested, never here.
type Modulus struct {
	*saferith.Modulus
	// mMinusTwo = m - 2
	mMinusTwo *saferith.Nat
}

// ModulusFromNat creates a Modulus from n. The value is copied.
func ModulusFromNat(n *saferith.Nat) *Modulus {
	m := saferith.ModulusFromNat(n)
	two := new(saferith.Nat).SetUint64(2)
	return &Modulus{
		Modulus:   m,
		mMinusTwo: new(saferith.Nat).Sub(m.Nat(), two, m.BitLen()),
	}
}

// ModulusFromBytes creates a Modulus from a big-endian byte slice.
func ModulusFromBytes(b []byte) *Modulus {
	return ModulusFromNat(new(saferith.Nat).SetBytes(b))
}

// ModulusFromUint64 creates a Modulus from a uint64.
func ModulusFromUint64(x uint64) *Modulus {
	return ModulusFromNat(new(saferith.Nat).SetUint64(x))
}

// Exp returns xᵉ (mod m).
//
// The base is reduced first, and the exponent is consumed one bit at a
// time from the least significant end: multiply the accumulator when
// the bit is set, square the running base power either way. e = 0
// yields 1. The loop count is bounded by the exponent's bit length.
func (m *Modulus) Exp(x, e *saferith.Nat) *saferith.Nat {
	base := new(saferith.Nat).Mod(x, m.Modulus)
	acc := new(saferith.Nat).SetUint64(1)
	buf := e.Bytes()
	for i := len(buf) - 1; i >= 0; i-- {
		b := buf[i]
		for bit := 0; bit < 8; bit++ {
			if b&1 == 1 {
				acc.ModMul(acc, base, m.Modulus)
			}
			base.ModMul(base, base, m.Modulus)
			b >>= 1
		}
	}
	return acc
}

// Inverse returns a⁻¹ (mod m) via Fermat's little theorem,
// a^(m-2) (mod m), which is only an inverse when m is prime.
//
// A residue of zero has no inverse for any modulus; rather than return
// the (meaningless) value the exponentiation would produce, this is
// reported as ErrNoInverse.
func (m *Modulus) Inverse(a *saferith.Nat) (*saferith.Nat, error) {
	r := new(saferith.Nat).Mod(a, m.Modulus)
	if r.EqZero() == 1 {
		return nil, ErrNoInverse
	}
	return m.Exp(r, m.mMinusTwo), nil
}

// ProbablyPrime reports whether the modulus is prime with high
// probability. Intended for validation at initialization time only.
func (m *Modulus) ProbablyPrime() bool {
	return m.Big().ProbablyPrime(20)
}
