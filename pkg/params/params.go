package params

import (
	"errors"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"

	"github.com/veridge/devauth/pkg/math/arith"
)

var (
	ErrInvalidModulus   = errors.New("params: modulus must be at least 2")
	ErrInvalidGenerator = errors.New("params: generator must satisfy 0 < generator < modulus")
	ErrNotPrime         = errors.New("params: modulus failed the primality check")
)

// Parameters holds the group parameters every device and verifier
// shares: a generator g and a modulus p. They are fixed at
// initialization and read-only afterwards.
//
// Correctness of verification additionally requires p to be prime;
// that is a setup precondition, checked only when the CheckPrime
// option is given.
type Parameters struct {
	generator *saferith.Nat
	modulus   *arith.Modulus
}

type config struct {
	checkPrime bool
}

// Option configures parameter construction.
type Option func(*config)

// CheckPrime makes New run a Miller-Rabin primality check on the
// modulus, rejecting composite moduli with ErrNotPrime.
func CheckPrime() Option {
	return func(c *config) { c.checkPrime = true }
}

// New validates and fixes the group parameters.
func New(generator, modulus *saferith.Nat, opts ...Option) (*Parameters, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	two := new(saferith.Nat).SetUint64(2)
	if _, _, lt := modulus.Cmp(two); lt == 1 {
		return nil, ErrInvalidModulus
	}
	m := arith.ModulusFromNat(modulus)

	if generator.EqZero() == 1 {
		return nil, ErrInvalidGenerator
	}
	if _, _, lt := generator.CmpMod(m.Modulus); lt != 1 {
		return nil, ErrInvalidGenerator
	}

	if cfg.checkPrime && !m.ProbablyPrime() {
		return nil, ErrNotPrime
	}

	return &Parameters{
		generator: generator.Clone(),
		modulus:   m,
	}, nil
}

// Generator returns a copy of g.
func (p *Parameters) Generator() *saferith.Nat {
	return p.generator.Clone()
}

// Modulus returns the shared modulus.
func (p *Parameters) Modulus() *arith.Modulus {
	return p.modulus
}

// Equal reports whether both parameter sets describe the same group.
func (p *Parameters) Equal(other *Parameters) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.generator.Eq(other.generator) == 1 &&
		p.modulus.Nat().Eq(other.modulus.Nat()) == 1
}

// WriteTo implements io.WriterTo for transcript hashing.
func (p *Parameters) WriteTo(w io.Writer) (int64, error) {
	total := int64(0)
	for _, b := range [][]byte{p.generator.Bytes(), p.modulus.Bytes()} {
		n, err := w.Write(b)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Domain implements hash.WriterToWithDomain.
func (*Parameters) Domain() string {
	return "Group Parameters"
}

type paramsMarshal struct {
	G, P *saferith.Nat
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Parameters) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(paramsMarshal{
		G: p.generator,
		P: p.modulus.Nat(),
	})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The decoded
// parameters go through the same validation as New.
func (p *Parameters) UnmarshalBinary(data []byte) error {
	var pm paramsMarshal
	if err := cbor.Unmarshal(data, &pm); err != nil {
		return err
	}
	decoded, err := New(pm.G, pm.P)
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}
