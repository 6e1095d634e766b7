package challenge

import (
	"errors"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"

	"github.com/veridge/devauth/pkg/params"
)

// ErrInvalidMultiplier is returned when a challenge multiplier is
// ≡ 0 (mod p). Zero has no modular inverse, so the blinding can never
// be removed; surfacing this beats silently comparing garbage.
var ErrInvalidMultiplier = errors.New("challenge: multiplier has no inverse modulo the group modulus")

type (
	// Challenge is the pair a verifier sends to elicit a fresh blinded
	// response. It is transient: nothing about it is ever stored, and
	// nothing prevents a verifier from reusing one.
	Challenge struct {
		// Exponent = e, applied to the stored commitment
		Exponent *saferith.Nat
		// Multiplier = m, the one-time multiplicative blind
		Multiplier *saferith.Nat
	}

	// Response carries the prover's blinded answer.
	Response struct {
		// Product = (Wᵉ · m) mod p
		Product *saferith.Nat
	}
)

// Commit computes the commitment W = gˢ (mod p) for a secret exponent.
// This is the device-side half of registration; the secret itself
// never leaves the caller.
func Commit(p *params.Parameters, secret *saferith.Nat) *saferith.Nat {
	return p.Modulus().Exp(p.Generator(), secret)
}

// Respond computes the device's answer (Wᵉ · m) mod p to a challenge.
// An honest prover refuses a degenerate challenge whose multiplier is
// ≡ 0: the verifier could never check the result.
func Respond(p *params.Parameters, commitment *saferith.Nat, ch Challenge) (Response, error) {
	m := p.Modulus()
	reduced := new(saferith.Nat).Mod(ch.Multiplier, m.Modulus)
	if reduced.EqZero() == 1 {
		return Response{}, ErrInvalidMultiplier
	}
	expected := m.Exp(commitment, ch.Exponent)
	product := new(saferith.Nat).ModMul(expected, reduced, m.Modulus)
	return Response{Product: product}, nil
}

// Verify recomputes the expected value Wᵉ from the stored commitment,
// strips the blinding multiplier from the response via its modular
// inverse, and compares.
//
// The check is pure: no state is read beyond the arguments and none is
// written. A false result is deterministic and cannot be fixed by
// resubmitting the same response.
func Verify(p *params.Parameters, commitment *saferith.Nat, ch Challenge, resp Response) (bool, error) {
	m := p.Modulus()

	expected := m.Exp(commitment, ch.Exponent)

	invMul, err := m.Inverse(ch.Multiplier)
	if err != nil {
		return false, ErrInvalidMultiplier
	}

	recovered := new(saferith.Nat).ModMul(resp.Product, invMul, m.Modulus)
	return recovered.Eq(expected) == 1, nil
}

type challengeMarshal struct {
	E, M *saferith.Nat
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (ch Challenge) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(challengeMarshal{E: ch.Exponent, M: ch.Multiplier})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (ch *Challenge) UnmarshalBinary(data []byte) error {
	var cm challengeMarshal
	if err := cbor.Unmarshal(data, &cm); err != nil {
		return err
	}
	if cm.E == nil || cm.M == nil {
		return errors.New("challenge: missing field in encoded challenge")
	}
	ch.Exponent, ch.Multiplier = cm.E, cm.M
	return nil
}

type responseMarshal struct {
	R *saferith.Nat
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r Response) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(responseMarshal{R: r.Product})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *Response) UnmarshalBinary(data []byte) error {
	var rm responseMarshal
	if err := cbor.Unmarshal(data, &rm); err != nil {
		return err
	}
	if rm.R == nil {
		return errors.New("challenge: missing product in encoded response")
	}
	r.Product = rm.R
	return nil
}
