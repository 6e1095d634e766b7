package verifier

import (
	"io"

	"github.com/cronokirby/saferith"

	"github.com/veridge/devauth/pkg/challenge"
	"github.com/veridge/devauth/pkg/device"
	"github.com/veridge/devauth/pkg/hash"
	"github.com/veridge/devauth/pkg/math/sample"
	"github.com/veridge/devauth/pkg/params"
	"github.com/veridge/devauth/pkg/registry"
)

// Verifier ties the shared group parameters to a commitment registry
// and exposes the two caller-facing operations: registration and
// challenge verification.
//
// Verifier itself holds no mutable state; all state lives in the
// registry, so a single Verifier is safe for concurrent use as long as
// the registry is.
type Verifier struct {
	params   *params.Parameters
	registry registry.Registry
}

// New creates a Verifier over the given parameters and registry.
func New(p *params.Parameters, r registry.Registry) *Verifier {
	return &Verifier{params: p, registry: r}
}

// Params returns the group parameters the verifier was initialized
// with.
func (v *Verifier) Params() *params.Parameters {
	return v.params
}

// Register stores the commitment for the calling identity, replacing
// any previous one. The commitment is deliberately not validated: the
// scheme accepts any value and a dishonest registration only hurts the
// registrant, who then cannot answer challenges.
func (v *Verifier) Register(id device.ID, commitment *saferith.Nat) error {
	return v.registry.Register(id, commitment)
}

// Verify checks a device's response against its stored commitment.
// It returns registry.ErrNotRegistered when the identity never
// registered and challenge.ErrInvalidMultiplier for a challenge whose
// blind cannot be removed.
func (v *Verifier) Verify(id device.ID, ch challenge.Challenge, resp challenge.Response) (bool, error) {
	w, err := v.registry.Lookup(id)
	if err != nil {
		return false, err
	}
	return challenge.Verify(v.params, w, ch, resp)
}

// IssueChallenge samples a fresh random challenge: an exponent in
// [0, p) and a multiplier in ℤₚˣ, so the blind is always removable.
func (v *Verifier) IssueChallenge(rand io.Reader) challenge.Challenge {
	mod := v.params.Modulus().Modulus
	return challenge.Challenge{
		Exponent:   sample.ModN(rand, mod),
		Multiplier: sample.UnitModN(rand, mod),
	}
}

// DeriveChallenge derives a challenge deterministically from the group
// parameters, the device identity and a caller-chosen nonce. The same
// inputs always yield the same challenge; distinct nonces yield
// independent ones. Note the verifier stays stateless: nothing stops a
// caller from replaying a nonce.
func (v *Verifier) DeriveChallenge(id device.ID, nonce []byte) (challenge.Challenge, error) {
	h := hash.New("devauth-challenge")
	if err := h.WriteAny(v.params, id, nonce); err != nil {
		return challenge.Challenge{}, err
	}
	digest := h.Digest()
	mod := v.params.Modulus().Modulus
	return challenge.Challenge{
		Exponent:   sample.ModN(digest, mod),
		Multiplier: sample.UnitModN(digest, mod),
	}, nil
}
