package registry

import (
	"errors"

	"github.com/cronokirby/saferith"

	"github.com/veridge/devauth/pkg/device"
)

// ErrNotRegistered is returned by Lookup when no commitment was ever
// stored for the identity. Absence is tracked explicitly; a stored
// commitment of zero is a present value, not a sentinel.
var ErrNotRegistered = errors.New("registry: device not registered")

// Registry stores one commitment per device identity.
//
// Register is an unconditional upsert: the commitment is not validated
// in any way and silently replaces a prior value. Implementations must
// make the per-identity upsert atomic, so a concurrent Lookup observes
// either the old or the new commitment, never a partial write.
type Registry interface {
	Register(id device.ID, commitment *saferith.Nat) error
	Lookup(id device.ID) (*saferith.Nat, error)
}
