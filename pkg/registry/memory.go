package registry

import (
	"sync"

	"github.com/cronokirby/saferith"

	"github.com/veridge/devauth/pkg/device"
)

// Memory is an in-process Registry backed by a mutex-guarded map.
// Commitments are copied on the way in and out, so callers can keep
// mutating their Nat values without racing the store.
type Memory struct {
	mu          sync.RWMutex
	commitments map[device.ID]*saferith.Nat
}

// NewMemory creates an empty in-memory registry.
func NewMemory() *Memory {
	return &Memory{
		commitments: make(map[device.ID]*saferith.Nat),
	}
}

// Register implements Registry.
func (r *Memory) Register(id device.ID, commitment *saferith.Nat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.commitments[id] = commitment.Clone()
	return nil
}

// Lookup implements Registry.
func (r *Memory) Lookup(id device.ID) (*saferith.Nat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.commitments[id]
	if !ok {
		return nil, ErrNotRegistered
	}
	return w.Clone(), nil
}
