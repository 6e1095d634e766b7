package main

import (
	"crypto/rand"
	"fmt"

	"github.com/cronokirby/saferith"
	"golang.org/x/sync/errgroup"

	"github.com/veridge/devauth/pkg/challenge"
	"github.com/veridge/devauth/pkg/device"
	"github.com/veridge/devauth/pkg/math/sample"
	"github.com/veridge/devauth/pkg/params"
	"github.com/veridge/devauth/pkg/registry"
	"github.com/veridge/devauth/pkg/verifier"
)

// the secp256k1 field prime; any large prime works here
const primeHex = "fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"

func setup() (*params.Parameters, error) {
	p, err := new(saferith.Nat).SetHex(primeHex)
	if err != nil {
		return nil, err
	}
	return params.New(new(saferith.Nat).SetUint64(5), p, params.CheckPrime())
}

// enroll plays the device side of registration: pick a secret, publish
// only the commitment.
func enroll(v *verifier.Verifier, id device.ID) (*saferith.Nat, error) {
	secret := sample.Secret(rand.Reader, v.Params().Modulus().Modulus)
	w := challenge.Commit(v.Params(), secret)
	if err := v.Register(id, w); err != nil {
		return nil, err
	}
	return w, nil
}

// authenticate runs one full challenge-response exchange.
func authenticate(v *verifier.Verifier, id device.ID, w *saferith.Nat) error {
	ch := v.IssueChallenge(rand.Reader)
	resp, err := challenge.Respond(v.Params(), w, ch)
	if err != nil {
		return err
	}
	ok, err := v.Verify(id, ch, resp)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: verification failed", id)
	}
	fmt.Printf("%s: verified\n", id)
	return nil
}

func run() error {
	p, err := setup()
	if err != nil {
		return err
	}
	v := verifier.New(p, registry.NewMemory())

	devices := []device.ID{"sensor-a", "sensor-b", "sensor-c"}
	commitments := make(map[device.ID]*saferith.Nat, len(devices))
	for _, id := range devices {
		w, err := enroll(v, id)
		if err != nil {
			return err
		}
		commitments[id] = w
	}

	// verifications for distinct identities are independent and can
	// run in parallel
	var g errgroup.Group
	for _, id := range devices {
		id := id
		g.Go(func() error {
			return authenticate(v, id, commitments[id])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// a tampered response is rejected
	id := devices[0]
	ch := v.IssueChallenge(rand.Reader)
	resp, err := challenge.Respond(v.Params(), commitments[id], ch)
	if err != nil {
		return err
	}
	mod := v.Params().Modulus().Modulus
	resp.Product = new(saferith.Nat).ModAdd(resp.Product, new(saferith.Nat).SetUint64(1), mod)
	ok, err := v.Verify(id, ch, resp)
	if err != nil {
		return err
	}
	fmt.Printf("%s with tampered response: verified=%v\n", id, ok)
	return nil
}
