package jwtx

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/aussiebroadwan/rbac/pkg/cryptox"
)

const maxKeys = 10

// KeyManager owns the signing keys of this instance and the matching public
// key set.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	signers []Signer
}

type KeyManagerOptions struct {
	Issuer   string
	Audience []string // empty disables audience checks

	// NumKeys defaults to 3 and is capped at 10.
	NumKeys int
}

// NewEphemeralKeyManager generates in-memory Ed25519 keys. Tokens do not
// survive a restart.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: issuer is required")
	}

	n := opts.NumKeys
	if n <= 0 {
		n = 3
	}
	n = min(n, maxKeys)

	km := &KeyManager{KeySet: NewKeySet()}
	for i := range n {
		key, err := cryptox.NewSigningKey()
		if err != nil {
			return nil, err
		}
		signer, err := NewSignerEdDSA("rbac-"+key.ID, key.PEM)
		if err != nil {
			return nil, fmt.Errorf("jwtx: signer %d: %w", i+1, err)
		}
		if err := km.KeySet.Add(signer.PublicJWK()); err != nil {
			return nil, fmt.Errorf("jwtx: publish signer %d: %w", i+1, err)
		}
		km.signers = append(km.signers, signer)
	}

	km.Verifier = NewVerifierEdDSA(km.KeySet, opts.Issuer, opts.Audience)
	return km, nil
}

// Signer picks one of the signing keys at random.
func (km *KeyManager) Signer() Signer {
	return km.signers[rand.IntN(len(km.signers))]
}

func (km *KeyManager) NumSigners() int { return len(km.signers) }

func (km *KeyManager) IsReady() bool { return km.KeySet.IsReady() }
