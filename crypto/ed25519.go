package crypto

import (
	"crypto/rand"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions derived from identity keys.
const ExtensionName = "sigs"

// PrivateKey is an ed25519 identity key.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// GenPrivateKey returns a random new private key.
func GenPrivateKey() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{key: priv}
}

// PrivateKeyFromSeed deterministically generates a private key from a
// 32 byte seed. Use it for deterministic keys in test cases or when an
// external source of randomness is available.
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Seed returns the seed this key was derived from.
func (p *PrivateKey) Seed() []byte {
	return p.key.Seed()
}

// PublicKey returns the corresponding public key.
func (p *PrivateKey) PublicKey() PublicKey {
	return PublicKey(p.key.Public().(ed25519.PublicKey))
}

// PublicKey is an ed25519 public identity key.
type PublicKey []byte

// Condition encodes the public key into a condition.
func (p PublicKey) Condition() heirloom.Condition {
	return heirloom.NewCondition(ExtensionName, "ed25519", p)
}

// Address returns the address of the condition of this key.
func (p PublicKey) Address() heirloom.Address {
	return p.Condition().Address()
}

// Sign returns a signature of message created with this key. Transactions are
// not signed, heirloomd uses it to attest the genesis file it writes.
func (p *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(p.key, message)
}

// Verify returns true if sig is a valid signature of message.
func (p PublicKey) Verify(message, sig []byte) bool {
	if len(p) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}
