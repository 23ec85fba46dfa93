package registrytest

import (
	"crypto/rand"

	"github.com/decentralwatch/registry"
	"golang.org/x/crypto/ed25519"
)

// Key is a generated ed25519 key pair.
type Key struct {
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// Identity returns the identity of the key owner.
func (k Key) Identity() registry.Identity {
	var id registry.Identity
	copy(id[:], k.Public)
	return id
}

// Sign signs the message with the private key.
func (k Key) Sign(msg []byte) []byte {
	return ed25519.Sign(k.Private, msg)
}

// NewKey generates a new random key pair. It panics if the system source of
// randomness is not available.
func NewKey() Key {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return Key{Public: pub, Private: priv}
}

// NewIdentity returns the identity of a newly generated key.
func NewIdentity() registry.Identity {
	return NewKey().Identity()
}

// SequenceIdentity returns a deterministic identity that is not backed by a
// key. Useful when the test needs a stable value, for example for sorting.
func SequenceIdentity(n byte) registry.Identity {
	var id registry.Identity
	for i := range id {
		id[i] = n
	}
	return id
}
