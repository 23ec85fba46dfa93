package registry

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"
	"github.com/decentralwatch/registry/errors"
)

// KeySize is the size of an identity key and of a record address.
const KeySize = 32

// Identity is a public key identifying a principal: the authority, the hub or
// a validator owner.
//
// An identity is serialized as base58 text, the same way ledger wallets
// display it.
type Identity [KeySize]byte

// ParseIdentity decodes a base58 encoded identity.
func ParseIdentity(s string) (Identity, error) {
	var id Identity
	raw := base58.Decode(s)
	if len(raw) != KeySize {
		return id, errors.Wrapf(errors.ErrInput, "identity %q must decode to %d bytes", s, KeySize)
	}
	copy(id[:], raw)
	return id, nil
}

// IdentityFromBytes copies given key into an identity.
func IdentityFromBytes(raw []byte) (Identity, error) {
	var id Identity
	if len(raw) != KeySize {
		return id, errors.Wrapf(errors.ErrInput, "identity must be %d bytes, got %d", KeySize, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// IsZero returns true for the default, unset identity.
func (i Identity) IsZero() bool {
	return i == Identity{}
}

// Equals checks if two identities are the same
func (i Identity) Equals(o Identity) bool {
	return i == o
}

// Validate returns an error if the identity is not set.
func (i Identity) Validate() error {
	if i.IsZero() {
		return errors.Wrap(errors.ErrEmpty, "identity")
	}
	return nil
}

// Bytes returns a copy of the key.
func (i Identity) Bytes() []byte {
	return append([]byte(nil), i[:]...)
}

// String returns the base58 representation.
func (i Identity) String() string {
	return base58.Encode(i[:])
}

func (i Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Identity) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	id, err := ParseIdentity(enc)
	if err != nil {
		return err
	}
	*i = id
	return nil
}

// Address is a record address, the deterministic location of a record in
// the store. Addresses are created with DeriveAddress or FindAddress.
type Address [KeySize]byte

// ParseAddress decodes a base58 encoded address.
func ParseAddress(s string) (Address, error) {
	id, err := ParseIdentity(s)
	if err != nil {
		return Address{}, errors.Wrap(err, "address")
	}
	return Address(id), nil
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return a == b
}

// Bytes returns a copy of the address.
func (a Address) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

// String returns the base58 representation.
func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var id Identity
	if err := id.UnmarshalJSON(raw); err != nil {
		return err
	}
	*a = Address(id)
	return nil
}
