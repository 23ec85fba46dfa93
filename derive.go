package registry

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/decentralwatch/registry/errors"
)

const (
	// MaxSeeds is the maximum number of seeds of one derivation. The nonce
	// counts as a seed, so callers can pass at most MaxSeeds-1.
	MaxSeeds = 16

	// MaxSeedLen is the maximum length of a single seed.
	MaxSeedLen = 32
)

// addressMarker is appended to every derivation input so that a derived
// address can never be confused with a hash computed for another purpose.
var addressMarker = []byte("ProgramDerivedAddress")

// DeriveAddress computes the record address of given seeds and nonce within
// the namespace of the program.
//
// The address is
//   sha256(seeds... || nonce || program || "ProgramDerivedAddress")
// and it is valid only when it is not a point of the ed25519 curve, so that
// no private key can exist for it. ErrInput is returned for an invalid
// address or for seeds exceeding the limits.
func DeriveAddress(program Identity, nonce byte, seeds ...[]byte) (Address, error) {
	if err := checkSeeds(seeds); err != nil {
		return Address{}, err
	}
	addr := hashAddress(program, nonce, seeds)
	if isOnCurve(addr[:]) {
		return Address{}, errors.Wrapf(errors.ErrInput, "nonce %d derives a curve point", nonce)
	}
	return addr, nil
}

// FindAddress searches for the first nonce, starting from 255 and going down,
// for which seeds produce a valid address. It returns the address together
// with the nonce that must be stored in the record to later verify it.
func FindAddress(program Identity, seeds ...[]byte) (Address, byte, error) {
	if err := checkSeeds(seeds); err != nil {
		return Address{}, 0, err
	}
	for nonce := 255; nonce > 0; nonce-- {
		addr := hashAddress(program, byte(nonce), seeds)
		if !isOnCurve(addr[:]) {
			return addr, byte(nonce), nil
		}
	}
	return Address{}, 0, errors.Wrap(errors.ErrState, "no valid nonce for the seeds")
}

// VerifyAddress returns nil if seeds together with the stored nonce derive
// the expected address.
func VerifyAddress(program Identity, expected Address, nonce byte, seeds ...[]byte) error {
	addr, err := DeriveAddress(program, nonce, seeds...)
	if err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	if !addr.Equals(expected) {
		return errors.Wrapf(errors.ErrState, "address %s does not match derived %s", expected, addr)
	}
	return nil
}

func checkSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds-1 {
		return errors.Wrapf(errors.ErrInput, "too many seeds: %d and the nonce", len(seeds))
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLen {
			return errors.Wrapf(errors.ErrInput, "seed %d too long: %d", i, len(s))
		}
	}
	return nil
}

func hashAddress(program Identity, nonce byte, seeds [][]byte) Address {
	h := sha256.New()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write([]byte{nonce})
	h.Write(program[:])
	h.Write(addressMarker)

	var addr Address
	copy(addr[:], h.Sum(nil))
	return addr
}

// isOnCurve returns true if given bytes are a valid compressed ed25519 point.
func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
