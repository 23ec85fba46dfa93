package watch

import (
	"github.com/decentralwatch/registry"
)

// DefaultProgramID is the namespace all record addresses are derived in,
// unless configured otherwise.
const DefaultProgramID = "J5B8jUqhDgJg1eAEnRT2KFEMExSWS8wSy9YufqLwwUxi"

var (
	stateSeed     = []byte("state")
	validatorSeed = []byte("validator")
)

// MustProgramID parses a base58 program id and panics on failure. Use it
// for compiled-in constants only.
func MustProgramID(s string) registry.Identity {
	id, err := registry.ParseIdentity(s)
	if err != nil {
		panic(err)
	}
	return id
}

// StateAddress returns the address of the configuration singleton together
// with the nonce that derives it.
func StateAddress(program registry.Identity) (registry.Address, byte, error) {
	return registry.FindAddress(program, stateSeed)
}

// ValidatorAddress returns the address of the record of given owner together
// with the nonce that derives it. Distinct owners always get distinct
// addresses.
func ValidatorAddress(program, owner registry.Identity) (registry.Address, byte, error) {
	return registry.FindAddress(program, validatorSeed, owner[:])
}

func verifyStateAddress(program registry.Identity, addr registry.Address, nonce byte) error {
	return registry.VerifyAddress(program, addr, nonce, stateSeed)
}

func verifyValidatorAddress(program registry.Identity, addr registry.Address, nonce byte, owner registry.Identity) error {
	return registry.VerifyAddress(program, addr, nonce, validatorSeed, owner[:])
}
