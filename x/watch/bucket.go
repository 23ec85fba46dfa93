package watch

import (
	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/orm"
)

// ConfigBucket stores the configuration singleton under its derived
// address.
type ConfigBucket struct {
	orm.ModelBucket
	program registry.Identity
}

// NewConfigBucket returns a bucket deriving the address within the
// namespace of given program.
func NewConfigBucket(program registry.Identity) *ConfigBucket {
	return &ConfigBucket{
		ModelBucket: orm.NewModelBucket("config"),
		program:     program,
	}
}

// Exists returns true if the configuration was initialized.
func (b *ConfigBucket) Exists(db registry.ReadOnlyKVStore) (bool, error) {
	addr, _, err := StateAddress(b.program)
	if err != nil {
		return false, err
	}
	switch err := b.Has(db, addr[:]); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// GetState returns the configuration. ErrNotFound is returned if it was not
// initialized yet. ErrState is returned if the stored nonce does not derive
// the address the record was found under.
func (b *ConfigBucket) GetState(db registry.ReadOnlyKVStore) (*ConfigRecord, error) {
	addr, _, err := StateAddress(b.program)
	if err != nil {
		return nil, err
	}
	var conf ConfigRecord
	if err := b.One(db, addr[:], &conf); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	if err := verifyStateAddress(b.program, addr, conf.Nonce); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	return &conf, nil
}

// Save writes the configuration under its derived address.
func (b *ConfigBucket) Save(db registry.KVStore, conf *ConfigRecord) (registry.Address, error) {
	addr, nonce, err := StateAddress(b.program)
	if err != nil {
		return addr, err
	}
	if conf.Nonce != nonce {
		return addr, errors.Wrapf(errors.ErrState, "config nonce %d, want %d", conf.Nonce, nonce)
	}
	return addr, b.Put(db, addr[:], conf)
}

// ValidatorBucket stores validator records under the address derived from
// the owner.
type ValidatorBucket struct {
	orm.ModelBucket
	program registry.Identity
}

// NewValidatorBucket returns a bucket deriving addresses within the
// namespace of given program.
func NewValidatorBucket(program registry.Identity) *ValidatorBucket {
	return &ValidatorBucket{
		ModelBucket: orm.NewModelBucket("validators"),
		program:     program,
	}
}

// GetByOwner returns the record of given owner or ErrNotFound.
//
// The owner stored in the record must be the one the address was derived
// from, otherwise ErrState is returned.
func (b *ValidatorBucket) GetByOwner(db registry.ReadOnlyKVStore, owner registry.Identity) (*ValidatorRecord, error) {
	addr, _, err := ValidatorAddress(b.program, owner)
	if err != nil {
		return nil, err
	}
	return b.GetByAddress(db, addr, owner)
}

// GetByAddress loads the record stored under addr and ensures it belongs to
// given owner.
func (b *ValidatorBucket) GetByAddress(db registry.ReadOnlyKVStore, addr registry.Address, owner registry.Identity) (*ValidatorRecord, error) {
	var v ValidatorRecord
	if err := b.One(db, addr[:], &v); err != nil {
		return nil, errors.Wrapf(err, "validator %s", owner)
	}
	if !v.Owner.Equals(owner) {
		return nil, errors.Wrapf(errors.ErrState, "record at %s owned by %s, not %s", addr, v.Owner, owner)
	}
	if err := verifyValidatorAddress(b.program, addr, v.Nonce, owner); err != nil {
		return nil, errors.Wrapf(err, "validator %s", owner)
	}
	return &v, nil
}

// Save writes the record under the address derived from its owner.
func (b *ValidatorBucket) Save(db registry.KVStore, v *ValidatorRecord) (registry.Address, error) {
	addr, nonce, err := ValidatorAddress(b.program, v.Owner)
	if err != nil {
		return addr, err
	}
	if v.Nonce != nonce {
		return addr, errors.Wrapf(errors.ErrState, "validator nonce %d, want %d", v.Nonce, nonce)
	}
	return addr, b.Put(db, addr[:], v)
}
