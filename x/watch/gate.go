package watch

import (
	"context"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/x"
)

// requireAuthority loads the configuration and ensures the current authority
// signed the transaction.
func requireAuthority(ctx context.Context, auth x.Authenticator, db registry.KVStore, configs *ConfigBucket) (*ConfigRecord, error) {
	conf, err := configs.GetState(db)
	if err != nil {
		return nil, err
	}
	if !auth.HasSigner(ctx, conf.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signer is not the authority")
	}
	return conf, nil
}

// requireNotPaused is checked first by every validator mutation.
func requireNotPaused(conf *ConfigRecord) error {
	if conf.Paused {
		return errors.Wrap(ErrPaused, "validator updates are suspended")
	}
	return nil
}
