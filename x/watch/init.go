package watch

import (
	"context"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct {
	Program registry.Identity
}

var _ registry.Initializer = (*Initializer)(nil)

// FromGenesis initializes the configuration if the genesis declares the
// authority. The configured paused flag is applied right after.
func (i *Initializer) FromGenesis(ctx context.Context, opts registry.Options, info registry.BlockInfo, kv registry.KVStore) ([]registry.Event, error) {
	var conf struct {
		Authority *registry.Identity `json:"authority"`
		Paused    bool               `json:"paused"`
	}
	if err := opts.ReadOptions("watch", &conf); err != nil {
		return nil, err
	}
	if conf.Authority == nil {
		return nil, nil
	}
	if conf.Authority.IsZero() {
		return nil, errors.Wrap(errors.ErrInput, "genesis authority cannot be zero")
	}

	configs := NewConfigBucket(i.Program)
	switch ok, err := configs.Exists(kv); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrap(ErrAlreadyInitialized, "genesis")
	}

	res, err := initState(kv, configs, *conf.Authority)
	if err != nil {
		return nil, err
	}
	events := res.Events
	if conf.Paused {
		state, err := configs.GetState(kv)
		if err != nil {
			return nil, err
		}
		state.Paused = true
		if _, err := configs.Save(kv, state); err != nil {
			return nil, err
		}
		events = append(events, ParamsChanged{Authority: state.Authority, Paused: true})
	}
	return events, nil
}
