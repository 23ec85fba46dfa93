package app

import (
	"context"
	"encoding/json"
	"io/ioutil"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
)

// Genesis file format
type Genesis struct {
	ChainID    string           `json:"chain_id"`
	AppOptions registry.Options `json:"app_options"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "cannot parse genesis: %s", err)
	}
	return gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...registry.Initializer) registry.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []registry.Initializer
}

// FromGenesis passes the options to every initializer in order and
// collects their events.
func (c chainInitializer) FromGenesis(ctx context.Context, opts registry.Options, info registry.BlockInfo, kv registry.KVStore) ([]registry.Event, error) {
	var events []registry.Event
	for _, i := range c.inits {
		ev, err := i.FromGenesis(ctx, opts, info, kv)
		if err != nil {
			return nil, err
		}
		events = append(events, ev...)
	}
	return events, nil
}
