package app

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/registrytest"
	"github.com/decentralwatch/registry/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	good := filepath.Join(dir, "good.json")
	require.NoError(t, ioutil.WriteFile(good, []byte(`{"chain_id": "watch-test", "app_options": {"watch": {"paused": true}}}`), 0600))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, ioutil.WriteFile(bad, []byte(`{"chain_id": `), 0600))

	gen, err := LoadGenesis(good)
	require.NoError(t, err)
	assert.Equal(t, "watch-test", gen.ChainID)
	var opts struct {
		Paused bool `json:"paused"`
	}
	require.NoError(t, gen.AppOptions.ReadOptions("watch", &opts))
	assert.True(t, opts.Paused)

	_, err = LoadGenesis(bad)
	assert.True(t, errors.ErrInput.Is(err))
	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.ErrInput.Is(err))
}

type initializerFunc func(registry.KVStore) ([]registry.Event, error)

func (fn initializerFunc) FromGenesis(ctx context.Context, opts registry.Options, info registry.BlockInfo, kv registry.KVStore) ([]registry.Event, error) {
	return fn(kv)
}

func TestChainInitializers(t *testing.T) {
	first := initializerFunc(func(kv registry.KVStore) ([]registry.Event, error) {
		return []registry.Event{registrytest.Event{Name: "first"}}, kv.Set([]byte("a"), []byte("1"))
	})
	second := initializerFunc(func(kv registry.KVStore) ([]registry.Event, error) {
		return []registry.Event{registrytest.Event{Name: "second"}}, nil
	})
	failing := initializerFunc(func(kv registry.KVStore) ([]registry.Event, error) {
		return nil, errors.ErrState
	})

	db := store.MemStore()
	events, err := ChainInitializers(first, second).FromGenesis(context.Background(), nil, registrytest.BlockInfo(0), db)
	require.NoError(t, err)
	assert.Equal(t, []registry.Event{registrytest.Event{Name: "first"}, registrytest.Event{Name: "second"}}, events)

	_, err = ChainInitializers(first, failing).FromGenesis(context.Background(), nil, registrytest.BlockInfo(0), db)
	assert.True(t, errors.ErrState.Is(err))
}
