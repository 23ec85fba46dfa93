package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/registrytest"
	"github.com/decentralwatch/registry/store/iavl"
	"github.com/decentralwatch/registry/x"
	"github.com/decentralwatch/registry/x/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchRegistry(t *testing.T) {
	program := watch.MustProgramID(watch.DefaultProgramID)
	hub := registrytest.NewIdentity()
	owner := registrytest.NewIdentity()

	router := NewRouter()
	watch.RegisterRoutes(router, x.ContextAuth{}, program)
	queries := registry.NewQueryRouter()
	queries.RegisterAll(watch.RegisterQuery(program))

	sink := &recordingSink{}
	e := NewExecutor(iavl.NewCommitStore("", "watch"),
		ChainDecorators(NewLogging(), NewRecovery()).WithHandler(router), queries).
		WithSink(sink).
		WithInitializer(&watch.Initializer{Program: program})

	genesis := registry.Options{
		"watch": json.RawMessage(`{"authority": "` + hub.String() + `"}`),
	}
	events, err := e.InitChain(context.Background(), genesis, registrytest.BlockInfo(0))
	require.NoError(t, err)
	assert.Equal(t, []registry.Event{watch.StateInitialized{Authority: hub}}, events)

	ctx := x.WithSigners(context.Background(), hub)
	tx := &registrytest.Tx{Msg: &watch.UpsertValidatorMsg{Owner: owner, Status: watch.StatusActive}}
	_, err = e.Deliver(ctx, registrytest.BlockInfo(5), tx)
	require.NoError(t, err)
	_, err = e.Commit()
	require.NoError(t, err)

	pause := true
	_, err = e.Deliver(ctx, registrytest.BlockInfo(6), &registrytest.Tx{Msg: &watch.SetParamsMsg{Paused: &pause}})
	require.NoError(t, err)

	_, err = e.Deliver(ctx, registrytest.BlockInfo(7), tx)
	assert.True(t, watch.ErrPaused.Is(err))

	stranger := x.WithSigners(context.Background(), registrytest.NewIdentity())
	_, err = e.Deliver(stranger, registrytest.BlockInfo(7), tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	var got *watch.ValidatorRecord
	err = e.View(func(db registry.ReadOnlyKVStore) error {
		var err error
		got, err = watch.NewValidatorBucket(program).GetByOwner(db, owner)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), got.LastActiveSlot)
	assert.Equal(t, watch.StatusActive, got.Status)

	names := make([]string, len(sink.events))
	for i, ev := range sink.events {
		names[i] = ev.EventName()
	}
	assert.Equal(t, []string{"StateInitialized", "ValidatorUpserted", "ParamsChanged"}, names)

	addr, _, err := watch.StateAddress(program)
	require.NoError(t, err)
	models, err := e.Query("/watch/state", registry.KeyQueryMod, addr[:])
	require.NoError(t, err)
	require.Len(t, models, 1)
	var conf watch.ConfigRecord
	require.NoError(t, conf.Unmarshal(models[0].Value))
	assert.True(t, conf.Paused)
	assert.Equal(t, hub, conf.Authority)
}
