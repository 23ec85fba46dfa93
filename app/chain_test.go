package app

import (
	"context"
	"testing"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/registrytest"
	"github.com/decentralwatch/registry/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingDecorator counts the calls and optionally fails the Deliver.
type countingDecorator struct {
	calls      int
	deliverErr error
}

func (d *countingDecorator) Check(ctx context.Context, info registry.BlockInfo, db registry.KVStore, tx registry.Tx, next registry.Checker) (*registry.CheckResult, error) {
	d.calls++
	return next.Check(ctx, info, db, tx)
}

func (d *countingDecorator) Deliver(ctx context.Context, info registry.BlockInfo, db registry.KVStore, tx registry.Tx, next registry.Deliverer) (*registry.DeliverResult, error) {
	d.calls++
	if d.deliverErr != nil {
		return nil, d.deliverErr
	}
	return next.Deliver(ctx, info, db, tx)
}

func TestChain(t *testing.T) {
	c1 := &countingDecorator{}
	c2 := &countingDecorator{}
	var nilDecorator *countingDecorator
	h := &registrytest.Handler{}

	stack := ChainDecorators(c1, nilDecorator).Chain(NewRecovery(), c2).WithHandler(h)

	ctx := context.Background()
	info := registrytest.BlockInfo(1)
	tx := &registrytest.Tx{Msg: &registrytest.Msg{RoutePath: "test/chain"}}

	_, err := stack.Check(ctx, info, store.MemStore(), tx)
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, info, store.MemStore(), tx)
	require.NoError(t, err)
	assert.Equal(t, 2, c1.calls)
	assert.Equal(t, 2, c2.calls)
	assert.Equal(t, 2, h.CallCount())

	c2.deliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, info, store.MemStore(), tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestRecovery(t *testing.T) {
	h := &registrytest.Handler{DeliverPanic: "boom"}
	stack := ChainDecorators(NewRecovery(), NewLogging()).WithHandler(h)

	tx := &registrytest.Tx{Msg: &registrytest.Msg{RoutePath: "test/panic"}}
	_, err := stack.Deliver(context.Background(), registrytest.BlockInfo(1), store.MemStore(), tx)
	require.Error(t, err)
	assert.True(t, errors.ErrPanic.Is(err))
}
