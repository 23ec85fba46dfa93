package app

import (
	"context"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ registry.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (Recovery) Check(ctx context.Context, info registry.BlockInfo, store registry.KVStore, tx registry.Tx, next registry.Checker) (_ *registry.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, info, store, tx)
}

// Deliver turns panics into normal errors
func (Recovery) Deliver(ctx context.Context, info registry.BlockInfo, store registry.KVStore, tx registry.Tx, next registry.Deliverer) (_ *registry.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, info, store, tx)
}
