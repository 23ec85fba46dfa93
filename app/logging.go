package app

import (
	"context"
	"time"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
)

// Logging is a decorator that logs the outcome of every message together
// with its execution time.
type Logging struct{}

var _ registry.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs the result of the dry run at debug level.
func (Logging) Check(ctx context.Context, info registry.BlockInfo, store registry.KVStore, tx registry.Tx, next registry.Checker) (*registry.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, info, store, tx)
	logger := info.Logger().With("call", "check", "path", registry.GetPath(tx), "duration", time.Since(start))
	if err != nil {
		logger.Debug("check failed", "code", errors.ABCICode(err), "err", err)
	} else {
		logger.Debug("check ok")
	}
	return res, err
}

// Deliver logs the result of the execution.
func (Logging) Deliver(ctx context.Context, info registry.BlockInfo, store registry.KVStore, tx registry.Tx, next registry.Deliverer) (*registry.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, info, store, tx)
	logger := info.Logger().With("call", "deliver", "path", registry.GetPath(tx), "height", info.Height(), "duration", time.Since(start))
	if err != nil {
		logger.Error("deliver failed", "code", errors.ABCICode(err), "err", err)
	} else {
		logger.Info("deliver ok")
	}
	return res, err
}
