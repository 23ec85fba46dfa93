package app

import (
	"context"
	"sync"
	"time"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Executor runs messages one at a time on top of a committed store.
//
// Every message is executed inside of a fresh cache wrap. The cache is
// written to the store only if the handler succeeds, otherwise it is
// discarded, so a failed message never leaves a partial change behind.
// Events are published to the sink after the changes were written. A
// failing sink is logged and does not revert the change.
type Executor struct {
	mu sync.Mutex

	store   registry.CommitKVStore
	handler registry.Handler
	queries registry.QueryRouter

	initializer registry.Initializer
	sink        registry.EventSink
	metrics     *Metrics
	logger      log.Logger
}

// NewExecutor returns an executor dispatching messages to given handler.
func NewExecutor(store registry.CommitKVStore, handler registry.Handler, queries registry.QueryRouter) *Executor {
	return &Executor{
		store:   store,
		handler: handler,
		queries: queries,
		logger:  log.NewNopLogger(),
	}
}

// WithLogger sets the logger used for everything that is not related to a
// single message.
func (e *Executor) WithLogger(logger log.Logger) *Executor {
	e.logger = logger.With("module", "executor")
	return e
}

// WithSink sets where the events are published.
func (e *Executor) WithSink(sink registry.EventSink) *Executor {
	e.sink = sink
	return e
}

// WithMetrics enables metrics collection.
func (e *Executor) WithMetrics(m *Metrics) *Executor {
	e.metrics = m
	return e
}

// WithInitializer sets the genesis initializer used by InitChain.
func (e *Executor) WithInitializer(i registry.Initializer) *Executor {
	e.initializer = i
	return e
}

// InitChain loads the genesis options into the store.
func (e *Executor) InitChain(ctx context.Context, opts registry.Options, info registry.BlockInfo) ([]registry.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initializer == nil {
		return nil, nil
	}
	cache := e.store.CacheWrap()
	events, err := e.initializer.FromGenesis(ctx, opts, info, cache)
	if err != nil {
		cache.Discard()
		return nil, errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	e.publish(ctx, info, events)
	return events, nil
}

// Check runs the message without writing anything.
func (e *Executor) Check(ctx context.Context, info registry.BlockInfo, tx registry.Tx) (res *registry.CheckResult, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	defer func() { e.metrics.observe(registry.GetPath(tx), "check", start, err) }()

	cache := e.store.CacheWrap()
	defer cache.Discard()

	defer errors.Recover(&err)
	return e.handler.Check(ctx, info, cache, tx)
}

// Deliver executes the message and writes its changes to the store. The
// changes are persisted with the next Commit.
func (e *Executor) Deliver(ctx context.Context, info registry.BlockInfo, tx registry.Tx) (*registry.DeliverResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	res, err := e.deliver(ctx, info, tx)
	e.metrics.observe(registry.GetPath(tx), "deliver", start, err)
	if err != nil {
		return nil, err
	}
	e.publish(ctx, info, res.Events)
	return res, nil
}

func (e *Executor) deliver(ctx context.Context, info registry.BlockInfo, tx registry.Tx) (*registry.DeliverResult, error) {
	cache := e.store.CacheWrap()
	res, err := safeDeliver(ctx, info, cache, tx, e.handler)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if res == nil {
		res = &registry.DeliverResult{}
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}

func safeDeliver(ctx context.Context, info registry.BlockInfo, db registry.KVStore, tx registry.Tx, h registry.Deliverer) (_ *registry.DeliverResult, err error) {
	defer errors.Recover(&err)
	return h.Deliver(ctx, info, db, tx)
}

func (e *Executor) publish(ctx context.Context, info registry.BlockInfo, events []registry.Event) {
	if e.sink == nil || len(events) == 0 {
		return
	}
	if err := e.sink.Emit(ctx, info, events...); err != nil {
		e.logger.Error("cannot publish events", "height", info.Height(), "count", len(events), "err", err)
		if e.metrics != nil {
			e.metrics.SinkFailures.Inc()
		}
		return
	}
	if e.metrics != nil {
		for _, ev := range events {
			e.metrics.EventsEmitted.WithLabelValues(ev.EventName()).Inc()
		}
	}
}

// Commit persists all delivered changes as a new version.
func (e *Executor) Commit() (registry.CommitID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, err := e.store.Commit()
	if err != nil {
		return id, err
	}
	e.logger.Info("commit", "version", id.Version, "hash", id.Hash)
	if e.metrics != nil {
		e.metrics.CommittedBlock.Set(float64(id.Version))
	}
	return id, nil
}

// Query reads the latest written state using the handler registered for
// given path.
func (e *Executor) Query(path, mod string, data []byte) ([]registry.Model, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache := e.store.CacheWrap()
	defer cache.Discard()
	return e.queries.Query(cache, path, mod, data)
}

// View runs fn with read access to the latest written state.
func (e *Executor) View(fn func(db registry.ReadOnlyKVStore) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache := e.store.CacheWrap()
	defer cache.Discard()
	return fn(cache)
}
