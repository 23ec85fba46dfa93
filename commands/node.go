package commands

import (
	"context"
	"os"
	"time"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/app"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/sink"
	"github.com/decentralwatch/registry/store/iavl"
	"github.com/decentralwatch/registry/x"
	"github.com/decentralwatch/registry/x/watch"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// node is a local registry instance backed by the store in the data
// directory. Every command opens it, executes at most one message at the
// next height and commits.
type node struct {
	cfg     Config
	program registry.Identity
	store   iavl.CommitStore
	exec    *app.Executor
	logger  log.Logger
	prom    *prometheus.Registry
	closers []func()
}

func openNode(ctx context.Context, cfg Config, logger log.Logger) (*node, error) {
	program, err := cfg.Program()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DBDir, 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "data dir: %s", err)
	}

	n := &node{
		cfg:     cfg,
		program: program,
		logger:  logger,
		prom:    prometheus.NewRegistry(),
	}
	n.store = iavl.NewCommitStore(cfg.DBDir, "watch")
	n.closers = append(n.closers, n.store.Close)
	if err := n.store.LoadLatestVersion(); err != nil {
		n.Close()
		return nil, err
	}

	sinks := sink.Multi{sink.LogSink{Logger: logger.With("module", "events")}}
	if len(cfg.Kafka.Brokers) > 0 {
		k, err := sink.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			n.Close()
			return nil, err
		}
		n.closers = append(n.closers, k.Close)
		sinks = append(sinks, k)
	}
	if cfg.Redis.URL != "" {
		r, err := sink.NewRedisSink(ctx, cfg.Redis.URL, cfg.Redis.Channel)
		if err != nil {
			n.Close()
			return nil, err
		}
		n.closers = append(n.closers, func() { r.Close() })
		sinks = append(sinks, r)
	}

	router := app.NewRouter()
	watch.RegisterRoutes(router, x.ContextAuth{}, program)
	queries := registry.NewQueryRouter()
	queries.RegisterAll(watch.RegisterQuery(program))

	handler := app.ChainDecorators(
		app.NewLogging(),
		app.NewRecovery(),
	).WithHandler(router)

	n.exec = app.NewExecutor(n.store, handler, queries).
		WithLogger(logger).
		WithSink(sinks).
		WithMetrics(app.NewMetrics(n.prom)).
		WithInitializer(&watch.Initializer{Program: program})
	return n, nil
}

// nextBlock returns the position of the next execution.
func (n *node) nextBlock() (registry.BlockInfo, error) {
	id, err := n.store.LatestVersion()
	if err != nil {
		return registry.BlockInfo{}, err
	}
	return registry.NewBlockInfo(uint64(id.Version+1), time.Now().UTC(), n.cfg.ChainID, n.logger.With("module", "state"))
}

// deliver executes the message signed by signer and commits the change. With
// check set, the message is only validated.
func (n *node) deliver(ctx context.Context, signer registry.Identity, msg registry.Msg, check bool) (*registry.DeliverResult, error) {
	info, err := n.nextBlock()
	if err != nil {
		return nil, err
	}
	ctx = x.WithSigners(ctx, signer)
	tx := &Tx{Msg: msg}
	if check {
		res, err := n.exec.Check(ctx, info, tx)
		if err != nil {
			return nil, err
		}
		return &registry.DeliverResult{Log: res.Log}, nil
	}
	res, err := n.exec.Deliver(ctx, info, tx)
	if err != nil {
		return nil, err
	}
	if _, err := n.exec.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close releases all resources in reverse order of acquisition.
func (n *node) Close() {
	for i := len(n.closers) - 1; i >= 0; i-- {
		n.closers[i]()
	}
}

// Tx is a transaction submitted from the command line. The signer is
// authenticated by the possession of the key file.
type Tx struct {
	Msg registry.Msg
}

var _ registry.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (registry.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	return tx.Msg, nil
}
