package sink

import (
	"context"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
)

// Multi publishes to all sinks. Every sink is called even if a previous one
// failed. The errors are combined.
type Multi []registry.EventSink

var _ registry.EventSink = Multi(nil)

func (m Multi) Emit(ctx context.Context, info registry.BlockInfo, events ...registry.Event) error {
	var errs error
	for _, s := range m {
		errs = errors.Append(errs, s.Emit(ctx, info, events...))
	}
	return errs
}
