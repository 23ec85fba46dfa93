package registry

import "context"

// Event is a structured change notification produced by a successful
// mutation. Events must be serializable to JSON.
type Event interface {
	// EventName returns the name under which subscribers know this kind of
	// event, for example ValidatorUpserted.
	EventName() string
}

// EventSink receives events once the mutation that produced them is
// written. An error returned by a sink does not revert the mutation.
type EventSink interface {
	Emit(ctx context.Context, info BlockInfo, events ...Event) error
}

// EventSinkFunc is an adapter that allows using an ordinary function as an
// EventSink.
type EventSinkFunc func(ctx context.Context, info BlockInfo, events ...Event) error

func (fn EventSinkFunc) Emit(ctx context.Context, info BlockInfo, events ...Event) error {
	return fn(ctx, info, events...)
}
