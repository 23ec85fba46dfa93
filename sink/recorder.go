package sink

import (
	"context"
	"sync"

	"github.com/decentralwatch/registry"
	"github.com/tendermint/tendermint/libs/log"
)

// Recorder keeps all envelopes in memory.
type Recorder struct {
	mu        sync.Mutex
	envelopes []Envelope
}

var _ registry.EventSink = (*Recorder)(nil)

func (r *Recorder) Emit(ctx context.Context, info registry.BlockInfo, events ...registry.Event) error {
	envs, err := Envelopes(info, events)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.envelopes = append(r.envelopes, envs...)
	r.mu.Unlock()
	return nil
}

// Envelopes returns a copy of everything recorded so far.
func (r *Recorder) Envelopes() []Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Envelope(nil), r.envelopes...)
}

// LogSink writes every event to the logger at info level.
type LogSink struct {
	Logger log.Logger
}

var _ registry.EventSink = LogSink{}

func (s LogSink) Emit(ctx context.Context, info registry.BlockInfo, events ...registry.Event) error {
	envs, err := Envelopes(info, events)
	if err != nil {
		return err
	}
	for _, env := range envs {
		s.Logger.Info("event", "name", env.Name, "id", env.ID, "height", env.Height, "payload", string(env.Payload))
	}
	return nil
}
