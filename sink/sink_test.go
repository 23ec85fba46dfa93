package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/registrytest"
	"github.com/decentralwatch/registry/x/watch"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/twmb/franz-go/pkg/kgo"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
	closed  bool
}

func (p *fakeProducer) ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	res := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		if p.err == nil {
			p.records = append(p.records, r)
		}
		res = append(res, kgo.ProduceResult{Record: r, Err: p.err})
	}
	return res
}

func (p *fakeProducer) Close() { p.closed = true }

type fakePublisher struct {
	channels []string
	messages [][]byte
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "publish", channel, message)
	if p.err != nil {
		cmd.SetErr(p.err)
		return cmd
	}
	p.channels = append(p.channels, channel)
	p.messages = append(p.messages, message.([]byte))
	cmd.SetVal(1)
	return cmd
}

func (p *fakePublisher) Close() error { return nil }

func testEvents() []registry.Event {
	return []registry.Event{
		watch.StateInitialized{Authority: registrytest.SequenceIdentity(1)},
		watch.ParamsChanged{Authority: registrytest.SequenceIdentity(1), Paused: true},
	}
}

func TestEnvelope(t *testing.T) {
	info := registrytest.BlockInfo(42)
	env, err := NewEnvelope(info, watch.ParamsChanged{Authority: registrytest.SequenceIdentity(2), Paused: true})
	require.NoError(t, err)

	assert.Equal(t, "ParamsChanged", env.Name)
	assert.Equal(t, uint64(42), env.Height)
	assert.Equal(t, registrytest.ChainID, env.ChainID)
	assert.Equal(t, info.UnixTime(), env.Time)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", env.ID.String())

	var payload struct {
		Authority string `json:"authority"`
		Paused    bool   `json:"paused"`
	}
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, registrytest.SequenceIdentity(2).String(), payload.Authority)
	assert.True(t, payload.Paused)

	other, err := NewEnvelope(info, watch.ParamsChanged{})
	require.NoError(t, err)
	assert.NotEqual(t, env.ID, other.ID)
}

func TestRecorderAndMulti(t *testing.T) {
	r1 := &Recorder{}
	r2 := &Recorder{}
	logged := LogSink{Logger: log.NewNopLogger()}
	failing := registry.EventSinkFunc(func(context.Context, registry.BlockInfo, ...registry.Event) error {
		return errors.ErrDatabase
	})

	err := Multi{r1, failing, logged, r2}.Emit(context.Background(), registrytest.BlockInfo(1), testEvents()...)
	assert.True(t, errors.ErrDatabase.Is(err))

	// sinks after the failing one are still called
	assert.Len(t, r1.Envelopes(), 2)
	assert.Len(t, r2.Envelopes(), 2)
	assert.Equal(t, "StateInitialized", r2.Envelopes()[0].Name)

	require.NoError(t, Multi{r1}.Emit(context.Background(), registrytest.BlockInfo(2), testEvents()...))
	assert.Len(t, r1.Envelopes(), 4)
}

func TestKafkaSink(t *testing.T) {
	p := &fakeProducer{}
	s := &KafkaSink{client: p, topic: "watch-events"}

	require.NoError(t, s.Emit(context.Background(), registrytest.BlockInfo(7), testEvents()...))
	require.Len(t, p.records, 2)
	assert.Equal(t, "watch-events", p.records[0].Topic)
	assert.Equal(t, []byte("StateInitialized"), p.records[0].Key)
	assert.Equal(t, "height", p.records[1].Headers[1].Key)
	assert.Equal(t, []byte("7"), p.records[1].Headers[1].Value)

	var env Envelope
	require.NoError(t, json.Unmarshal(p.records[1].Value, &env))
	assert.Equal(t, "ParamsChanged", env.Name)

	p.err = fmt.Errorf("broker down")
	err := s.Emit(context.Background(), registrytest.BlockInfo(8), testEvents()...)
	assert.True(t, errors.ErrDatabase.Is(err))

	s.Close()
	assert.True(t, p.closed)
}

func TestRedisSink(t *testing.T) {
	p := &fakePublisher{}
	s := &RedisSink{client: p, channel: "watch"}

	require.NoError(t, s.Emit(context.Background(), registrytest.BlockInfo(3), testEvents()...))
	assert.Equal(t, []string{"watch", "watch"}, p.channels)

	var env Envelope
	require.NoError(t, json.Unmarshal(p.messages[0], &env))
	assert.Equal(t, "StateInitialized", env.Name)
	assert.Equal(t, uint64(3), env.Height)

	p.err = fmt.Errorf("connection refused")
	err := s.Emit(context.Background(), registrytest.BlockInfo(4), testEvents()...)
	assert.True(t, errors.ErrDatabase.Is(err))
}

func TestSinkConstructorsValidate(t *testing.T) {
	_, err := NewKafkaSink(nil, "topic")
	assert.True(t, errors.ErrEmpty.Is(err))
	_, err = NewKafkaSink([]string{"localhost:9092"}, "")
	assert.True(t, errors.ErrEmpty.Is(err))
	_, err = NewRedisSink(context.Background(), "redis://localhost:6379/0", "")
	assert.True(t, errors.ErrEmpty.Is(err))
	_, err = NewRedisSink(context.Background(), "not a url", "watch")
	assert.True(t, errors.ErrInput.Is(err))
}
