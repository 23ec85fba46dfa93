package sink

import (
	"context"
	"strconv"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/twmb/franz-go/pkg/kgo"
)

// producer is the part of kgo.Client used by KafkaSink.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// KafkaSink produces events to a Kafka topic. The record key is the event
// name so that all events of the same kind keep their order.
type KafkaSink struct {
	client producer
	topic  string
}

var _ registry.EventSink = (*KafkaSink)(nil)

// NewKafkaSink connects to given brokers.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "kafka brokers")
	}
	if topic == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "kafka topic")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

func (s *KafkaSink) Emit(ctx context.Context, info registry.BlockInfo, events ...registry.Event) error {
	envs, err := Envelopes(info, events)
	if err != nil {
		return err
	}
	records := make([]*kgo.Record, 0, len(envs))
	for _, env := range envs {
		value, err := env.Marshal()
		if err != nil {
			return errors.Wrap(errors.ErrType, err.Error())
		}
		records = append(records, &kgo.Record{
			Topic: s.topic,
			Key:   []byte(env.Name),
			Value: value,
			Headers: []kgo.RecordHeader{
				{Key: "id", Value: []byte(env.ID.String())},
				{Key: "height", Value: []byte(strconv.FormatUint(env.Height, 10))},
			},
		})
	}
	if err := s.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "kafka produce: %s", err)
	}
	return nil
}

// Close flushes and closes the client.
func (s *KafkaSink) Close() {
	s.client.Close()
}
