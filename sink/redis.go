package sink

import (
	"context"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/redis/go-redis/v9"
)

// publisher is the part of redis.Client used by RedisSink.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// RedisSink publishes events on a Redis channel.
type RedisSink struct {
	client  publisher
	channel string
}

var _ registry.EventSink = (*RedisSink)(nil)

// NewRedisSink connects to the server at given URL, for example
// redis://localhost:6379/0.
func NewRedisSink(ctx context.Context, url, channel string) (*RedisSink, error) {
	if channel == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "redis channel")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "redis url: %s", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "redis ping: %s", err)
	}
	return &RedisSink{client: client, channel: channel}, nil
}

func (s *RedisSink) Emit(ctx context.Context, info registry.BlockInfo, events ...registry.Event) error {
	envs, err := Envelopes(info, events)
	if err != nil {
		return err
	}
	for _, env := range envs {
		msg, err := env.Marshal()
		if err != nil {
			return errors.Wrap(errors.ErrType, err.Error())
		}
		if err := s.client.Publish(ctx, s.channel, msg).Err(); err != nil {
			return errors.Wrapf(errors.ErrDatabase, "redis publish: %s", err)
		}
	}
	return nil
}

// Close closes the connection.
func (s *RedisSink) Close() error {
	return s.client.Close()
}
