package sink

import (
	"encoding/json"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/google/uuid"
)

// Envelope is the published form of an event.
type Envelope struct {
	ID      uuid.UUID         `json:"id"`
	Name    string            `json:"name"`
	ChainID string            `json:"chain_id"`
	Height  uint64            `json:"height"`
	Time    registry.UnixTime `json:"time"`
	Payload json.RawMessage   `json:"payload"`
}

// NewEnvelope serializes the event and wraps it with the block position.
func NewEnvelope(info registry.BlockInfo, ev registry.Event) (Envelope, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return Envelope{}, errors.Wrapf(errors.ErrType, "cannot serialize %s: %s", ev.EventName(), err)
	}
	return Envelope{
		ID:      uuid.New(),
		Name:    ev.EventName(),
		ChainID: info.ChainID(),
		Height:  info.Height(),
		Time:    info.UnixTime(),
		Payload: payload,
	}, nil
}

// Marshal returns the JSON representation.
func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Envelopes wraps every event of one block.
func Envelopes(info registry.BlockInfo, events []registry.Event) ([]Envelope, error) {
	res := make([]Envelope, 0, len(events))
	for _, ev := range events {
		env, err := NewEnvelope(info, ev)
		if err != nil {
			return nil, err
		}
		res = append(res, env)
	}
	return res, nil
}
