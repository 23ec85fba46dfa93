package registrytest

import (
	"context"

	"github.com/decentralwatch/registry"
)

// Handler is a mock implementation of the registry.Handler interface.
//
// Set CheckErr or DeliverErr to force error response. If DeliverWrite is
// set, Deliver writes that key value pair into the store before returning.
type Handler struct {
	checkCall   int
	CheckResult registry.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult registry.DeliverResult
	DeliverErr    error
	DeliverWrite  *registry.Model
	DeliverPanic  interface{}
}

var _ registry.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx context.Context, info registry.BlockInfo, db registry.KVStore, tx registry.Tx) (*registry.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx context.Context, info registry.BlockInfo, db registry.KVStore, tx registry.Tx) (*registry.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverWrite != nil {
		if err := db.Set(h.DeliverWrite.Key, h.DeliverWrite.Value); err != nil {
			return nil, err
		}
	}
	if h.DeliverPanic != nil {
		panic(h.DeliverPanic)
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Event is a named event for tests.
type Event struct {
	Name string `json:"name"`
}

func (e Event) EventName() string {
	return e.Name
}
