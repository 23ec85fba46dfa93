package watch

import (
	"context"
	"fmt"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/x"
)

// RegisterQuery will register the state and validator buckets under
// /watch/state and /watch/validators.
func RegisterQuery(program registry.Identity) registry.QueryRegister {
	return func(qr registry.QueryRouter) {
		NewConfigBucket(program).Register("watch/state", qr)
		NewValidatorBucket(program).Register("watch/validators", qr)
	}
}

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r registry.Registry, auth x.Authenticator, program registry.Identity) {
	configs := NewConfigBucket(program)
	validators := NewValidatorBucket(program)

	r.Handle(&InitStateMsg{}, &initStateHandler{auth: auth, configs: configs})
	r.Handle(&SetParamsMsg{}, &setParamsHandler{auth: auth, configs: configs})
	r.Handle(&UpsertValidatorMsg{}, &upsertValidatorHandler{auth: auth, configs: configs, validators: validators})
}

type initStateHandler struct {
	auth    x.Authenticator
	configs *ConfigBucket
}

var _ registry.Handler = (*initStateHandler)(nil)

func (h *initStateHandler) Check(ctx context.Context, info registry.BlockInfo, db registry.KVStore, tx registry.Tx) (*registry.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &registry.CheckResult{}, nil
}

func (h *initStateHandler) Deliver(ctx context.Context, info registry.BlockInfo, db registry.KVStore, tx registry.Tx) (*registry.DeliverResult, error) {
	authority, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return initState(db, h.configs, authority)
}

func (h *initStateHandler) validate(ctx context.Context, db registry.KVStore, tx registry.Tx) (registry.Identity, error) {
	var msg InitStateMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return registry.Identity{}, errors.Wrap(err, "load msg")
	}
	authority := x.MainSigner(ctx, h.auth)
	if authority.IsZero() {
		return authority, errors.Wrap(errors.ErrUnauthorized, "missing signer")
	}
	switch ok, err := h.configs.Exists(db); {
	case err != nil:
		return authority, err
	case ok:
		return authority, errors.Wrap(ErrAlreadyInitialized, "config")
	}
	return authority, nil
}

// initState creates the configuration with given authority. The caller
// must ensure it does not exist yet.
func initState(db registry.KVStore, configs *ConfigBucket, authority registry.Identity) (*registry.DeliverResult, error) {
	_, nonce, err := StateAddress(configs.program)
	if err != nil {
		return nil, err
	}
	conf := ConfigRecord{
		Authority: authority,
		Paused:    false,
		Nonce:     nonce,
	}
	addr, err := configs.Save(db, &conf)
	if err != nil {
		return nil, errors.Wrap(err, "cannot save config")
	}
	return &registry.DeliverResult{
		Data:   addr.Bytes(),
		Log:    fmt.Sprintf("initialized with authority %s", authority),
		Events: []registry.Event{StateInitialized{Authority: authority}},
	}, nil
}

type setParamsHandler struct {
	auth    x.Authenticator
	configs *ConfigBucket
}

var _ registry.Handler = (*setParamsHandler)(nil)

func (h *setParamsHandler) Check(ctx context.Context, info registry.BlockInfo, db registry.KVStore, tx registry.Tx) (*registry.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &registry.CheckResult{}, nil
}

func (h *setParamsHandler) Deliver(ctx context.Context, info registry.BlockInfo, db registry.KVStore, tx registry.Tx) (*registry.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if msg.NewAuthority != nil {
		conf.Authority = *msg.NewAuthority
	}
	if msg.Paused != nil {
		conf.Paused = *msg.Paused
	}
	addr, err := h.configs.Save(db, conf)
	if err != nil {
		return nil, errors.Wrap(err, "cannot save config")
	}
	return &registry.DeliverResult{
		Data: addr.Bytes(),
		Events: []registry.Event{ParamsChanged{
			Authority: conf.Authority,
			Paused:    conf.Paused,
		}},
	}, nil
}

func (h *setParamsHandler) validate(ctx context.Context, db registry.KVStore, tx registry.Tx) (*SetParamsMsg, *ConfigRecord, error) {
	var msg SetParamsMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := requireAuthority(ctx, h.auth, db, h.configs)
	if err != nil {
		return nil, nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid msg")
	}
	return &msg, conf, nil
}

type upsertValidatorHandler struct {
	auth       x.Authenticator
	configs    *ConfigBucket
	validators *ValidatorBucket
}

var _ registry.Handler = (*upsertValidatorHandler)(nil)

func (h *upsertValidatorHandler) Check(ctx context.Context, info registry.BlockInfo, db registry.KVStore, tx registry.Tx) (*registry.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &registry.CheckResult{}, nil
}

func (h *upsertValidatorHandler) Deliver(ctx context.Context, info registry.BlockInfo, db registry.KVStore, tx registry.Tx) (*registry.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if info.IsZero() {
		return nil, errors.Wrap(errors.ErrHuman, "block info required")
	}

	addr, nonce, err := ValidatorAddress(h.validators.program, msg.Owner)
	if err != nil {
		return nil, err
	}
	v, err := h.validators.GetByAddress(db, addr, msg.Owner)
	switch {
	case errors.ErrNotFound.Is(err):
		// The owner is set only once, when the record is created.
		v = &ValidatorRecord{
			Owner: msg.Owner,
			Nonce: nonce,
		}
	case err != nil:
		return nil, err
	}

	v.GeoIso2 = msg.GeoIso2
	v.Location = msg.Location
	v.Status = msg.Status
	v.MetadataHash = msg.MetadataHash
	v.LastActiveTimestamp = int64(info.UnixTime())
	v.LastActiveSlot = info.Height()

	if _, err := h.validators.Save(db, v); err != nil {
		return nil, errors.Wrap(err, "cannot save validator")
	}
	return &registry.DeliverResult{
		Data:   addr.Bytes(),
		Log:    fmt.Sprintf("validator %s is %s", v.Owner, v.Status),
		Events: []registry.Event{newValidatorUpserted(v)},
	}, nil
}

// validate checks the authority, then the pause flag and only then the
// message content.
func (h *upsertValidatorHandler) validate(ctx context.Context, db registry.KVStore, tx registry.Tx) (*UpsertValidatorMsg, error) {
	var msg UpsertValidatorMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := requireAuthority(ctx, h.auth, db, h.configs)
	if err != nil {
		return nil, err
	}
	if err := requireNotPaused(conf); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid msg")
	}
	return &msg, nil
}
