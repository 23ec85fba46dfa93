package watch

import (
	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
)

const (
	pathInitStateMsg       = "watch/init_state"
	pathSetParamsMsg       = "watch/set_params"
	pathUpsertValidatorMsg = "watch/upsert_validator"
)

// InitStateMsg creates the configuration with the signer as the authority.
type InitStateMsg struct{}

var _ registry.Msg = (*InitStateMsg)(nil)

func (InitStateMsg) Path() string {
	return pathInitStateMsg
}

func (InitStateMsg) Validate() error {
	return nil
}

// SetParamsMsg updates the configuration. Only the provided fields change.
type SetParamsMsg struct {
	NewAuthority *registry.Identity `json:"new_authority,omitempty"`
	Paused       *bool              `json:"paused,omitempty"`
}

var _ registry.Msg = (*SetParamsMsg)(nil)

func (SetParamsMsg) Path() string {
	return pathSetParamsMsg
}

// Validate accepts any combination. A zero NewAuthority is stored as is and
// leaves the configuration without a key that can sign for it.
func (m SetParamsMsg) Validate() error {
	return nil
}

// UpsertValidatorMsg mirrors the state of a validator as seen by the hub.
type UpsertValidatorMsg struct {
	Owner        registry.Identity `json:"owner"`
	GeoIso2      GeoCode           `json:"geo_iso2"`
	Location     Location          `json:"location"`
	Status       Status            `json:"status"`
	MetadataHash Hash              `json:"metadata_hash"`
}

var _ registry.Msg = (*UpsertValidatorMsg)(nil)

func (UpsertValidatorMsg) Path() string {
	return pathUpsertValidatorMsg
}

func (m UpsertValidatorMsg) Validate() error {
	var errs error
	if m.Owner.IsZero() {
		errs = errors.AppendField(errs, "Owner", errors.ErrInput)
	}
	if !m.Status.Valid() {
		errs = errors.AppendField(errs, "Status",
			errors.Wrapf(errors.ErrInput, "status %d out of range", uint8(m.Status)))
	}
	return errs
}
