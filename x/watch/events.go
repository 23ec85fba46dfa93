package watch

import "github.com/decentralwatch/registry"

// StateInitialized is emitted once, when the configuration is created.
type StateInitialized struct {
	Authority registry.Identity `json:"authority"`
}

func (StateInitialized) EventName() string { return "StateInitialized" }

// ParamsChanged carries the configuration after a set_params call, even if
// nothing changed.
type ParamsChanged struct {
	Authority registry.Identity `json:"authority"`
	Paused    bool              `json:"paused"`
}

func (ParamsChanged) EventName() string { return "ParamsChanged" }

// ValidatorUpserted carries the validator record after it was created or
// updated.
type ValidatorUpserted struct {
	Owner               registry.Identity `json:"owner"`
	Status              Status            `json:"status"`
	GeoIso2             GeoCode           `json:"geo_iso2"`
	Location            Location          `json:"location"`
	LastActiveTimestamp int64             `json:"last_active_timestamp"`
	LastActiveSlot      uint64            `json:"last_active_slot"`
	MetadataHash        Hash              `json:"metadata_hash"`
}

func (ValidatorUpserted) EventName() string { return "ValidatorUpserted" }

func newValidatorUpserted(v *ValidatorRecord) ValidatorUpserted {
	return ValidatorUpserted{
		Owner:               v.Owner,
		Status:              v.Status,
		GeoIso2:             v.GeoIso2,
		Location:            v.Location,
		LastActiveTimestamp: v.LastActiveTimestamp,
		LastActiveSlot:      v.LastActiveSlot,
		MetadataHash:        v.MetadataHash,
	}
}
