package watch

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/orm"
)

const (
	// ConfigRecordSize is the length of a serialized ConfigRecord.
	ConfigRecordSize = registry.KeySize + 1 + 1

	// ValidatorRecordSize is the length of a serialized ValidatorRecord.
	ValidatorRecordSize = registry.KeySize + 2 + 32 + 1 + 8 + 8 + 32 + 1
)

// Status is the mirrored state of a validator. Transitions between statuses
// are not restricted, the hub is the source of truth.
type Status uint8

const (
	StatusPending Status = 0
	StatusActive  Status = 1
	StatusPaused  Status = 2
	StatusBanned  Status = 3
)

var statusNames = map[Status]string{
	StatusPending: "pending",
	StatusActive:  "active",
	StatusPaused:  "paused",
	StatusBanned:  "banned",
}

// Valid returns true for the known statuses.
func (s Status) Valid() bool {
	return s <= StatusBanned
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// ParseStatus accepts both the status name and its numeric value.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	var n uint8
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "unknown status %q", s)
	}
	return Status(n), nil
}

// GeoCode is a two letter country code. It is not validated.
type GeoCode [2]byte

// ParseGeoCode requires exactly two bytes.
func ParseGeoCode(s string) (GeoCode, error) {
	var g GeoCode
	if len(s) != len(g) {
		return g, errors.Wrapf(errors.ErrInput, "geo code %q must be 2 bytes", s)
	}
	copy(g[:], s)
	return g, nil
}

func (g GeoCode) String() string {
	return string(bytes.TrimRight(g[:], "\x00"))
}

func (g GeoCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

func (g *GeoCode) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "geo code must be a string")
	}
	if len(s) > len(g) {
		return errors.Wrapf(errors.ErrInput, "geo code %q too long", s)
	}
	*g = GeoCode{}
	copy(g[:], s)
	return nil
}

// Location is a free text location padded with zero bytes.
type Location [32]byte

// ParseLocation accepts up to 32 bytes of text.
func ParseLocation(s string) (Location, error) {
	var l Location
	if len(s) > len(l) {
		return l, errors.Wrapf(errors.ErrInput, "location longer than %d bytes", len(l))
	}
	copy(l[:], s)
	return l, nil
}

func (l Location) String() string {
	return string(bytes.TrimRight(l[:], "\x00"))
}

func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Location) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "location must be a string")
	}
	loc, err := ParseLocation(s)
	if err != nil {
		return err
	}
	*l = loc
	return nil
}

// Hash is a 32 byte digest, the metadata hash of a validator.
type Hash [32]byte

// ParseHash decodes a hex encoded hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != len(h) {
		return h, errors.Wrapf(errors.ErrInput, "hash %q must be %d hex encoded bytes", s, len(h))
	}
	copy(h[:], raw)
	return h, nil
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hash) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "hash must be a string")
	}
	parsed, err := ParseHash(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ConfigRecord is the singleton configuration of the registry.
type ConfigRecord struct {
	Authority registry.Identity `json:"authority"`
	Paused    bool              `json:"paused"`
	Nonce     byte              `json:"nonce"`
}

var _ orm.Model = (*ConfigRecord)(nil)

// Validate accepts every configuration. The layout has no invalid field
// values and a zero authority is a locked registry.
func (c *ConfigRecord) Validate() error {
	return nil
}

// Marshal writes the 34 byte layout: authority, paused, nonce.
func (c *ConfigRecord) Marshal() ([]byte, error) {
	raw := make([]byte, 0, ConfigRecordSize)
	raw = append(raw, c.Authority[:]...)
	raw = append(raw, encodeBool(c.Paused), c.Nonce)
	return raw, nil
}

func (c *ConfigRecord) Unmarshal(raw []byte) error {
	if len(raw) != ConfigRecordSize {
		return errors.Wrapf(errors.ErrModel, "config record must be %d bytes, got %d", ConfigRecordSize, len(raw))
	}
	paused, err := decodeBool(raw[32])
	if err != nil {
		return err
	}
	copy(c.Authority[:], raw[:32])
	c.Paused = paused
	c.Nonce = raw[33]
	return nil
}

// ValidatorRecord is the mirrored state of a single validator. The owner is
// set once, when the record is created. All other fields are overwritten by
// every upsert.
//
// LastActiveTimestamp and LastActiveSlot are expected to never decrease,
// but this is the responsibility of the hub and is not enforced.
type ValidatorRecord struct {
	Owner               registry.Identity `json:"owner"`
	GeoIso2             GeoCode           `json:"geo_iso2"`
	Location            Location          `json:"location"`
	Status              Status            `json:"status"`
	LastActiveTimestamp int64             `json:"last_active_timestamp"`
	LastActiveSlot      uint64            `json:"last_active_slot"`
	MetadataHash        Hash              `json:"metadata_hash"`
	Nonce               byte              `json:"nonce"`
}

var _ orm.Model = (*ValidatorRecord)(nil)

func (v *ValidatorRecord) Validate() error {
	var errs error
	if v.Owner.IsZero() {
		errs = errors.AppendField(errs, "Owner", errors.ErrEmpty)
	}
	if !v.Status.Valid() {
		errs = errors.AppendField(errs, "Status", errors.ErrInput)
	}
	return errs
}

// Marshal writes the 116 byte layout. Integers are little endian.
func (v *ValidatorRecord) Marshal() ([]byte, error) {
	raw := make([]byte, ValidatorRecordSize)
	n := copy(raw, v.Owner[:])
	n += copy(raw[n:], v.GeoIso2[:])
	n += copy(raw[n:], v.Location[:])
	raw[n] = byte(v.Status)
	n++
	binary.LittleEndian.PutUint64(raw[n:], uint64(v.LastActiveTimestamp))
	n += 8
	binary.LittleEndian.PutUint64(raw[n:], v.LastActiveSlot)
	n += 8
	n += copy(raw[n:], v.MetadataHash[:])
	raw[n] = v.Nonce
	return raw, nil
}

func (v *ValidatorRecord) Unmarshal(raw []byte) error {
	if len(raw) != ValidatorRecordSize {
		return errors.Wrapf(errors.ErrModel, "validator record must be %d bytes, got %d", ValidatorRecordSize, len(raw))
	}
	n := copy(v.Owner[:], raw)
	n += copy(v.GeoIso2[:], raw[n:])
	n += copy(v.Location[:], raw[n:])
	v.Status = Status(raw[n])
	n++
	v.LastActiveTimestamp = int64(binary.LittleEndian.Uint64(raw[n:]))
	n += 8
	v.LastActiveSlot = binary.LittleEndian.Uint64(raw[n:])
	n += 8
	n += copy(v.MetadataHash[:], raw[n:])
	v.Nonce = raw[n]
	return nil
}

func encodeBool(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func decodeBool(b byte) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Wrapf(errors.ErrModel, "invalid bool byte %d", b)
	}
}
