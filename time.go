package registry

import (
	"encoding/json"
	"time"

	"github.com/decentralwatch/registry/errors"
)

// UnixTime represents a point in time as POSIX time with seconds precision.
// This is the representation stored in records.
type UnixTime int64

// Time returns a time.Time structure that represents the same moment in time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// IsZero returns true if this time represents a zero value.
func (t UnixTime) IsZero() bool {
	return t == 0
}

// AsUnixTime converts given Time structure into its UNIX time representation.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// UnmarshalJSON supports unmarshaling both as time.Time and from a number.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err == nil {
		*t = UnixTime(unix)
		return nil
	}

	var stdtime time.Time
	if err := json.Unmarshal(raw, &stdtime); err == nil {
		*t = AsUnixTime(stdtime)
		return nil
	}
	return errors.Wrap(errors.ErrInput, "invalid time format")
}

// String returns the RFC 3339 representation of this time.
func (t UnixTime) String() string {
	return t.Time().Format(time.RFC3339)
}
