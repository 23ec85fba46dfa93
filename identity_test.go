package registry

import (
	"encoding/json"
	"testing"

	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/registrytest/assert"
)

func TestIdentityEncoding(t *testing.T) {
	var id Identity
	for i := range id {
		id[i] = byte(i + 1)
	}

	parsed, err := ParseIdentity(id.String())
	assert.Nil(t, err)
	assert.Equal(t, id, parsed)

	raw, err := json.Marshal(id)
	assert.Nil(t, err)
	var decoded Identity
	assert.Nil(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, id, decoded)

	b := id.Bytes()
	b[0] = 0xff
	assert.Equal(t, byte(1), id[0])

	fromBytes, err := IdentityFromBytes(id[:])
	assert.Nil(t, err)
	assert.Equal(t, true, fromBytes.Equals(id))
}

func TestIdentityErrors(t *testing.T) {
	cases := map[string]struct {
		fn      func() error
		wantErr *errors.Error
	}{
		"too short": {
			fn: func() error {
				_, err := ParseIdentity("3yZe7d")
				return err
			},
			wantErr: errors.ErrInput,
		},
		"not base58": {
			fn: func() error {
				_, err := ParseIdentity("0OIl")
				return err
			},
			wantErr: errors.ErrInput,
		},
		"wrong byte length": {
			fn: func() error {
				_, err := IdentityFromBytes(make([]byte, 31))
				return err
			},
			wantErr: errors.ErrInput,
		},
		"json number": {
			fn: func() error {
				var id Identity
				return json.Unmarshal([]byte(`42`), &id)
			},
			wantErr: errors.ErrInput,
		},
		"zero identity": {
			fn:      Identity{}.Validate,
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.fn())
		})
	}
}

func TestAddressEncoding(t *testing.T) {
	addr := Address{1, 2, 3}
	parsed, err := ParseAddress(addr.String())
	assert.Nil(t, err)
	assert.Equal(t, true, parsed.Equals(addr))

	raw, err := json.Marshal(addr)
	assert.Nil(t, err)
	var decoded Address
	assert.Nil(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, addr, decoded)

	_, err = ParseAddress("nope")
	assert.IsErr(t, errors.ErrInput, err)
}
