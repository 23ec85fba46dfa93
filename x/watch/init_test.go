package watch

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/registrytest"
	"github.com/decentralwatch/registry/registrytest/assert"
	"github.com/decentralwatch/registry/store"
)

func TestGenesis(t *testing.T) {
	authority := registrytest.NewIdentity()
	program := MustProgramID(DefaultProgramID)

	cases := map[string]struct {
		genesis    string
		wantErr    *errors.Error
		wantConfig *ConfigRecord
		wantEvents int
	}{
		"no watch section": {
			genesis: `{}`,
		},
		"authority only": {
			genesis:    `{"watch": {"authority": "` + authority.String() + `"}}`,
			wantConfig: &ConfigRecord{Authority: authority},
			wantEvents: 1,
		},
		"paused": {
			genesis:    `{"watch": {"authority": "` + authority.String() + `", "paused": true}}`,
			wantConfig: &ConfigRecord{Authority: authority, Paused: true},
			wantEvents: 2,
		},
		"invalid authority": {
			genesis: `{"watch": {"authority": "xyz"}}`,
			wantErr: errors.ErrInput,
		},
		"zero authority": {
			genesis: `{"watch": {"authority": "11111111111111111111111111111111"}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts registry.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			var ini Initializer
			ini.Program = program
			events, err := ini.FromGenesis(context.Background(), opts, registrytest.BlockInfo(0), db)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantEvents, len(events))

			conf, err := NewConfigBucket(program).GetState(db)
			if tc.wantConfig == nil {
				assert.IsErr(t, errors.ErrNotFound, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantConfig.Authority, conf.Authority)
			assert.Equal(t, tc.wantConfig.Paused, conf.Paused)

			_, err = ini.FromGenesis(context.Background(), opts, registrytest.BlockInfo(0), db)
			assert.IsErr(t, ErrAlreadyInitialized, err)
		})
	}
}
