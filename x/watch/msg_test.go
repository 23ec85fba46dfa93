package watch

import (
	"testing"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/registrytest"
	"github.com/decentralwatch/registry/registrytest/assert"
)

func TestMsgValidate(t *testing.T) {
	zero := registry.Identity{}
	someone := registrytest.NewIdentity()
	paused := true

	cases := map[string]struct {
		msg      registry.Msg
		wantErrs map[string]*errors.Error
	}{
		"init state": {
			msg: &InitStateMsg{},
		},
		"empty set params": {
			msg: &SetParamsMsg{},
		},
		"set params": {
			msg: &SetParamsMsg{NewAuthority: &someone, Paused: &paused},
			wantErrs: map[string]*errors.Error{
				"NewAuthority": nil,
			},
		},
		"set params zero authority": {
			msg: &SetParamsMsg{NewAuthority: &zero},
			wantErrs: map[string]*errors.Error{
				"NewAuthority": nil,
			},
		},
		"upsert": {
			msg: &UpsertValidatorMsg{Owner: someone, Status: StatusBanned},
			wantErrs: map[string]*errors.Error{
				"Owner":  nil,
				"Status": nil,
			},
		},
		"upsert invalid": {
			msg: &UpsertValidatorMsg{Status: Status(4)},
			wantErrs: map[string]*errors.Error{
				"Owner":  errors.ErrInput,
				"Status": errors.ErrInput,
			},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErrs == nil {
				assert.Nil(t, err)
			}
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestMsgPaths(t *testing.T) {
	assert.Equal(t, "watch/init_state", InitStateMsg{}.Path())
	assert.Equal(t, "watch/set_params", SetParamsMsg{}.Path())
	assert.Equal(t, "watch/upsert_validator", UpsertValidatorMsg{}.Path())
}
