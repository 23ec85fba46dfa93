package registry_test

import (
	"os"
	"testing"
	"time"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestBlockInfo(t *testing.T) {
	blocktime, err := time.Parse(time.RFC3339, "2024-03-01T12:00:00Z")
	assert.Nil(t, err)
	unixtime := registry.AsUnixTime(blocktime)

	newLogger := log.NewTMLogger(os.Stdout)

	cases := map[string]struct {
		chainID      string
		blocktime    time.Time
		logger       log.Logger
		err          *errors.Error
		expectLogger log.Logger
	}{
		"default logger": {
			chainID:      "test-chain",
			blocktime:    blocktime,
			expectLogger: registry.DefaultLogger,
		},
		"custom logger": {
			chainID:      "test-chain",
			blocktime:    blocktime,
			logger:       newLogger,
			expectLogger: newLogger,
		},
		"bad chain id": {
			chainID:   "invalid;;chars",
			blocktime: blocktime,
			err:       errors.ErrInput,
		},
		"missing time": {
			chainID: "test-chain",
			err:     errors.ErrEmpty,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			bi, err := registry.NewBlockInfo(123, tc.blocktime, tc.chainID, tc.logger)
			if tc.err != nil {
				if !tc.err.Is(err) {
					t.Fatalf("Unexpected error: %+v", err)
				}
				assert.True(t, bi.IsZero())
				return
			}

			assert.Nil(t, err)
			assert.False(t, bi.IsZero())
			assert.Equal(t, tc.expectLogger, bi.Logger())
			assert.Equal(t, tc.chainID, bi.ChainID())
			assert.Equal(t, uint64(123), bi.Height())
			assert.Equal(t, blocktime, bi.BlockTime())
			assert.Equal(t, unixtime, bi.UnixTime())
		})
	}
}

func TestZeroBlockInfo(t *testing.T) {
	var bi registry.BlockInfo
	assert.True(t, bi.IsZero())
	assert.Equal(t, registry.DefaultLogger, bi.Logger())
	assert.NotNil(t, bi.WithLogInfo("module", "test").Logger())
}
