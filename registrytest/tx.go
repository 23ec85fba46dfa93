package registrytest

import (
	"time"

	"github.com/decentralwatch/registry"
)

// Tx represents a registry transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg registry.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ registry.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (registry.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a registry message.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ registry.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

// ChainID is the chain id used by BlockInfo.
const ChainID = "watch-test"

// BlockInfo returns a block info at given height. Block time is derived from
// the height so that consecutive heights produce increasing time.
func BlockInfo(height uint64) registry.BlockInfo {
	blockTime := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(height) * 400 * time.Millisecond)
	info, err := registry.NewBlockInfo(height, blockTime, ChainID, nil)
	if err != nil {
		panic(err)
	}
	return info
}
