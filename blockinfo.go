package registry

import (
	"regexp"
	"time"

	"github.com/decentralwatch/registry/errors"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	// DefaultLogger is used for all BlockInfo that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// BlockInfo describes the position in the ledger at which a message is
// executed. It is the only source of time and sequence for the handlers.
//
// Height is the monotonic sequence number (slot) and Time is the wall clock
// time of the block. Both are provided by the caller and are expected to
// never decrease between two executions. This is not verified.
type BlockInfo struct {
	height  uint64
	time    time.Time
	chainID string
	logger  log.Logger
}

// NewBlockInfo creates a BlockInfo struct with current context of where it is being executed
func NewBlockInfo(height uint64, blockTime time.Time, chainID string, logger log.Logger) (BlockInfo, error) {
	if !IsValidChainID(chainID) {
		return BlockInfo{}, errors.Wrap(errors.ErrInput, "chainID invalid")
	}
	if blockTime.IsZero() {
		return BlockInfo{}, errors.Wrap(errors.ErrEmpty, "block time")
	}
	if logger == nil {
		logger = DefaultLogger
	}
	return BlockInfo{
		height:  height,
		time:    blockTime,
		chainID: chainID,
		logger:  logger,
	}, nil
}

func (b BlockInfo) ChainID() string {
	return b.chainID
}

// Height returns the slot of the block.
func (b BlockInfo) Height() uint64 {
	return b.height
}

func (b BlockInfo) BlockTime() time.Time {
	return b.time
}

func (b BlockInfo) UnixTime() UnixTime {
	return AsUnixTime(b.time)
}

func (b BlockInfo) Logger() log.Logger {
	if b.logger == nil {
		return DefaultLogger
	}
	return b.logger
}

// IsZero returns true if this BlockInfo was never initialized.
func (b BlockInfo) IsZero() bool {
	return b.time.IsZero() && b.chainID == ""
}

// WithLogInfo accepts keyvalue pairs, and returns another
// BlockInfo like this, after passing all the keyvals to the
// Logger
func (b BlockInfo) WithLogInfo(keyvals ...interface{}) BlockInfo {
	b.logger = b.Logger().With(keyvals...)
	return b
}
