package watch

import "github.com/decentralwatch/registry/errors"

// Reserved codes 150~159
var (
	ErrPaused             = errors.Register(150, "registry is paused")
	ErrAlreadyInitialized = errors.Register(151, "already initialized")
)
