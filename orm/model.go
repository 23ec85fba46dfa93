package orm

// Model is implemented by any entity that can be stored using ModelBucket.
//
// Marshal and Unmarshal define the exact binary representation that is
// written to the store.
type Model interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Validate() error
}
