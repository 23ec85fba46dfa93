package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/decentralwatch/registry/errors"
)

// Query mods understood by the record buckets. A key query returns the record
// stored under the key given as query data, if any. A prefix query returns
// every record whose key starts with the data, ordered by key.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single stored record: the full store key, bucket prefix
// included, and the serialized record.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair returns the record stored under key.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler reads records from a read only view of the state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query handlers of one extension to a router.
type QueryRegister func(QueryRouter)

// QueryRouter maps absolute paths, for example "/watch/state", to the
// handlers serving them. Every path can be registered once.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll applies every register function to the router.
func (r QueryRouter) RegisterAll(regs ...QueryRegister) {
	for _, reg := range regs {
		reg(r)
	}
}

// Register panics when path is relative or already taken. Both can only
// happen when wiring the application.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if !strings.HasPrefix(path, "/") {
		panic(fmt.Sprintf("query path %q must start with /", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Paths returns all registered paths in order.
func (r QueryRouter) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Query runs the query with the handler registered for path. ErrNotFound is
// returned for a path without a handler.
func (r QueryRouter) Query(db ReadOnlyKVStore, path, mod string, data []byte) ([]Model, error) {
	h, ok := r.routes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for %q, known paths: %s",
			path, strings.Join(r.Paths(), ", "))
	}
	return h.Query(db, mod, data)
}
