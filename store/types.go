package store

import "github.com/decentralwatch/registry"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = registry.ReadOnlyKVStore
type SetDeleter = registry.SetDeleter
type KVStore = registry.KVStore
type Iterator = registry.Iterator
type CacheableKVStore = registry.CacheableKVStore
type KVCacheWrap = registry.KVCacheWrap
type CommitKVStore = registry.CommitKVStore
type CommitID = registry.CommitID
type Model = registry.Model
