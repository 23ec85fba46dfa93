package store

import (
	"bytes"

	"github.com/decentralwatch/registry/errors"
	"github.com/google/btree"
)

// cacheDegree is the btree degree used for pending changes. A message
// touches a handful of records, so a small degree keeps nodes compact.
const cacheDegree = 4

// MemStore returns an in-memory store. It is a cache wrap over an empty
// store, so its content is lost once it is discarded.
func MemStore() CacheableKVStore {
	return NewCacheWrap(EmptyKVStore{})
}

// CacheWrap holds the changes of one execution on top of a parent store.
// Reads see the pending changes first and fall through to the parent.
// Write applies the changes to the parent in key order, Discard drops them.
type CacheWrap struct {
	changes *btree.BTree
	parent  KVStore
}

var _ KVCacheWrap = (*CacheWrap)(nil)

// NewCacheWrap returns an empty cache wrap over parent.
func NewCacheWrap(parent KVStore) *CacheWrap {
	return &CacheWrap{
		changes: btree.New(cacheDegree),
		parent:  parent,
	}
}

// CacheWrap layers another cache on top of this one. Writing the nested
// cache updates this cache, not the parent store.
func (c *CacheWrap) CacheWrap() KVCacheWrap {
	return NewCacheWrap(c)
}

// Write applies all pending changes to the parent and empties the cache.
// The cache is emptied even when the parent rejects a change.
func (c *CacheWrap) Write() error {
	var err error
	c.changes.Ascend(func(item btree.Item) bool {
		ch := item.(*change)
		if ch.deleted {
			err = c.parent.Delete(ch.key)
		} else {
			err = c.parent.Set(ch.key, ch.value)
		}
		return err == nil
	})
	c.Discard()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Discard drops all pending changes.
func (c *CacheWrap) Discard() {
	c.changes = btree.New(cacheDegree)
}

func (c *CacheWrap) Set(key, value []byte) error {
	c.changes.ReplaceOrInsert(&change{key: key, value: value})
	return nil
}

func (c *CacheWrap) Delete(key []byte) error {
	c.changes.ReplaceOrInsert(&change{key: key, deleted: true})
	return nil
}

func (c *CacheWrap) Get(key []byte) ([]byte, error) {
	if ch := c.pending(key); ch != nil {
		if ch.deleted {
			return nil, nil
		}
		return ch.value, nil
	}
	return c.parent.Get(key)
}

func (c *CacheWrap) Has(key []byte) (bool, error) {
	if ch := c.pending(key); ch != nil {
		return !ch.deleted, nil
	}
	return c.parent.Has(key)
}

// Iterator returns the merged content of the cache and the parent within
// [start, end) in ascending key order.
func (c *CacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergedIterator(pendingRange(c.changes, start, end, true), parent, true), nil
}

// ReverseIterator is like Iterator, in descending key order.
func (c *CacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergedIterator(pendingRange(c.changes, start, end, false), parent, false), nil
}

func (c *CacheWrap) pending(key []byte) *change {
	item := c.changes.Get(&change{key: key})
	if item == nil {
		return nil
	}
	return item.(*change)
}

// change is a pending write of a single key.
type change struct {
	key     []byte
	value   []byte
	deleted bool
}

func (c *change) Less(than btree.Item) bool {
	return bytes.Compare(c.key, than.(*change).key) < 0
}
