package store

import (
	"bytes"

	"github.com/decentralwatch/registry/errors"
	"github.com/google/btree"
)

// pendingRange collects the changes within [start, end). A nil bound is
// open.
func pendingRange(bt *btree.BTree, start, end []byte, ascending bool) []*change {
	var res []*change
	collect := func(item btree.Item) bool {
		res = append(res, item.(*change))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(&change{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(&change{key: start}, collect)
	default:
		bt.AscendRange(&change{key: start}, &change{key: end}, collect)
	}
	if !ascending {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}

// mergedIterator combines pending changes with the iterator of the parent
// store. A change shadows the parent value of the same key and a deletion
// hides it.
type mergedIterator struct {
	pending   []*change
	parent    Iterator
	ascending bool

	// peeked parent entry, valid when hasParent is true
	pKey, pValue []byte
	hasParent    bool
	parentDone   bool
}

var _ Iterator = (*mergedIterator)(nil)

func newMergedIterator(pending []*change, parent Iterator, ascending bool) *mergedIterator {
	return &mergedIterator{
		pending:   pending,
		parent:    parent,
		ascending: ascending,
	}
}

// Next returns the next key value pair or ErrIteratorDone.
func (m *mergedIterator) Next() ([]byte, []byte, error) {
	for {
		if err := m.peekParent(); err != nil {
			return nil, nil, err
		}

		if len(m.pending) == 0 {
			if !m.hasParent {
				return nil, nil, errors.Wrap(errors.ErrIteratorDone, "merged iterator")
			}
			m.hasParent = false
			return m.pKey, m.pValue, nil
		}

		ch := m.pending[0]
		if m.hasParent {
			cmp := m.compare(m.pKey, ch.key)
			if cmp < 0 {
				m.hasParent = false
				return m.pKey, m.pValue, nil
			}
			if cmp == 0 {
				m.hasParent = false
			}
		}

		m.pending = m.pending[1:]
		if ch.deleted {
			continue
		}
		return ch.key, ch.value, nil
	}
}

// compare orders two keys according to the iteration direction.
func (m *mergedIterator) compare(a, b []byte) int {
	c := bytes.Compare(a, b)
	if m.ascending {
		return c
	}
	return -c
}

func (m *mergedIterator) peekParent() error {
	if m.hasParent || m.parentDone || m.parent == nil {
		return nil
	}
	key, value, err := m.parent.Next()
	if err != nil {
		if errors.ErrIteratorDone.Is(err) {
			m.parentDone = true
			return nil
		}
		return err
	}
	m.pKey, m.pValue, m.hasParent = key, value, true
	return nil
}

// Release releases the parent iterator.
func (m *mergedIterator) Release() {
	if m.parent != nil {
		m.parent.Release()
	}
	m.pending = nil
}
