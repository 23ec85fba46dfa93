package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/registrytest/assert"
	"github.com/decentralwatch/registry/store"
)

func makeCommitStore(t testing.TB) (string, CommitStore, func()) {
	t.Helper()
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	assert.Nil(t, err)
	commit := NewCommitStore(tmpDir, "base")
	return tmpDir, commit, func() {
		commit.Close()
		os.RemoveAll(tmpDir)
	}
}

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func collect(t testing.TB, it store.Iterator) []store.Model {
	t.Helper()
	defer it.Release()
	var res []store.Model
	for {
		k, v, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		assert.Nil(t, err)
		res = append(res, store.Model{Key: k, Value: v})
	}
}

// TestCacheGetSet does basic sanity checks on our cache
func TestCacheGetSet(t *testing.T) {
	_, commit, cleanup := makeCommitStore(t)
	defer cleanup()
	base := commit.Adapter()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	// now layer a btree on top and make sure that we get base data
	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assert.Nil(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer...
	assert.Nil(t, cache.Write())
	assertGetHas(t, base, k2, v2, true)

	// a discarded cache leaves no trace
	cache = base.CacheWrap()
	assert.Nil(t, cache.Delete(k))
	assertGetHas(t, cache, k, nil, false)
	cache.Discard()
	assertGetHas(t, base, k, v, true)
}

func TestCommitVersions(t *testing.T) {
	dir, commit, cleanup := makeCommitStore(t)
	defer cleanup()

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)

	k, v := []byte("state"), []byte("initialized")
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set(k, v))
	assert.Nil(t, cache.Write())

	// not committed yet
	got, err := commit.Get(k)
	assert.Nil(t, err)
	assert.Nil(t, got)

	id, err = commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("expected a root hash")
	}
	got, err = commit.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)

	// reopen from disk
	commit.Close()
	reopened := NewCommitStore(dir, "base")
	assert.Nil(t, reopened.LoadLatestVersion())
	latest, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id.Version, latest.Version)
	assert.Equal(t, id.Hash, latest.Hash)
	got, err = reopened.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)
	reopened.Close()
}

func TestAdapterIterators(t *testing.T) {
	commit := NewCommitStore("", "mem")
	base := commit.Adapter()
	for _, k := range []string{"a", "b", "c", "d"} {
		assert.Nil(t, base.Set([]byte(k), []byte("v"+k)))
	}

	itr, err := base.Iterator([]byte("b"), []byte("d"))
	assert.Nil(t, err)
	got := collect(t, itr)
	assert.Equal(t, []store.Model{
		{Key: []byte("b"), Value: []byte("vb")},
		{Key: []byte("c"), Value: []byte("vc")},
	}, got)

	itr, err = base.ReverseIterator(nil, nil)
	assert.Nil(t, err)
	got = collect(t, itr)
	assert.Equal(t, 4, len(got))
	assert.Equal(t, []byte("d"), got[0].Key)
	assert.Equal(t, []byte("a"), got[3].Key)

	// cached deletes hide committed values
	cache := base.CacheWrap()
	assert.Nil(t, cache.Delete([]byte("c")))
	itr, err = cache.Iterator(nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(collect(t, itr)))
}
