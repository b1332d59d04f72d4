package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/paysplit/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func TestCacheGetSet(t *testing.T) {
	commit := NewMemCommitStore()
	base := commit.Adapter()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	require.NoError(t, cache.Write())
	assertGetHas(t, base, k2, v2, true)

	discarded := base.CacheWrap()
	require.NoError(t, discarded.Delete(k))
	discarded.Discard()
	assertGetHas(t, base, k, v, true)
}

func TestCommitVersions(t *testing.T) {
	commit := NewMemCommitStore()
	assert.Equal(t, int64(0), commit.LatestVersion().Version)

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	require.NoError(t, cache.Write())

	// Working state is not visible as committed state until committed.
	got, err := commit.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = commit.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}

func TestPersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "paysplit-iavl-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("splitter"), []byte("state")))
	require.NoError(t, cache.Write())
	first, err := commit.Commit()
	require.NoError(t, err)
	commit.Close()

	reopened, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, first, reopened.LatestVersion())
	got, err := reopened.Get([]byte("splitter"))
	require.NoError(t, err)
	assert.Equal(t, []byte("state"), got)
}
