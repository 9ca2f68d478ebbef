package inventory

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shop")
	store := NewFileStore(dir)

	_, err := store.Load(ProductsKey)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	l, err := Open(store)
	require.NoError(t, err)
	w := mustAdd(t, l, "Widget", "Tools", "10.00", 5)
	_, err = l.Sell(w.ID, 1)
	require.NoError(t, err)
	require.NoError(t, l.PersistErr())

	for _, name := range []string{"products.jsonl", "invoices.jsonl"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary file left behind")

	reopened, err := Open(NewFileStore(dir))
	require.NoError(t, err)
	p, ok := reopened.Product(w.ID)
	require.True(t, ok)
	assert.Equal(t, 4, p.Quantity)
	assert.Len(t, reopened.invoices, 1)
}

func TestMemoryStoreCopies(t *testing.T) {
	s := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, s.Save("k", data))
	data[0] = 'x'
	got, err := s.Load("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	assert.Equal(t, []string{"k"}, s.Keys())
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(ctx, "mem:")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = OpenStore(ctx, "some/dir")
	require.NoError(t, err)
	assert.Equal(t, "some/dir", s.(*FileStore).Dir())

	_, err = OpenStore(ctx, "")
	assert.Error(t, err)
}

// TestRedisStore runs against the server in INV_TEST_REDIS, e.g. redis://localhost:6379/15.
func TestRedisStore(t *testing.T) {
	url := os.Getenv("INV_TEST_REDIS")
	if url == "" {
		t.Skip("INV_TEST_REDIS not set")
	}
	store, err := NewRedisStore(context.Background(), url)
	require.NoError(t, err)
	defer store.Close()
	store.prefix = RedisKeyPrefix + t.Name() + ":"

	_, err = store.Load("missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	l, err := Open(store)
	require.NoError(t, err)
	w := mustAdd(t, l, "Widget", "Tools", "10.00", 5)
	require.NoError(t, l.PersistErr())

	reopened, err := Open(store)
	require.NoError(t, err)
	_, ok := reopened.Product(w.ID)
	assert.True(t, ok)
}
