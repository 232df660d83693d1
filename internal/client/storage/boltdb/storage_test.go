package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/models"
)

// newTestStorage создает временное BoltDB хранилище
func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	store, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func allBuckets() [][]byte {
	buckets := [][]byte{bucketAuth, bucketMetadata, bucketOperations, bucketSyncQueue, bucketServerIndex}
	for _, name := range models.Collections {
		buckets = append(buckets, collectionBuckets[name])
	}
	return buckets
}

func assertBuckets(t *testing.T, db *bbolt.DB) {
	t.Helper()
	require.NoError(t, db.View(func(tx *bbolt.Tx) error {
		for _, name := range allBuckets() {
			if _, err := bucket(tx, name); err != nil {
				return err
			}
		}
		return nil
	}))
}

func TestNew(t *testing.T) {
	store := newTestStorage(t)
	assertBuckets(t, store.db)

	// бакеты коллекций называются так же, как коллекции
	for _, name := range models.Collections {
		assert.Equal(t, name, string(collectionBuckets[name]))
	}
}

func TestNew_InvalidPath(t *testing.T) {
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "db"))
	assert.ErrorContains(t, err, "failed to open boltdb")
	assert.Nil(t, store)
}

func TestNew_LockedByAnotherHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locked.db")
	first, err := New(context.Background(), path)
	require.NoError(t, err)
	defer first.Close()

	start := time.Now()
	second, err := New(context.Background(), path)
	assert.ErrorIs(t, err, storage.ErrStorageLocked)
	assert.Nil(t, second)
	assert.GreaterOrEqual(t, time.Since(start), openTimeout)
}

func TestInitBuckets_Idempotent(t *testing.T) {
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "init.db"), 0600, nil)
	require.NoError(t, err)
	defer db.Close()

	store := &Storage{db: db}
	require.NoError(t, store.initBuckets())
	require.NoError(t, store.initBuckets())
	assertBuckets(t, db)
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, filepath.Join(t.TempDir(), "close.db"))
	require.NoError(t, err)

	require.NoError(t, store.Close())
	assert.Nil(t, store.db)
	assert.NoError(t, store.Close())

	_, err = store.ListOperations(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = store.GetRecord(ctx, models.CollectionTodos, "x")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.SaveDeviceID(ctx, "d"), storage.ErrStorageClosed)
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	store, err := New(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.SaveLastSyncTimestamp(ctx, 99))
	require.NoError(t, store.SaveDeviceID(ctx, "device-1"))
	require.NoError(t, store.SaveQueueItem(ctx, &models.SyncQueueItem{ID: "01Q", StoreName: models.CollectionTodos}))
	require.NoError(t, store.Close())

	store, err = New(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	ts, err := store.GetLastSyncTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(99), ts)

	deviceID, err := store.GetDeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "device-1", deviceID)

	items, err := store.ListQueue(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "01Q", items[0].ID)
}
