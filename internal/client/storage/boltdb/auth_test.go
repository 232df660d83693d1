package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/todosync/internal/client/storage"
)

func TestStorage_Auth(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	_, err := store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
	assert.ErrorIs(t, store.DeleteAuth(ctx), storage.ErrAuthNotFound)

	first := &storage.AuthData{Username: "alice", AccessToken: "plain", ExpiresAt: 1_900_000_000}
	require.NoError(t, store.SaveAuth(ctx, first))

	got, err := store.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	// повторное сохранение заменяет токен
	second := &storage.AuthData{AccessToken: "c2VhbGVk", Encrypted: true}
	require.NoError(t, store.SaveAuth(ctx, second))
	got, err = store.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	require.NoError(t, store.DeleteAuth(ctx))
	_, err = store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}

func TestStorage_Auth_Corrupted(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAuth).Put(keyCurrentToken, []byte("{not json"))
	}))

	_, err := store.GetAuth(context.Background())
	assert.ErrorContains(t, err, "failed to unmarshal auth data")
}

func TestStorage_Auth_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	require.NoError(t, store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketAuth)
	}))

	_, err := store.GetAuth(ctx)
	assert.ErrorContains(t, err, "auth bucket not found")
	assert.ErrorContains(t, store.SaveAuth(ctx, &storage.AuthData{AccessToken: "t"}), "auth bucket not found")
	assert.ErrorContains(t, store.DeleteAuth(ctx), "auth bucket not found")
}

func TestStorage_Auth_Closed(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Close())

	_, err := store.GetAuth(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
