package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/todosync/internal/models"
)

func TestStorage_SaveListOperations(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	ops := []*models.Operation{
		{ID: "01B", LocalID: "l1", Kind: models.OperationUpdate, FieldName: "title", NewValue: "b", Timestamp: 2, SyncStatus: models.StatusPending},
		{ID: "01A", LocalID: "l1", Kind: models.OperationCreate, NewValue: map[string]any{"title": "a"}, Timestamp: 1, SyncStatus: models.StatusPending},
	}
	require.NoError(t, store.SaveOperations(ctx, ops...))

	got, err := store.ListOperations(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ключи - ULID, порядок = порядок создания
	assert.Equal(t, "01A", got[0].ID)
	assert.Equal(t, "01B", got[1].ID)
	assert.Equal(t, "b", got[1].NewValue)
	assert.Equal(t, map[string]any{"title": "a"}, got[0].NewValue)

	// Обновление статуса перезаписывает операцию
	ops[0].SyncStatus = models.StatusSynced
	require.NoError(t, store.SaveOperations(ctx, ops[0]))

	got, err = store.ListOperations(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSynced, got[1].SyncStatus)

	// Пустой вызов ничего не делает
	assert.NoError(t, store.SaveOperations(ctx))
}

func TestStorage_DeleteOperations(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.SaveOperations(ctx,
		&models.Operation{ID: "1"},
		&models.Operation{ID: "2"},
		&models.Operation{ID: "3"},
	))

	require.NoError(t, store.DeleteOperations(ctx, "1", "3", "missing"))

	got, err := store.ListOperations(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestStorage_Operations_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketOperations)
	}))

	err := store.SaveOperations(ctx, &models.Operation{ID: "1"})
	assert.ErrorContains(t, err, "operations bucket not found")

	_, err = store.ListOperations(ctx)
	assert.ErrorContains(t, err, "operations bucket not found")
}
