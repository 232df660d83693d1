package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func TestLastSyncTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		saves []int64
		want  int64
	}{
		{name: "never synced", want: 0},
		{name: "single", saves: []int64{1714557600000}, want: 1714557600000},
		{name: "advances", saves: []int64{100, 200, 300}, want: 300},
		{name: "older value ignored", saves: []int64{500, 300}, want: 500},
		{name: "same value", saves: []int64{500, 500}, want: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newTestStorage(t)
			for _, ts := range tt.saves {
				require.NoError(t, store.SaveLastSyncTimestamp(ctx, ts))
			}

			got, err := store.GetLastSyncTimestamp(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeviceID(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	deviceID, err := store.GetDeviceID(ctx)
	require.NoError(t, err)
	assert.Empty(t, deviceID)

	require.NoError(t, store.SaveDeviceID(ctx, "device-42"))

	deviceID, err = store.GetDeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "device-42", deviceID)
}

func TestDecodeInt64(t *testing.T) {
	assert.Equal(t, int64(0), decodeInt64(nil))
	assert.Equal(t, int64(0), decodeInt64([]byte{1, 2, 3}))
	assert.Equal(t, int64(258), decodeInt64([]byte{0, 0, 0, 0, 0, 0, 1, 2}))
}

func TestMetadata_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	require.NoError(t, store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketMetadata)
	}))

	_, err := store.GetLastSyncTimestamp(ctx)
	assert.ErrorContains(t, err, "metadata bucket not found")
	assert.ErrorContains(t, store.SaveLastSyncTimestamp(ctx, 42), "metadata bucket not found")

	_, err = store.GetDeviceID(ctx)
	assert.ErrorContains(t, err, "metadata bucket not found")
	assert.ErrorContains(t, store.SaveDeviceID(ctx, "d"), "metadata bucket not found")
}
