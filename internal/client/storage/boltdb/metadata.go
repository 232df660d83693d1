package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	keyLastSyncTimestamp = []byte("last_sync_timestamp")
	keyDeviceID          = []byte("device_id")
)

// SaveLastSyncTimestamp сохраняет водяной знак синхронизации.
// Меньшее значение игнорируется: watch и ручной sync могут писать в одну базу.
func (s *Storage) SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error {
	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketMetadata)
		if err != nil {
			return err
		}
		if timestamp <= decodeInt64(b.Get(keyLastSyncTimestamp)) {
			return nil
		}

		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(timestamp))
		if err := b.Put(keyLastSyncTimestamp, buf); err != nil {
			return fmt.Errorf("failed to save last sync timestamp: %w", err)
		}
		return nil
	})
}

// GetLastSyncTimestamp returns 0 if no sync has been performed yet
func (s *Storage) GetLastSyncTimestamp(ctx context.Context) (int64, error) {
	var ts int64
	err := s.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketMetadata)
		if err != nil {
			return err
		}
		ts = decodeInt64(b.Get(keyLastSyncTimestamp))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get last sync timestamp: %w", err)
	}
	return ts, nil
}

func (s *Storage) SaveDeviceID(ctx context.Context, deviceID string) error {
	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketMetadata)
		if err != nil {
			return err
		}
		if err := b.Put(keyDeviceID, []byte(deviceID)); err != nil {
			return fmt.Errorf("failed to save device id: %w", err)
		}
		return nil
	})
}

func (s *Storage) GetDeviceID(ctx context.Context) (string, error) {
	var deviceID string
	err := s.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketMetadata)
		if err != nil {
			return err
		}
		// string() копирует: срез bbolt живет только внутри транзакции
		deviceID = string(b.Get(keyDeviceID))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get device id: %w", err)
	}
	return deviceID, nil
}

func decodeInt64(v []byte) int64 {
	if len(v) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(v))
}
