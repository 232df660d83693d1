package boltdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/models"
)

func serverIndexKey(collection, serverID string) []byte {
	return []byte(collection + "/" + serverID)
}

func collectionBucket(tx *bbolt.Tx, collection string) (*bbolt.Bucket, error) {
	name, ok := collectionBuckets[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrUnknownCollection, collection)
	}
	return bucket(tx, name)
}

// SaveRecord сохраняет запись и обновляет индекс серверных ID
func (s *Storage) SaveRecord(ctx context.Context, record *models.Record) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket, err := collectionBucket(tx, record.Collection)
		if err != nil {
			return err
		}
		return putRecord(tx, bucket, record)
	})
}

// UpdateRecord читает запись, применяет fn и сохраняет её в той же транзакции.
// Если fn вернула storage.ErrSkipUpdate, запись не меняется.
func (s *Storage) UpdateRecord(ctx context.Context, collection, localID string, fn func(*models.Record) error) (*models.Record, error) {
	var record *models.Record

	err := s.update(func(tx *bbolt.Tx) error {
		bucket, err := collectionBucket(tx, collection)
		if err != nil {
			return err
		}
		record, err = decodeRecord(bucket.Get([]byte(localID)))
		if err != nil {
			return err
		}

		if err := fn(record); err != nil {
			if errors.Is(err, storage.ErrSkipUpdate) {
				return nil
			}
			return err
		}
		// fn не может перенести запись в другую коллекцию или под другой ключ
		record.Collection = collection
		record.LocalID = localID
		return putRecord(tx, bucket, record)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// putRecord пишет запись; если серверный ID изменился, убирает старую запись индекса
func putRecord(tx *bbolt.Tx, bucket *bbolt.Bucket, record *models.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	index := tx.Bucket(bucketServerIndex)
	if prev := bucket.Get([]byte(record.LocalID)); prev != nil {
		var old models.Record
		if err := json.Unmarshal(prev, &old); err == nil && old.ServerID != "" && old.ServerID != record.ServerID {
			if err := index.Delete(serverIndexKey(record.Collection, old.ServerID)); err != nil {
				return fmt.Errorf("failed to update server index: %w", err)
			}
		}
	}

	if err := bucket.Put([]byte(record.LocalID), data); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	if record.ServerID != "" {
		if err := index.Put(serverIndexKey(record.Collection, record.ServerID), []byte(record.LocalID)); err != nil {
			return fmt.Errorf("failed to update server index: %w", err)
		}
	}
	return nil
}

// GetRecord возвращает запись по локальному ID
func (s *Storage) GetRecord(ctx context.Context, collection, localID string) (*models.Record, error) {
	var record *models.Record

	err := s.view(func(tx *bbolt.Tx) error {
		bucket, err := collectionBucket(tx, collection)
		if err != nil {
			return err
		}

		record, err = decodeRecord(bucket.Get([]byte(localID)))
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetRecordByServerID возвращает запись по серверному ID
func (s *Storage) GetRecordByServerID(ctx context.Context, collection, serverID string) (*models.Record, error) {
	var record *models.Record

	err := s.view(func(tx *bbolt.Tx) error {
		bucket, err := collectionBucket(tx, collection)
		if err != nil {
			return err
		}

		localID := tx.Bucket(bucketServerIndex).Get(serverIndexKey(collection, serverID))
		if localID == nil {
			return storage.ErrRecordNotFound
		}

		record, err = decodeRecord(bucket.Get(localID))
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListRecords возвращает все записи коллекции
func (s *Storage) ListRecords(ctx context.Context, collection string) ([]*models.Record, error) {
	var records []*models.Record

	err := s.view(func(tx *bbolt.Tx) error {
		bucket, err := collectionBucket(tx, collection)
		if err != nil {
			return err
		}

		return bucket.ForEach(func(k, v []byte) error {
			record, err := decodeRecord(v)
			if err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	return records, nil
}

// DeleteRecord физически удаляет запись и её индекс
func (s *Storage) DeleteRecord(ctx context.Context, collection, localID string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket, err := collectionBucket(tx, collection)
		if err != nil {
			return err
		}

		record, err := decodeRecord(bucket.Get([]byte(localID)))
		if err != nil {
			return err
		}

		if record.ServerID != "" {
			if err := tx.Bucket(bucketServerIndex).Delete(serverIndexKey(collection, record.ServerID)); err != nil {
				return fmt.Errorf("failed to delete server index: %w", err)
			}
		}

		if err := bucket.Delete([]byte(localID)); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}
		return nil
	})
}

func decodeRecord(data []byte) (*models.Record, error) {
	if data == nil {
		return nil, storage.ErrRecordNotFound
	}
	record := &models.Record{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return record, nil
}
