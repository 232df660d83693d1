package boltdb

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"github.com/iudanet/todosync/internal/models"
)

// SaveQueueItem добавляет или обновляет элемент очереди синхронизации
func (s *Storage) SaveQueueItem(ctx context.Context, item *models.SyncQueueItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal queue item: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketSyncQueue)
		if err != nil {
			return err
		}

		if err := b.Put([]byte(item.ID), data); err != nil {
			return fmt.Errorf("failed to save queue item: %w", err)
		}
		return nil
	})
}

// ListQueue возвращает элементы очереди в порядке постановки
func (s *Storage) ListQueue(ctx context.Context) ([]*models.SyncQueueItem, error) {
	var items []*models.SyncQueueItem

	err := s.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketSyncQueue)
		if err != nil {
			return err
		}

		return b.ForEach(func(k, v []byte) error {
			var item models.SyncQueueItem
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("failed to unmarshal queue item: %w", err)
			}
			items = append(items, &item)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sync queue: %w", err)
	}

	return items, nil
}

// DeleteQueueItems удаляет элементы очереди
func (s *Storage) DeleteQueueItems(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketSyncQueue)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if err := b.Delete([]byte(id)); err != nil {
				return fmt.Errorf("failed to delete queue item %s: %w", id, err)
			}
		}
		return nil
	})
}
