package boltdb

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"github.com/iudanet/todosync/internal/models"
)

// SaveOperations сохраняет операции журнала. Ключ - ID операции (ULID),
// поэтому ForEach отдает их в порядке создания.
func (s *Storage) SaveOperations(ctx context.Context, ops ...*models.Operation) error {
	if len(ops) == 0 {
		return nil
	}

	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketOperations)
		if err != nil {
			return err
		}

		for _, op := range ops {
			data, err := json.Marshal(op)
			if err != nil {
				return fmt.Errorf("failed to marshal operation %s: %w", op.ID, err)
			}
			if err := b.Put([]byte(op.ID), data); err != nil {
				return fmt.Errorf("failed to save operation %s: %w", op.ID, err)
			}
		}
		return nil
	})
}

// ListOperations возвращает все операции журнала
func (s *Storage) ListOperations(ctx context.Context) ([]*models.Operation, error) {
	var ops []*models.Operation

	err := s.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketOperations)
		if err != nil {
			return err
		}

		return b.ForEach(func(k, v []byte) error {
			var op models.Operation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}
			ops = append(ops, &op)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}

	return ops, nil
}

// DeleteOperations удаляет операции по ID, отсутствующие ID игнорируются
func (s *Storage) DeleteOperations(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketOperations)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if err := b.Delete([]byte(id)); err != nil {
				return fmt.Errorf("failed to delete operation %s: %w", id, err)
			}
		}
		return nil
	})
}
