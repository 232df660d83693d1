package storage

import (
	"context"

	"github.com/iudanet/todosync/internal/models"
)

//go:generate moq -out queuestorage_mock.go . QueueStorage

// QueueStorage хранит очередь синхронизации записей
type QueueStorage interface {
	// SaveQueueItem добавляет или обновляет элемент очереди
	SaveQueueItem(ctx context.Context, item *models.SyncQueueItem) error

	// ListQueue возвращает элементы очереди в порядке постановки
	ListQueue(ctx context.Context) ([]*models.SyncQueueItem, error)

	// DeleteQueueItems удаляет элементы очереди по ID
	DeleteQueueItems(ctx context.Context, ids ...string) error
}
