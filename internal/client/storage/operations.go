package storage

import (
	"context"

	"github.com/iudanet/todosync/internal/models"
)

//go:generate moq -out operationstorage_mock.go . OperationStorage

// OperationStorage хранит журнал операций
type OperationStorage interface {
	// SaveOperations сохраняет или обновляет операции одной транзакцией
	SaveOperations(ctx context.Context, ops ...*models.Operation) error

	// ListOperations возвращает все операции в порядке SequenceID
	ListOperations(ctx context.Context) ([]*models.Operation, error)

	// DeleteOperations удаляет операции по ID
	DeleteOperations(ctx context.Context, ids ...string) error
}
