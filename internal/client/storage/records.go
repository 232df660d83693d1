package storage

import (
	"context"

	"github.com/iudanet/todosync/internal/models"
)

//go:generate moq -out recordstorage_mock.go . RecordStorage

// RecordStorage хранит локальные копии сущностей по коллекциям
type RecordStorage interface {
	// SaveRecord сохраняет или обновляет запись по LocalID.
	// Поддерживает индекс ServerID -> LocalID.
	SaveRecord(ctx context.Context, record *models.Record) error

	// UpdateRecord читает запись, передает её в fn и сохраняет результат
	// атомарно. fn может вернуть ErrSkipUpdate, чтобы ничего не записывать.
	// Returns ErrRecordNotFound if record doesn't exist
	UpdateRecord(ctx context.Context, collection, localID string, fn func(*models.Record) error) (*models.Record, error)

	// GetRecord возвращает запись по локальному ID
	// Returns ErrRecordNotFound if record doesn't exist
	GetRecord(ctx context.Context, collection, localID string) (*models.Record, error)

	// GetRecordByServerID возвращает запись по серверному ID
	// Returns ErrRecordNotFound if record doesn't exist
	GetRecordByServerID(ctx context.Context, collection, serverID string) (*models.Record, error)

	// ListRecords возвращает все записи коллекции, включая удаленные
	ListRecords(ctx context.Context, collection string) ([]*models.Record, error)

	// DeleteRecord физически удаляет запись
	DeleteRecord(ctx context.Context, collection, localID string) error
}
