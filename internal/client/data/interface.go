package data

import (
	"context"

	"github.com/iudanet/todosync/internal/models"
)

//go:generate moq -out service_mock.go . Service

// Service фиксирует изменения пользователя: сразу пишет локальную запись,
// синхронно добавляет операции в журнал и ставит элемент в очередь.
// id во всех методах может быть локальным или серверным.
type Service interface {
	CreateTodo(ctx context.Context, fields map[string]any) (*models.Record, error)
	UpdateTodoField(ctx context.Context, id, field string, value any) (*models.Record, error)
	DeleteTodo(ctx context.Context, id string) error
	GetTodo(ctx context.Context, id string) (*models.Record, error)
	ListTodos(ctx context.Context) ([]*models.Record, error)

	// Общие списки и комментарии синхронизируются целыми записями
	CreateRecord(ctx context.Context, collection string, data map[string]any) (*models.Record, error)
	UpdateRecord(ctx context.Context, collection, id string, data map[string]any) (*models.Record, error)
	DeleteRecord(ctx context.Context, collection, id string) error
	ListRecords(ctx context.Context, collection string) ([]*models.Record, error)
}
