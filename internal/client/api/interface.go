package api

import (
	"context"

	"github.com/iudanet/todosync/pkg/api"
)

//go:generate moq -out clientapi_mock.go . ClientAPI

// ClientAPI методы сервера, которые использует движок синхронизации
type ClientAPI interface {
	// Sync отправляет пачку операций и получает серверные изменения
	Sync(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error)

	// ResolveConflict сообщает серверу решение по конфликту
	ResolveConflict(ctx context.Context, accessToken string, req api.ResolveConflictRequest) error

	// PushRecord отправляет элемент очереди через REST эндпоинт коллекции
	PushRecord(ctx context.Context, accessToken string, req PushRequest) (api.RecordResponse, error)
}

// PushRequest изменение одной записи для REST эндпоинта коллекции
type PushRequest struct {
	Data       map[string]any
	Collection string
	Operation  string // create, update, delete
	ServerID   string // пустой для create
}
