package auth

import (
	"context"

	"github.com/iudanet/todosync/internal/client/storage"
)

//go:generate moq -out service_mock.go . Service

// Service хранит bearer token, выданный сервером
type Service interface {
	// SaveToken проверяет и сохраняет токен. Если передан пароль,
	// токен шифруется.
	SaveToken(ctx context.Context, token, passphrase string) (*storage.AuthData, error)

	// Token возвращает действующий токен
	Token(ctx context.Context) (string, error)

	// Current возвращает сохраненные данные без токена
	Current(ctx context.Context) (*storage.AuthData, error)

	// Logout удаляет токен
	Logout(ctx context.Context) error
}
