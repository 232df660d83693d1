package storage

import "context"

// AuthStorage хранит токен доступа клиента
type AuthStorage interface {
	SaveAuth(ctx context.Context, auth *AuthData) error
	// GetAuth returns ErrAuthNotFound if no token is stored
	GetAuth(ctx context.Context) (*AuthData, error)
	// DeleteAuth returns ErrAuthNotFound if no token is stored
	DeleteAuth(ctx context.Context) error
}

// AuthData represents authentication information in storage.
// Токен выдается сервером вне этого клиента и сохраняется как есть.
type AuthData struct {
	Username    string `json:"username,omitempty"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at,omitempty"` // unix seconds, 0 если срок неизвестен
	Encrypted   bool   `json:"encrypted,omitempty"`  // AccessToken зашифрован паролем
}

// Expired сообщает, что срок действия токена истек к моменту now (unix seconds)
func (a *AuthData) Expired(now int64) bool {
	return a.ExpiresAt > 0 && now >= a.ExpiresAt
}
