package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims данные из токена, которые нужны клиенту
type TokenClaims struct {
	ExpiresAt time.Time // zero, если exp не задан
	Subject   string
}

// ParseClaims читает claims без проверки подписи: ключа у клиента нет,
// подпись проверяет сервер. Используется только для срока действия.
func ParseClaims(token string) (*TokenClaims, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	out := &TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
