package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/crypto"
)

type service struct {
	storage    storage.AuthStorage
	logger     *slog.Logger
	now        func() time.Time
	passphrase string // для расшифровки сохраненного токена
}

// Compile-time check that service implements Service
var _ Service = (*service)(nil)

// Option настройка сервиса
type Option func(*service)

// WithPassphrase задает пароль для расшифровки токена
func WithPassphrase(passphrase string) Option {
	return func(s *service) {
		s.passphrase = passphrase
	}
}

// WithNow подменяет источник времени
func WithNow(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewService создает сервис токенов
func NewService(st storage.AuthStorage, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		storage: st,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) SaveToken(ctx context.Context, token, passphrase string) (*storage.AuthData, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return nil, ErrEmptyToken
	}

	data := &storage.AuthData{AccessToken: token}

	// Непрозрачный токен тоже допустим, тогда срок неизвестен
	if claims, err := ParseClaims(token); err == nil {
		data.Username = claims.Subject
		if !claims.ExpiresAt.IsZero() {
			data.ExpiresAt = claims.ExpiresAt.Unix()
		}
	} else {
		s.logger.Debug("Token is not a JWT, expiry unknown", "error", err)
	}

	if data.Expired(s.now().Unix()) {
		return nil, ErrTokenExpired
	}

	stored := *data
	if passphrase != "" {
		sealed, err := crypto.Seal([]byte(token), passphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt token: %w", err)
		}
		stored.AccessToken = sealed
		stored.Encrypted = true
	}

	if err := s.storage.SaveAuth(ctx, &stored); err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}

	s.logger.Info("Token saved", "user", data.Username, "encrypted", stored.Encrypted)
	data.AccessToken = ""
	data.Encrypted = stored.Encrypted
	return data, nil
}

func (s *service) Token(ctx context.Context) (string, error) {
	data, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	if data.Expired(s.now().Unix()) {
		return "", ErrTokenExpired
	}
	if !data.Encrypted {
		return data.AccessToken, nil
	}

	if s.passphrase == "" {
		return "", ErrPassphraseRequired
	}
	plain, err := crypto.Open(data.AccessToken, s.passphrase)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt token: %w", err)
	}
	return string(plain), nil
}

func (s *service) Current(ctx context.Context) (*storage.AuthData, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	data.AccessToken = ""
	return data, nil
}

func (s *service) Logout(ctx context.Context) error {
	if err := s.storage.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	s.logger.Info("Token removed")
	return nil
}

func (s *service) load(ctx context.Context) (*storage.AuthData, error) {
	data, err := s.storage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	return data, nil
}
