package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/todosync/internal/client/auth"
	"github.com/iudanet/todosync/internal/client/data"
	"github.com/iudanet/todosync/internal/client/iocli"
	clientsync "github.com/iudanet/todosync/internal/client/sync"
	"github.com/iudanet/todosync/internal/models"
)

// PassphraseEnvVar переменная окружения с паролем токена
const PassphraseEnvVar = "TODOSYNC_PASSPHRASE"

//go:generate moq -out syncservice_mock.go . SyncService

// SyncService операции движка синхронизации, которые нужны командам
type SyncService interface {
	Sync(ctx context.Context, trigger clientsync.Trigger) (*clientsync.SyncResult, error)
	Status(ctx context.Context) (clientsync.Status, error)
	FailedItems(ctx context.Context) ([]*models.SyncQueueItem, error)
	RetryFailed(ctx context.Context) (int, error)
}

type Passphrases struct {
	FromFile string
	FromArgs string
}

type Cli struct {
	io          iocli.IO
	authService auth.Service
	dataService data.Service
	syncService SyncService
}

func New(io iocli.IO, authService auth.Service, dataService data.Service, syncService SyncService) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		dataService: dataService,
		syncService: syncService,
	}
}

// ReadPassphrase получает пароль токена из источников по приоритету:
// 1. Переменная окружения TODOSYNC_PASSPHRASE
// 2. Файл FromFile
// 3. Параметр FromArgs
// 4. Интерактивный ввод, если interactive
// Пустая строка без ошибки означает, что пароль не задан.
func ReadPassphrase(io iocli.IO, p Passphrases, interactive bool) (string, error) {
	if env := os.Getenv(PassphraseEnvVar); env != "" {
		return env, nil
	}

	if p.FromFile != "" {
		content, err := os.ReadFile(p.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read passphrase file: %w", err)
		}
		// Убираем trailing newline/whitespace
		passphrase := strings.TrimSpace(string(content))
		if passphrase == "" {
			return "", fmt.Errorf("passphrase file is empty")
		}
		return passphrase, nil
	}

	if p.FromArgs != "" {
		return p.FromArgs, nil
	}

	if !interactive {
		return "", nil
	}
	passphrase, err := io.ReadPassword("Passphrase: ")
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	if passphrase == "" {
		return "", fmt.Errorf("passphrase cannot be empty")
	}
	return passphrase, nil
}

func syncMark(r *models.Record) string {
	if r.SyncStatus == models.RecordSynced {
		return ""
	}
	return " (not synced)"
}
