package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	httpClient "github.com/iudanet/todosync/internal/client/api"
	"github.com/iudanet/todosync/internal/client/auth"
	"github.com/iudanet/todosync/internal/client/data"
	"github.com/iudanet/todosync/internal/client/iocli"
	"github.com/iudanet/todosync/internal/client/network"
	"github.com/iudanet/todosync/internal/client/realtime"
	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/client/storage/boltdb"
	clientsync "github.com/iudanet/todosync/internal/client/sync"
	"github.com/iudanet/todosync/internal/clock"
	"github.com/iudanet/todosync/internal/config"
	"github.com/iudanet/todosync/internal/conflict"
	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/internal/oplog"
	"github.com/iudanet/todosync/pkg/api"
)

// App собранный клиент: хранилище, журнал операций, движок синхронизации,
// монитор сети и realtime канал
type App struct {
	Auth      auth.Service
	Data      data.Service
	Engine    *clientsync.Engine
	Monitor   *network.Monitor
	Transport *realtime.Transport // nil если realtime выключен
	store     *boltdb.Storage
	cfg       *config.Config
	logger    *slog.Logger
}

type options struct {
	io         iocli.IO
	passphrase string
}

// Option настройка приложения
type Option func(*options)

// WithIO ввод-вывод для интерактивного разрешения конфликтов
func WithIO(io iocli.IO) Option {
	return func(o *options) {
		o.io = io
	}
}

// WithPassphrase пароль для расшифровки сохраненного токена
func WithPassphrase(passphrase string) Option {
	return func(o *options) {
		o.passphrase = passphrase
	}
}

// New открывает локальное хранилище и связывает компоненты клиента
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.io == nil {
		o.io = iocli.NewStdio()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	store, err := boltdb.New(ctx, cfg.Storage.Path)
	if errors.Is(err, storage.ErrStorageLocked) {
		// watch держит файл всё время работы
		return nil, fmt.Errorf("failed to open storage: %w (stop the running watch command first)", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	a, err := build(ctx, cfg, logger, store, o)
	if err != nil {
		return nil, errors.Join(err, store.Close())
	}
	return a, nil
}

func build(ctx context.Context, cfg *config.Config, logger *slog.Logger, store *boltdb.Storage, o options) (*App, error) {
	deviceID, err := ensureDeviceID(ctx, store)
	if err != nil {
		return nil, err
	}
	logger.Debug("Client device", "device_id", deviceID)

	clk := clock.New(deviceID)
	opLog, err := oplog.Open(ctx, store, clk, logger.With("component", "oplog"))
	if err != nil {
		return nil, err
	}

	strategy, err := conflict.ParseStrategy(cfg.Sync.Strategy)
	if err != nil {
		return nil, err
	}
	var prompt conflict.PromptFunc
	if strategy == conflict.StrategyPromptUser {
		prompt = iocli.ConflictPrompt(o.io)
	}
	resolver, err := conflict.NewResolver(strategy, prompt, cfg.Sync.PromptTimeout, logger.With("component", "resolver"))
	if err != nil {
		return nil, fmt.Errorf("failed to create conflict resolver: %w", err)
	}

	authService := auth.NewService(store, logger.With("component", "auth"), auth.WithPassphrase(o.passphrase))

	client := httpClient.NewClient(cfg.Server.URL, cfg.Server.Timeout)
	breakerCfg := httpClient.DefaultBreakerConfig()
	breakerCfg.Timeout = cfg.Breaker.OpenTimeout
	breakerCfg.FailureThreshold = cfg.Breaker.FailureThreshold

	monitor := network.New(client, logger.With("component", "network"), network.Options{
		Interval: cfg.Network.HealthInterval,
		Timeout:  cfg.Network.HealthTimeout,
	})

	engineLogger := logger.With("component", "sync")
	engine := clientsync.NewEngine(clientsync.Deps{
		API:      httpClient.NewBreakerClient(client, breakerCfg, logger.With("component", "api")),
		Tokens:   authService,
		Log:      opLog,
		Records:  store,
		Queue:    store,
		Meta:     store,
		Resolver: resolver,
		Clock:    clk,
		Logger:   engineLogger,
	}, clientsync.Options{
		Interval:       cfg.Sync.Interval,
		RetryBaseDelay: cfg.Sync.RetryBaseDelay,
		Retention:      cfg.Sync.Retention,
		MaxRetries:     cfg.Sync.MaxRetries,
		Online:         monitor.Online,
		OnPermanentFailure: func(item models.SyncQueueItem) {
			engineLogger.Error("Change was rejected permanently, use `todosync sync --retry-failed` to retry",
				"store", item.StoreName, "local_id", item.LocalID, "operation", item.Operation, "error", item.LastError)
		},
	})

	monitor.OnChange(func(online bool) {
		if online {
			engine.Trigger(clientsync.TriggerOnline)
		}
	})

	dataService := data.NewService(store, store, opLog, clk, logger.With("component", "data"),
		data.WithOnChange(func() { engine.Trigger(clientsync.TriggerManual) }))

	a := &App{
		Auth:    authService,
		Data:    dataService,
		Engine:  engine,
		Monitor: monitor,
		store:   store,
		cfg:     cfg,
		logger:  logger,
	}

	if cfg.Realtime.Enabled {
		a.Transport = realtime.New(cfg.WebsocketURL(), authService, logger.With("component", "realtime"), realtime.Options{
			OnSyncUpdate: func(msg api.Envelope) {
				engine.Trigger(clientsync.TriggerPush)
			},
			Rooms:                cfg.Realtime.Rooms,
			HeartbeatInterval:    cfg.Realtime.HeartbeatInterval,
			HeartbeatTimeout:     cfg.Realtime.HeartbeatTimeout,
			ReconnectDelay:       cfg.Realtime.ReconnectDelay,
			RoomTimeout:          cfg.Realtime.RoomTimeout,
			MaxReconnectAttempts: cfg.Realtime.MaxReconnectAttempts,
		})
	}

	return a, nil
}

// ensureDeviceID возвращает сохраненный ID устройства или создает новый
func ensureDeviceID(ctx context.Context, store *boltdb.Storage) (string, error) {
	id, err := store.GetDeviceID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read device id: %w", err)
	}
	if id != "" {
		return id, nil
	}
	id = uuid.NewString()
	if err := store.SaveDeviceID(ctx, id); err != nil {
		return "", fmt.Errorf("failed to save device id: %w", err)
	}
	return id, nil
}

// Close останавливает realtime канал и закрывает хранилище
func (a *App) Close() error {
	if a.Transport != nil {
		a.Transport.Disconnect()
	}
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}
