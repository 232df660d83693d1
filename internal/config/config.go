package config

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/iudanet/todosync/internal/conflict"
)

const realtimePath = "/api/ws/sync"

// Config настройки клиента
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Storage  StorageConfig  `koanf:"storage"`
	Logging  LoggingConfig  `koanf:"logging"`
	Sync     SyncConfig     `koanf:"sync"`
	Realtime RealtimeConfig `koanf:"realtime"`
	Network  NetworkConfig  `koanf:"network"`
	Breaker  BreakerConfig  `koanf:"breaker"`
}

// ServerConfig адреса сервера
type ServerConfig struct {
	URL         string        `koanf:"url"`          // базовый адрес REST API
	RealtimeURL string        `koanf:"realtime_url"` // websocket; пустой - выводится из URL
	Timeout     time.Duration `koanf:"timeout"`      // таймаут HTTP запроса
}

// StorageConfig локальное хранилище
type StorageConfig struct {
	Path string `koanf:"path"`
}

// LoggingConfig формат логов
type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text, json
}

// SyncConfig движок синхронизации и разрешение конфликтов
type SyncConfig struct {
	Strategy       string        `koanf:"strategy"`
	Interval       time.Duration `koanf:"interval"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`
	Retention      time.Duration `koanf:"retention"`
	PromptTimeout  time.Duration `koanf:"prompt_timeout"`
	MaxRetries     int           `koanf:"max_retries"`
}

// RealtimeConfig realtime канал
type RealtimeConfig struct {
	Rooms                []string      `koanf:"rooms"`
	HeartbeatInterval    time.Duration `koanf:"heartbeat_interval"`
	HeartbeatTimeout     time.Duration `koanf:"heartbeat_timeout"`
	ReconnectDelay       time.Duration `koanf:"reconnect_delay"`
	RoomTimeout          time.Duration `koanf:"room_timeout"`
	MaxReconnectAttempts int           `koanf:"max_reconnect_attempts"`
	Enabled              bool          `koanf:"enabled"`
}

// NetworkConfig проверка доступности сервера
type NetworkConfig struct {
	HealthInterval time.Duration `koanf:"health_interval"`
	HealthTimeout  time.Duration `koanf:"health_timeout"`
}

// BreakerConfig circuit breaker HTTP клиента
type BreakerConfig struct {
	OpenTimeout      time.Duration `koanf:"open_timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// Validate проверяет значения после загрузки
func (c *Config) Validate() error {
	var errs []error

	if err := validateURL("server.url", c.Server.URL, "http", "https"); err != nil {
		errs = append(errs, err)
	}
	if c.Server.RealtimeURL != "" {
		if err := validateURL("server.realtime_url", c.Server.RealtimeURL, "ws", "wss"); err != nil {
			errs = append(errs, err)
		}
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, errors.New("storage.path is required"))
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		errs = append(errs, fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format))
	}
	if _, err := conflict.ParseStrategy(c.Sync.Strategy); err != nil {
		errs = append(errs, fmt.Errorf("sync.strategy: %w", err))
	}
	if c.Sync.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("sync.max_retries must not be negative, got %d", c.Sync.MaxRetries))
	}
	if c.Realtime.MaxReconnectAttempts < 1 {
		errs = append(errs, fmt.Errorf("realtime.max_reconnect_attempts must be positive, got %d", c.Realtime.MaxReconnectAttempts))
	}

	positive := map[string]time.Duration{
		"server.timeout":              c.Server.Timeout,
		"sync.interval":               c.Sync.Interval,
		"sync.retry_base_delay":       c.Sync.RetryBaseDelay,
		"sync.retention":              c.Sync.Retention,
		"sync.prompt_timeout":         c.Sync.PromptTimeout,
		"realtime.heartbeat_interval": c.Realtime.HeartbeatInterval,
		"realtime.heartbeat_timeout":  c.Realtime.HeartbeatTimeout,
		"realtime.reconnect_delay":    c.Realtime.ReconnectDelay,
		"realtime.room_timeout":       c.Realtime.RoomTimeout,
		"network.health_interval":     c.Network.HealthInterval,
		"network.health_timeout":      c.Network.HealthTimeout,
		"breaker.open_timeout":        c.Breaker.OpenTimeout,
	}
	for _, key := range slices.Sorted(maps.Keys(positive)) {
		if positive[key] <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", key, positive[key]))
		}
	}

	return errors.Join(errs...)
}

// WebsocketURL адрес realtime канала: явный или http(s) адрес сервера
// со схемой ws(s) и путем /api/ws/sync
func (c *Config) WebsocketURL() string {
	if c.Server.RealtimeURL != "" {
		return c.Server.RealtimeURL
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return ""
	}
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + realtimePath
	return u.String()
}

// ParseLevel разбирает уровень логирования
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return l, nil
}

func validateURL(key, raw string, schemes ...string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	for _, s := range schemes {
		if u.Scheme == s && u.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("%s must be a %s URL, got %q", key, strings.Join(schemes, "/"), raw)
}
