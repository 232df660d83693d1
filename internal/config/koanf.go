package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/iudanet/todosync/internal/conflict"
)

const (
	// EnvPrefix префикс переменных окружения: TODOSYNC_SYNC__INTERVAL -> sync.interval
	EnvPrefix = "TODOSYNC_"

	// ConfigPathEnvVar путь к файлу конфигурации
	ConfigPathEnvVar = EnvPrefix + "CONFIG"
)

// DefaultConfigPaths где искать файл, если путь не задан явно
var DefaultConfigPaths = []string{
	"todosync.yaml",
	"todosync.yml",
}

// sliceConfigPaths ключи-списки, которые в окружении задаются через запятую
var sliceConfigPaths = []string{
	"realtime.rooms",
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Path: defaultStoragePath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Sync: SyncConfig{
			Strategy:       string(conflict.StrategySmartMerge),
			Interval:       30 * time.Second,
			RetryBaseDelay: time.Second,
			Retention:      7 * 24 * time.Hour,
			PromptTimeout:  conflict.DefaultPromptTimeout,
			MaxRetries:     3,
		},
		Realtime: RealtimeConfig{
			Enabled:              true,
			Rooms:                []string{},
			HeartbeatInterval:    60 * time.Second,
			HeartbeatTimeout:     30 * time.Second,
			ReconnectDelay:       3 * time.Second,
			RoomTimeout:          5 * time.Second,
			MaxReconnectAttempts: 5,
		},
		Network: NetworkConfig{
			HealthInterval: 30 * time.Second,
			HealthTimeout:  5 * time.Second,
		},
		Breaker: BreakerConfig{
			OpenTimeout:      30 * time.Second,
			FailureThreshold: 5,
		},
	}
}

// Load собирает конфигурацию: умолчания, затем YAML файл, затем окружение.
// path пустой - используется TODOSYNC_CONFIG или DefaultConfigPaths.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// envTransformFunc TODOSYNC_REALTIME__ROOM_TIMEOUT -> realtime.room_timeout
func envTransformFunc(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	if key == "CONFIG" {
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		return envPath
	}
	paths := slices.Clone(DefaultConfigPaths)
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "todosync", "config.yaml"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// processSliceFields превращает "a,b" из окружения в список
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(raw, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "todosync.db"
	}
	return filepath.Join(home, ".todosync", "todosync.db")
}
