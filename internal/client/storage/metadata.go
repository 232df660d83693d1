package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastSyncTimestamp saves the server timestamp of the last successful sync (ms)
	SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error

	// GetLastSyncTimestamp retrieves the timestamp of the last successful sync
	// Returns 0 if no sync has been performed yet
	GetLastSyncTimestamp(ctx context.Context) (int64, error)

	// SaveDeviceID сохраняет идентификатор устройства
	SaveDeviceID(ctx context.Context, deviceID string) error

	// GetDeviceID возвращает идентификатор устройства, пустую строку если его нет
	GetDeviceID(ctx context.Context) (string, error)
}
