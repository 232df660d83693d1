package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrRecordNotFound indicates that record was not found in collection
	ErrRecordNotFound = errors.New("record not found")

	// ErrQueueItemNotFound indicates that sync queue item was not found
	ErrQueueItemNotFound = errors.New("sync queue item not found")

	// ErrUnknownCollection indicates that collection has no bucket
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrSkipUpdate returned by an UpdateRecord callback leaves the record unchanged
	ErrSkipUpdate = errors.New("skip record update")

	// ErrStorageLocked indicates that another process holds the database file
	ErrStorageLocked = errors.New("storage is locked by another process")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
