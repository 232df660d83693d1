package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/todosync/internal/models"
)

// Status состояние синхронизации для UI
type Status struct {
	LastSyncAt         time.Time                 // окончание последнего успешного цикла
	Queue              map[models.SyncStatus]int // элементы очереди по статусам
	LastError          string
	PendingOperations  int
	DeferredOperations int // ждут серверный ID сущности
	FailedOperations   int // отклонены сервером
	LastSyncTimestamp  int64
	Syncing            bool
	Online             bool
}

// Status возвращает текущее состояние синхронизации
func (e *Engine) Status(ctx context.Context) (Status, error) {
	items, err := e.queue.ListQueue(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("failed to read sync queue: %w", err)
	}
	lastSync, err := e.meta.GetLastSyncTimestamp(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("failed to read last sync time: %w", err)
	}

	st := Status{
		Queue:             make(map[models.SyncStatus]int, 4),
		LastSyncTimestamp: lastSync,
		Online:            e.online(),
	}
	for _, item := range items {
		st.Queue[item.Status]++
	}

	stats := e.log.Stats()
	st.PendingOperations = stats.Pending
	st.DeferredOperations = stats.Deferred
	st.FailedOperations = stats.Failed

	e.mu.Lock()
	st.Syncing = e.syncing
	st.LastSyncAt = e.lastSyncAt
	st.LastError = e.lastError
	e.mu.Unlock()

	return st, nil
}

// FailedItems возвращает элементы очереди в статусе failed_permanently
func (e *Engine) FailedItems(ctx context.Context) ([]*models.SyncQueueItem, error) {
	items, err := e.queue.ListQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read sync queue: %w", err)
	}
	var failed []*models.SyncQueueItem
	for _, item := range items {
		if item.Status == models.StatusFailedPermanently {
			failed = append(failed, item)
		}
	}
	return failed, nil
}

// RetryFailed возвращает failed_permanently элементы в очередь вместе
// с их операциями журнала
func (e *Engine) RetryFailed(ctx context.Context) (int, error) {
	failed, err := e.FailedItems(ctx)
	if err != nil {
		return 0, err
	}
	for _, item := range failed {
		e.log.Requeue(ctx, item.OperationIDs...)
		item.Status = models.StatusPending
		item.RetryCount = 0
		item.NextRetryAt = 0
		if err := e.queue.SaveQueueItem(ctx, item); err != nil {
			return 0, fmt.Errorf("failed to requeue item %s: %w", item.ID, err)
		}
	}
	return len(failed), nil
}
