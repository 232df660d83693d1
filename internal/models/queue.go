package models

import (
	"maps"
	"slices"
)

// QueueOperation тип элемента очереди синхронизации
type QueueOperation string

const (
	QueueCreate QueueOperation = "create"
	QueueUpdate QueueOperation = "update"
	QueueDelete QueueOperation = "delete"
)

// SyncQueueItem запись-уровня изменение, ожидающее отправки на сервер.
// Для todos update/delete фактически переносятся операциями из журнала
// (OperationIDs), а элемент очереди только отслеживает их судьбу.
type SyncQueueItem struct {
	Data         map[string]any `json:"data"`                    // Data снимок записи на момент изменения
	ID           string         `json:"id"`                      // ID упорядоченный ULID
	Operation    QueueOperation `json:"operation"`               // Operation create/update/delete
	StoreName    string         `json:"store_name"`              // StoreName коллекция: todos, sharedLists, comments
	LocalID      string         `json:"local_id"`                // LocalID локальный ключ записи
	Status       SyncStatus     `json:"status"`                  // Status pending/synced/failed/failed_permanently
	LastError    string         `json:"last_error,omitempty"`    // LastError текст последней ошибки
	OperationIDs []string       `json:"operation_ids,omitempty"` // OperationIDs операции журнала, которые несут это изменение
	NextRetryAt  int64          `json:"next_retry_at,omitempty"` // NextRetryAt не отправлять раньше этого времени, мс
	Timestamp    int64          `json:"timestamp"`               // Timestamp время постановки в очередь, мс
	RetryCount   int            `json:"retry_count"`             // RetryCount число неудачных попыток
}

// Clone создает копию элемента очереди
func (i *SyncQueueItem) Clone() *SyncQueueItem {
	c := *i
	c.Data = maps.Clone(i.Data)
	c.OperationIDs = slices.Clone(i.OperationIDs)
	return &c
}

// Due сообщает, можно ли отправлять элемент в момент now (мс)
func (i *SyncQueueItem) Due(now int64) bool {
	switch i.Status {
	case StatusPending:
		return true
	case StatusFailed:
		return i.NextRetryAt <= now
	default:
		return false
	}
}
