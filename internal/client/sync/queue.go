package sync

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/sethvargo/go-retry"

	httpClient "github.com/iudanet/todosync/internal/client/api"
	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/conflict"
	"github.com/iudanet/todosync/internal/metrics"
	"github.com/iudanet/todosync/internal/models"
)

// drainQueue отправляет элементы очереди, которые не переносятся журналом.
// Ошибка транспорта прерывает цикл, отказ сервера считается ошибкой элемента.
func (e *Engine) drainQueue(ctx context.Context, token string, result *SyncResult) error {
	items, err := e.queue.ListQueue(ctx)
	if err != nil {
		return fmt.Errorf("failed to read sync queue: %w", err)
	}

	now := e.opts.Now().UnixMilli()
	for _, item := range items {
		if !item.Due(now) {
			continue
		}
		if item.StoreName == models.CollectionTodos && item.Operation != models.QueueCreate {
			// update/delete todo переносятся операциями журнала
			if item.Status == models.StatusFailed {
				e.requeueItem(ctx, item)
			}
			continue
		}

		rec, err := e.records.GetRecord(ctx, item.StoreName, item.LocalID)
		if err != nil {
			if !errors.Is(err, storage.ErrRecordNotFound) {
				e.logger.Warn("Failed to read record for queue item",
					"item_id", item.ID, "store", item.StoreName, "error", err)
				continue
			}
			// запись удалена локально раньше, чем ушла на сервер
			e.logger.Debug("Queue item has no record, dropping",
				"item_id", item.ID, "store", item.StoreName, "local_id", item.LocalID)
			e.markItemSynced(ctx, item)
			continue
		}

		if item.Operation == models.QueueCreate && rec.ServerID != "" {
			// создание уже подтверждено, например до сбоя прошлого цикла
			e.markItemSynced(ctx, item)
			continue
		}
		if item.Operation != models.QueueCreate && rec.ServerID == "" {
			result.DeferredItems++
			continue
		}

		data, ready := e.resolveReferences(ctx, item)
		if !ready {
			result.DeferredItems++
			continue
		}

		resp, err := e.api.PushRecord(ctx, token, httpClient.PushRequest{
			Collection: item.StoreName,
			Operation:  string(item.Operation),
			ServerID:   rec.ServerID,
			Data:       data,
		})
		if err != nil {
			if !httpClient.IsStatusError(err) {
				return fmt.Errorf("failed to push %s %s: %w", item.StoreName, item.Operation, err)
			}
			e.failItem(ctx, item, err, result)
			continue
		}

		result.PushedItems++
		e.markItemSynced(ctx, item)

		switch item.Operation {
		case models.QueueCreate:
			serverID := resp.ID()
			if serverID == "" {
				e.logger.Warn("Server returned no id for created record",
					"store", item.StoreName, "local_id", item.LocalID)
				continue
			}
			e.remap(ctx, rec, serverID)
		case models.QueueDelete:
			e.dropRecord(ctx, item.StoreName, item.LocalID)
		case models.QueueUpdate:
			e.markRecordSynced(ctx, rec)
		}
	}
	return nil
}

// resolveReferences подставляет серверный ID todo в комментарий.
// Комментарий к ещё не созданному на сервере todo откладывается.
func (e *Engine) resolveReferences(ctx context.Context, item *models.SyncQueueItem) (map[string]any, bool) {
	if item.StoreName != models.CollectionComments {
		return item.Data, true
	}
	ref, _ := item.Data["todo_id"].(string)
	if ref == "" {
		return item.Data, true
	}
	todo, err := e.records.GetRecord(ctx, models.CollectionTodos, ref)
	if err != nil {
		// не локальный ID, значит уже серверный
		return item.Data, true
	}
	if todo.ServerID == "" {
		return nil, false
	}
	data := maps.Clone(item.Data)
	data["todo_id"] = todo.ServerID
	return data, true
}

// remap записывает серверный ID в запись и во все ссылки на неё.
// LocalID записи не меняется. Запись перечитывается: пока шел запрос,
// пользователь мог её изменить.
func (e *Engine) remap(ctx context.Context, sent *models.Record, serverID string) {
	isTodo := sent.Collection == models.CollectionTodos
	if isTodo {
		n := e.log.BackfillEntityID(ctx, sent.LocalID, serverID)
		e.logger.Debug("Todo created on server", "local_id", sent.LocalID, "server_id", serverID, "operations", n)
	}
	_, pending := e.protectedFields()[sent.LocalID]

	_, err := e.records.UpdateRecord(ctx, sent.Collection, sent.LocalID, func(rec *models.Record) error {
		rec.ServerID = serverID
		if rec.SyncStatus != models.RecordPending {
			return nil
		}
		if pending || editedSince(sent, rec) {
			// правки, сделанные во время запроса, ещё не отправлены
			rec.SyncStatus = models.RecordModified
		} else {
			rec.SyncStatus = models.RecordSynced
		}
		return nil
	})
	if err != nil {
		e.logger.Warn("Failed to save server id", "local_id", sent.LocalID, "server_id", serverID, "error", err)
	}

	if !isTodo {
		return
	}

	comments, err := e.records.ListRecords(ctx, models.CollectionComments)
	if err != nil {
		e.logger.Warn("Failed to list comments for remap", "error", err)
		return
	}
	for _, c := range comments {
		if ref, _ := c.Data["todo_id"].(string); ref != sent.LocalID {
			continue
		}
		_, err := e.records.UpdateRecord(ctx, models.CollectionComments, c.LocalID, func(rec *models.Record) error {
			if ref, _ := rec.Data["todo_id"].(string); ref != sent.LocalID {
				return storage.ErrSkipUpdate
			}
			rec.Data["todo_id"] = serverID
			return nil
		})
		if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
			e.logger.Warn("Failed to remap comment", "local_id", c.LocalID, "error", err)
		}
	}
}

// markRecordSynced помечает запись synced, если после чтения snapshot
// её никто не менял
func (e *Engine) markRecordSynced(ctx context.Context, snapshot *models.Record) {
	_, err := e.records.UpdateRecord(ctx, snapshot.Collection, snapshot.LocalID, func(rec *models.Record) error {
		if rec.Deleted || rec.SyncStatus == models.RecordSynced || editedSince(snapshot, rec) {
			return storage.ErrSkipUpdate
		}
		rec.SyncStatus = models.RecordSynced
		return nil
	})
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		e.logger.Warn("Failed to save record", "local_id", snapshot.LocalID, "error", err)
	}
}

// editedSince сообщает, что запись локально менялась после snapshot
func editedSince(snapshot, current *models.Record) bool {
	return current.LocalUpdatedAt != snapshot.LocalUpdatedAt ||
		current.Deleted != snapshot.Deleted ||
		len(editedFields(snapshot, current)) > 0
}

// editedFields поля, значение которых изменилось после snapshot
func editedFields(snapshot, current *models.Record) map[string]bool {
	edited := make(map[string]bool)
	for k, v := range current.Data {
		if old, ok := snapshot.Data[k]; !ok || !conflict.Equal(old, v) {
			edited[k] = true
		}
	}
	for k := range snapshot.Data {
		if _, ok := current.Data[k]; !ok {
			edited[k] = true
		}
	}
	return edited
}

// failItem учитывает отказ сервера: повтор с экспоненциальной задержкой,
// после MaxRetries элемент становится failed_permanently
func (e *Engine) failItem(ctx context.Context, item *models.SyncQueueItem, cause error, result *SyncResult) {
	item.RetryCount++
	item.LastError = cause.Error()
	result.FailedItems++

	permanent := item.RetryCount > e.opts.MaxRetries
	metrics.RecordQueueFailure(item.StoreName, permanent)

	if permanent {
		item.Status = models.StatusFailedPermanently
		item.NextRetryAt = 0
		e.logger.Error("Sync queue item failed permanently",
			"item_id", item.ID, "store", item.StoreName, "operation", item.Operation,
			"retries", item.RetryCount, "error", cause)
	} else {
		delay := retryDelay(e.opts.RetryBaseDelay, item.RetryCount)
		item.Status = models.StatusFailed
		item.NextRetryAt = e.opts.Now().Add(delay).UnixMilli()
		e.logger.Warn("Sync queue item failed, will retry",
			"item_id", item.ID, "store", item.StoreName, "retry", item.RetryCount,
			"delay", delay, "error", cause)
	}

	if err := e.queue.SaveQueueItem(ctx, item); err != nil {
		e.logger.Warn("Failed to save queue item", "item_id", item.ID, "error", err)
	}

	if permanent {
		result.PermanentFailures = append(result.PermanentFailures, *item.Clone())
		if e.opts.OnPermanentFailure != nil {
			e.opts.OnPermanentFailure(*item.Clone())
		}
	}
}

// retryDelay задержка перед попыткой attempt: base, 2*base, 4*base...
func retryDelay(base time.Duration, attempt int) time.Duration {
	b := retry.NewExponential(base)
	delay := base
	for range max(attempt, 1) {
		delay, _ = b.Next()
	}
	return delay
}

func (e *Engine) markItemSynced(ctx context.Context, item *models.SyncQueueItem) {
	item.Status = models.StatusSynced
	item.LastError = ""
	item.NextRetryAt = 0
	if err := e.queue.SaveQueueItem(ctx, item); err != nil {
		e.logger.Warn("Failed to save queue item", "item_id", item.ID, "error", err)
	}
}

func (e *Engine) dropRecord(ctx context.Context, collection, localID string) {
	err := e.records.DeleteRecord(ctx, collection, localID)
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		e.logger.Warn("Failed to delete record", "store", collection, "local_id", localID, "error", err)
	}
}

// settleQueue закрывает update/delete todo, когда все их операции synced,
// и помечает synced todo без pending операций
func (e *Engine) settleQueue(ctx context.Context) {
	items, err := e.queue.ListQueue(ctx)
	if err != nil {
		e.logger.Warn("Failed to read sync queue", "error", err)
		return
	}

	for _, item := range items {
		if item.StoreName != models.CollectionTodos || item.Operation == models.QueueCreate {
			continue
		}
		if item.Status != models.StatusPending || !e.log.Synced(item.OperationIDs...) {
			continue
		}
		e.markItemSynced(ctx, item)
		if item.Operation == models.QueueDelete {
			e.dropRecord(ctx, models.CollectionTodos, item.LocalID)
		}
	}

	protected := e.protectedFields()
	todos, err := e.records.ListRecords(ctx, models.CollectionTodos)
	if err != nil {
		e.logger.Warn("Failed to list todos", "error", err)
		return
	}
	for _, rec := range todos {
		if rec.Deleted || rec.ServerID == "" || rec.SyncStatus == models.RecordSynced {
			continue
		}
		if _, pending := protected[rec.LocalID]; pending {
			continue
		}
		e.markRecordSynced(ctx, rec)
	}
}

// requeueItem возвращает операции отклоненного элемента в журнал,
// когда подошло время повтора
func (e *Engine) requeueItem(ctx context.Context, item *models.SyncQueueItem) {
	n := e.log.Requeue(ctx, item.OperationIDs...)
	item.Status = models.StatusPending
	if err := e.queue.SaveQueueItem(ctx, item); err != nil {
		e.logger.Warn("Failed to save queue item", "item_id", item.ID, "error", err)
		return
	}
	e.logger.Debug("Retrying rejected operations", "item_id", item.ID, "operations", n, "retry", item.RetryCount)
}
