package sync

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/iudanet/todosync/internal/conflict"
	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/pkg/api"
)

// rejectedOperations сопоставляет отчеты-ошибки сервера с операциями пакета.
// Отказ распространяется на всю группу (сущность, поле): операции,
// вытесненные компактизацией, тоже не считаются отправленными.
func (e *Engine) rejectedOperations(reports []api.ConflictReport, batch, pending []*models.Operation, result *SyncResult) map[string]error {
	rejected := make(map[string]error)
	for _, r := range reports {
		if !r.IsError() {
			continue
		}
		result.RejectedOperations++

		op := matchOperation(r, batch)
		if op == nil {
			e.logger.Warn("Server rejected unknown operation",
				"operation_id", r.OperationID, "todo_id", r.TodoID, "field", r.Field, "error", r.Error)
			continue
		}
		e.logger.Warn("Server rejected operation",
			"operation_id", r.OperationID, "local_id", op.LocalID, "field", op.FieldName, "error", r.Error)

		cause := fmt.Errorf("%w: %s", ErrOperationRejected, r.Error)
		key := op.GroupKey()
		for _, p := range pending {
			if p.Kind != models.OperationCreate && p.Uploadable() && p.GroupKey() == key {
				rejected[p.ID] = cause
			}
		}
	}
	return rejected
}

// failRejected проводит отклоненные операции и элементы очереди, которые их
// несут, через failItem: повтор с задержкой, затем failed_permanently
func (e *Engine) failRejected(ctx context.Context, rejected map[string]error, result *SyncResult) {
	if len(rejected) == 0 {
		return
	}

	items, err := e.queue.ListQueue(ctx)
	if err != nil {
		// операции остаются pending и уйдут в следующем пакете
		e.logger.Warn("Failed to read sync queue", "error", err)
		return
	}

	carried := make(map[string]bool, len(rejected))
	for _, item := range items {
		if item.StoreName != models.CollectionTodos || item.Operation == models.QueueCreate {
			continue
		}
		if item.Status != models.StatusPending {
			continue
		}

		var (
			ids   []string
			cause error
		)
		for _, id := range item.OperationIDs {
			if c, ok := rejected[id]; ok {
				ids = append(ids, id)
				cause = c
			}
		}
		if len(ids) == 0 {
			continue
		}

		e.failItem(ctx, item, cause, result)
		e.log.MarkFailed(ctx, item.Status == models.StatusFailedPermanently, ids...)
		for _, id := range ids {
			carried[id] = true
		}
	}

	var orphans []string
	for _, id := range slices.Sorted(maps.Keys(rejected)) {
		if !carried[id] {
			orphans = append(orphans, id)
		}
	}
	if len(orphans) > 0 {
		// повторять нечем: элемента очереди нет
		n := e.log.MarkFailed(ctx, true, orphans...)
		e.logger.Warn("Rejected operations without queue item", "operations", n)
	}
}

// matchOperation находит операцию пакета, о которой сообщает сервер:
// по todo_id и полю, а без todo_id по полю и новому значению
func matchOperation(r api.ConflictReport, batch []*models.Operation) *models.Operation {
	todoID := r.TodoID.String()
	for _, op := range batch {
		if op.FieldName != r.Field {
			continue
		}
		if todoID != "" && op.EntityID == todoID {
			return op
		}
		if todoID == "" && conflict.Equal(wireValue(op.NewValue), r.ClientNewValue) {
			return op
		}
	}
	return nil
}
