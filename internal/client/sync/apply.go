package sync

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/conflict"
	"github.com/iudanet/todosync/internal/metrics"
	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/pkg/api"
)

// applyServerUpdates применяет серверные снимки todo. Сервер побеждает
// для всех полей, кроме тех, где есть ещё не отправленная локальная правка.
func (e *Engine) applyServerUpdates(ctx context.Context, updates []api.EntitySnapshot, protected map[string]map[string]bool, result *SyncResult) {
	for _, snap := range updates {
		serverID := snap.ID()
		if serverID == "" {
			e.logger.Debug("Server update without id, skipping")
			continue
		}

		existing, err := e.records.GetRecordByServerID(ctx, models.CollectionTodos, serverID)
		switch {
		case errors.Is(err, storage.ErrRecordNotFound):
			e.saveServerTodo(ctx, snap, result)
			continue
		case err != nil:
			e.logger.Warn("Failed to read record for server update", "server_id", serverID, "error", err)
			continue
		}

		fields := protected[existing.LocalID]
		applied := false
		_, err = e.records.UpdateRecord(ctx, models.CollectionTodos, existing.LocalID, func(rec *models.Record) error {
			if rec.Deleted {
				// локальное удаление ещё в пути
				return storage.ErrSkipUpdate
			}
			edited := editedFields(existing, rec)
			if rec.Data == nil {
				rec.Data = make(map[string]any)
			}
			for k, v := range snap.Fields() {
				if fields[k] || edited[k] {
					continue
				}
				rec.Data[k] = v
			}
			rec.ServerUpdatedAt = max(rec.ServerUpdatedAt, snap.UpdatedAt())
			if len(fields) == 0 && !editedSince(existing, rec) {
				rec.SyncStatus = models.RecordSynced
			}
			applied = true
			return nil
		})
		if err != nil {
			e.logger.Warn("Failed to save server update", "server_id", serverID, "error", err)
			continue
		}
		if applied {
			result.PulledEntries++
		}
	}
}

// saveServerTodo создает локальную запись для todo, которого ещё нет на устройстве
func (e *Engine) saveServerTodo(ctx context.Context, snap api.EntitySnapshot, result *SyncResult) {
	rec := &models.Record{
		LocalID:         e.clock.NewID(),
		ServerID:        snap.ID(),
		Collection:      models.CollectionTodos,
		Data:            snap.Fields(),
		ServerUpdatedAt: snap.UpdatedAt(),
		SyncStatus:      models.RecordSynced,
	}
	if err := e.records.SaveRecord(ctx, rec); err != nil {
		e.logger.Warn("Failed to save server update", "server_id", rec.ServerID, "error", err)
		return
	}
	result.PulledEntries++
}

type reportedConflict struct {
	op       *models.Operation // nil, если не нашлась своя операция
	report   api.ConflictReport
	conflict models.Conflict
}

// resolveConflicts решает конфликты от сервера по убыванию важности и
// отправляет решения. Локально решение применяется только после
// подтверждения сервером.
func (e *Engine) resolveConflicts(ctx context.Context, token string, reports []api.ConflictReport, batch []*models.Operation, result *SyncResult) {
	var pending []reportedConflict
	for _, r := range reports {
		if r.IsError() {
			// отказы разбирает rejectedOperations
			continue
		}
		pending = append(pending, e.toConflict(r, batch))
	}
	result.Conflicts = len(pending)

	slices.SortStableFunc(pending, func(a, b reportedConflict) int {
		return cmp.Compare(b.conflict.Severity.Rank(), a.conflict.Severity.Rank())
	})

	for _, rc := range pending {
		c := rc.conflict

		var res models.Resolution
		if rc.op != nil && !serverNewer(rc.op, c) {
			// локальная правка новее, это не настоящий конфликт
			res = models.Resolution{Action: models.ResolutionAcceptClient}
		} else {
			res = e.resolver.Resolve(ctx, c)
		}

		req := api.ResolveConflictRequest{
			OperationID: rc.report.OperationID,
			Resolution:  string(res.Action),
		}
		if res.Action == models.ResolutionMerge {
			req.MergedData = map[string]any{c.FieldName: res.MergedValue}
		}

		if err := e.api.ResolveConflict(ctx, token, req); err != nil {
			result.UnresolvedConflicts++
			e.logger.Warn("Failed to send conflict resolution",
				"operation_id", c.OperationID, "field", c.FieldName, "action", res.Action, "error", err)
			continue
		}

		result.ResolvedConflicts++
		metrics.RecordConflict(string(c.Severity), string(res.Action))
		e.logger.Info("Conflict resolved",
			"todo_id", c.TodoID, "field", c.FieldName, "severity", c.Severity, "action", res.Action)

		e.applyResolution(ctx, rc, res.Value(c))
	}
}

// toConflict сопоставляет отчет сервера с отправленной операцией.
// Сервер может не прислать todo_id, тогда операция ищется по полю и значению.
func (e *Engine) toConflict(r api.ConflictReport, batch []*models.Operation) reportedConflict {
	rc := reportedConflict{report: r, op: matchOperation(r, batch)}
	todoID := r.TodoID.String()

	serverTS := r.TaskUpdatedAt.Millis()
	if serverTS == 0 {
		serverTS = r.ServerTimestamp.Millis()
	}

	rc.conflict = models.Conflict{
		OperationID:     r.OperationID.String(),
		TodoID:          todoID,
		FieldName:       r.Field,
		ServerValue:     r.ServerValue,
		ClientOldValue:  r.ClientOldValue,
		ClientNewValue:  r.ClientNewValue,
		ServerTimestamp: serverTS,
		Severity:        conflict.SeverityFor(r.Field),
	}
	if rc.op != nil {
		// значения своей операции точнее строк с сервера
		rc.conflict.TodoID = rc.op.EntityID
		rc.conflict.ClientOldValue = rc.op.OldValue
		rc.conflict.ClientNewValue = rc.op.NewValue
		rc.conflict.ClientTimestamp = rc.op.Timestamp
	}
	return rc
}

// serverNewer проверяет конфликт детектором: сервер изменил поле позже
// локальной правки и значения различаются. Без времени сервера
// конфликт считается настоящим.
func serverNewer(op *models.Operation, c models.Conflict) bool {
	if c.ServerTimestamp == 0 {
		return true
	}
	found := conflict.Detect([]*models.Operation{op}, []conflict.FieldChange{{
		EntityID:  op.EntityID,
		FieldName: c.FieldName,
		Value:     c.ServerValue,
		Timestamp: c.ServerTimestamp,
	}})
	return len(found) > 0
}

// applyResolution записывает подтвержденное сервером значение поля.
// Новая локальная правка того же поля сохраняется.
func (e *Engine) applyResolution(ctx context.Context, rc reportedConflict, value any) {
	var (
		snapshot *models.Record
		err      error
	)
	if rc.op != nil {
		snapshot, err = e.records.GetRecord(ctx, models.CollectionTodos, rc.op.LocalID)
	} else if rc.conflict.TodoID != "" {
		snapshot, err = e.records.GetRecordByServerID(ctx, models.CollectionTodos, rc.conflict.TodoID)
	} else {
		return
	}
	if err != nil {
		e.logger.Warn("Failed to read record for resolution", "todo_id", rc.conflict.TodoID, "error", err)
		return
	}

	field := rc.conflict.FieldName
	if e.protectedFields()[snapshot.LocalID][field] {
		// после конфликта уже есть новая локальная правка
		return
	}

	_, err = e.records.UpdateRecord(ctx, models.CollectionTodos, snapshot.LocalID, func(rec *models.Record) error {
		if editedFields(snapshot, rec)[field] {
			return storage.ErrSkipUpdate
		}
		if rec.Data == nil {
			rec.Data = make(map[string]any)
		}
		rec.Data[field] = value
		return nil
	})
	if err != nil {
		e.logger.Warn("Failed to apply resolution", "local_id", snapshot.LocalID, "error", err)
	}
}

// wireValue приводит значение поля к строке, как его ждет сервер
func wireValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
