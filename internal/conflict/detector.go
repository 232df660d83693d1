package conflict

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/iudanet/todosync/internal/models"
)

// FieldChange изменение поля, пришедшее с сервера
type FieldChange struct {
	Value     any
	EntityID  string
	FieldName string
	Timestamp int64 // время серверного изменения, мс
}

// Detect сравнивает pending операции с серверными изменениями.
// Конфликт есть, только если сервер изменил поле позже локальной правки
// (T1 > T0) и значения различаются. Если сервер изменил поле раньше,
// локальная правка новее и должна просто победить.
func Detect(local []*models.Operation, server []FieldChange) []models.Conflict {
	// Последняя локальная правка по каждой паре (сущность, поле)
	latest := make(map[string]*models.Operation, len(local))
	for _, op := range local {
		if op.Kind != models.OperationUpdate || op.SyncStatus != models.StatusPending || op.EntityID == "" {
			continue
		}
		key := fieldKey(op.EntityID, op.FieldName)
		if cur, ok := latest[key]; !ok || op.IsNewerThan(cur) {
			latest[key] = op
		}
	}

	var conflicts []models.Conflict
	for _, change := range server {
		op, ok := latest[fieldKey(change.EntityID, change.FieldName)]
		if !ok {
			continue
		}
		if change.Timestamp <= op.Timestamp {
			continue
		}
		if Equal(change.Value, op.NewValue) {
			continue
		}
		conflicts = append(conflicts, models.Conflict{
			TodoID:          change.EntityID,
			FieldName:       change.FieldName,
			ServerValue:     change.Value,
			ClientOldValue:  op.OldValue,
			ClientNewValue:  op.NewValue,
			ServerTimestamp: change.Timestamp,
			ClientTimestamp: op.Timestamp,
			Severity:        SeverityFor(change.FieldName),
		})
	}

	SortBySeverity(conflicts)
	return conflicts
}

// SortBySeverity сортирует конфликты: сначала critical, внутри одной
// важности порядок стабилен.
func SortBySeverity(conflicts []models.Conflict) {
	slices.SortStableFunc(conflicts, func(a, b models.Conflict) int {
		return cmp.Compare(b.Severity.Rank(), a.Severity.Rank())
	})
}

// Equal сравнивает значения полей с учетом того, что после JSON
// числа становятся float64, а сервер может прислать значение строкой.
func Equal(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func fieldKey(entityID, field string) string {
	return entityID + "\x00" + field
}
