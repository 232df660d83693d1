package models

// Severity важность конфликта
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank возвращает числовой вес для сортировки (critical первым)
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Conflict расхождение локальной и серверной версии одного поля
type Conflict struct {
	ServerValue     any      `json:"server_value"`
	ClientOldValue  any      `json:"client_old_value"`
	ClientNewValue  any      `json:"client_new_value"`
	OperationID     string   `json:"operation_id"`     // OperationID серверный ID операции, нужен для resolve-conflict
	TodoID          string   `json:"todo_id"`          // TodoID серверный ID сущности
	FieldName       string   `json:"field_name"`       // FieldName поле, в котором расхождение
	Severity        Severity `json:"severity"`         // Severity важность, определяется по имени поля
	ServerTimestamp int64    `json:"server_timestamp"` // ServerTimestamp время серверного изменения, мс
	ClientTimestamp int64    `json:"client_timestamp"` // ClientTimestamp время локального изменения, мс
}

// ResolutionAction действие, выбранное для разрешения конфликта
type ResolutionAction string

const (
	ResolutionAcceptServer ResolutionAction = "accept_server"
	ResolutionAcceptClient ResolutionAction = "accept_client"
	ResolutionMerge        ResolutionAction = "merge"
)

// Valid проверяет, что действие известно
func (a ResolutionAction) Valid() bool {
	switch a {
	case ResolutionAcceptServer, ResolutionAcceptClient, ResolutionMerge:
		return true
	}
	return false
}

// Resolution результат разрешения конфликта
type Resolution struct {
	MergedValue any              `json:"merged_value,omitempty"` // MergedValue используется только для merge
	Action      ResolutionAction `json:"action"`
}

// Value возвращает итоговое значение поля после применения резолюции
func (r Resolution) Value(c Conflict) any {
	switch r.Action {
	case ResolutionAcceptClient:
		return c.ClientNewValue
	case ResolutionMerge:
		return r.MergedValue
	default:
		return c.ServerValue
	}
}
