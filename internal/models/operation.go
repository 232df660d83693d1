package models

import "maps"

// OperationKind тип мутации сущности
type OperationKind string

const (
	OperationCreate OperationKind = "CREATE"
	OperationUpdate OperationKind = "UPDATE"
	OperationDelete OperationKind = "DELETE"
)

// SyncStatus состояние синхронизации операции или элемента очереди
type SyncStatus string

const (
	StatusPending           SyncStatus = "pending"
	StatusSynced            SyncStatus = "synced"
	StatusFailed            SyncStatus = "failed"
	StatusFailedPermanently SyncStatus = "failed_permanently"
)

// Operation представляет одну локальную мутацию, записанную пока клиент
// не подтвердил её на сервере.
type Operation struct {
	OldValue   any           `json:"old_value"`   // OldValue значение поля до изменения
	NewValue   any           `json:"new_value"`   // NewValue значение поля после изменения
	ID         string        `json:"id"`          // ID уникальный идентификатор операции (ULID)
	LocalID    string        `json:"local_id"`    // LocalID локальный ключ сущности, не меняется никогда
	EntityID   string        `json:"entity_id"`   // EntityID серверный ID, пустой пока сервер не подтвердил создание
	Kind       OperationKind `json:"kind"`        // Kind CREATE, UPDATE или DELETE
	FieldName  string        `json:"field_name"`  // FieldName имя поля, пустое для CREATE и DELETE
	SequenceID string        `json:"sequence_id"` // SequenceID упорядочиваемый ID: timestamp + случайный суффикс
	DeviceID   string        `json:"device_id"`   // DeviceID идентификатор устройства
	SyncStatus SyncStatus    `json:"sync_status"` // SyncStatus pending/synced/failed/failed_permanently
	Timestamp  int64         `json:"timestamp"`   // Timestamp клиентское время в мс (база для детекции конфликтов)
	RetryCount int           `json:"retry_count"` // RetryCount число неудачных попыток отправки
}

// GroupKey возвращает ключ группировки (сущность, поле) для компактизации.
// Используется LocalID, так как он известен с момента создания сущности.
func (o *Operation) GroupKey() string {
	return o.LocalID + "\x00" + o.FieldName
}

// Uploadable сообщает, можно ли отправить операцию на сервер:
// у сущности уже должен быть серверный ID.
func (o *Operation) Uploadable() bool {
	return o.EntityID != ""
}

// IsNewerThan сравнивает две операции одной группы: больший Timestamp выигрывает,
// при равенстве сравнивается SequenceID.
func (o *Operation) IsNewerThan(other *Operation) bool {
	if o.Timestamp != other.Timestamp {
		return o.Timestamp > other.Timestamp
	}
	return o.SequenceID > other.SequenceID
}

// Clone создает копию операции
func (o *Operation) Clone() *Operation {
	c := *o
	if m, ok := o.NewValue.(map[string]any); ok {
		c.NewValue = maps.Clone(m)
	}
	if m, ok := o.OldValue.(map[string]any); ok {
		c.OldValue = maps.Clone(m)
	}
	return &c
}
