package api

import (
	"encoding/json"
	"strconv"
)

// PendingOperation одна операция журнала в запросе синхронизации
type PendingOperation struct {
	OldValue      any     `json:"old_value"`
	NewValue      any     `json:"new_value"`
	FieldName     *string `json:"field_name"`          // nil для CREATE и DELETE
	TodoID        string  `json:"todo_id"`             // серверный ID сущности
	OperationType string  `json:"operation_type"`      // CREATE, UPDATE, DELETE
	DeviceID      string  `json:"device_id"`           // идентификатор устройства
	SequenceID    string  `json:"sequence_id"`         // упорядоченный ID операции на клиенте
	Timestamp     int64   `json:"timestamp,omitempty"` // клиентское время изменения, мс
}

// SyncRequest представляет запрос на синхронизацию от клиента
type SyncRequest struct {
	LastSyncTime      *Timestamp         `json:"last_sync_time"` // nil при первой синхронизации
	DeviceID          string             `json:"device_id"`
	PendingOperations []PendingOperation `json:"pending_operations"`
}

// ConflictReport конфликт или ошибка применения операции на сервере.
// Сервер кладет в один список и конфликты (Conflict=true), и ошибки (Error != "").
type ConflictReport struct {
	ServerValue     any        `json:"server_value"`
	ClientOldValue  any        `json:"client_old_value"`
	ClientNewValue  any        `json:"client_new_value"`
	ServerTimestamp *Timestamp `json:"server_timestamp,omitempty"`
	TaskUpdatedAt   *Timestamp `json:"task_updated_at,omitempty"`
	OperationID     ID         `json:"operation_id"`
	TodoID          ID         `json:"todo_id,omitempty"` // есть не у всех серверов
	Field           string     `json:"field"`
	Error           string     `json:"error,omitempty"`
	Conflict        bool       `json:"conflict"`
}

// IsError сообщает, что запись описывает ошибку, а не конфликт
func (r ConflictReport) IsError() bool {
	return r.Error != ""
}

// SyncResponse представляет ответ сервера на синхронизацию
type SyncResponse struct {
	SyncTimestamp Timestamp        `json:"sync_timestamp"` // серверное время, до которого клиент актуален
	ServerUpdates []EntitySnapshot `json:"server_updates"` // сущности, измененные после last_sync_time
	Conflicts     []ConflictReport `json:"conflicts"`
	HasMore       bool             `json:"has_more"`
}

// ResolveConflictRequest решение клиента по конфликту
type ResolveConflictRequest struct {
	MergedData  map[string]any `json:"merged_data,omitempty"` // {field: value}, только для merge
	OperationID ID             `json:"operation_id"`
	Resolution  string         `json:"resolution"` // accept_server, accept_client, merge
}

// MarshalJSON отправляет числовой operation_id числом
func (r ResolveConflictRequest) MarshalJSON() ([]byte, error) {
	type alias ResolveConflictRequest
	var opID any = string(r.OperationID)
	if n, err := strconv.ParseInt(string(r.OperationID), 10, 64); err == nil {
		opID = n
	}
	return json.Marshal(struct {
		OperationID any `json:"operation_id"`
		alias
	}{OperationID: opID, alias: alias(r)})
}

// EntitySnapshot серверное состояние сущности целиком
type EntitySnapshot map[string]any

// ID возвращает серверный идентификатор сущности
func (s EntitySnapshot) ID() string {
	return stringify(s["id"])
}

// UpdatedAt возвращает время последнего изменения на сервере в мс
func (s EntitySnapshot) UpdatedAt() int64 {
	raw, ok := s["updated_at"].(string)
	if !ok {
		if n, ok := s["updated_at"].(float64); ok {
			return int64(n)
		}
		return 0
	}
	t, err := ParseTime(raw)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

// Fields возвращает поля сущности без служебных ключей
func (s EntitySnapshot) Fields() map[string]any {
	fields := make(map[string]any, len(s))
	for k, v := range s {
		switch k {
		case "id", "updated_at", "created_at", "user_id", "version":
			continue
		}
		fields[k] = v
	}
	return fields
}

// RecordResponse ответ REST эндпоинтов коллекций на создание/изменение
type RecordResponse map[string]any

// ID возвращает серверный идентификатор записи
func (r RecordResponse) ID() string {
	return stringify(r["id"])
}

func stringify(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}
