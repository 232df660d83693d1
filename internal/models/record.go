package models

import (
	"maps"
	"time"
)

// Коллекции локального хранилища
const (
	CollectionTodos       = "todos"
	CollectionSharedLists = "sharedLists"
	CollectionComments    = "comments"
)

// Collections список всех коллекций, которые синхронизируются
var Collections = []string{CollectionTodos, CollectionSharedLists, CollectionComments}

// Поля todo
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPriority    = "priority"
	FieldCompleted   = "completed"
	FieldDueDate     = "due_date"
)

// Значения приоритета
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// RecordStatus состояние синхронизации записи
type RecordStatus string

const (
	RecordPending  RecordStatus = "pending"
	RecordModified RecordStatus = "modified"
	RecordDeleted  RecordStatus = "deleted"
	RecordSynced   RecordStatus = "synced"
)

// Record локальная копия сущности. LocalID является первичным ключом и не
// меняется, ServerID появляется после подтверждения создания сервером.
type Record struct {
	Data            map[string]any `json:"data"`
	LocalID         string         `json:"local_id"`
	ServerID        string         `json:"server_id,omitempty"`
	Collection      string         `json:"collection"`
	SyncStatus      RecordStatus   `json:"sync_status"`
	LocalUpdatedAt  int64          `json:"local_updated_at"`
	ServerUpdatedAt int64          `json:"server_updated_at,omitempty"`
	Deleted         bool           `json:"deleted"`
}

// Clone создает копию записи
func (r *Record) Clone() *Record {
	c := *r
	c.Data = maps.Clone(r.Data)
	return &c
}

// DisplayID возвращает серверный ID, а если его ещё нет - локальный
func (r *Record) DisplayID() string {
	if r.ServerID != "" {
		return r.ServerID
	}
	return r.LocalID
}

// Todo типизированное представление записи коллекции todos
type Todo struct {
	DueDate     string
	ID          string
	Title       string
	Description string
	Priority    string
	UpdatedAt   time.Time
	Completed   bool
	Synced      bool
}

// TodoFromRecord строит Todo из записи
func TodoFromRecord(r *Record) Todo {
	t := Todo{
		ID:        r.DisplayID(),
		Synced:    r.SyncStatus == RecordSynced,
		UpdatedAt: time.UnixMilli(r.LocalUpdatedAt),
	}
	t.Title, _ = r.Data[FieldTitle].(string)
	t.Description, _ = r.Data[FieldDescription].(string)
	t.Priority, _ = r.Data[FieldPriority].(string)
	t.DueDate, _ = r.Data[FieldDueDate].(string)
	t.Completed, _ = r.Data[FieldCompleted].(bool)
	return t
}
