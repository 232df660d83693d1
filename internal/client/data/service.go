package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/clock"
	"github.com/iudanet/todosync/internal/conflict"
	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/internal/oplog"
	"github.com/iudanet/todosync/internal/validation"
)

// service handles local mutations of todos, shared lists and comments
type service struct {
	records  storage.RecordStorage
	queue    storage.QueueStorage
	log      *oplog.Log
	clock    *clock.Clock
	logger   *slog.Logger
	now      func() time.Time
	onChange func()
}

// Option настройка сервиса
type Option func(*service)

// WithOnChange вызывается после каждого успешного изменения,
// например чтобы запустить синхронизацию
func WithOnChange(fn func()) Option {
	return func(s *service) {
		s.onChange = fn
	}
}

// WithNow подменяет источник времени
func WithNow(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewService creates a new data service
func NewService(records storage.RecordStorage, queue storage.QueueStorage, log *oplog.Log, clk *clock.Clock, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		records: records,
		queue:   queue,
		log:     log,
		clock:   clk,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTodo создает todo. Обязателен title, priority по умолчанию medium.
func (s *service) CreateTodo(ctx context.Context, fields map[string]any) (*models.Record, error) {
	data := maps.Clone(fields)
	if data == nil {
		data = make(map[string]any)
	}
	if err := normalizeTodo(data); err != nil {
		return nil, err
	}

	rec := &models.Record{
		LocalID:        s.clock.NewID(),
		Collection:     models.CollectionTodos,
		Data:           data,
		SyncStatus:     models.RecordPending,
		LocalUpdatedAt: s.now().UnixMilli(),
	}
	if err := s.records.SaveRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save todo: %w", err)
	}

	op, err := s.log.Append(ctx, models.Operation{
		Kind:     models.OperationCreate,
		LocalID:  rec.LocalID,
		NewValue: maps.Clone(data),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record operation: %w", err)
	}

	s.enqueue(ctx, rec, models.QueueCreate, maps.Clone(data), op.ID)
	s.logger.Debug("Todo created", "local_id", rec.LocalID)
	s.changed()
	return rec.Clone(), nil
}

// UpdateTodoField меняет одно поле todo. Значение, равное текущему,
// ничего не меняет и не создает операцию.
func (s *service) UpdateTodoField(ctx context.Context, id, field string, value any) (*models.Record, error) {
	value, err := normalizeField(field, value)
	if err != nil {
		return nil, err
	}

	found, err := s.find(ctx, models.CollectionTodos, id)
	if err != nil {
		return nil, err
	}

	// чтение и запись в одной транзакции: синхронизация могла только что
	// записать серверный ID
	var old any
	changed := false
	rec, err := s.records.UpdateRecord(ctx, models.CollectionTodos, found.LocalID, func(rec *models.Record) error {
		if rec.Deleted {
			return fmt.Errorf("%w: %s", ErrDeleted, id)
		}
		old = rec.Data[field]
		if conflict.Equal(old, value) {
			return storage.ErrSkipUpdate
		}
		if rec.Data == nil {
			rec.Data = make(map[string]any)
		}
		rec.Data[field] = value
		rec.LocalUpdatedAt = s.now().UnixMilli()
		if rec.ServerID != "" {
			rec.SyncStatus = models.RecordModified
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, s.updateError(err, id)
	}
	if !changed {
		return rec, nil
	}

	op, err := s.log.Append(ctx, models.Operation{
		Kind:      models.OperationUpdate,
		LocalID:   rec.LocalID,
		EntityID:  rec.ServerID,
		FieldName: field,
		OldValue:  old,
		NewValue:  value,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record operation: %w", err)
	}

	s.enqueue(ctx, rec, models.QueueUpdate, map[string]any{field: value}, op.ID)
	s.changed()
	return rec.Clone(), nil
}

// DeleteTodo помечает todo удаленным. Запись удаляется физически,
// когда сервер подтвердит удаление.
func (s *service) DeleteTodo(ctx context.Context, id string) error {
	found, err := s.find(ctx, models.CollectionTodos, id)
	if err != nil {
		return err
	}

	rec, changed, err := s.markDeleted(ctx, models.CollectionTodos, found.LocalID)
	if err != nil {
		return s.updateError(err, id)
	}
	if !changed {
		return nil
	}

	op, err := s.log.Append(ctx, models.Operation{
		Kind:     models.OperationDelete,
		LocalID:  rec.LocalID,
		EntityID: rec.ServerID,
		OldValue: maps.Clone(rec.Data),
	})
	if err != nil {
		return fmt.Errorf("failed to record operation: %w", err)
	}

	s.enqueue(ctx, rec, models.QueueDelete, nil, op.ID)
	s.changed()
	return nil
}

func (s *service) GetTodo(ctx context.Context, id string) (*models.Record, error) {
	rec, err := s.find(ctx, models.CollectionTodos, id)
	if err != nil {
		return nil, err
	}
	if rec.Deleted {
		return nil, fmt.Errorf("%w: %s", ErrDeleted, id)
	}
	return rec, nil
}

func (s *service) ListTodos(ctx context.Context) ([]*models.Record, error) {
	return s.ListRecords(ctx, models.CollectionTodos)
}

// CreateRecord создает общий список или комментарий
func (s *service) CreateRecord(ctx context.Context, collection string, data map[string]any) (*models.Record, error) {
	if err := checkRecordCollection(collection); err != nil {
		return nil, err
	}
	data = maps.Clone(data)
	if collection == models.CollectionComments {
		if err := s.bindTodo(ctx, data); err != nil {
			return nil, err
		}
	}
	if err := validation.ValidateRecord(collection, data); err != nil {
		return nil, err
	}

	rec := &models.Record{
		LocalID:        s.clock.NewID(),
		Collection:     collection,
		Data:           data,
		SyncStatus:     models.RecordPending,
		LocalUpdatedAt: s.now().UnixMilli(),
	}
	if err := s.records.SaveRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	s.enqueue(ctx, rec, models.QueueCreate, maps.Clone(data))
	s.changed()
	return rec.Clone(), nil
}

// UpdateRecord сливает data в запись и ставит её целиком в очередь
func (s *service) UpdateRecord(ctx context.Context, collection, id string, data map[string]any) (*models.Record, error) {
	if err := checkRecordCollection(collection); err != nil {
		return nil, err
	}
	found, err := s.find(ctx, collection, id)
	if err != nil {
		return nil, err
	}

	var merged map[string]any
	rec, err := s.records.UpdateRecord(ctx, collection, found.LocalID, func(rec *models.Record) error {
		if rec.Deleted {
			return fmt.Errorf("%w: %s", ErrDeleted, id)
		}
		merged = maps.Clone(rec.Data)
		if merged == nil {
			merged = make(map[string]any)
		}
		maps.Copy(merged, data)
		if err := validation.ValidateRecord(collection, merged); err != nil {
			return err
		}

		rec.Data = merged
		rec.LocalUpdatedAt = s.now().UnixMilli()
		if rec.ServerID != "" {
			rec.SyncStatus = models.RecordModified
		}
		return nil
	})
	if err != nil {
		return nil, s.updateError(err, id)
	}

	s.enqueue(ctx, rec, models.QueueUpdate, maps.Clone(merged))
	s.changed()
	return rec.Clone(), nil
}

func (s *service) DeleteRecord(ctx context.Context, collection, id string) error {
	if err := checkRecordCollection(collection); err != nil {
		return err
	}
	found, err := s.find(ctx, collection, id)
	if err != nil {
		return err
	}

	rec, changed, err := s.markDeleted(ctx, collection, found.LocalID)
	if err != nil {
		return s.updateError(err, id)
	}
	if !changed {
		return nil
	}

	s.enqueue(ctx, rec, models.QueueDelete, nil)
	s.changed()
	return nil
}

// ListRecords возвращает неудаленные записи в порядке создания
func (s *service) ListRecords(ctx context.Context, collection string) ([]*models.Record, error) {
	all, err := s.records.ListRecords(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	out := make([]*models.Record, 0, len(all))
	for _, rec := range all {
		if !rec.Deleted {
			out = append(out, rec)
		}
	}
	// LocalID упорядочен по времени создания
	slices.SortFunc(out, func(a, b *models.Record) int {
		return strings.Compare(a.LocalID, b.LocalID)
	})
	return out, nil
}

// markDeleted ставит метку удаления; changed=false, если запись уже удалена
func (s *service) markDeleted(ctx context.Context, collection, localID string) (*models.Record, bool, error) {
	changed := false
	rec, err := s.records.UpdateRecord(ctx, collection, localID, func(rec *models.Record) error {
		if rec.Deleted {
			return storage.ErrSkipUpdate
		}
		rec.Deleted = true
		rec.SyncStatus = models.RecordDeleted
		rec.LocalUpdatedAt = s.now().UnixMilli()
		changed = true
		return nil
	})
	return rec, changed, err
}

// updateError оставляет ошибки предметной области как есть, остальное
// считает ошибкой хранилища
func (s *service) updateError(err error, id string) error {
	switch {
	case errors.Is(err, storage.ErrRecordNotFound):
		// запись удалили между поиском и обновлением
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	case errors.Is(err, ErrDeleted), errors.Is(err, validation.ErrInvalidField):
		return err
	default:
		return fmt.Errorf("failed to save record: %w", err)
	}
}

// find ищет запись по локальному, затем по серверному ID
func (s *service) find(ctx context.Context, collection, id string) (*models.Record, error) {
	rec, err := s.records.GetRecord(ctx, collection, id)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, storage.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	rec, err = s.records.GetRecordByServerID(ctx, collection, id)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s %s", ErrNotFound, collection, id)
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return rec, nil
}

// bindTodo заменяет ссылку комментария на todo: серверный ID, если он
// уже есть, иначе локальный (его подменит синхронизация)
func (s *service) bindTodo(ctx context.Context, data map[string]any) error {
	ref, _ := data["todo_id"].(string)
	if ref == "" {
		return nil
	}
	todo, err := s.find(ctx, models.CollectionTodos, ref)
	if err != nil {
		return err
	}
	if todo.Deleted {
		return fmt.Errorf("%w: todo %s", ErrDeleted, ref)
	}
	if todo.ServerID != "" {
		data["todo_id"] = todo.ServerID
	} else {
		data["todo_id"] = todo.LocalID
	}
	return nil
}

// enqueue ставит изменение в очередь синхронизации. Ошибка записи только
// логируется: изменение уже сохранено локально, а для todo его несут
// операции журнала.
func (s *service) enqueue(ctx context.Context, rec *models.Record, op models.QueueOperation, data map[string]any, operationIDs ...string) {
	item := &models.SyncQueueItem{
		ID:           s.clock.NewID(),
		Operation:    op,
		StoreName:    rec.Collection,
		LocalID:      rec.LocalID,
		Data:         data,
		Status:       models.StatusPending,
		OperationIDs: operationIDs,
		Timestamp:    s.now().UnixMilli(),
	}
	if err := s.queue.SaveQueueItem(ctx, item); err != nil {
		s.logger.Warn("Failed to enqueue change",
			"store", rec.Collection, "local_id", rec.LocalID, "operation", op, "error", err)
	}
}

func (s *service) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

func checkRecordCollection(collection string) error {
	switch collection {
	case models.CollectionSharedLists, models.CollectionComments:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedCollection, collection)
}

// normalizeTodo проверяет поля нового todo и заполняет умолчания
func normalizeTodo(data map[string]any) error {
	if err := validation.ValidateRecord(models.CollectionTodos, data); err != nil {
		return err
	}
	if _, ok := data[models.FieldPriority]; !ok {
		data[models.FieldPriority] = models.PriorityMedium
	}
	if _, ok := data[models.FieldCompleted]; !ok {
		data[models.FieldCompleted] = false
	}
	for field, value := range data {
		if field == models.FieldTitle {
			continue
		}
		v, err := normalizeField(field, value)
		if err != nil {
			return err
		}
		data[field] = v
	}
	return nil
}

// normalizeField проверяет значение поля. Строки разбираются как ввод
// пользователя, типизированные значения проверяются как есть.
func normalizeField(field string, value any) (any, error) {
	switch v := value.(type) {
	case string:
		return validation.ParseField(field, v)
	case bool:
		if field != models.FieldCompleted {
			return nil, fmt.Errorf("%w: %s cannot be a boolean", validation.ErrInvalidField, field)
		}
		return v, nil
	case nil:
		if field == models.FieldDueDate || field == models.FieldDescription {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s cannot be empty", validation.ErrInvalidField, field)
	}
	return nil, fmt.Errorf("%w: unsupported value %T for %s", validation.ErrInvalidField, value, field)
}
