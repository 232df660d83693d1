package oplog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/clock"
	"github.com/iudanet/todosync/internal/models"
)

// Log журнал локальных операций. Операции держатся в памяти и
// синхронно записываются в хранилище. Ошибка записи не теряет операцию:
// она остается в памяти до конца сессии.
type Log struct {
	store  storage.OperationStorage
	clock  *clock.Clock
	logger *slog.Logger
	byID   map[string]*models.Operation
	ops    []*models.Operation // в порядке добавления
	mu     sync.RWMutex
}

// Open загружает журнал из хранилища и подводит часы к последней метке
func Open(ctx context.Context, store storage.OperationStorage, clk *clock.Clock, logger *slog.Logger) (*Log, error) {
	ops, err := store.ListOperations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load operation log: %w", err)
	}

	l := &Log{
		store:  store,
		clock:  clk,
		logger: logger,
		byID:   make(map[string]*models.Operation, len(ops)),
		ops:    make([]*models.Operation, 0, len(ops)),
	}

	var maxTS int64
	for _, op := range ops {
		l.ops = append(l.ops, op)
		l.byID[op.ID] = op
		maxTS = max(maxTS, op.Timestamp)
	}
	slices.SortStableFunc(l.ops, compareOps)
	clk.Restore(maxTS)

	logger.Debug("Operation log loaded", "operations", len(ops))
	return l, nil
}

// Append записывает новую операцию. Заполняет ID, Timestamp, SequenceID,
// DeviceID и статус pending. Возвращает копию записанной операции.
func (l *Log) Append(ctx context.Context, op models.Operation) (*models.Operation, error) {
	if op.LocalID == "" {
		return nil, fmt.Errorf("%w: local id is required", ErrInvalidOperation)
	}
	if op.Kind == models.OperationUpdate && op.FieldName == "" {
		return nil, fmt.Errorf("%w: update without field name", ErrInvalidOperation)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ts, seq := l.clock.Next()
	stored := op.Clone()
	stored.ID = seq
	stored.SequenceID = seq
	stored.Timestamp = ts
	stored.DeviceID = l.clock.NodeID()
	stored.SyncStatus = models.StatusPending
	stored.RetryCount = 0

	l.ops = append(l.ops, stored)
	l.byID[stored.ID] = stored

	l.persist(ctx, stored)

	return stored.Clone(), nil
}

// persist пишет операции в хранилище. Вызывается под l.mu.
func (l *Log) persist(ctx context.Context, ops ...*models.Operation) {
	if len(ops) == 0 {
		return
	}
	if err := l.store.SaveOperations(ctx, ops...); err != nil {
		l.logger.Warn("Failed to persist operations, keeping them in memory",
			"count", len(ops), "error", err)
	}
}

// Pending возвращает копии операций в статусе pending в порядке добавления
func (l *Log) Pending() []*models.Operation {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*models.Operation, 0)
	for _, op := range l.ops {
		if op.SyncStatus == models.StatusPending {
			out = append(out, op.Clone())
		}
	}
	return out
}

// CompactPending возвращает компактизированный набор pending операций
func (l *Log) CompactPending() []*models.Operation {
	return Compact(l.Pending())
}

// All возвращает копии всех операций журнала
func (l *Log) All() []*models.Operation {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*models.Operation, 0, len(l.ops))
	for _, op := range l.ops {
		out = append(out, op.Clone())
	}
	return out
}

// Get возвращает копию операции по ID
func (l *Log) Get(id string) (*models.Operation, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	op, ok := l.byID[id]
	if !ok {
		return nil, false
	}
	return op.Clone(), true
}

// MarkSynced помечает synced все pending операции с Timestamp <= cutoff.
// Уже synced операции не трогаются, поэтому повторный вызов с тем же или
// меньшим cutoff ничего не меняет. Возвращает число помеченных операций.
func (l *Log) MarkSynced(ctx context.Context, cutoff int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var changed []*models.Operation
	for _, op := range l.ops {
		if op.SyncStatus == models.StatusPending && op.Timestamp <= cutoff {
			op.SyncStatus = models.StatusSynced
			changed = append(changed, op)
		}
	}

	l.persist(ctx, changed...)
	return len(changed)
}

// MarkSyncedByID помечает synced конкретные операции
func (l *Log) MarkSyncedByID(ctx context.Context, ids ...string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var changed []*models.Operation
	for _, id := range ids {
		if op, ok := l.byID[id]; ok && op.SyncStatus != models.StatusSynced {
			op.SyncStatus = models.StatusSynced
			changed = append(changed, op)
		}
	}

	l.persist(ctx, changed...)
	return len(changed)
}

// BackfillEntityID проставляет серверный ID во все операции сущности,
// у которых он ещё пустой. CREATE операция сущности считается отправленной.
// Уже заполненный EntityID никогда не перезаписывается.
func (l *Log) BackfillEntityID(ctx context.Context, localID, entityID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var changed []*models.Operation
	for _, op := range l.ops {
		if op.LocalID != localID || op.EntityID != "" {
			continue
		}
		op.EntityID = entityID
		if op.Kind == models.OperationCreate && op.SyncStatus == models.StatusPending {
			op.SyncStatus = models.StatusSynced
		}
		changed = append(changed, op)
	}

	l.persist(ctx, changed...)
	return len(changed)
}

// MarkFailed учитывает отказ сервера: RetryCount растет, статус failed
// или failed_permanently. Меняются только pending операции.
func (l *Log) MarkFailed(ctx context.Context, permanent bool, ids ...string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	status := models.StatusFailed
	if permanent {
		status = models.StatusFailedPermanently
	}

	var changed []*models.Operation
	for _, id := range ids {
		op, ok := l.byID[id]
		if !ok || op.SyncStatus != models.StatusPending {
			continue
		}
		op.RetryCount++
		op.SyncStatus = status
		changed = append(changed, op)
	}

	l.persist(ctx, changed...)
	return len(changed)
}

// Requeue возвращает отклоненные операции в pending для новой попытки
func (l *Log) Requeue(ctx context.Context, ids ...string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var changed []*models.Operation
	for _, id := range ids {
		op, ok := l.byID[id]
		if !ok {
			continue
		}
		if op.SyncStatus != models.StatusFailed && op.SyncStatus != models.StatusFailedPermanently {
			continue
		}
		op.SyncStatus = models.StatusPending
		changed = append(changed, op)
	}

	l.persist(ctx, changed...)
	return len(changed)
}

// Synced сообщает, что все перечисленные операции synced.
// Отсутствующие в журнале (удаленные после retention) считаются synced.
func (l *Log) Synced(ids ...string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, id := range ids {
		if op, ok := l.byID[id]; ok && op.SyncStatus != models.StatusSynced {
			return false
		}
	}
	return true
}

// PurgeOld удаляет synced операции старше retention
func (l *Log) PurgeOld(ctx context.Context, retention time.Duration, now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	threshold := now.Add(-retention).UnixMilli()

	var (
		kept    = l.ops[:0]
		removed []string
	)
	for _, op := range l.ops {
		if op.SyncStatus == models.StatusSynced && op.Timestamp < threshold {
			removed = append(removed, op.ID)
			delete(l.byID, op.ID)
			continue
		}
		kept = append(kept, op)
	}
	clear(l.ops[len(kept):])
	l.ops = kept

	if len(removed) > 0 {
		if err := l.store.DeleteOperations(ctx, removed...); err != nil {
			l.logger.Warn("Failed to delete purged operations", "count", len(removed), "error", err)
		}
	}
	return len(removed)
}

// Stats счетчики журнала по статусам
type Stats struct {
	Pending  int
	Synced   int
	Failed   int // отклонены сервером, включая failed_permanently
	Deferred int // pending операции без серверного ID сущности
}

// Stats возвращает счетчики журнала
func (l *Log) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var s Stats
	for _, op := range l.ops {
		switch op.SyncStatus {
		case models.StatusPending:
			s.Pending++
			if !op.Uploadable() {
				s.Deferred++
			}
		case models.StatusSynced:
			s.Synced++
		case models.StatusFailed, models.StatusFailedPermanently:
			s.Failed++
		}
	}
	return s
}
