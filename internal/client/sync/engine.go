package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	httpClient "github.com/iudanet/todosync/internal/client/api"
	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/clock"
	"github.com/iudanet/todosync/internal/conflict"
	"github.com/iudanet/todosync/internal/metrics"
	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/internal/oplog"
	"github.com/iudanet/todosync/pkg/api"
)

// TokenSource отдает актуальный access token
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Deps зависимости движка
type Deps struct {
	API      httpClient.ClientAPI
	Tokens   TokenSource
	Log      *oplog.Log
	Records  storage.RecordStorage
	Queue    storage.QueueStorage
	Meta     storage.MetadataStorage
	Resolver *conflict.Resolver
	Clock    *clock.Clock
	Logger   *slog.Logger
}

// Engine движок синхронизации. В каждый момент идет не больше одного цикла,
// запросы во время цикла сливаются в один повторный цикл.
type Engine struct {
	lastSyncAt time.Time
	api        httpClient.ClientAPI
	tokens     TokenSource
	records    storage.RecordStorage
	queue      storage.QueueStorage
	meta       storage.MetadataStorage
	log        *oplog.Log
	resolver   *conflict.Resolver
	clock      *clock.Clock
	logger     *slog.Logger
	wake       chan struct{}
	lastError  string
	followUp   Trigger // запрошен во время цикла
	queued     Trigger // запрошен через Trigger, ждет Serve
	opts       Options
	mu         sync.Mutex
	syncing    bool
}

// NewEngine создает движок синхронизации
func NewEngine(deps Deps, opts Options) *Engine {
	opts.withDefaults()
	return &Engine{
		api:      deps.API,
		tokens:   deps.Tokens,
		log:      deps.Log,
		records:  deps.Records,
		queue:    deps.Queue,
		meta:     deps.Meta,
		resolver: deps.Resolver,
		clock:    deps.Clock,
		logger:   deps.Logger,
		opts:     opts,
		wake:     make(chan struct{}, 1),
	}
}

// String имя сервиса для супервизора
func (e *Engine) String() string {
	return "sync-engine"
}

// Sync выполняет цикл синхронизации. Если цикл уже идет, запрос
// запоминается как повторный цикл и возвращается ErrSyncInProgress.
// Повторные циклы выполняются здесь же, результат возвращается для первого.
func (e *Engine) Sync(ctx context.Context, trigger Trigger) (*SyncResult, error) {
	e.mu.Lock()
	if e.syncing {
		e.followUp = e.followUp.merge(trigger)
		e.mu.Unlock()
		metrics.RecordSyncCycle(string(trigger), "coalesced", 0)
		return nil, ErrSyncInProgress
	}
	e.syncing = true
	e.mu.Unlock()

	result, err := e.cycle(ctx, trigger)

	for {
		e.mu.Lock()
		next := e.followUp
		e.followUp = ""
		if next == "" || ctx.Err() != nil {
			e.syncing = false
			e.mu.Unlock()
			break
		}
		e.mu.Unlock()

		if _, ferr := e.cycle(ctx, next); ferr != nil {
			e.logger.Debug("Follow-up sync cycle failed", "trigger", next, "error", ferr)
		}
	}

	return result, err
}

// Trigger просит Serve запустить цикл, не блокируясь
func (e *Engine) Trigger(t Trigger) {
	e.mu.Lock()
	e.queued = e.queued.merge(t)
	e.mu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Serve запускает автосинхронизацию по таймеру и по Trigger до отмены ctx
func (e *Engine) Serve(ctx context.Context) error {
	ticker := time.NewTicker(e.opts.Interval)
	defer ticker.Stop()

	e.logger.Info("Sync engine started", "interval", e.opts.Interval)
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Sync engine stopped")
			return ctx.Err()
		case <-ticker.C:
			if !e.online() {
				e.logger.Debug("Offline, skipping timer sync")
				continue
			}
			e.run(ctx, TriggerTimer)
		case <-e.wake:
			e.mu.Lock()
			t := e.queued
			e.queued = ""
			e.mu.Unlock()
			if t != "" {
				e.run(ctx, t)
			}
		}
	}
}

func (e *Engine) run(ctx context.Context, t Trigger) {
	if _, err := e.Sync(ctx, t); err != nil && !errors.Is(err, ErrSyncInProgress) && ctx.Err() == nil {
		e.logger.Warn("Sync failed", "trigger", t, "error", err)
	}
}

func (e *Engine) online() bool {
	return e.opts.Online == nil || e.opts.Online()
}

func (e *Engine) requestFollowUp(t Trigger) {
	e.mu.Lock()
	e.followUp = e.followUp.merge(t)
	e.mu.Unlock()
}

// cycle выполняет один цикл и фиксирует его итог. Вызывается с syncing=true.
func (e *Engine) cycle(ctx context.Context, trigger Trigger) (*SyncResult, error) {
	start := e.opts.Now()
	result := &SyncResult{Trigger: trigger}

	err := e.runCycle(ctx, result)

	outcome := "success"
	switch {
	case err != nil:
		outcome = "error"
	case result.Skipped:
		outcome = "skipped"
	}
	metrics.RecordSyncCycle(string(trigger), outcome, e.opts.Now().Sub(start))
	metrics.PendingOperations.Set(float64(e.log.Stats().Pending))

	e.mu.Lock()
	if err != nil {
		e.lastError = err.Error()
	} else {
		e.lastError = ""
		e.lastSyncAt = e.opts.Now()
	}
	e.mu.Unlock()

	if err != nil {
		e.logger.Warn("Sync cycle failed", "trigger", trigger, "error", err)
		return result, err
	}

	e.logger.Info("Sync cycle finished",
		"trigger", trigger,
		"uploaded", result.UploadedOperations,
		"deferred", result.DeferredOperations,
		"pushed", result.PushedItems,
		"pulled", result.PulledEntries,
		"conflicts", result.Conflicts,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (e *Engine) runCycle(ctx context.Context, result *SyncResult) error {
	token, err := e.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}

	// 1. Записи коллекций: create любых, update/delete для sharedLists и comments
	if err := e.drainQueue(ctx, token, result); err != nil {
		return err
	}

	// 2. Операции журнала
	e.backfillEntityIDs(ctx)
	pending := e.log.Pending()
	batch, covered := e.buildBatch(pending, result)

	if len(batch) == 0 && !result.Trigger.downloads() {
		result.Skipped = result.PushedItems == 0
		e.settleQueue(ctx)
		e.housekeep(ctx)
		return nil
	}

	lastSync, err := e.meta.GetLastSyncTimestamp(ctx)
	if err != nil {
		return fmt.Errorf("failed to read last sync time: %w", err)
	}

	req := api.SyncRequest{
		DeviceID:          e.clock.NodeID(),
		PendingOperations: make([]api.PendingOperation, 0, len(batch)),
	}
	if lastSync > 0 {
		req.LastSyncTime = api.NewTimestamp(time.UnixMilli(lastSync))
	}
	for _, op := range batch {
		req.PendingOperations = append(req.PendingOperations, toWire(op))
	}

	// 3. Один пакет. Ошибка транспорта оставляет всё в pending.
	resp, err := e.api.Sync(ctx, token, req)
	if err != nil {
		return fmt.Errorf("failed to sync operations: %w", err)
	}

	result.UploadedOperations = len(batch)
	metrics.OperationsUploaded.Add(float64(len(batch)))

	// Отправленные операции и вытесненные компактизацией, кроме отклоненных
	rejected := e.rejectedOperations(resp.Conflicts, batch, pending, result)
	e.log.MarkSyncedByID(ctx, slices.DeleteFunc(covered, func(id string) bool {
		_, ok := rejected[id]
		return ok
	})...)

	serverTS := resp.SyncTimestamp.Millis()
	result.SyncTimestamp = serverTS
	if serverTS > 0 {
		e.clock.Update(serverTS)
	}

	protected := e.protectedFields()

	// 4. Серверные снимки
	e.applyServerUpdates(ctx, resp.ServerUpdates, protected, result)

	// 5. Конфликты
	e.resolveConflicts(ctx, token, resp.Conflicts, batch, result)
	e.failRejected(ctx, rejected, result)

	// 6. Водяной знак загрузки только растет
	if serverTS > lastSync {
		if err := e.meta.SaveLastSyncTimestamp(ctx, serverTS); err != nil {
			e.logger.Warn("Failed to persist last sync time", "error", err)
		}
	}
	if resp.HasMore {
		e.requestFollowUp(TriggerOnline)
	}

	// 7. Уборка
	e.settleQueue(ctx)
	e.housekeep(ctx)
	return nil
}

// buildBatch возвращает компактизированный пакет и ID всех pending операций,
// которые им покрываются (включая вытесненные компактизацией)
func (e *Engine) buildBatch(pending []*models.Operation, result *SyncResult) ([]*models.Operation, []string) {
	var covered []string
	for _, op := range pending {
		if op.Kind != models.OperationCreate && op.Uploadable() {
			covered = append(covered, op.ID)
		}
	}

	var batch []*models.Operation
	for _, op := range oplog.Compact(pending) {
		switch {
		case op.Kind == models.OperationCreate:
			// создание идет через очередь
			continue
		case !op.Uploadable():
			// сущность ещё не получила серверный ID
			result.DeferredOperations++
			continue
		}
		batch = append(batch, op)
	}
	return batch, covered
}

// protectedFields поля с ещё не отправленными локальными правками:
// серверный снимок не должен их затирать. Отклоненная операция, которая
// ждет повтора, тоже защищает поле.
func (e *Engine) protectedFields() map[string]map[string]bool {
	protected := make(map[string]map[string]bool)
	for _, op := range e.log.All() {
		if op.SyncStatus != models.StatusPending && op.SyncStatus != models.StatusFailed {
			continue
		}
		fields, ok := protected[op.LocalID]
		if !ok {
			fields = make(map[string]bool)
			protected[op.LocalID] = fields
		}
		fields[op.FieldName] = true
	}
	return protected
}

// backfillEntityIDs дописывает серверный ID в операции, добавленные в журнал
// уже после того, как remap обработал их сущность
func (e *Engine) backfillEntityIDs(ctx context.Context) {
	seen := make(map[string]bool)
	for _, op := range e.log.Pending() {
		if op.Uploadable() || op.Kind == models.OperationCreate || seen[op.LocalID] {
			continue
		}
		seen[op.LocalID] = true
		rec, err := e.records.GetRecord(ctx, models.CollectionTodos, op.LocalID)
		if err != nil || rec.ServerID == "" {
			continue
		}
		e.log.BackfillEntityID(ctx, op.LocalID, rec.ServerID)
	}
}

func (e *Engine) housekeep(ctx context.Context) {
	now := e.opts.Now()
	if n := e.log.PurgeOld(ctx, e.opts.Retention, now); n > 0 {
		e.logger.Debug("Purged synced operations", "count", n)
	}

	items, err := e.queue.ListQueue(ctx)
	if err != nil {
		e.logger.Warn("Failed to read sync queue", "error", err)
		return
	}
	threshold := now.Add(-e.opts.Retention).UnixMilli()
	var old []string
	for _, item := range items {
		if item.Status == models.StatusSynced && item.Timestamp < threshold {
			old = append(old, item.ID)
		}
	}
	if len(old) == 0 {
		return
	}
	if err := e.queue.DeleteQueueItems(ctx, old...); err != nil {
		e.logger.Warn("Failed to purge sync queue", "count", len(old), "error", err)
	}
}

// toWire переводит операцию в формат запроса. Значения передаются строками.
func toWire(op *models.Operation) api.PendingOperation {
	p := api.PendingOperation{
		TodoID:        op.EntityID,
		OperationType: string(op.Kind),
		OldValue:      wireValue(op.OldValue),
		NewValue:      wireValue(op.NewValue),
		DeviceID:      op.DeviceID,
		SequenceID:    op.SequenceID,
		Timestamp:     op.Timestamp,
	}
	if op.FieldName != "" {
		field := op.FieldName
		p.FieldName = &field
	}
	return p
}
