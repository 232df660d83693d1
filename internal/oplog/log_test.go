package oplog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/client/storage/boltdb"
	"github.com/iudanet/todosync/internal/clock"
	"github.com/iudanet/todosync/internal/models"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeNow struct {
	mu sync.Mutex
	ms int64
}

func (f *fakeNow) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return time.UnixMilli(f.ms)
}

func (f *fakeNow) set(ms int64) {
	f.mu.Lock()
	f.ms = ms
	f.mu.Unlock()
}

func newTestStore(t *testing.T) *boltdb.Storage {
	t.Helper()
	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "oplog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestLog(t *testing.T, store storage.OperationStorage, now *fakeNow) *Log {
	t.Helper()
	clk := clock.New("device-1", clock.WithNow(now.now))
	l, err := Open(context.Background(), store, clk, newTestLogger())
	require.NoError(t, err)
	return l
}

func update(localID, entityID, field string, value any) models.Operation {
	return models.Operation{
		Kind:      models.OperationUpdate,
		LocalID:   localID,
		EntityID:  entityID,
		FieldName: field,
		NewValue:  value,
	}
}

func TestLog_Append(t *testing.T) {
	ctx := context.Background()
	now := &fakeNow{ms: 1000}
	store := newTestStore(t)
	l := newTestLog(t, store, now)

	op, err := l.Append(ctx, update("l1", "17", "title", "a"))
	require.NoError(t, err)

	assert.NotEmpty(t, op.ID)
	assert.Equal(t, op.ID, op.SequenceID)
	assert.Equal(t, int64(1000), op.Timestamp)
	assert.Equal(t, "device-1", op.DeviceID)
	assert.Equal(t, models.StatusPending, op.SyncStatus)

	// Вторая операция в ту же миллисекунду получает большую метку
	op2, err := l.Append(ctx, update("l1", "17", "title", "b"))
	require.NoError(t, err)
	assert.Greater(t, op2.Timestamp, op.Timestamp)
	assert.Greater(t, op2.SequenceID, op.SequenceID)

	// Операции записаны в хранилище
	stored, err := store.ListOperations(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestLog_Append_Invalid(t *testing.T) {
	l := newTestLog(t, newTestStore(t), &fakeNow{ms: 1})

	_, err := l.Append(context.Background(), models.Operation{Kind: models.OperationUpdate, FieldName: "title"})
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = l.Append(context.Background(), models.Operation{Kind: models.OperationUpdate, LocalID: "l1"})
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestLog_Append_PersistFailureKeepsOperation(t *testing.T) {
	ctx := context.Background()
	mock := &storage.OperationStorageMock{
		ListOperationsFunc: func(ctx context.Context) ([]*models.Operation, error) {
			return nil, nil
		},
		SaveOperationsFunc: func(ctx context.Context, ops ...*models.Operation) error {
			return errors.New("disk full")
		},
	}
	l := newTestLog(t, mock, &fakeNow{ms: 1})

	op, err := l.Append(ctx, update("l1", "17", "title", "a"))
	require.NoError(t, err, "persistence errors are not returned to the caller")

	pending := l.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, op.ID, pending[0].ID)
	assert.Len(t, mock.SaveOperationsCalls(), 1)
}

func TestLog_Open_LoadError(t *testing.T) {
	mock := &storage.OperationStorageMock{
		ListOperationsFunc: func(ctx context.Context) ([]*models.Operation, error) {
			return nil, errors.New("corrupted")
		},
	}
	_, err := Open(context.Background(), mock, clock.New("d"), newTestLogger())
	assert.ErrorContains(t, err, "corrupted")
}

func TestLog_ReopenRestoresStateAndClock(t *testing.T) {
	ctx := context.Background()
	now := &fakeNow{ms: 5000}
	store := newTestStore(t)

	l := newTestLog(t, store, now)
	first, err := l.Append(ctx, update("l1", "17", "title", "a"))
	require.NoError(t, err)
	l.MarkSynced(ctx, first.Timestamp)
	_, err = l.Append(ctx, update("l1", "17", "priority", "HIGH"))
	require.NoError(t, err)

	// Часы откатились: новые операции всё равно позже сохраненных
	now.set(10)
	reopened := newTestLog(t, store, now)

	assert.Len(t, reopened.All(), 2)
	pending := reopened.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "priority", pending[0].FieldName)

	next, err := reopened.Append(ctx, update("l1", "17", "title", "b"))
	require.NoError(t, err)
	assert.Greater(t, next.Timestamp, pending[0].Timestamp)
}

func TestLog_MarkSynced(t *testing.T) {
	ctx := context.Background()
	now := &fakeNow{ms: 100}
	l := newTestLog(t, newTestStore(t), now)

	a, _ := l.Append(ctx, update("l1", "17", "title", "a"))
	now.set(200)
	b, _ := l.Append(ctx, update("l1", "17", "priority", "LOW"))
	now.set(300)
	c, _ := l.Append(ctx, update("l2", "18", "title", "c"))

	assert.Equal(t, 2, l.MarkSynced(ctx, 200))

	pending := l.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, c.ID, pending[0].ID)

	// Повтор с тем же или меньшим cutoff ничего не меняет
	assert.Equal(t, 0, l.MarkSynced(ctx, 200))
	assert.Equal(t, 0, l.MarkSynced(ctx, 50))
	assert.Len(t, l.Pending(), 1)

	assert.True(t, l.Synced(a.ID, b.ID))
	assert.False(t, l.Synced(a.ID, c.ID))
	assert.True(t, l.Synced("purged-long-ago"))
}

func TestLog_MarkSyncedByID(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(t, newTestStore(t), &fakeNow{ms: 1})

	a, _ := l.Append(ctx, update("l1", "17", "title", "a"))
	b, _ := l.Append(ctx, update("l1", "17", "title", "b"))

	assert.Equal(t, 1, l.MarkSyncedByID(ctx, a.ID, "missing"))
	assert.Equal(t, 0, l.MarkSyncedByID(ctx, a.ID))

	got, ok := l.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, got.SyncStatus)
}

func TestLog_MarkFailedAndRequeue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	now := &fakeNow{ms: 1}
	l := newTestLog(t, store, now)

	a, _ := l.Append(ctx, update("l1", "17", "title", "a"))
	b, _ := l.Append(ctx, update("l1", "17", "status", "done"))
	l.MarkSyncedByID(ctx, b.ID)

	// synced операция не становится failed
	assert.Equal(t, 1, l.MarkFailed(ctx, false, a.ID, b.ID, "missing"))
	got, _ := l.Get(a.ID)
	assert.Equal(t, models.StatusFailed, got.SyncStatus)
	assert.Equal(t, 1, got.RetryCount)
	assert.Empty(t, l.Pending())
	assert.Equal(t, Stats{Synced: 1, Failed: 1}, l.Stats())

	assert.Equal(t, 1, l.Requeue(ctx, a.ID, b.ID))
	assert.Equal(t, 1, l.MarkFailed(ctx, true, a.ID))
	got, _ = l.Get(a.ID)
	assert.Equal(t, models.StatusFailedPermanently, got.SyncStatus)
	assert.Equal(t, 2, got.RetryCount)

	// статус переживает перезапуск
	reopened := newTestLog(t, store, now)
	got, ok := reopened.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusFailedPermanently, got.SyncStatus)

	assert.Equal(t, 1, reopened.Requeue(ctx, a.ID))
	assert.Len(t, reopened.Pending(), 1)
}

func TestLog_BackfillEntityID(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(t, newTestStore(t), &fakeNow{ms: 1})

	create, _ := l.Append(ctx, models.Operation{Kind: models.OperationCreate, LocalID: "l1", NewValue: map[string]any{"title": "a"}})
	upd, _ := l.Append(ctx, update("l1", "", "title", "b"))
	other, _ := l.Append(ctx, update("l2", "", "title", "x"))

	// Все три операции ещё без серверного ID
	assert.Equal(t, Stats{Pending: 3, Deferred: 3}, l.Stats())

	assert.Equal(t, 2, l.BackfillEntityID(ctx, "l1", "17"))

	got, _ := l.Get(create.ID)
	assert.Equal(t, "17", got.EntityID)
	assert.Equal(t, models.StatusSynced, got.SyncStatus, "create is acknowledged by the server id")

	got, _ = l.Get(upd.ID)
	assert.Equal(t, "17", got.EntityID)
	assert.Equal(t, models.StatusPending, got.SyncStatus)

	got, _ = l.Get(other.ID)
	assert.Empty(t, got.EntityID)

	// Повторный backfill не перезаписывает ID
	assert.Equal(t, 0, l.BackfillEntityID(ctx, "l1", "99"))
	got, _ = l.Get(upd.ID)
	assert.Equal(t, "17", got.EntityID)
}

func TestLog_PurgeOld(t *testing.T) {
	ctx := context.Background()
	now := &fakeNow{ms: 1_000}
	store := newTestStore(t)
	l := newTestLog(t, store, now)

	old, _ := l.Append(ctx, update("l1", "17", "title", "a"))
	oldPending, _ := l.Append(ctx, update("l2", "18", "title", "b"))
	l.MarkSyncedByID(ctx, old.ID)

	now.set(10 * 24 * time.Hour.Milliseconds())
	recent, _ := l.Append(ctx, update("l1", "17", "title", "c"))
	l.MarkSyncedByID(ctx, recent.ID)

	removed := l.PurgeOld(ctx, 7*24*time.Hour, now.now())
	assert.Equal(t, 1, removed)

	_, ok := l.Get(old.ID)
	assert.False(t, ok)
	_, ok = l.Get(oldPending.ID)
	assert.True(t, ok, "pending operations are never purged")
	_, ok = l.Get(recent.ID)
	assert.True(t, ok)

	stored, err := store.ListOperations(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestLog_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(t, newTestStore(t), &fakeNow{ms: 1})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := l.Append(ctx, update("l1", "17", "title", j))
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	pending := l.Pending()
	assert.Len(t, pending, 160)
	assert.Len(t, l.CompactPending(), 1)
}
