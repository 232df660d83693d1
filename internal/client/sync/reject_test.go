package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/conflict"
	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/pkg/api"
)

func TestSync_RejectedOperationRetriesThenFailsPermanently(t *testing.T) {
	var reported []models.SyncQueueItem
	h := newHarness(t, conflict.StrategyServerWins, Options{
		RetryBaseDelay: time.Second,
		MaxRetries:     1,
		OnPermanentFailure: func(item models.SyncQueueItem) {
			reported = append(reported, item)
		},
	})
	ctx := context.Background()

	h.saveTodo(t, "L1", "42", map[string]any{"title": "b"})
	op := h.update(t, "L1", "42", models.FieldTitle, "a", "b")
	item := h.enqueue(t, models.SyncQueueItem{
		Operation: models.QueueUpdate, StoreName: models.CollectionTodos, LocalID: "L1",
		OperationIDs: []string{op.ID},
	})

	h.api.SyncFunc = func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
		return &api.SyncResponse{
			SyncTimestamp: *api.NewTimestamp(time.UnixMilli(1000)),
			Conflicts: []api.ConflictReport{{
				OperationID: "1", TodoID: "42", Field: models.FieldTitle, Error: "task not found",
			}},
		}, nil
	}

	result, err := h.engine.Sync(ctx, TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UploadedOperations)
	assert.Equal(t, 1, result.RejectedOperations)
	assert.Equal(t, 1, result.FailedItems)
	assert.Empty(t, result.PermanentFailures)

	got, ok := h.log.Get(op.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusFailed, got.SyncStatus)
	assert.Equal(t, 1, got.RetryCount)

	queued := h.queueItem(t, item.ID)
	assert.Equal(t, models.StatusFailed, queued.Status)
	assert.Contains(t, queued.LastError, "task not found")
	assert.NotEqual(t, models.RecordSynced, h.todo(t, "L1").SyncStatus)

	// до nextRetryAt операция не отправляется
	_, err = h.engine.Sync(ctx, TriggerManual)
	require.NoError(t, err)
	assert.Len(t, h.api.SyncCalls(), 1)

	h.now.advance(time.Second)
	result, err = h.engine.Sync(ctx, TriggerManual)
	require.NoError(t, err)
	require.Len(t, h.api.SyncCalls(), 2)
	assert.Equal(t, "b", h.api.SyncCalls()[1].Req.PendingOperations[0].NewValue)

	got, _ = h.log.Get(op.ID)
	assert.Equal(t, models.StatusFailedPermanently, got.SyncStatus)
	assert.Equal(t, models.StatusFailedPermanently, h.queueItem(t, item.ID).Status)
	require.Len(t, result.PermanentFailures, 1)
	assert.Equal(t, item.ID, result.PermanentFailures[0].ID)
	require.Len(t, reported, 1)

	st, err := h.engine.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.FailedOperations)

	// ручной повтор возвращает и элемент, и операцию
	n, err := h.engine.RetryFailed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, h.log.Pending(), 1)
	assert.Equal(t, op.ID, h.log.Pending()[0].ID)
}

func TestSync_RejectionKeepsSupersededOperationsUnsynced(t *testing.T) {
	h := newHarness(t, conflict.StrategyServerWins, Options{RetryBaseDelay: time.Second, MaxRetries: 3})
	ctx := context.Background()

	h.saveTodo(t, "L1", "42", map[string]any{"title": "c", "priority": "high"})
	first := h.update(t, "L1", "42", models.FieldTitle, "a", "b")
	firstItem := h.enqueue(t, models.SyncQueueItem{
		Operation: models.QueueUpdate, StoreName: models.CollectionTodos, LocalID: "L1",
		OperationIDs: []string{first.ID},
	})
	second := h.update(t, "L1", "42", models.FieldTitle, "b", "c")
	h.enqueue(t, models.SyncQueueItem{
		Operation: models.QueueUpdate, StoreName: models.CollectionTodos, LocalID: "L1",
		OperationIDs: []string{second.ID},
	})
	status := h.update(t, "L1", "42", models.FieldPriority, "medium", "high")
	statusItem := h.enqueue(t, models.SyncQueueItem{
		Operation: models.QueueUpdate, StoreName: models.CollectionTodos, LocalID: "L1",
		OperationIDs: []string{status.ID},
	})

	// todo_id нет: операция находится по полю и новому значению
	h.api.SyncFunc = func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
		return &api.SyncResponse{
			SyncTimestamp: *api.NewTimestamp(time.UnixMilli(1000)),
			Conflicts: []api.ConflictReport{{
				OperationID: "9", Field: models.FieldTitle, ClientNewValue: "c", Error: "title locked",
			}},
		}, nil
	}

	result, err := h.engine.Sync(ctx, TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, 2, result.UploadedOperations)
	assert.Equal(t, 1, result.RejectedOperations)
	assert.Equal(t, 2, result.FailedItems)

	for _, id := range []string{first.ID, second.ID} {
		got, _ := h.log.Get(id)
		assert.Equal(t, models.StatusFailed, got.SyncStatus, id)
	}
	got, _ := h.log.Get(status.ID)
	assert.Equal(t, models.StatusSynced, got.SyncStatus)

	assert.Equal(t, models.StatusFailed, h.queueItem(t, firstItem.ID).Status)
	assert.Equal(t, models.StatusSynced, h.queueItem(t, statusItem.ID).Status)
}

func TestSync_UnmatchedRejectionIsCounted(t *testing.T) {
	h := newHarness(t, conflict.StrategyServerWins, Options{})
	ctx := context.Background()

	h.saveTodo(t, "L1", "42", map[string]any{"title": "b"})
	op := h.update(t, "L1", "42", models.FieldTitle, "a", "b")

	h.api.SyncFunc = func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
		return &api.SyncResponse{
			SyncTimestamp: *api.NewTimestamp(time.UnixMilli(1000)),
			Conflicts: []api.ConflictReport{{
				OperationID: "3", TodoID: "77", Field: models.FieldTitle, Error: "task not found",
			}},
		}, nil
	}

	result, err := h.engine.Sync(ctx, TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RejectedOperations)
	assert.Zero(t, result.FailedItems)

	got, _ := h.log.Get(op.ID)
	assert.Equal(t, models.StatusSynced, got.SyncStatus)
}

func TestSync_RejectedOperationWithoutQueueItemFailsPermanently(t *testing.T) {
	h := newHarness(t, conflict.StrategyServerWins, Options{})
	ctx := context.Background()

	h.saveTodo(t, "L1", "42", map[string]any{"title": "b"})
	op := h.update(t, "L1", "42", models.FieldTitle, "a", "b")

	h.api.SyncFunc = func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
		return &api.SyncResponse{
			SyncTimestamp: *api.NewTimestamp(time.UnixMilli(1000)),
			Conflicts: []api.ConflictReport{{
				OperationID: "3", TodoID: "42", Field: models.FieldTitle, Error: "invalid title",
			}},
		}, nil
	}

	_, err := h.engine.Sync(ctx, TriggerManual)
	require.NoError(t, err)

	got, _ := h.log.Get(op.ID)
	assert.Equal(t, models.StatusFailedPermanently, got.SyncStatus)
	assert.Empty(t, h.log.Pending())
}
