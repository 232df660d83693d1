package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/client/auth"
	"github.com/iudanet/todosync/internal/client/storage"
	clientsync "github.com/iudanet/todosync/internal/client/sync"
	"github.com/iudanet/todosync/internal/models"
)

// TestCli_RunSync_Success проверяет успешное выполнение синхронизации и вывод отчёта
func TestCli_RunSync_Success(t *testing.T) {
	mockSync := &SyncServiceMock{
		SyncFunc: func(ctx context.Context, trigger clientsync.Trigger) (*clientsync.SyncResult, error) {
			return &clientsync.SyncResult{
				Trigger:            trigger,
				PushedItems:        2,
				UploadedOperations: 3,
				PulledEntries:      4,
				Conflicts:          2,
				ResolvedConflicts:  1,
				DeferredItems:      1,
				PermanentFailures: []models.SyncQueueItem{{
					Operation: models.QueueUpdate,
					StoreName: models.CollectionSharedLists,
					LocalID:   "01L",
					LastError: "server returned 400",
				}},
			}, nil
		},
	}
	out := &output{}
	cli := &Cli{io: out.mock(), syncService: mockSync}

	require.NoError(t, cli.RunSync(context.Background(), false))

	require.Len(t, mockSync.SyncCalls(), 1)
	assert.Equal(t, clientsync.TriggerManual, mockSync.SyncCalls()[0].Trigger)
	assert.Empty(t, mockSync.RetryFailedCalls())

	assert.Contains(t, out.lines, "Pushed to server:   2 change(s)\n")
	assert.Contains(t, out.lines, "Uploaded:           3 operation(s)\n")
	assert.Contains(t, out.lines, "Pulled from server: 4 entries\n")
	assert.Contains(t, out.lines, "Conflicts resolved: 1 of 2\n")
	assert.Contains(t, out.lines, "Waiting for server IDs: 1\n")
	assert.Contains(t, out.lines, "✗ Rejected permanently: 1\n")
	assert.Contains(t, out.lines, "  update sharedLists 01L: server returned 400\n")
}

func TestCli_RunSync_RejectedOperations(t *testing.T) {
	mockSync := &SyncServiceMock{
		SyncFunc: func(ctx context.Context, trigger clientsync.Trigger) (*clientsync.SyncResult, error) {
			return &clientsync.SyncResult{
				UploadedOperations: 1,
				RejectedOperations: 1,
				FailedItems:        1,
				PermanentFailures: []models.SyncQueueItem{{
					Operation: models.QueueUpdate,
					StoreName: models.CollectionTodos,
					LocalID:   "01T",
					LastError: "operation rejected by server: task not found",
				}},
			}, nil
		},
	}
	out := &output{}
	cli := &Cli{io: out.mock(), syncService: mockSync}

	require.NoError(t, cli.RunSync(context.Background(), false))

	assert.Contains(t, out.lines, "Rejected by server: 1 operation(s)\n")
	assert.Contains(t, out.lines, "Rejected (will retry): 1\n")
	assert.Contains(t, out.lines, "✗ Rejected permanently: 1\n")
	assert.Contains(t, out.lines, "  update todos 01T: operation rejected by server: task not found\n")
}

func TestCli_RunSync_RetryFailedAndSkipped(t *testing.T) {
	mockSync := &SyncServiceMock{
		RetryFailedFunc: func(ctx context.Context) (int, error) { return 2, nil },
		SyncFunc: func(ctx context.Context, trigger clientsync.Trigger) (*clientsync.SyncResult, error) {
			return &clientsync.SyncResult{Skipped: true}, nil
		},
	}
	out := &output{}
	cli := &Cli{io: out.mock(), syncService: mockSync}

	require.NoError(t, cli.RunSync(context.Background(), true))
	assert.Len(t, mockSync.RetryFailedCalls(), 1)
	assert.Contains(t, out.lines, "Requeued 2 rejected change(s)\n")
	assert.Contains(t, out.lines, "✓ Nothing to synchronize")
}

func TestCli_RunSync_Errors(t *testing.T) {
	tests := []struct {
		syncErr  error
		retryErr error
		name     string
		wantErr  string
		retry    bool
	}{
		{name: "in progress", syncErr: clientsync.ErrSyncInProgress},
		{name: "not authenticated", syncErr: auth.ErrNotAuthenticated, wantErr: "synchronization failed"},
		{name: "retry failed", retry: true, retryErr: errors.New("db"), wantErr: "failed to requeue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSync := &SyncServiceMock{
				RetryFailedFunc: func(ctx context.Context) (int, error) { return 0, tt.retryErr },
				SyncFunc: func(ctx context.Context, trigger clientsync.Trigger) (*clientsync.SyncResult, error) {
					return nil, tt.syncErr
				},
			}
			cli := &Cli{io: (&output{}).mock(), syncService: mockSync}

			err := cli.RunSync(context.Background(), tt.retry)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCli_RunStatus(t *testing.T) {
	expires := time.Now().Add(time.Hour).Unix()
	mockAuth := &auth.ServiceMock{
		CurrentFunc: func(ctx context.Context) (*storage.AuthData, error) {
			return &storage.AuthData{Username: "alice", ExpiresAt: expires}, nil
		},
	}
	mockSync := &SyncServiceMock{
		StatusFunc: func(ctx context.Context) (clientsync.Status, error) {
			return clientsync.Status{
				LastSyncTimestamp: 1_700_000_000_000,
				PendingOperations: 3,
				Queue: map[models.SyncStatus]int{
					models.StatusPending:           2,
					models.StatusFailedPermanently: 1,
				},
			}, nil
		},
	}
	out := &output{}
	cli := &Cli{io: out.mock(), authService: mockAuth, syncService: mockSync}

	require.NoError(t, cli.RunStatus(context.Background()))

	assert.Contains(t, out.lines, "Token: saved")
	assert.Contains(t, out.lines, "User: alice\n")
	assert.Contains(t, out.lines, "Pending operations: 3\n")
	assert.Contains(t, out.lines, "⚠️  Pending sync: 2 change(s) waiting to be synchronized\n")
	assert.Contains(t, out.lines, "✗ 1 change(s) rejected permanently, run 'todosync sync --retry-failed'\n")
	assert.NotContains(t, out.String(), "expired")
}

func TestCli_RunStatus_NotAuthenticated(t *testing.T) {
	mockAuth := &auth.ServiceMock{
		CurrentFunc: func(ctx context.Context) (*storage.AuthData, error) {
			return nil, auth.ErrNotAuthenticated
		},
	}
	mockSync := &SyncServiceMock{
		StatusFunc: func(ctx context.Context) (clientsync.Status, error) {
			return clientsync.Status{Queue: map[models.SyncStatus]int{}}, nil
		},
	}
	out := &output{}
	cli := &Cli{io: out.mock(), authService: mockAuth, syncService: mockSync}

	require.NoError(t, cli.RunStatus(context.Background()))
	assert.Contains(t, out.lines, "Token: not saved")
	assert.Contains(t, out.lines, "Last sync: never")
	assert.Contains(t, out.lines, "✓ All data synchronized with server")

	mockSync.StatusFunc = func(ctx context.Context) (clientsync.Status, error) {
		return clientsync.Status{}, errors.New("db")
	}
	assert.ErrorContains(t, cli.RunStatus(context.Background()), "failed to get sync status")
}
