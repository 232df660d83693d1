package cli

import (
	"context"
	"errors"
	"fmt"

	clientsync "github.com/iudanet/todosync/internal/client/sync"
)

// RunSync выполняет один цикл синхронизации. retryFailed сначала
// возвращает в очередь окончательно отклоненные изменения.
func (c *Cli) RunSync(ctx context.Context, retryFailed bool) error {
	c.io.Println("=== Synchronization ===")

	if retryFailed {
		n, err := c.syncService.RetryFailed(ctx)
		if err != nil {
			return fmt.Errorf("failed to requeue rejected changes: %w", err)
		}
		c.io.Printf("Requeued %d rejected change(s)\n", n)
	}

	c.io.Println()
	c.io.Println("Starting synchronization with server...")

	result, err := c.syncService.Sync(ctx, clientsync.TriggerManual)
	if err != nil {
		if errors.Is(err, clientsync.ErrSyncInProgress) {
			c.io.Println("Synchronization is already running, changes will be included in it.")
			return nil
		}
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Println()
	if result.Skipped {
		c.io.Println("✓ Nothing to synchronize")
		return nil
	}

	c.io.Println("✓ Synchronization completed successfully!")
	c.io.Println()
	c.io.Printf("Pushed to server:   %d change(s)\n", result.PushedItems)
	c.io.Printf("Uploaded:           %d operation(s)\n", result.UploadedOperations)
	c.io.Printf("Pulled from server: %d entries\n", result.PulledEntries)
	if result.Conflicts > 0 {
		c.io.Printf("Conflicts resolved: %d of %d\n", result.ResolvedConflicts, result.Conflicts)
	}
	if result.DeferredItems+result.DeferredOperations > 0 {
		c.io.Printf("Waiting for server IDs: %d\n", result.DeferredItems+result.DeferredOperations)
	}
	if result.RejectedOperations > 0 {
		c.io.Printf("Rejected by server: %d operation(s)\n", result.RejectedOperations)
	}
	if result.FailedItems > 0 {
		c.io.Printf("Rejected (will retry): %d\n", result.FailedItems)
	}
	if n := len(result.PermanentFailures); n > 0 {
		c.io.Printf("✗ Rejected permanently: %d\n", n)
		for _, item := range result.PermanentFailures {
			c.io.Printf("  %s %s %s: %s\n", item.Operation, item.StoreName, item.LocalID, item.LastError)
		}
	}

	return nil
}
