package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/todosync/internal/client/auth"
	"github.com/iudanet/todosync/internal/models"
)

func (c *Cli) RunStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	authData, err := c.authService.Current(ctx)
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		c.io.Println("Token: not saved")
		c.io.Println("Run 'todosync token' to save the token issued by the server.")
	case err != nil:
		return fmt.Errorf("failed to get auth data: %w", err)
	default:
		c.io.Println("Token: saved")
		if authData.Username != "" {
			c.io.Printf("User: %s\n", authData.Username)
		}
		if authData.ExpiresAt > 0 {
			expiresAt := time.Unix(authData.ExpiresAt, 0)
			c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
			if authData.Expired(time.Now().Unix()) {
				c.io.Println("⚠️  Token has expired. Save a new one with 'todosync token'.")
			}
		}
	}
	c.io.Println()

	st, err := c.syncService.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sync status: %w", err)
	}

	if st.LastSyncTimestamp > 0 {
		c.io.Printf("Last sync: %s\n", time.UnixMilli(st.LastSyncTimestamp).Format(time.RFC3339))
	} else {
		c.io.Println("Last sync: never")
	}
	if st.LastError != "" {
		c.io.Printf("Last error: %s\n", st.LastError)
	}
	c.io.Printf("Pending operations: %d\n", st.PendingOperations)
	if st.DeferredOperations > 0 {
		c.io.Printf("Waiting for server IDs: %d\n", st.DeferredOperations)
	}
	if st.FailedOperations > 0 {
		c.io.Printf("Rejected operations:    %d\n", st.FailedOperations)
	}

	waiting := st.Queue[models.StatusPending] + st.Queue[models.StatusFailed]
	if waiting > 0 {
		c.io.Printf("⚠️  Pending sync: %d change(s) waiting to be synchronized\n", waiting)
		c.io.Println("Run 'todosync sync' to synchronize with server.")
	} else if st.PendingOperations == 0 {
		c.io.Println("✓ All data synchronized with server")
	}
	if failed := st.Queue[models.StatusFailedPermanently]; failed > 0 {
		c.io.Printf("✗ %d change(s) rejected permanently, run 'todosync sync --retry-failed'\n", failed)
	}

	return nil
}
