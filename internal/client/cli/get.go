package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/todosync/internal/client/data"
	"github.com/iudanet/todosync/internal/models"
)

func (c *Cli) RunGet(ctx context.Context, id string) error {
	rec, err := c.dataService.GetTodo(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) || errors.Is(err, data.ErrDeleted) {
			return fmt.Errorf("todo not found with ID: %s", id)
		}
		return fmt.Errorf("failed to get todo: %w", err)
	}

	todo := models.TodoFromRecord(rec)

	c.io.Println("=== Todo Details ===")
	c.io.Println()
	c.io.Printf("Title:     %s\n", todo.Title)
	c.io.Printf("ID:        %s\n", todo.ID)
	if rec.ServerID != "" && rec.ServerID != rec.LocalID {
		c.io.Printf("Local ID:  %s\n", rec.LocalID)
	}
	if todo.Description != "" {
		c.io.Printf("Notes:     %s\n", todo.Description)
	}
	c.io.Printf("Priority:  %s\n", todo.Priority)
	c.io.Printf("Completed: %t\n", todo.Completed)
	if todo.DueDate != "" {
		c.io.Printf("Due:       %s\n", todo.DueDate)
	}
	c.io.Printf("Updated:   %s\n", todo.UpdatedAt.Format(time.RFC3339))
	c.io.Printf("Sync:      %s\n", rec.SyncStatus)
	c.io.Println()

	return nil
}
