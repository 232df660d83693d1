package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/todosync/internal/client/data"
	"github.com/iudanet/todosync/internal/models"
)

// RunDelete удаляет задачу после подтверждения. force пропускает вопрос.
func (c *Cli) RunDelete(ctx context.Context, id string, force bool) error {
	c.io.Println("=== Delete Todo ===")

	rec, err := c.dataService.GetTodo(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDeleted):
			c.io.Println("Todo is already deleted, waiting for sync.")
			return nil
		case errors.Is(err, data.ErrNotFound):
			return fmt.Errorf("todo not found with ID: %s", id)
		}
		return fmt.Errorf("failed to get todo: %w", err)
	}

	todo := models.TodoFromRecord(rec)
	c.io.Println()
	c.io.Println("About to delete:")
	c.io.Printf("  Title: %s\n", todo.Title)
	c.io.Printf("  ID:    %s\n", todo.ID)
	c.io.Println()

	if !force {
		confirm, err := c.io.ReadInput("Are you sure you want to delete this todo? (yes/no): ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if confirm = strings.ToLower(confirm); confirm != "yes" && confirm != "y" {
			c.io.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := c.dataService.DeleteTodo(ctx, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	c.io.Println("✓ Todo deleted")
	c.io.Println("Note: the todo is hidden locally and removed from the server on the next sync.")
	return nil
}
