package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/todosync/internal/client/data"
	"github.com/iudanet/todosync/internal/models"
)

// RunUpdate меняет одно поле задачи. value в текстовом виде,
// completed принимает true/false.
func (c *Cli) RunUpdate(ctx context.Context, id, field, value string) error {
	rec, err := c.dataService.UpdateTodoField(ctx, id, field, value)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return fmt.Errorf("todo not found with ID: %s", id)
		}
		return fmt.Errorf("failed to update todo: %w", err)
	}

	c.io.Printf("✓ Todo %s updated: %s = %v\n", rec.DisplayID(), field, rec.Data[field])
	return nil
}

// RunComplete отмечает задачу выполненной или снимает отметку
func (c *Cli) RunComplete(ctx context.Context, id string, completed bool) error {
	rec, err := c.dataService.UpdateTodoField(ctx, id, models.FieldCompleted, completed)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return fmt.Errorf("todo not found with ID: %s", id)
		}
		return fmt.Errorf("failed to update todo: %w", err)
	}

	title, _ := rec.Data[models.FieldTitle].(string)
	if completed {
		c.io.Printf("✓ Done: %s\n", title)
	} else {
		c.io.Printf("Reopened: %s\n", title)
	}
	return nil
}
