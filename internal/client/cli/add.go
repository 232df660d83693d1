package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/todosync/internal/models"
)

// TodoInput поля новой задачи из флагов командной строки
type TodoInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     string
}

// RunAdd создает задачу локально. Без заголовка поля спрашиваются
// интерактивно.
func (c *Cli) RunAdd(ctx context.Context, in TodoInput) error {
	c.io.Println("=== Add Todo ===")

	if in.Title == "" {
		if err := c.readTodoInput(&in); err != nil {
			return err
		}
	}

	fields := map[string]any{models.FieldTitle: in.Title}
	if in.Description != "" {
		fields[models.FieldDescription] = in.Description
	}
	if in.Priority != "" {
		fields[models.FieldPriority] = in.Priority
	}
	if in.DueDate != "" {
		fields[models.FieldDueDate] = in.DueDate
	}

	rec, err := c.dataService.CreateTodo(ctx, fields)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Todo created")
	c.io.Printf("ID: %s\n", rec.DisplayID())
	c.io.Println("It will be sent to the server on the next sync.")
	return nil
}

func (c *Cli) readTodoInput(in *TodoInput) error {
	var err error
	if in.Title, err = c.io.ReadInput("Title: "); err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}
	if in.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if in.Description, err = c.io.ReadInput("Description (optional): "); err != nil {
		return fmt.Errorf("failed to read description: %w", err)
	}
	if in.Priority, err = c.io.ReadInput("Priority [low/medium/high] (medium): "); err != nil {
		return fmt.Errorf("failed to read priority: %w", err)
	}
	if in.DueDate, err = c.io.ReadInput("Due date YYYY-MM-DD (optional): "); err != nil {
		return fmt.Errorf("failed to read due date: %w", err)
	}
	return nil
}
