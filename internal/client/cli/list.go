package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/todosync/internal/models"
)

// RunList выводит задачи в порядке создания. Выполненные скрываются,
// если all=false.
func (c *Cli) RunList(ctx context.Context, all bool) error {
	c.io.Println("=== Todos ===")
	c.io.Println()

	records, err := c.dataService.ListTodos(ctx)
	if err != nil {
		return fmt.Errorf("failed to list todos: %w", err)
	}

	shown := 0
	for _, rec := range records {
		todo := models.TodoFromRecord(rec)
		if todo.Completed && !all {
			continue
		}
		shown++

		mark := " "
		if todo.Completed {
			mark = "x"
		}
		c.io.Printf("%d. [%s] %s%s\n", shown, mark, todo.Title, syncMark(rec))
		c.io.Printf("   ID:       %s\n", todo.ID)
		c.io.Printf("   Priority: %s\n", todo.Priority)
		if todo.DueDate != "" {
			c.io.Printf("   Due:      %s\n", todo.DueDate)
		}
		c.io.Println()
	}

	if shown == 0 {
		c.io.Println("No todos found.")
		c.io.Println()
		c.io.Println("Use 'todosync add' to add your first todo.")
		return nil
	}

	if hidden := len(records) - shown; hidden > 0 {
		c.io.Printf("%d completed todo(s) hidden, use --all to show them.\n", hidden)
	}
	return nil
}
