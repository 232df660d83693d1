package iocli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/todosync/internal/conflict"
	"github.com/iudanet/todosync/internal/models"
)

// ErrInvalidChoice пользователь не выбрал вариант за отведенные попытки
var ErrInvalidChoice = errors.New("invalid conflict choice")

const promptAttempts = 3

// ConflictPrompt возвращает обработчик для стратегии prompt_user,
// который спрашивает пользователя через io.
// Пустой ввод означает серверное значение.
func ConflictPrompt(io IO) conflict.PromptFunc {
	return func(ctx context.Context, c models.Conflict) (models.Resolution, error) {
		io.Println("")
		io.Printf("Conflict in todo %s, field %q (%s)\n", c.TodoID, c.FieldName, c.Severity)
		io.Printf("  server: %v\n", c.ServerValue)
		io.Printf("  local:  %v (was %v)\n", c.ClientNewValue, c.ClientOldValue)

		for range promptAttempts {
			if err := ctx.Err(); err != nil {
				return models.Resolution{}, err
			}
			answer, err := io.ReadInput("Keep [s]erver, [c]lient or [m]erge? [s]: ")
			if err != nil {
				return models.Resolution{}, fmt.Errorf("failed to read choice: %w", err)
			}
			if action, ok := parseChoice(answer); ok {
				return models.Resolution{Action: action}, nil
			}
			io.Println("Please answer s, c or m")
		}
		return models.Resolution{}, ErrInvalidChoice
	}
}

func parseChoice(answer string) (models.ResolutionAction, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "s", "server":
		return models.ResolutionAcceptServer, true
	case "c", "client":
		return models.ResolutionAcceptClient, true
	case "m", "merge":
		return models.ResolutionMerge, true
	}
	return "", false
}
