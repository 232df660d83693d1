package conflict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/todosync/internal/models"
)

// Strategy стратегия разрешения конфликтов
type Strategy string

const (
	StrategyServerWins Strategy = "server_wins"
	StrategyClientWins Strategy = "client_wins"
	StrategySmartMerge Strategy = "smart_merge"
	StrategyPromptUser Strategy = "prompt_user"
)

// DefaultPromptTimeout сколько ждать решения пользователя
const DefaultPromptTimeout = 30 * time.Second

var (
	// ErrUnknownStrategy стратегия не поддерживается
	ErrUnknownStrategy = errors.New("unknown conflict strategy")

	// ErrNoPrompt для prompt_user не задан обработчик
	ErrNoPrompt = errors.New("prompt_user strategy requires a prompt handler")
)

// ParseStrategy разбирает имя стратегии
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case StrategyServerWins, StrategyClientWins, StrategySmartMerge, StrategyPromptUser:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// PromptFunc спрашивает пользователя, как разрешить конфликт.
// Может блокироваться, resolver ограничивает её таймаутом через ctx.
type PromptFunc func(ctx context.Context, c models.Conflict) (models.Resolution, error)

// Resolver применяет выбранную стратегию к конфликтам
type Resolver struct {
	prompt        PromptFunc
	logger        *slog.Logger
	strategy      Strategy
	promptTimeout time.Duration
}

// NewResolver создает resolver. Для prompt_user обработчик обязателен.
func NewResolver(strategy Strategy, prompt PromptFunc, promptTimeout time.Duration, logger *slog.Logger) (*Resolver, error) {
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}
	if strategy == StrategyPromptUser && prompt == nil {
		return nil, ErrNoPrompt
	}
	if promptTimeout <= 0 {
		promptTimeout = DefaultPromptTimeout
	}
	return &Resolver{
		strategy:      strategy,
		prompt:        prompt,
		promptTimeout: promptTimeout,
		logger:        logger,
	}, nil
}

// Strategy возвращает стратегию resolver
func (r *Resolver) Strategy() Strategy {
	return r.strategy
}

// Resolve всегда возвращает решение. Если пользователь не ответил,
// ответил некорректно или обработчик упал, конфликт решается в пользу сервера.
func (r *Resolver) Resolve(ctx context.Context, c models.Conflict) models.Resolution {
	if r.strategy != StrategyPromptUser {
		return Apply(r.strategy, c)
	}

	res, err := r.ask(ctx, c)
	if err != nil {
		r.logger.Warn("Conflict prompt failed, keeping server value",
			"todo_id", c.TodoID, "field", c.FieldName, "error", err)
		return models.Resolution{Action: models.ResolutionAcceptServer}
	}
	return res
}

func (r *Resolver) ask(ctx context.Context, c models.Conflict) (models.Resolution, error) {
	ctx, cancel := context.WithTimeout(ctx, r.promptTimeout)
	defer cancel()

	type answer struct {
		err error
		res models.Resolution
	}
	done := make(chan answer, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- answer{err: fmt.Errorf("prompt panicked: %v", p)}
			}
		}()
		res, err := r.prompt(ctx, c)
		done <- answer{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return models.Resolution{}, fmt.Errorf("no answer: %w", ctx.Err())
	case a := <-done:
		if a.err != nil {
			return models.Resolution{}, a.err
		}
		if !a.res.Action.Valid() {
			return models.Resolution{}, fmt.Errorf("invalid resolution action %q", a.res.Action)
		}
		if a.res.Action == models.ResolutionMerge && a.res.MergedValue == nil {
			a.res.MergedValue = SmartMerge(c.FieldName, c.ServerValue, c.ClientNewValue)
		}
		return a.res, nil
	}
}

// Apply применяет неинтерактивную стратегию
func Apply(strategy Strategy, c models.Conflict) models.Resolution {
	switch strategy {
	case StrategyClientWins:
		return models.Resolution{Action: models.ResolutionAcceptClient}
	case StrategySmartMerge:
		return models.Resolution{
			Action:      models.ResolutionMerge,
			MergedValue: SmartMerge(c.FieldName, c.ServerValue, c.ClientNewValue),
		}
	default:
		return models.Resolution{Action: models.ResolutionAcceptServer}
	}
}
