package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/iudanet/todosync/pkg/api"
)

// BreakerConfig параметры circuit breaker
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32        // запросов в half-open состоянии
	Interval         time.Duration // период сброса счетчиков в closed состоянии
	Timeout          time.Duration // сколько держать open перед half-open
	FailureThreshold uint32        // подряд неудач до открытия
}

// DefaultBreakerConfig значения по умолчанию
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "todosync-api",
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerClient оборачивает ClientAPI в circuit breaker. Неудачей считаются
// только сетевые ошибки и 5xx: отказ сервера по конкретному запросу не
// говорит о том, что сервер недоступен.
type BreakerClient struct {
	next   ClientAPI
	cb     *gobreaker.CircuitBreaker[any]
	logger *slog.Logger
}

// NewBreakerClient создает клиент с circuit breaker
func NewBreakerClient(next ClientAPI, cfg BreakerConfig, logger *slog.Logger) *BreakerClient {
	b := &BreakerClient{next: next, logger: logger}
	b.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("API circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	})
	return b
}

func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode < 500
	}
	// Отмена контекста вызывающей стороной не говорит о состоянии сервера
	return errors.Is(err, context.Canceled)
}

// State возвращает текущее состояние breaker
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

// Sync вызывает Sync через breaker
func (b *BreakerClient) Sync(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
	res, err := b.execute(func() (any, error) {
		return b.next.Sync(ctx, accessToken, req)
	})
	if err != nil {
		return nil, err
	}
	return res.(*api.SyncResponse), nil
}

// ResolveConflict вызывает ResolveConflict через breaker
func (b *BreakerClient) ResolveConflict(ctx context.Context, accessToken string, req api.ResolveConflictRequest) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.next.ResolveConflict(ctx, accessToken, req)
	})
	return err
}

// PushRecord вызывает PushRecord через breaker
func (b *BreakerClient) PushRecord(ctx context.Context, accessToken string, req PushRequest) (api.RecordResponse, error) {
	res, err := b.execute(func() (any, error) {
		return b.next.PushRecord(ctx, accessToken, req)
	})
	if err != nil {
		return nil, err
	}
	resp, _ := res.(api.RecordResponse)
	return resp, nil
}

func (b *BreakerClient) execute(fn func() (any, error)) (any, error) {
	res, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return res, err
}
