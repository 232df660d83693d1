package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/iudanet/todosync/internal/client/realtime"
)

// Параметры перезапуска фоновых сервисов
const (
	failureThreshold = 5.0
	failureDecay     = 30.0
	failureBackoff   = 15 * time.Second
	shutdownTimeout  = 10 * time.Second
)

// Run запускает фоновые сервисы под супервизором: монитор сети, движок
// синхронизации и realtime канал. Блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	handler := &sutureslog.Handler{Logger: a.logger}
	root := suture.New("todosync", suture.Spec{
		EventHook:        handler.MustHook(),
		FailureThreshold: failureThreshold,
		FailureDecay:     failureDecay,
		FailureBackoff:   failureBackoff,
		Timeout:          shutdownTimeout,
	})

	root.Add(a.Monitor)
	root.Add(a.Engine)
	if a.Transport != nil {
		root.Add(&realtimeService{transport: a.Transport})
	}

	a.logger.Info("Background sync started",
		"server", a.cfg.Server.URL, "realtime", a.Transport != nil, "strategy", a.cfg.Sync.Strategy)

	err := root.Serve(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("supervisor stopped: %w", err)
	}
	return nil
}

// realtimeService не дает супервизору перезапускать транспорт после
// конечной ошибки: переподключения уже исчерпаны или токен отклонен.
// Синхронизация по таймеру продолжает работать.
type realtimeService struct {
	transport *realtime.Transport
}

func (s *realtimeService) String() string {
	return s.transport.String()
}

func (s *realtimeService) Serve(ctx context.Context) error {
	err := s.transport.Serve(ctx)
	switch {
	case errors.Is(err, realtime.ErrUnauthorized),
		errors.Is(err, realtime.ErrReconnectExhausted),
		errors.Is(err, realtime.ErrClosed):
		return suture.ErrDoNotRestart
	}
	return err
}
