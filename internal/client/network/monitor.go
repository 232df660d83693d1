package network

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/todosync/internal/metrics"
)

// Pinger проверяет доступность сервера
type Pinger interface {
	Health(ctx context.Context) error
}

// Options параметры монитора
type Options struct {
	Interval time.Duration // период проверки
	Timeout  time.Duration // таймаут одного запроса
}

// DefaultOptions значения по умолчанию
func DefaultOptions() Options {
	return Options{
		Interval: 30 * time.Second,
		Timeout:  5 * time.Second,
	}
}

// Monitor периодически проверяет сервер и сообщает о переходах
// online/offline. До первой проверки сеть считается доступной.
type Monitor struct {
	pinger    Pinger
	logger    *slog.Logger
	listeners []func(online bool)
	opts      Options
	mu        sync.Mutex
	online    bool
}

// New создает монитор
func New(pinger Pinger, logger *slog.Logger, opts Options) *Monitor {
	def := DefaultOptions()
	if opts.Interval <= 0 {
		opts.Interval = def.Interval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	metrics.SetBool(metrics.NetworkOnline, true)
	return &Monitor{
		pinger: pinger,
		logger: logger,
		opts:   opts,
		online: true,
	}
}

// String имя сервиса для супервизора
func (m *Monitor) String() string {
	return "network-monitor"
}

// OnChange регистрирует обработчик перехода. Вызывается только
// при смене состояния.
func (m *Monitor) OnChange(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Online последнее известное состояние
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Check выполняет одну проверку и возвращает её результат
func (m *Monitor) Check(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, m.opts.Timeout)
	defer cancel()

	err := m.pinger.Health(checkCtx)
	if ctx.Err() != nil {
		// отмена вызывающим ничего не говорит о сети
		return m.Online()
	}
	online := err == nil

	m.mu.Lock()
	changed := m.online != online
	m.online = online
	listeners := m.listeners
	m.mu.Unlock()

	if !changed {
		return online
	}

	metrics.SetBool(metrics.NetworkOnline, online)
	if online {
		m.logger.Info("Server is reachable again")
	} else {
		m.logger.Warn("Server is unreachable, working offline", "error", err)
	}
	for _, fn := range listeners {
		fn(online)
	}
	return online
}

// Serve проверяет сервер сразу и затем раз в Interval
func (m *Monitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.opts.Interval)
	defer ticker.Stop()

	for {
		m.Check(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
