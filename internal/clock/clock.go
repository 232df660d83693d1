package clock

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Clock выдает строго возрастающие временные метки в миллисекундах.
// Метка равна max(физическое время, последняя метка + 1), поэтому две
// операции одного устройства никогда не получают одинаковый timestamp,
// даже если системные часы откатились назад.
type Clock struct {
	now     func() time.Time // источник физического времени
	entropy io.Reader        // монотонный источник энтропии для ULID
	nodeID  string           // идентификатор устройства
	last    int64            // последняя выданная метка, мс
	mu      sync.Mutex
}

// Option настраивает Clock
type Option func(*Clock)

// WithNow подменяет источник времени. Используется в тестах.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

// New создает часы с заданным идентификатором устройства.
// Пустой nodeID заменяется случайным UUID.
func New(nodeID string, opts ...Option) *Clock {
	if nodeID == "" {
		nodeID = uuid.New().String()
	}
	c := &Clock{
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
		nodeID:  nodeID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tick возвращает новую метку для локального события
func (c *Clock) Tick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.tickLocked()
}

func (c *Clock) tickLocked() int64 {
	wall := c.now().UnixMilli()
	if wall > c.last {
		c.last = wall
	} else {
		c.last++
	}
	return c.last
}

// Update учитывает метку, полученную от сервера: следующие локальные
// метки будут строго больше неё.
func (c *Clock) Update(remote int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if remote > c.last {
		c.last = remote
	}
	return c.last
}

// Last возвращает последнюю выданную метку без изменения часов
func (c *Clock) Last() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.last
}

// Restore восстанавливает состояние после перезапуска
func (c *Clock) Restore(last int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if last > c.last {
		c.last = last
	}
}

// NodeID возвращает идентификатор устройства
func (c *Clock) NodeID() string {
	return c.nodeID
}

// Next выдает метку и упорядоченный ID (ULID) с этой же меткой.
// ID одного устройства сортируются в порядке выдачи.
func (c *Clock) Next() (int64, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := c.tickLocked()
	return ts, ulid.MustNew(uint64(ts), c.entropy).String()
}

// NewID выдает упорядоченный ID для текущего момента
func (c *Clock) NewID() string {
	_, id := c.Next()
	return id
}
