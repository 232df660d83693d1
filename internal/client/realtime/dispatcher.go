package realtime

import (
	"sync"

	"github.com/iudanet/todosync/pkg/api"
)

// Handler обработчик входящего сообщения
type Handler func(msg api.Envelope)

// Subscription токен подписки, по нему подписка снимается
type Subscription struct {
	msgType string
	id      uint64
}

type subscriber struct {
	handler Handler
	id      uint64
}

// Dispatcher раздает сообщения подписчикам по типу.
// Обработчики одного типа вызываются в порядке подписки.
type Dispatcher struct {
	handlers map[string][]subscriber
	next     uint64
	mu       sync.RWMutex
}

// NewDispatcher создает пустой реестр подписок
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]subscriber)}
}

// Subscribe регистрирует обработчик для типа сообщения
func (d *Dispatcher) Subscribe(msgType string, h Handler) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.next++
	d.handlers[msgType] = append(d.handlers[msgType], subscriber{id: d.next, handler: h})
	return Subscription{msgType: msgType, id: d.next}
}

// Unsubscribe снимает подписку. Возвращает false, если её уже нет.
func (d *Dispatcher) Unsubscribe(sub Subscription) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	subs := d.handlers[sub.msgType]
	for i, s := range subs {
		if s.id != sub.id {
			continue
		}
		rest := make([]subscriber, 0, len(subs)-1)
		rest = append(rest, subs[:i]...)
		rest = append(rest, subs[i+1:]...)
		if len(rest) == 0 {
			delete(d.handlers, sub.msgType)
		} else {
			d.handlers[sub.msgType] = rest
		}
		return true
	}
	return false
}

// Dispatch вызывает обработчики типа сообщения. Возвращает их число,
// ноль означает, что сообщение никому не нужно.
func (d *Dispatcher) Dispatch(msg api.Envelope) int {
	d.mu.RLock()
	subs := d.handlers[msg.Type]
	d.mu.RUnlock()

	// вызываем без блокировки: обработчик может подписаться или отписаться
	for _, s := range subs {
		s.handler(msg)
	}
	return len(subs)
}
