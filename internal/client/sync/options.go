package sync

import (
	"time"

	"github.com/iudanet/todosync/internal/models"
)

// Trigger причина запуска цикла синхронизации
type Trigger string

const (
	TriggerTimer  Trigger = "timer"  // периодический таймер
	TriggerOnline Trigger = "online" // сеть восстановлена
	TriggerManual Trigger = "manual" // пользователь или локальное изменение
	TriggerPush   Trigger = "push"   // сервер сообщил об изменениях
)

// downloads сообщает, что цикл нужен даже без локальных изменений
func (t Trigger) downloads() bool {
	return t == TriggerOnline || t == TriggerPush
}

// merge объединяет два отложенных триггера, предпочитая тот, что скачивает
func (t Trigger) merge(other Trigger) Trigger {
	if t == "" || (!t.downloads() && other.downloads()) {
		return other
	}
	return t
}

// Options параметры движка синхронизации
type Options struct {
	// OnPermanentFailure вызывается для элемента очереди, исчерпавшего попытки
	OnPermanentFailure func(item models.SyncQueueItem)
	// Online сообщает о доступности сервера, nil означает всегда online
	Online func() bool
	// Now источник времени, nil означает time.Now
	Now func() time.Time

	Interval       time.Duration // период автосинхронизации
	RetryBaseDelay time.Duration // базовая задержка повтора элемента очереди
	Retention      time.Duration // сколько хранить synced операции
	MaxRetries     int           // попыток до failed_permanently
}

// DefaultOptions значения по умолчанию
func DefaultOptions() Options {
	return Options{
		Interval:       30 * time.Second,
		RetryBaseDelay: time.Second,
		Retention:      7 * 24 * time.Hour,
		MaxRetries:     3,
	}
}

func (o *Options) withDefaults() {
	d := DefaultOptions()
	if o.Interval <= 0 {
		o.Interval = d.Interval
	}
	if o.RetryBaseDelay <= 0 {
		o.RetryBaseDelay = d.RetryBaseDelay
	}
	if o.Retention <= 0 {
		o.Retention = d.Retention
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = d.MaxRetries
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// SyncResult contains sync cycle results
type SyncResult struct {
	PermanentFailures   []models.SyncQueueItem // элементы очереди, ставшие failed_permanently
	Trigger             Trigger
	SyncTimestamp       int64 // серверное время цикла, мс
	PushedItems         int   // элементов очереди отправлено через REST
	DeferredItems       int   // элементов очереди ждут серверный ID
	FailedItems         int   // элементов очереди отклонено сервером в этом цикле
	UploadedOperations  int   // операций отправлено после компактизации
	DeferredOperations  int   // операций ждут серверный ID сущности
	PulledEntries       int   // сущностей получено с сервера
	Conflicts           int   // конфликтов сообщил сервер
	ResolvedConflicts   int   // конфликтов разрешено и подтверждено
	UnresolvedConflicts int   // конфликтов, решение по которым не удалось отправить
	RejectedOperations  int   // операций сервер не смог применить
	Skipped             bool  // нечего отправлять, сервер не запрашивался
}
