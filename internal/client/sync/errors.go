package sync

import "errors"

var (
	// ErrSyncInProgress цикл уже идет, запрос объединен с ним в один повторный цикл
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrOperationRejected сервер принял пакет, но не смог применить операцию
	ErrOperationRejected = errors.New("operation rejected by server")
)
