package oplog

import "errors"

var (
	// ErrInvalidOperation операция не может быть записана в журнал
	ErrInvalidOperation = errors.New("invalid operation")
)
