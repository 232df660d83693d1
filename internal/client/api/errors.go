package api

import (
	"errors"
	"fmt"
)

var (
	// ErrCircuitOpen сервер временно считается недоступным, запрос не отправлялся
	ErrCircuitOpen = errors.New("server unavailable: circuit breaker is open")

	// ErrUnknownCollection коллекция не имеет REST эндпоинта
	ErrUnknownCollection = errors.New("unknown collection")
)

// StatusError сервер ответил, но отклонил запрос (не 2xx).
// В отличие от сетевых ошибок, относится к конкретному запросу.
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsStatusError сообщает, что сервер ответил и отклонил запрос
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// IsUnauthorized сообщает, что сервер отклонил токен
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == 401
}
