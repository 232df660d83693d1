package realtime

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized сервер отклонил токен. Переподключение не выполняется.
	ErrUnauthorized = errors.New("realtime: unauthorized")

	// ErrReconnectExhausted исчерпаны попытки переподключения
	ErrReconnectExhausted = errors.New("realtime: max reconnect attempts reached")

	// ErrClosed транспорт закрыт локально
	ErrClosed = errors.New("realtime: transport closed")

	// ErrNotConnected сейчас нет открытого соединения
	ErrNotConnected = errors.New("realtime: not connected")

	// ErrRoomRequestIncomplete на запрос входа/выхода из комнаты не пришло
	// подтверждение. Результат неизвестен, запрос нужно повторить.
	ErrRoomRequestIncomplete = errors.New("realtime: room request incomplete")

	// ErrRoomTimeout подтверждение не пришло за отведенное время
	ErrRoomTimeout = fmt.Errorf("%w: timed out", ErrRoomRequestIncomplete)

	// ErrRoomRejected сервер ответил отказом
	ErrRoomRejected = errors.New("realtime: room request rejected")
)
