package api

import "encoding/json"

// Типы сообщений realtime канала
const (
	// Входящие
	MessageConnectionConfirmed = "connection_confirmed"
	MessageSyncUpdate          = "sync_update"
	MessageRoomJoined          = "room_joined"
	MessageRoomLeft            = "room_left"
	MessageUserLeftRoom        = "user_left_room"
	MessageHeartbeatAck        = "heartbeat_ack"
	MessageError               = "error"

	// Исходящие
	MessageHeartbeat   = "heartbeat"
	MessageJoinRoom    = "join_room"
	MessageLeaveRoom   = "leave_room"
	MessageSyncRequest = "sync_request"
)

// Коды закрытия websocket, которые использует сервер
const (
	// CloseUnauthorized сервер отклонил токен
	CloseUnauthorized = 4001
)

// Envelope сообщение realtime канала. Для исходящих сообщений заполняются
// только нужные поля, остальные опускаются.
type Envelope struct {
	Success     *bool           `json:"success,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	Rooms       []string        `json:"rooms,omitempty"` // connection_confirmed
	Type        string          `json:"type"`
	RoomID      string          `json:"room_id,omitempty"`
	UserID      ID              `json:"user_id,omitempty"`
	SenderID    ID              `json:"sender_id,omitempty"` // sync_update
	Message     string          `json:"message,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
	OnlineUsers int             `json:"online_users,omitempty"`
}

// Succeeded сообщает об успехе join/leave. Отсутствие поля считается успехом.
func (e Envelope) Succeeded() bool {
	return e.Success == nil || *e.Success
}

// SyncUpdate полезная нагрузка sync_update
type SyncUpdate struct {
	Entity   string `json:"entity,omitempty"`
	EntityID ID     `json:"entity_id,omitempty"`
	Action   string `json:"action,omitempty"`
	RoomID   string `json:"room_id,omitempty"`
}
