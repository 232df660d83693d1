package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/iudanet/todosync/internal/metrics"
	"github.com/iudanet/todosync/pkg/api"
)

var errHeartbeatTimeout = errors.New("heartbeat not acknowledged")

// TokenSource отдает токен для рукопожатия
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Options параметры транспорта
type Options struct {
	// OnSyncUpdate вызывается на каждый sync_update. Данные не применяются,
	// обработчик только просит движок синхронизации запустить цикл.
	OnSyncUpdate  func(msg api.Envelope)
	OnStateChange func(State)
	// OnTerminal вызывается ровно один раз с конечной ошибкой
	// (ErrUnauthorized или ErrReconnectExhausted)
	OnTerminal           func(err error)
	Rooms                []string
	HeartbeatInterval    time.Duration
	HeartbeatTimeout     time.Duration
	ReconnectDelay       time.Duration
	RoomTimeout          time.Duration
	HandshakeTimeout     time.Duration
	WriteTimeout         time.Duration
	MaxReconnectAttempts int
}

// DefaultOptions значения по умолчанию
func DefaultOptions() Options {
	return Options{
		HeartbeatInterval:    60 * time.Second,
		HeartbeatTimeout:     30 * time.Second,
		ReconnectDelay:       3 * time.Second,
		RoomTimeout:          5 * time.Second,
		HandshakeTimeout:     10 * time.Second,
		WriteTimeout:         10 * time.Second,
		MaxReconnectAttempts: 5,
	}
}

func (o *Options) withDefaults() {
	def := DefaultOptions()
	if o.HeartbeatInterval <= 0 {
		o.HeartbeatInterval = def.HeartbeatInterval
	}
	if o.HeartbeatTimeout <= 0 {
		o.HeartbeatTimeout = def.HeartbeatTimeout
	}
	if o.ReconnectDelay <= 0 {
		o.ReconnectDelay = def.ReconnectDelay
	}
	if o.RoomTimeout <= 0 {
		o.RoomTimeout = def.RoomTimeout
	}
	if o.HandshakeTimeout <= 0 {
		o.HandshakeTimeout = def.HandshakeTimeout
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = def.WriteTimeout
	}
	if o.MaxReconnectAttempts <= 0 {
		o.MaxReconnectAttempts = def.MaxReconnectAttempts
	}
}

// Transport realtime канал поверх websocket. Serve держит соединение:
// переподключается с линейной задержкой, шлет heartbeat и раздает
// входящие сообщения подписчикам.
type Transport struct {
	err        error // конечная ошибка, выставляется один раз
	tokens     TokenSource
	dispatcher *Dispatcher
	logger     *slog.Logger
	conn       *websocket.Conn
	pending    map[string]chan error // ожидающие подтверждения join/leave
	done       chan struct{}
	rooms      []string
	url        string
	opts       Options
	state      State
	closeOnce  sync.Once
	mu         sync.Mutex
	writeMu    sync.Mutex // gorilla допускает одного писателя
}

// New создает транспорт. serverURL адрес websocket эндпоинта (ws:// или wss://).
func New(serverURL string, tokens TokenSource, logger *slog.Logger, opts Options) *Transport {
	opts.withDefaults()
	return &Transport{
		url:        serverURL,
		tokens:     tokens,
		logger:     logger,
		opts:       opts,
		dispatcher: NewDispatcher(),
		pending:    make(map[string]chan error),
		done:       make(chan struct{}),
		rooms:      slices.Clone(opts.Rooms),
	}
}

// String имя сервиса для супервизора
func (t *Transport) String() string {
	return "realtime-transport"
}

// Subscribe подписывает обработчик на тип входящего сообщения
func (t *Transport) Subscribe(msgType string, h Handler) Subscription {
	return t.dispatcher.Subscribe(msgType, h)
}

// Unsubscribe снимает подписку
func (t *Transport) Unsubscribe(sub Subscription) bool {
	return t.dispatcher.Unsubscribe(sub)
}

// State текущее состояние
func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Rooms комнаты, которые запрашиваются при подключении
func (t *Transport) Rooms() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.rooms)
}

// Done закрывается при переходе в Closed
func (t *Transport) Done() <-chan struct{} {
	return t.done
}

// Err конечная ошибка транспорта или nil, пока он не закрыт
func (t *Transport) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Serve подключается и держит соединение до отмены ctx или перехода
// в Closed. Возвращает ctx.Err(), ErrClosed или конечную ошибку.
func (t *Transport) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-t.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	attempt := 0
	for {
		if t.closed() {
			return t.Err()
		}
		if ctx.Err() != nil {
			t.setState(StateDisconnected)
			return ctx.Err()
		}

		t.setState(StateConnecting)
		conn, err := t.dial(ctx)
		if err == nil {
			attempt = 0
			err = t.run(ctx, conn)
		}

		switch {
		case errors.Is(err, ErrUnauthorized):
			return t.terminate(err)
		case t.closed():
			return t.Err()
		case ctx.Err() != nil:
			t.setState(StateDisconnected)
			return ctx.Err()
		}

		t.setState(StateDisconnected)
		attempt++
		if attempt > t.opts.MaxReconnectAttempts {
			return t.terminate(fmt.Errorf("%w (%d): %v", ErrReconnectExhausted, t.opts.MaxReconnectAttempts, err))
		}

		delay := t.opts.ReconnectDelay * time.Duration(attempt)
		t.logger.Warn("Realtime connection lost, reconnecting",
			"error", err, "attempt", attempt, "delay", delay)
		t.setState(StateReconnecting)
		metrics.RealtimeReconnects.Inc()

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}
}

// Disconnect закрывает транспорт. Ожидающие join/leave завершаются
// с ErrRoomRequestIncomplete, переподключения больше не будет.
func (t *Transport) Disconnect() {
	t.shutdown(ErrClosed, false)
}

// JoinRoom входит в комнату и ждет подтверждения
func (t *Transport) JoinRoom(ctx context.Context, roomID string) error {
	if slices.Contains(t.Rooms(), roomID) {
		return nil
	}
	return t.roomRequest(ctx, api.MessageJoinRoom, roomID)
}

// LeaveRoom выходит из комнаты и ждет подтверждения
func (t *Transport) LeaveRoom(ctx context.Context, roomID string) error {
	if !slices.Contains(t.Rooms(), roomID) {
		return nil
	}
	return t.roomRequest(ctx, api.MessageLeaveRoom, roomID)
}

// SendSyncRequest просит сервер разослать sync_update участникам комнаты
func (t *Transport) SendSyncRequest(roomID string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode sync request: %w", err)
	}
	return t.send(api.Envelope{Type: api.MessageSyncRequest, RoomID: roomID, Data: raw})
}

func (t *Transport) roomRequest(ctx context.Context, msgType, roomID string) error {
	key := msgType + ":" + roomID

	t.mu.Lock()
	if t.conn == nil {
		t.mu.Unlock()
		return ErrNotConnected
	}
	done, ok := t.pending[key]
	if !ok {
		done = make(chan error, 1)
		t.pending[key] = done
	}
	t.mu.Unlock()

	if !ok {
		if err := t.send(api.Envelope{Type: msgType, RoomID: roomID}); err != nil {
			t.resolve(key, err)
		}
	}

	timer := time.NewTimer(t.opts.RoomTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		// канал общий для одинаковых запросов: передаем результат дальше
		done <- err
		return err
	case <-timer.C:
		t.resolve(key, ErrRoomTimeout)
		return fmt.Errorf("%s %s: %w", msgType, roomID, ErrRoomTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolve завершает ожидающий запрос. Повторные вызовы ничего не делают.
func (t *Transport) resolve(key string, err error) {
	t.mu.Lock()
	done, ok := t.pending[key]
	delete(t.pending, key)
	t.mu.Unlock()

	if ok {
		done <- err
	}
}

func (t *Transport) failPending(err error) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[string]chan error)
	t.mu.Unlock()

	for _, done := range pending {
		done <- err
	}
}

func (t *Transport) dial(ctx context.Context) (*websocket.Conn, error) {
	token, err := t.tokens.Token(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	u, err := t.handshakeURL(token)
	if err != nil {
		return nil, err
	}

	dialer := websocket.Dialer{HandshakeTimeout: t.opts.HandshakeTimeout}
	conn, resp, err := dialer.DialContext(ctx, u, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
				return nil, fmt.Errorf("%w: handshake rejected (status %d)", ErrUnauthorized, resp.StatusCode)
			}
			return nil, fmt.Errorf("websocket dial failed (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}
	return conn, nil
}

// handshakeURL добавляет token и rooms (через запятую) в адрес
func (t *Transport) handshakeURL(token string) (string, error) {
	u, err := url.Parse(t.url)
	if err != nil {
		return "", fmt.Errorf("invalid realtime url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	if rooms := t.Rooms(); len(rooms) > 0 {
		q.Set("rooms", strings.Join(rooms, ","))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// run обслуживает одно соединение до его потери
func (t *Transport) run(ctx context.Context, conn *websocket.Conn) error {
	t.mu.Lock()
	t.conn = conn
	rooms := slices.Clone(t.rooms)
	t.mu.Unlock()
	defer t.dropConn(conn)

	t.setState(StateConnected)
	t.logger.Info("Realtime connected", "rooms", rooms)

	// подписчики узнают о подключении сразу, не дожидаясь сервера
	t.dispatcher.Dispatch(api.Envelope{Type: api.MessageConnectionConfirmed, Rooms: rooms})

	messages := make(chan []byte)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go readLoop(conn, messages, readErr, stop)

	heartbeat := time.NewTicker(t.opts.HeartbeatInterval)
	defer heartbeat.Stop()

	var (
		ackTimer   *time.Timer
		ackTimeout <-chan time.Time
	)
	stopAck := func() {
		if ackTimer != nil {
			ackTimer.Stop()
			ackTimer, ackTimeout = nil, nil
		}
	}
	defer stopAck()

	for {
		select {
		case <-ctx.Done():
			t.closeConn(conn)
			return ctx.Err()

		case err := <-readErr:
			var ce *websocket.CloseError
			if errors.As(err, &ce) && ce.Code == api.CloseUnauthorized {
				return fmt.Errorf("%w: %s", ErrUnauthorized, ce.Text)
			}
			return fmt.Errorf("read failed: %w", err)

		case data := <-messages:
			if t.handle(data) == api.MessageHeartbeatAck {
				stopAck()
			}

		case <-heartbeat.C:
			if err := t.send(api.Envelope{Type: api.MessageHeartbeat}); err != nil {
				return err
			}
			if ackTimer == nil {
				ackTimer = time.NewTimer(t.opts.HeartbeatTimeout)
				ackTimeout = ackTimer.C
			}

		case <-ackTimeout:
			// соединение считается мертвым, без закрывающего фрейма
			return errHeartbeatTimeout
		}
	}
}

func readLoop(conn *websocket.Conn, out chan<- []byte, errc chan<- error, stop <-chan struct{}) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			errc <- err
			return
		}
		select {
		case out <- data:
		case <-stop:
			return
		}
	}
}

// handle разбирает входящее сообщение и возвращает его тип
func (t *Transport) handle(data []byte) string {
	var msg api.Envelope
	if err := json.Unmarshal(data, &msg); err != nil {
		t.logger.Warn("Failed to decode realtime message", "error", err)
		return ""
	}
	metrics.RealtimeMessages.WithLabelValues("in", msg.Type).Inc()

	switch msg.Type {
	case api.MessageHeartbeatAck:
		return msg.Type
	case api.MessageRoomJoined, api.MessageRoomLeft:
		t.roomAck(msg)
	case api.MessageSyncUpdate:
		t.logger.Debug("Sync update received", "room_id", msg.RoomID, "sender_id", msg.SenderID)
		if t.opts.OnSyncUpdate != nil {
			t.opts.OnSyncUpdate(msg)
		}
	case api.MessageError:
		t.logger.Warn("Realtime server error", "message", msg.Message)
	case api.MessageConnectionConfirmed, api.MessageUserLeftRoom:
	default:
		t.logger.Debug("Dropping unknown realtime message", "type", msg.Type)
		return msg.Type
	}

	t.dispatcher.Dispatch(msg)
	return msg.Type
}

func (t *Transport) roomAck(msg api.Envelope) {
	reqType := api.MessageJoinRoom
	if msg.Type == api.MessageRoomLeft {
		reqType = api.MessageLeaveRoom
	}

	if !msg.Succeeded() {
		t.resolve(reqType+":"+msg.RoomID, fmt.Errorf("%w: %s %s", ErrRoomRejected, reqType, msg.RoomID))
		return
	}

	t.mu.Lock()
	if reqType == api.MessageJoinRoom {
		if !slices.Contains(t.rooms, msg.RoomID) {
			t.rooms = append(t.rooms, msg.RoomID)
		}
	} else {
		t.rooms = slices.DeleteFunc(t.rooms, func(r string) bool { return r == msg.RoomID })
	}
	t.mu.Unlock()

	t.resolve(reqType+":"+msg.RoomID, nil)
}

func (t *Transport) send(msg api.Envelope) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", msg.Type, err)
	}

	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(t.opts.WriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to send %s: %w", msg.Type, err)
	}
	metrics.RealtimeMessages.WithLabelValues("out", msg.Type).Inc()
	return nil
}

// closeConn отправляет закрывающий фрейм
func (t *Transport) closeConn(conn *websocket.Conn) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	err := conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	if err != nil {
		t.logger.Debug("Failed to send close message", "error", err)
	}
}

func (t *Transport) dropConn(conn *websocket.Conn) {
	t.mu.Lock()
	if t.conn == conn {
		t.conn = nil
	}
	t.mu.Unlock()

	_ = conn.Close()
	t.failPending(ErrRoomRequestIncomplete)
}

func (t *Transport) terminate(err error) error {
	t.shutdown(err, true)
	return t.Err()
}

func (t *Transport) shutdown(err error, notify bool) {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.err = err
		t.mu.Unlock()

		t.setState(StateClosed)
		close(t.done)
		t.failPending(ErrRoomRequestIncomplete)

		if !notify {
			t.logger.Info("Realtime transport closed")
			return
		}
		t.logger.Error("Realtime transport stopped", "error", err)
		if t.opts.OnTerminal != nil {
			t.opts.OnTerminal(err)
		}
	})
}

func (t *Transport) closed() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// setState меняет состояние. Из Closed выхода нет.
func (t *Transport) setState(s State) {
	t.mu.Lock()
	if t.state == s || t.state == StateClosed {
		t.mu.Unlock()
		return
	}
	t.state = s
	t.mu.Unlock()

	metrics.SetBool(metrics.RealtimeConnected, s == StateConnected)
	if t.opts.OnStateChange != nil {
		t.opts.OnStateChange(s)
	}
}
