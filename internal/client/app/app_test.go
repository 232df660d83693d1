package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/suture/v4"

	"github.com/iudanet/todosync/internal/client/auth"
	"github.com/iudanet/todosync/internal/client/iocli"
	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/config"
)

func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.URL = serverURL
	cfg.Storage.Path = filepath.Join(t.TempDir(), "nested", "todosync.db")
	cfg.Realtime.Enabled = false
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_DeviceIDPersists(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, "http://localhost:8000")

	a, err := New(ctx, cfg, testLogger(), WithIO(&iocli.IOMock{}))
	require.NoError(t, err)
	first, err := a.store.GetDeviceID(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, first)
	assert.Nil(t, a.Transport)
	require.NoError(t, a.Close())

	a, err = New(ctx, cfg, testLogger())
	require.NoError(t, err)
	defer a.Close()
	second, err := a.store.GetDeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNew_StorageHeldByWatch(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, "http://localhost:8000")

	running, err := New(ctx, cfg, testLogger())
	require.NoError(t, err)
	defer running.Close()

	// пока watch держит базу, другие команды не открывают её
	_, err = New(ctx, cfg, testLogger())
	assert.ErrorIs(t, err, storage.ErrStorageLocked)
	assert.ErrorContains(t, err, "stop the running watch command first")
}

func TestNew_LocalChangesAreQueued(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t, "http://localhost:8000"), testLogger())
	require.NoError(t, err)
	defer a.Close()

	rec, err := a.Data.CreateTodo(ctx, map[string]any{"title": "Buy milk"})
	require.NoError(t, err)

	st, err := a.Engine.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.PendingOperations)

	got, err := a.Data.GetTodo(ctx, rec.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Data["title"])
}

func TestNew_PromptStrategy(t *testing.T) {
	cfg := testConfig(t, "http://localhost:8000")
	cfg.Sync.Strategy = "prompt_user"

	a, err := New(context.Background(), cfg, testLogger(), WithIO(&iocli.IOMock{}))
	require.NoError(t, err)
	require.NoError(t, a.Close())
}

func TestRun_StopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	a, err := New(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("Run did not stop")
	}
	assert.True(t, a.Monitor.Online())
}

func TestRealtimeService_TerminalIsNotRestarted(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Realtime.Enabled = true

	a, err := New(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.Transport)

	// токена нет: рукопожатие невозможно, это конечная ошибка
	_, err = a.Auth.Token(context.Background())
	require.ErrorIs(t, err, auth.ErrNotAuthenticated)

	svc := &realtimeService{transport: a.Transport}
	assert.Equal(t, "realtime-transport", svc.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.ErrorIs(t, svc.Serve(ctx), suture.ErrDoNotRestart)
}
