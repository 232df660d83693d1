package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8000"
	client := NewClient(baseURL, 0)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.BaseURL())
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)

	client = NewClient(baseURL, 5*time.Second)
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
}

func TestClient_Sync(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/offline/sync", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "device-1", body["device_id"])
		assert.Nil(t, body["last_sync_time"])
		ops := body["pending_operations"].([]any)
		require.Len(t, ops, 1)
		op := ops[0].(map[string]any)
		assert.Equal(t, "17", op["todo_id"])
		assert.Equal(t, "UPDATE", op["operation_type"])
		assert.Equal(t, "title", op["field_name"])

		// Сервер отвечает числовыми ID и временем без зоны
		_, _ = w.Write([]byte(`{
			"server_updates": [{"id": 17, "title": "server title", "updated_at": "2024-05-01T10:00:00.123456"}],
			"conflicts": [{"conflict": true, "operation_id": 9, "field": "title", "server_value": "a",
				"client_old_value": "b", "client_new_value": "c", "server_timestamp": "2024-05-01T10:00:01"}],
			"sync_timestamp": "2024-05-01T10:00:02",
			"has_more": false
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	field := "title"
	resp, err := client.Sync(context.Background(), "token-123", api.SyncRequest{
		DeviceID: "device-1",
		PendingOperations: []api.PendingOperation{
			{TodoID: "17", OperationType: "UPDATE", FieldName: &field, NewValue: "x"},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.ServerUpdates, 1)
	assert.Equal(t, "17", resp.ServerUpdates[0].ID())
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 123000000, time.UTC).UnixMilli(), resp.ServerUpdates[0].UpdatedAt())

	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, api.ID("9"), resp.Conflicts[0].OperationID)
	assert.Equal(t, "title", resp.Conflicts[0].Field)
	assert.False(t, resp.Conflicts[0].IsError())
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 2, 0, time.UTC), resp.SyncTimestamp.Time)
}

func TestClient_Sync_Errors(t *testing.T) {
	tests := []struct {
		name          string
		responseBody  string
		expectedMsg   string
		statusCode    int
		wantStatusErr bool
		wantUnauthErr bool
	}{
		{
			name:          "unauthorized",
			statusCode:    http.StatusUnauthorized,
			responseBody:  `{"detail": "Could not validate credentials"}`,
			expectedMsg:   "Could not validate credentials",
			wantStatusErr: true,
			wantUnauthErr: true,
		},
		{
			name:          "server error with plain body",
			statusCode:    http.StatusInternalServerError,
			responseBody:  `boom`,
			expectedMsg:   "boom",
			wantStatusErr: true,
		},
		{
			name:          "invalid json on success",
			statusCode:    http.StatusOK,
			responseBody:  `{not json`,
			expectedMsg:   "failed to decode response",
			wantStatusErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			client := NewClient(server.URL, time.Second)
			_, err := client.Sync(context.Background(), "t", api.SyncRequest{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedMsg)
			assert.Equal(t, tt.wantStatusErr, IsStatusError(err))
			assert.Equal(t, tt.wantUnauthErr, IsUnauthorized(err))
		})
	}
}

func TestClient_Sync_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second)
	_, err := client.Sync(context.Background(), "t", api.SyncRequest{})
	require.Error(t, err)
	assert.False(t, IsStatusError(err), "network errors are not server rejections")
}

func TestClient_PushRecord(t *testing.T) {
	tests := []struct {
		req          PushRequest
		name         string
		expectMethod string
		expectPath   string
		expectBody   bool
	}{
		{
			name:         "create todo",
			req:          PushRequest{Collection: models.CollectionTodos, Operation: "create", Data: map[string]any{"title": "a"}},
			expectMethod: http.MethodPost,
			expectPath:   "/api/todos",
			expectBody:   true,
		},
		{
			name:         "update shared list",
			req:          PushRequest{Collection: models.CollectionSharedLists, Operation: "update", ServerID: "5", Data: map[string]any{"name": "b"}},
			expectMethod: http.MethodPut,
			expectPath:   "/api/shared-lists/5",
			expectBody:   true,
		},
		{
			name:         "delete comment",
			req:          PushRequest{Collection: models.CollectionComments, Operation: "delete", ServerID: "8"},
			expectMethod: http.MethodDelete,
			expectPath:   "/api/comments/8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.expectMethod, r.Method)
				assert.Equal(t, tt.expectPath, r.URL.Path)
				if tt.expectBody {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				}
				_, _ = w.Write([]byte(`{"id": 42}`))
			}))
			defer server.Close()

			client := NewClient(server.URL, time.Second)
			resp, err := client.PushRecord(context.Background(), "t", tt.req)
			require.NoError(t, err)
			assert.Equal(t, "42", resp.ID())
		})
	}
}

func TestClient_PushRecord_UnknownCollection(t *testing.T) {
	client := NewClient("http://localhost", time.Second)
	_, err := client.PushRecord(context.Background(), "t", PushRequest{Collection: "notes", Operation: "create"})
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestClient_ResolveConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/offline/resolve-conflict", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(9), body["operation_id"])
		assert.Equal(t, "merge", body["resolution"])
		assert.Equal(t, map[string]any{"title": "a & b"}, body["merged_data"])

		_, _ = w.Write([]byte(`{"message": "ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	err := client.ResolveConflict(context.Background(), "t", api.ResolveConflictRequest{
		OperationID: "9",
		Resolution:  "merge",
		MergedData:  map[string]any{"title": "a & b"},
	})
	require.NoError(t, err)
}

func TestClient_Health(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	assert.NoError(t, client.Health(context.Background()))

	healthy.Store(false)
	err := client.Health(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
}
