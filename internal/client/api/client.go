package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/pkg/api"
)

const (
	pathSync            = "/api/offline/sync"
	pathResolveConflict = "/api/offline/resolve-conflict"
	pathHealth          = "/health"
)

// collectionPaths REST эндпоинты коллекций
var collectionPaths = map[string]string{
	models.CollectionTodos:       "/api/todos",
	models.CollectionSharedLists: "/api/shared-lists",
	models.CollectionComments:    "/api/comments",
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// BaseURL возвращает адрес сервера
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Sync отправляет операции журнала и получает изменения сервера
func (c *Client) Sync(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
	var resp api.SyncResponse
	if err := c.doRequest(ctx, http.MethodPost, pathSync, accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}
	return &resp, nil
}

// ResolveConflict отправляет решение по конфликту
func (c *Client) ResolveConflict(ctx context.Context, accessToken string, req api.ResolveConflictRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, pathResolveConflict, accessToken, req, nil); err != nil {
		return fmt.Errorf("resolve conflict request failed: %w", err)
	}
	return nil
}

// PushRecord отправляет изменение записи через REST эндпоинт коллекции:
// create -> POST, update -> PUT /{id}, delete -> DELETE /{id}
func (c *Client) PushRecord(ctx context.Context, accessToken string, req PushRequest) (api.RecordResponse, error) {
	base, ok := collectionPaths[req.Collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, req.Collection)
	}

	var (
		method string
		path   string
		body   any
	)
	switch req.Operation {
	case string(models.QueueCreate):
		method, path, body = http.MethodPost, base, req.Data
	case string(models.QueueUpdate):
		method, path, body = http.MethodPut, base+"/"+url.PathEscape(req.ServerID), req.Data
	case string(models.QueueDelete):
		method, path = http.MethodDelete, base+"/"+url.PathEscape(req.ServerID)
	default:
		return nil, fmt.Errorf("unsupported queue operation: %s", req.Operation)
	}

	resp := api.RecordResponse{}
	if err := c.doRequest(ctx, method, path, accessToken, body, &resp); err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", req.Operation, req.Collection, err)
	}
	return resp, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, pathHealth, "", nil, nil)
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result interface{}) error {
	endpoint := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: string(respBody)}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Text() != "" {
			statusErr.Message = errResp.Text()
		}
		return statusErr
	}

	// Декодируем успешный ответ
	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
