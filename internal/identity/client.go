// Package identity реализует клиент admin API внешнего identity-провайдера.
// Учётные данные менеджеров живут у провайдера, профильная таблица в БД
// хранит только зеркальную запись для серверных проверок.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUserNotFound пользователь отсутствует у провайдера.
var ErrUserNotFound = errors.New("identity user not found")

type Client struct {
	serviceKey string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент admin API провайдера.
func NewClient(apiURL, serviceKey string) *Client {
	return &Client{
		serviceKey: serviceKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrUserNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	if result == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

// ListUsers возвращает всех пользователей провайдера.
func (c *Client) ListUsers(ctx context.Context) ([]*User, error) {
	const op = "identity.ListUsers"
	req, err := c.newRequest(ctx, http.MethodGet, "/admin/users", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var listResp listUsersResponse
	if err := c.do(req, &listResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return listResp.Users, nil
}

// CreateUser создаёт пользователя через admin API и возвращает его.
func (c *Client) CreateUser(ctx context.Context, reqParams CreateUserRequest) (*User, error) {
	const op = "identity.CreateUser"
	req, err := c.newRequest(ctx, http.MethodPost, "/admin/users", reqParams)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var user User
	if err := c.do(req, &user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// UpdateUser обновляет метаданные пользователя.
func (c *Client) UpdateUser(ctx context.Context, id string, reqParams UpdateUserRequest) (*User, error) {
	const op = "identity.UpdateUser"
	req, err := c.newRequest(ctx, http.MethodPut, "/admin/users/"+id, reqParams)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var user User
	if err := c.do(req, &user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// DeleteUser удаляет пользователя у провайдера.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	const op = "identity.DeleteUser"
	req, err := c.newRequest(ctx, http.MethodDelete, "/admin/users/"+id, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
