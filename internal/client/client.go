package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/domains/todo/model"
	"taskboard/shared/constant"
	gModel "taskboard/shared/model"

	"github.com/pkg/errors"
)

const (
	todosPath = "/api/todos"

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 1 << 10
)

var ErrMissingLocation = errors.New("create response carries no usable Location header")

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Client talks to the todo REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type todoPayload struct {
	ID          int64     `json:"_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func payloadFromTask(task model.Task) todoPayload {
	return todoPayload{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		UpdatedAt:   task.UpdatedAt,
	}
}

// List fetches every task.
func (c *Client) List(ctx context.Context) ([]model.Task, error) {
	resp, err := c.do(ctx, http.MethodGet, todosPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var sets []gModel.ResultSet
	if err := decoder.Decode(&sets); err != nil {
		return nil, errors.Wrap(err, "decode todo list")
	}

	return ParseTasks(sets), nil
}

// Create stores task and returns the id the server filed it under. A zero
// task id lets the server choose.
func (c *Client) Create(ctx context.Context, task model.Task) (int64, error) {
	body, err := json.Marshal(payloadFromTask(task))
	if err != nil {
		return 0, errors.Wrap(err, "encode todo")
	}

	resp, err := c.do(ctx, http.MethodPost, todosPath, body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	location := resp.Header.Get(constant.RequestHeaderLocation)
	if location == "" && task.ID != 0 {
		return task.ID, nil
	}

	id, err := strconv.ParseInt(path.Base(location), 10, 64)
	if err != nil {
		return 0, ErrMissingLocation
	}

	return id, nil
}

func (c *Client) Update(ctx context.Context, task model.Task) error {
	payload := payloadFromTask(task)
	payload.ID = 0

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encode todo")
	}

	resp, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", todosPath, task.ID), body)
	if err != nil {
		return err
	}

	return resp.Body.Close() //nolint:wrapcheck
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", todosPath, id), nil)
	if err != nil {
		return err
	}

	return resp.Body.Close() //nolint:wrapcheck
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+target, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s", method, target)
	}

	if body != nil {
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, target)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()

		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	return resp, nil
}
