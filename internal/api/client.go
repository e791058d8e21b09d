package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenericMessage is shown when a failed response carries no message of its own.
const GenericMessage = "Có lỗi xảy ra"

const (
	DefaultBaseURL = "http://localhost:8080/api"
	DefaultTimeout = 15 * time.Second

	maxResponseBytes = 8 << 20
)

// Envelope is the body shape every backend endpoint responds with.
type Envelope struct {
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Error is a non-2xx response. Error() returns the server-provided message so
// it can be shown to users verbatim.
type Error struct {
	StatusCode int
	Method     string
	Endpoint   string
	Message    string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return GenericMessage
	}
	return e.Message
}

// IsStatus reports whether err is an *Error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

type Client struct {
	baseURL      string
	httpClient   *http.Client
	logger       *slog.Logger
	newRequestID func() string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		logger:       slog.Default(),
		newRequestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Call issues method against baseURL+endpoint. The payload, when non-nil, is
// sent as a JSON body; the content type is declared either way.
func (c *Client) Call(ctx context.Context, endpoint, method string, payload any) (Envelope, error) {
	if method == "" {
		method = http.MethodGet
	}
	requestID := c.newRequestID()
	env, err := c.do(ctx, endpoint, method, payload, requestID)
	if err != nil {
		attrs := []any{"method", method, "endpoint", endpoint, "requestId", requestID, "error", err}
		var apiErr *Error
		if errors.As(err, &apiErr) {
			attrs = append(attrs, "status", apiErr.StatusCode)
		}
		c.logger.ErrorContext(ctx, "api call failed", attrs...)
	}
	return env, err
}

func (c *Client) do(ctx context.Context, endpoint, method string, payload any, requestID string) (Envelope, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode %s %s payload: %w", method, endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return Envelope{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Envelope{}, fmt.Errorf("%s %s: read response: %w", method, endpoint, err)
	}

	var env Envelope
	var decodeErr error
	if len(bytes.TrimSpace(raw)) > 0 {
		decodeErr = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if decodeErr == nil {
			msg = strings.TrimSpace(env.Message)
		}
		if msg == "" {
			msg = GenericMessage
		}
		return Envelope{}, &Error{StatusCode: resp.StatusCode, Method: method, Endpoint: endpoint, Message: msg}
	}
	if decodeErr != nil {
		return Envelope{}, fmt.Errorf("%s %s: decode response: %w", method, endpoint, decodeErr)
	}
	return env, nil
}

// decodeData unmarshals the envelope's data field; missing data yields the zero value.
func decodeData[T any](env Envelope) (T, error) {
	var out T
	if len(env.Data) == 0 || bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("decode data: %w", err)
	}
	return out, nil
}
