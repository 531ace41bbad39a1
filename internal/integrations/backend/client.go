// Package backend é o cliente HTTP do backend de solicitações.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "solicitation-system/pkg/errors"
)

// maxErrorBody limita o trecho do corpo usado como mensagem de erro.
const maxErrorBody = 512

type ClientInterface interface {
	Get(ctx context.Context, token, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, token, path string, body, out interface{}) error
	Put(ctx context.Context, token, path string, body, out interface{}) error
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient troca o *http.Client padrão.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) ClientInterface {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.Named("backend_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, token, path string, query url.Values, out interface{}) error {
	endpoint := path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, token, endpoint, nil, out)
}

func (c *Client) Post(ctx context.Context, token, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, token, path, body, out)
}

func (c *Client) Put(ctx context.Context, token, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, token, path, body, out)
}

func (c *Client) do(ctx context.Context, method, token, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("erro ao serializar corpo de %s %s: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("erro ao montar requisição %s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta de %s %s: %w", method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &apperrors.StatusError{Code: resp.StatusCode, Message: errorMessage(raw)}
		c.logger.Debug("backend respondeu com erro",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("message", statusErr.Message),
		)
		return statusErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("erro ao interpretar JSON de %s %s: %w", method, endpoint, err)
	}
	return nil
}

// errorMessage aceita {"message": ...}, {"error": ...} ou texto puro.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return text
}
