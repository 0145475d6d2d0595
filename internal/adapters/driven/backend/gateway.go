// Package backend provides the HTTP request gateway to the POLARIS backend.
//
// Every outbound call goes through one uniform path: build the request,
// apply the per-kind timeout, classify any failure into the normalized
// taxonomy (network-unreachable, timeout, server-error, application-error)
// and hand back parsed payload data. The gateway carries no business logic;
// controllers decide what a failure means for the user.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driven"
	"github.com/polaris-labs/polaris-cli/internal/logger"
)

// Ensure Gateway implements the interface.
var _ driven.Gateway = (*Gateway)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:5000"

	// DefaultTimeout bounds metadata calls (listings, stats, health).
	DefaultTimeout = 10 * time.Second

	// DefaultChatTimeout bounds chat generation, which can run long.
	DefaultChatTimeout = 30 * time.Second
)

// Config holds configuration for the backend gateway.
type Config struct {
	// BaseURL is the backend origin (default: http://localhost:5000).
	BaseURL string

	// Timeout is the default request timeout (default: 10s).
	Timeout time.Duration

	// ChatTimeout is the timeout for chat generation calls (default: 30s).
	ChatTimeout time.Duration
}

// Gateway is the HTTP implementation of driven.Gateway.
type Gateway struct {
	client      *http.Client
	baseURL     string
	timeout     time.Duration
	chatTimeout time.Duration
}

// NewGateway creates a gateway for the given backend.
func NewGateway(cfg Config) *Gateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ChatTimeout == 0 {
		cfg.ChatTimeout = DefaultChatTimeout
	}

	return &Gateway{
		// Timeouts are applied per request via context so chat calls can
		// run longer than metadata calls on the same client.
		client:      &http.Client{},
		baseURL:     cfg.BaseURL,
		timeout:     cfg.Timeout,
		chatTimeout: cfg.ChatTimeout,
	}
}

// BaseURL returns the configured backend origin.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// request describes one outbound call: method, path, payload, timeout.
type request struct {
	method  string
	path    string
	query   url.Values
	body    any
	file    *domain.UploadFile
	form    map[string]string
	timeout time.Duration
}

// do executes a request and returns the raw response body for 2xx
// responses. All other outcomes come back as *domain.BackendError.
func (g *Gateway) do(ctx context.Context, req request) ([]byte, error) {
	timeout := req.timeout
	if timeout == 0 {
		timeout = g.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := g.buildRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.NewString()
	logger.Debug("backend: %s %s [%s]", req.method, req.path, reqID)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		be := classifyTransport(err)
		logger.Warn("backend: %s %s [%s] failed: %s", req.method, req.path, reqID, be.Kind)
		return nil, be
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.BackendError{Kind: domain.FailNetwork, Detail: err.Error()}
	}

	logger.Debug("backend: %s %s [%s] -> %d", req.method, req.path, reqID, resp.StatusCode)

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &domain.BackendError{
			Kind:        domain.FailServer,
			Status:      resp.StatusCode,
			Detail:      errorDetail(body),
			Unavailable: resp.StatusCode == http.StatusServiceUnavailable,
		}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.BackendError{
			Kind:   domain.FailApplication,
			Status: resp.StatusCode,
			Detail: errorDetail(body),
		}
	}

	return body, nil
}

// buildRequest constructs the http.Request for JSON, multipart or bare calls.
func (g *Gateway) buildRequest(ctx context.Context, req request) (*http.Request, error) {
	endpoint := g.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	if req.file != nil {
		return g.buildMultipart(ctx, req, endpoint)
	}

	if req.body != nil {
		jsonBody, err := json.Marshal(req.body)
		if err != nil {
			return nil, err
		}
		httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, bytes.NewReader(jsonBody))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		return httpReq, nil
	}

	return http.NewRequestWithContext(ctx, req.method, endpoint, http.NoBody)
}

// buildMultipart assembles a multipart form request for file uploads.
func (g *Gateway) buildMultipart(ctx context.Context, req request, endpoint string) (*http.Request, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", req.file.Name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, req.file.Content); err != nil {
		return nil, err
	}
	for field, value := range req.form {
		if err := writer.WriteField(field, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	return httpReq, nil
}

// classifyTransport maps a transport error onto the failure taxonomy.
func classifyTransport(err error) *domain.BackendError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.BackendError{Kind: domain.FailTimeout, Detail: err.Error()}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.BackendError{Kind: domain.FailTimeout, Detail: err.Error()}
	}
	return &domain.BackendError{Kind: domain.FailNetwork, Detail: err.Error()}
}

// errorDetail pulls a human-readable explanation out of an error body.
func errorDetail(body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	const maxDetail = 200
	if len(body) > maxDetail {
		body = body[:maxDetail]
	}
	return string(body)
}

// appError builds the application-error result for success=false payloads.
func appError(detail string) *domain.BackendError {
	return &domain.BackendError{Kind: domain.FailApplication, Detail: detail}
}
