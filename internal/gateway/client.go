// Package gateway is the console's HTTP/JSON boundary to the UniHub admin
// API. Every operation is a single attempt: failures are surfaced as typed
// errors whose messages are fit for direct display, and retry policy is left
// to the operator.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/unihub/admin-console/pkg/config"
	appErrors "github.com/unihub/admin-console/pkg/errors"
	"github.com/unihub/admin-console/pkg/metrics"
	"github.com/unihub/admin-console/pkg/middleware/requestid"
)

// Client talks to the admin API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	recorder   *metrics.Recorder
}

// Option customises the client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRecorder attaches call metrics.
func WithRecorder(r *metrics.Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// New constructs a gateway client from configuration.
func New(cfg config.APIConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/") + cfg.Prefix,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// serverReply is the best-effort shape of upstream error bodies.
type serverReply struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one request and returns the raw body of a 2xx response. The
// body is always read as text first; JSON interpretation happens afterwards
// so a non-JSON error body still yields a usable message.
func (c *Client) do(ctx context.Context, op, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to encode request")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to build request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestid.Header, requestid.Generate())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.observe(op, appErrors.ErrNetwork.Code, duration)
		c.logger.Warn("gateway call failed",
			zap.String("operation", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Message)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(op, appErrors.ErrNetwork.Code, duration)
		return nil, appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Message)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(op, appErrors.ErrServer.Code, duration)
		serverErr := appErrors.WithStatus(appErrors.Clone(appErrors.ErrServer, errorMessage(raw, resp.StatusCode)), resp.StatusCode)
		c.logger.Warn("gateway call rejected",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", serverErr.Message))
		return nil, serverErr
	}

	c.observe(op, "ok", duration)
	c.logger.Debug("gateway call ok",
		zap.String("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration))
	return raw, nil
}

// decode unmarshals a 2xx body, mapping failure to the decode error the UI
// displays verbatim.
func decode(raw []byte, v interface{}) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return appErrors.Wrap(err, appErrors.ErrDecode.Code, appErrors.ErrDecode.Message)
	}
	return nil
}

// errorMessage extracts a display string from an error body: JSON message or
// error field first, then the raw text, then a generic status fallback.
func errorMessage(raw []byte, status int) string {
	var reply serverReply
	if err := json.Unmarshal(raw, &reply); err == nil {
		if reply.Message != "" {
			return reply.Message
		}
		if reply.Error != "" {
			return reply.Error
		}
	}
	text := strings.TrimSpace(string(raw))
	if text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func (c *Client) observe(op, outcome string, duration time.Duration) {
	if c.recorder != nil {
		c.recorder.ObserveCall(op, outcome, duration)
	}
}
