// Package transport executes finalized request descriptions over an HTTP
// doer. It owns the conversion to *http.Request, response body reading, and
// optional debug logging; everything above it (query encoding, middleware,
// status dispatch) lives in pkg/restful.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Doer issues HTTP requests. *http.Client satisfies it; callers may supply
// any compatible implementation (e.g. a retrying client).
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request is a fully materialized request, ready to send.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response is the raw result of a request with the body fully read.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
}

// Transport sends requests through a Doer.
type Transport struct {
	doer      Doer
	logger    Logger
	debug     bool
	userAgent string
}

// Option configures a Transport.
type Option func(*Transport)

// WithDoer sets the underlying HTTP doer. The default is a plain
// *http.Client with no timeout; deadlines come from the request context.
func WithDoer(doer Doer) Option {
	return func(t *Transport) {
		t.doer = doer
	}
}

// WithLogger sets the logger used for debug logging.
func WithLogger(logger Logger) Option {
	return func(t *Transport) {
		t.logger = logger
	}
}

// WithDebug enables request/response debug logging.
func WithDebug(debug bool) Option {
	return func(t *Transport) {
		t.debug = debug
	}
}

// WithUserAgent sets the User-Agent header applied to requests that do not
// already carry one.
func WithUserAgent(userAgent string) Option {
	return func(t *Transport) {
		t.userAgent = userAgent
	}
}

// New creates a Transport.
func New(opts ...Option) *Transport {
	transport := &Transport{
		doer: &http.Client{},
	}

	for _, opt := range opts {
		opt(transport)
	}

	return transport
}

// Do sends the request and reads the full response body. Transport-level
// failures (connection, DNS, context cancellation) are returned wrapped; a
// response with any status code is returned without error, status dispatch
// being the caller's concern.
func (t *Transport) Do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if t.userAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", t.userAgent)
	}

	if t.debug && t.logger != nil {
		t.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
		})
	}

	httpResp, err := t.doer.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if t.debug && t.logger != nil {
		t.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         req.URL,
			"status_code": httpResp.StatusCode,
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    httpResp.Header,
		Body:       data,
	}, nil
}
