package restful

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/charlee/dash-restful/internal/transport"
)

const contentTypeJSON = "application/json"

// Client talks to a REST backend rooted at a base URL. It owns the request
// pipeline: body encoding, the middleware chain, URL construction, and
// status-code dispatch. Configuration is captured at construction and
// immutable afterwards; the middleware list is append-only via Use.
type Client struct {
	baseURL      string
	errorHandler ErrorHandler
	baseOptions  RequestOptions
	middleware   []Middleware
	transport    *transport.Transport
}

// Option configures a Client at construction time.
type Option func(*clientConfig)

type clientConfig struct {
	errorHandler ErrorHandler
	baseOptions  RequestOptions
	doer         transport.Doer
	logger       Logger
	debug        bool
	userAgent    string
}

// WithErrorHandler sets the handler invoked for non-2xx, non-204 responses.
// Its return value is used as the call's error verbatim; see ErrorHandler
// for the contract.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *clientConfig) {
		c.errorHandler = handler
	}
}

// WithRequestOptions sets base transport options merged into every request
// at the lowest precedence; per-call method, headers, and body are applied
// on top.
func WithRequestOptions(options RequestOptions) Option {
	return func(c *clientConfig) {
		c.baseOptions = options
	}
}

// WithHTTPClient sets the underlying HTTP doer. Use it to supply a client
// with custom transport behavior such as timeouts or retries.
func WithHTTPClient(doer transport.Doer) Option {
	return func(c *clientConfig) {
		c.doer = doer
	}
}

// WithLogger sets the logger used for debug logging.
func WithLogger(logger Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithDebug enables request/response debug logging.
func WithDebug(debug bool) Option {
	return func(c *clientConfig) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *clientConfig) {
		c.userAgent = userAgent
	}
}

// New creates a Client for the API rooted at baseURL. A single trailing
// slash on baseURL is stripped before storage.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	cfg := &clientConfig{
		userAgent: "dash-restful/" + Version,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	transportOpts := []transport.Option{
		transport.WithUserAgent(cfg.userAgent),
		transport.WithDebug(cfg.debug),
	}

	if cfg.doer != nil {
		transportOpts = append(transportOpts, transport.WithDoer(cfg.doer))
	}

	if cfg.logger != nil {
		transportOpts = append(transportOpts, transport.WithLogger(&loggerAdapter{logger: cfg.logger}))
	}

	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		errorHandler: cfg.errorHandler,
		baseOptions:  cfg.baseOptions,
		transport:    transport.New(transportOpts...),
	}, nil
}

// BaseURL returns the stored base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL builds the full URL for path, appending the encoded params when they
// produce a non-empty query string. Exactly one separator joins the base URL
// and the path.
func (c *Client) URL(path string, params Params) string {
	u := c.baseURL + "/" + strings.TrimPrefix(path, "/")

	if query := params.Encode(); query != "" {
		u += "?" + query
	}

	return u
}

// Use appends a middleware to the chain. Middleware run in registration
// order, each receiving the previous one's output; later middleware win on
// overlapping header keys. Registration is expected to happen at setup time,
// before requests are issued.
func (c *Client) Use(mw Middleware) {
	c.middleware = append(c.middleware, mw)
}

// Do runs the full request pipeline: builds transport options from the base
// options and cfg, threads the request description through the middleware
// chain, executes the request, and dispatches on the status code. 204
// responses succeed with an empty body; other 2xx responses succeed with the
// raw body; everything else goes through the configured error handler or is
// returned as an *Error. The *Response is non-nil whenever the exchange
// completed, including in the error cases.
func (c *Client) Do(ctx context.Context, method, path string, cfg *RequestConfig) (*Response, error) {
	if cfg == nil {
		cfg = &RequestConfig{}
	}

	options, err := c.buildOptions(method, cfg)
	if err != nil {
		return nil, err
	}

	data := RequestData{
		Path:    path,
		Params:  cfg.Params,
		Options: options,
	}

	for _, mw := range c.middleware {
		data = mw(data)
	}

	fullURL := c.URL(data.Path, data.Params)

	resp, err := c.transport.Do(ctx, &transport.Request{
		Method:  data.Options.Method,
		URL:     fullURL,
		Headers: data.Options.Headers,
		Body:    data.Options.Body,
	})
	if err != nil {
		return nil, err
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}

	switch {
	case resp.StatusCode == http.StatusNoContent:
		response.Body = nil

		return response, nil
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return response, nil
	default:
		if c.errorHandler != nil {
			return response, c.errorHandler(response)
		}

		return response, &Error{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Method:     data.Options.Method,
			URL:        fullURL,
			Headers:    resp.Headers,
			Body:       resp.Body,
		}
	}
}

// buildOptions merges the base options with the per-call config and applies
// the body-encoding branch. A JSON body takes precedence over a form body;
// with neither, the request has no body and an empty headers map.
func (c *Client) buildOptions(method string, cfg *RequestConfig) (RequestOptions, error) {
	options := c.baseOptions.clone()
	options.Method = method

	for key, value := range cfg.Headers {
		options.Headers[key] = value
	}

	switch {
	case cfg.Body != nil:
		payload, err := json.Marshal(cfg.Body)
		if err != nil {
			return RequestOptions{}, fmt.Errorf("encoding request body: %w", err)
		}

		options.Headers["Content-Type"] = contentTypeJSON
		options.Body = payload
	case cfg.Form != nil:
		payload, contentType, err := cfg.Form.encode()
		if err != nil {
			return RequestOptions{}, fmt.Errorf("encoding form body: %w", err)
		}

		options.Headers["Content-Type"] = contentType
		options.Body = payload
	}

	return options, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, params Params) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, &RequestConfig{Params: params})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, params Params) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, &RequestConfig{Body: body, Params: params})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, params Params) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, &RequestConfig{Body: body, Params: params})
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any, params Params) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, &RequestConfig{Body: body, Params: params})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, params Params) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, &RequestConfig{Params: params})
}

// PostForm issues a POST request with a multipart form body.
func (c *Client) PostForm(ctx context.Context, path string, form *FormBody, params Params) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, &RequestConfig{Form: form, Params: params})
}

// Fetch runs a request through client and decodes the JSON response body
// into T. It returns nil for 204 and other bodyless successes. Decoding
// failures are returned wrapped, not swallowed.
func Fetch[T any](ctx context.Context, client *Client, method, path string, cfg *RequestConfig) (*T, error) {
	resp, err := client.Do(ctx, method, path, cfg)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		return nil, nil //nolint:nilnil // bodyless success intentionally yields no value
	}

	var out T

	err = json.Unmarshal(resp.Body, &out)
	if err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}

	return &out, nil
}

// loggerAdapter adapts a Logger to transport.Logger.
type loggerAdapter struct {
	logger Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
