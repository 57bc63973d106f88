package restful

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Params holds query parameters for a request. Values may be strings,
// numbers, or slices of either; slice values are joined with "," before
// encoding. Entries whose value is nil or the empty string are dropped.
type Params map[string]any

// Merge returns a new Params with entries from override layered on top of p.
// Keys present in both maps take the override value. Both arguments may be
// nil.
func (p Params) Merge(override Params) Params {
	if len(p) == 0 && len(override) == 0 {
		return nil
	}

	merged := make(Params, len(p)+len(override))
	for key, value := range p {
		merged[key] = value
	}

	for key, value := range override {
		merged[key] = value
	}

	return merged
}

// RequestOptions describes the transport-level options of a request: the
// HTTP method, headers, and an optional pre-serialized body.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    []byte
}

// WithHeader returns a copy of the options with the given header set. The
// headers map is cloned, so the receiver is left untouched; this keeps
// middleware side-effect-free.
func (o RequestOptions) WithHeader(key, value string) RequestOptions {
	headers := make(map[string]string, len(o.Headers)+1)
	for k, v := range o.Headers {
		headers[k] = v
	}

	headers[key] = value
	o.Headers = headers

	return o
}

// clone returns a copy of the options with its own headers map.
func (o RequestOptions) clone() RequestOptions {
	headers := make(map[string]string, len(o.Headers))
	for k, v := range o.Headers {
		headers[k] = v
	}

	o.Headers = headers

	return o
}

// RequestData is the unit threaded through the middleware chain: the request
// path, its query parameters, and its transport options. Each middleware
// receives the previous middleware's output and returns a replacement.
type RequestData struct {
	Path    string
	Params  Params
	Options RequestOptions
}

// Middleware transforms a request description before it is dispatched.
// Middleware are applied in registration order; implementations should
// return a new RequestData rather than mutate shared state (see
// RequestOptions.WithHeader).
type Middleware func(RequestData) RequestData

// RequestConfig carries the per-call inputs of Client.Do. At most one of
// Body and Form should be set; if both are set, Body wins.
type RequestConfig struct {
	// Body is a JSON-serializable payload. When set, the request is sent
	// with Content-Type: application/json.
	Body any

	// Form is a multipart form payload, used when Body is nil.
	Form *FormBody

	// Params are the query parameters for this call.
	Params Params

	// Headers are additional per-call headers, applied on top of the
	// client's base options before middleware run.
	Headers map[string]string
}

// Response is the decoded-agnostic result of a request: status information,
// response headers, and the raw body.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}

	return nil
}
