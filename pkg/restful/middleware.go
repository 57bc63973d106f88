package restful

import (
	"strings"

	"github.com/google/uuid"
)

// Built-in middleware constructors. Each returns a pure
// RequestData -> RequestData transformation suitable for Client.Use.

// SetHeader returns a middleware that sets a fixed header on every request.
// Later middleware setting the same key win.
func SetHeader(key, value string) Middleware {
	return func(data RequestData) RequestData {
		data.Options = data.Options.WithHeader(key, value)

		return data
	}
}

// RequestID returns a middleware that tags every request with a fresh
// X-Request-ID header.
func RequestID() Middleware {
	return func(data RequestData) RequestData {
		data.Options = data.Options.WithHeader("X-Request-ID", uuid.NewString())

		return data
	}
}

// PathPrefix returns a middleware that prepends prefix to the request path,
// joined with exactly one separator.
func PathPrefix(prefix string) Middleware {
	prefix = strings.TrimSuffix(prefix, "/")

	return func(data RequestData) RequestData {
		data.Path = prefix + "/" + strings.TrimPrefix(data.Path, "/")

		return data
	}
}
