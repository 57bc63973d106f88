// Package restful is a lightweight client for JSON REST backends. It builds
// URLs with encoded query parameters, wraps the HTTP transport with JSON and
// multipart body handling plus a pre-request middleware chain, and layers a
// generic resource abstraction over the verb primitives.
//
// # Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/charlee/dash-restful/pkg/restful"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  client, err := restful.New("https://api.example.com")
//	  if err != nil { log.Fatal(err) }
//
//	  resp, err := client.Get(ctx, "status/", nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = resp
//	}
//
// # Resources
//
// A Resource binds an entity collection name (and optional default query
// parameters) to the client, producing REST-conventional paths:
//
//	type User struct {
//	  ID   int    `json:"id"`
//	  Name string `json:"name"`
//	}
//
//	users := restful.NewResource[User](client, "users", nil)
//	all, err := users.List(ctx, restful.Params{"ordering": "name"})
//	one, err := users.Retrieve(ctx, 42)
//
// Custom resource types embed *Resource to add per-entity methods while
// reusing the client plumbing; construct them with NewCustomResource.
//
// # Middleware
//
// Middleware are pure RequestData transformations applied in registration
// order before dispatch. Register them at setup time with Client.Use;
// SetHeader, RequestID, and PathPrefix cover the common cases.
//
// # Errors
//
// Non-2xx responses surface as *Error carrying the raw response, or through
// a caller-configured ErrorHandler. Helpers such as IsNotFound and
// IsUnauthorized branch on common cases.
package restful
