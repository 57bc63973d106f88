package restful

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ResourceClient is the capability set of a REST resource: collection and
// detail CRUD plus custom action endpoints. Resource is the concrete
// implementation; custom resource types normally embed *Resource and so
// satisfy this interface for free.
type ResourceClient[T any] interface {
	List(ctx context.Context, params Params) ([]T, error)
	Retrieve(ctx context.Context, id any) (*T, error)
	Create(ctx context.Context, obj any) (*T, error)
	Update(ctx context.Context, id any, obj any) (*T, error)
	Patch(ctx context.Context, id any, obj any) (*T, error)
	Delete(ctx context.Context, id any) error
	GetAction(ctx context.Context, action string, params Params) (*Response, error)
	PostAction(ctx context.Context, action string, body any, params Params) (*Response, error)
	GetDetailAction(ctx context.Context, action string, id any, params Params) (*Response, error)
	PostDetailAction(ctx context.Context, action string, id any, body any, params Params) (*Response, error)
	PostForm(ctx context.Context, action string, form *FormBody, params Params) (*Response, error)
}

// Resource binds an entity collection name and default query parameters to
// the generic Client operations, producing REST-conventional paths
// ("{name}/", "{name}/{id}/", "{name}/{action}/", "{name}/{id}/{action}/").
// It holds a reference to the Client, not ownership; its lifetime is
// independent.
type Resource[T any] struct {
	client   *Client
	name     string
	defaults Params
}

// NewResource creates a Resource for the named entity collection. defaults
// may be nil; when set, they are merged under caller-supplied params on List
// and used as the query for Retrieve.
func NewResource[T any](client *Client, name string, defaults Params) *Resource[T] {
	return &Resource[T]{
		client:   client,
		name:     name,
		defaults: defaults,
	}
}

// NewCustomResource builds a caller-defined resource type via its factory,
// passing the Client through. Custom types embed *Resource to reuse the
// plumbing and add per-entity methods on top.
func NewCustomResource[R any](client *Client, factory func(*Client) R) (R, error) {
	if factory == nil {
		var zero R

		return zero, ErrNilFactory
	}

	return factory(client), nil
}

// Client returns the owning client, for custom resource methods that need
// the raw operations.
func (r *Resource[T]) Client() *Client {
	return r.client
}

// Name returns the resource's path segment.
func (r *Resource[T]) Name() string {
	return r.name
}

// List fetches the collection. The resource's default params are merged
// under params, caller keys winning on collision.
func (r *Resource[T]) List(ctx context.Context, params Params) ([]T, error) {
	resp, err := r.client.Get(ctx, r.collectionPath(), r.defaults.Merge(params))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.name, err)
	}

	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		return nil, nil
	}

	var items []T

	err = json.Unmarshal(resp.Body, &items)
	if err != nil {
		return nil, fmt.Errorf("decoding %s list: %w", r.name, err)
	}

	return items, nil
}

// Retrieve fetches a single entity by id, using only the resource's default
// params.
func (r *Resource[T]) Retrieve(ctx context.Context, id any) (*T, error) {
	resp, err := r.client.Get(ctx, r.detailPath(id), r.defaults)
	if err != nil {
		return nil, fmt.Errorf("retrieving %s: %w", r.name, err)
	}

	return r.decode(resp, "retrieving")
}

// Create POSTs obj to the collection.
func (r *Resource[T]) Create(ctx context.Context, obj any) (*T, error) {
	resp, err := r.client.Post(ctx, r.collectionPath(), obj, nil)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", r.name, err)
	}

	return r.decode(resp, "creating")
}

// Update PUTs obj to the entity identified by id.
func (r *Resource[T]) Update(ctx context.Context, id any, obj any) (*T, error) {
	resp, err := r.client.Put(ctx, r.detailPath(id), obj, nil)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", r.name, err)
	}

	return r.decode(resp, "updating")
}

// Patch PATCHes obj onto the entity identified by id.
func (r *Resource[T]) Patch(ctx context.Context, id any, obj any) (*T, error) {
	resp, err := r.client.Patch(ctx, r.detailPath(id), obj, nil)
	if err != nil {
		return nil, fmt.Errorf("patching %s: %w", r.name, err)
	}

	return r.decode(resp, "patching")
}

// Delete removes the entity identified by id.
func (r *Resource[T]) Delete(ctx context.Context, id any) error {
	_, err := r.client.Delete(ctx, r.detailPath(id), nil)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", r.name, err)
	}

	return nil
}

// GetAction issues a GET to the collection-level action endpoint
// "{name}/{action}/". Action payload shapes are endpoint-specific, so the
// raw response is returned for caller-side decoding (see Response.JSON).
func (r *Resource[T]) GetAction(ctx context.Context, action string, params Params) (*Response, error) {
	resp, err := r.client.Get(ctx, r.actionPath(action), params)
	if err != nil {
		return nil, fmt.Errorf("%s action %s: %w", r.name, action, err)
	}

	return resp, nil
}

// PostAction issues a POST with a JSON body to "{name}/{action}/".
func (r *Resource[T]) PostAction(ctx context.Context, action string, body any, params Params) (*Response, error) {
	resp, err := r.client.Post(ctx, r.actionPath(action), body, params)
	if err != nil {
		return nil, fmt.Errorf("%s action %s: %w", r.name, action, err)
	}

	return resp, nil
}

// GetDetailAction issues a GET to the detail-level action endpoint
// "{name}/{id}/{action}/".
func (r *Resource[T]) GetDetailAction(ctx context.Context, action string, id any, params Params) (*Response, error) {
	resp, err := r.client.Get(ctx, r.detailActionPath(action, id), params)
	if err != nil {
		return nil, fmt.Errorf("%s action %s: %w", r.name, action, err)
	}

	return resp, nil
}

// PostDetailAction issues a POST with a JSON body to "{name}/{id}/{action}/".
func (r *Resource[T]) PostDetailAction(ctx context.Context, action string, id any, body any, params Params) (*Response, error) {
	resp, err := r.client.Post(ctx, r.detailActionPath(action, id), body, params)
	if err != nil {
		return nil, fmt.Errorf("%s action %s: %w", r.name, action, err)
	}

	return resp, nil
}

// PostForm issues a multipart POST to "{name}/{action}/".
func (r *Resource[T]) PostForm(ctx context.Context, action string, form *FormBody, params Params) (*Response, error) {
	resp, err := r.client.PostForm(ctx, r.actionPath(action), form, params)
	if err != nil {
		return nil, fmt.Errorf("%s action %s: %w", r.name, action, err)
	}

	return resp, nil
}

func (r *Resource[T]) collectionPath() string {
	return r.name + "/"
}

func (r *Resource[T]) detailPath(id any) string {
	return fmt.Sprintf("%s/%v/", r.name, id)
}

func (r *Resource[T]) actionPath(action string) string {
	return fmt.Sprintf("%s/%s/", r.name, action)
}

func (r *Resource[T]) detailActionPath(action string, id any) string {
	return fmt.Sprintf("%s/%v/%s/", r.name, id, action)
}

// decode unmarshals a detail response into T, returning nil for bodyless
// successes such as 204.
func (r *Resource[T]) decode(resp *Response, op string) (*T, error) {
	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		return nil, nil //nolint:nilnil // bodyless success intentionally yields no value
	}

	var item T

	err := json.Unmarshal(resp.Body, &item)
	if err != nil {
		return nil, fmt.Errorf("%s %s: decoding response: %w", op, r.name, err)
	}

	return &item, nil
}

// Compile-time check that Resource satisfies the capability set.
var _ ResourceClient[struct{}] = (*Resource[struct{}])(nil)
