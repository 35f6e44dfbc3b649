package resources

import (
	"context"
	"net/url"
)

const collectionPrefix = "/collection/"

// Collection is the CRUD surface of /collection/<name>.
type Collection[T any] struct {
	r    Requester
	path string
}

func NewCollection[T any](r Requester, name string) Collection[T] {
	return Collection[T]{r: r, path: collectionPrefix + name}
}

// Path returns the collection root, e.g. "/collection/cart".
func (c Collection[T]) Path() string { return c.path }

func (c Collection[T]) itemPath(id string) string { return c.path + "/" + id }

func (c Collection[T]) List(ctx context.Context, params url.Values) ([]T, error) {
	var out []T
	if err := c.r.Get(ctx, c.path, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := c.r.Get(ctx, c.itemPath(id), nil, &out)
	return out, err
}

func (c Collection[T]) Create(ctx context.Context, body any) (T, error) {
	var out T
	err := c.r.Post(ctx, c.path, body, &out)
	return out, err
}

func (c Collection[T]) Update(ctx context.Context, id string, body any) (T, error) {
	var out T
	err := c.r.Put(ctx, c.itemPath(id), body, &out)
	return out, err
}

func (c Collection[T]) Delete(ctx context.Context, id string) error {
	return c.r.Delete(ctx, c.itemPath(id), nil)
}
