package resources

import (
	"context"
	"net/url"
)

// Requester is the transport used by accessors; *api.Client satisfies it.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}
