package api

import (
	"context"

	"github.com/dmitrijs2005/shopfront/internal/client/kvstore"
	"github.com/dmitrijs2005/shopfront/internal/common"
)

// TokenSource yields the credential to attach to the next request.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// StoreTokens reads the credential from the local key-value store.
// An unreadable store is treated as "no credential".
type StoreTokens struct {
	Store kvstore.Store
}

func (s StoreTokens) Token(ctx context.Context) (string, bool) {
	v, ok, err := s.Store.Get(ctx, common.AccessTokenKey)
	if err != nil || !ok || v == "" {
		return "", false
	}
	return v, true
}

// StaticToken always yields the same credential; empty means anonymous.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, bool) {
	return string(t), t != ""
}
