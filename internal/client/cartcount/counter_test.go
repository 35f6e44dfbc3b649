package cartcount

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/shopfront/internal/client/kvstore"
	"github.com/dmitrijs2005/shopfront/internal/client/models"
	"github.com/dmitrijs2005/shopfront/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCarts struct {
	total int
	err   error
	calls int
}

func (f *fakeCarts) Total(ctx context.Context) (models.CartTotal, error) {
	f.calls++
	return models.CartTotal{Total: f.total}, f.err
}

func intp(n int) *int { return &n }

func signedIn(t *testing.T) kvstore.Store {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), common.AccessTokenKey, "tok"))
	return kv
}

func TestSetCount(t *testing.T) {
	c := New(kvstore.NewMemoryStore(), &fakeCarts{}, nil)

	_, ok := c.Count()
	assert.False(t, ok, "unknown until first derived")

	require.NoError(t, c.SetCount(intp(0)))
	n, ok := c.Count()
	assert.True(t, ok)
	assert.Equal(t, 0, n)

	require.ErrorIs(t, c.SetCount(intp(-1)), ErrNegativeCount)
	n, _ = c.Count()
	assert.Equal(t, 0, n, "rejected value does not overwrite")

	require.NoError(t, c.SetCount(nil))
	_, ok = c.Count()
	assert.False(t, ok)
}

func TestSetCount_CopiesValue(t *testing.T) {
	c := New(kvstore.NewMemoryStore(), &fakeCarts{}, nil)
	v := 3
	require.NoError(t, c.SetCount(&v))
	v = 99
	n, _ := c.Count()
	assert.Equal(t, 3, n)
}

func TestRefreshCount_NoCredential_NoCall(t *testing.T) {
	carts := &fakeCarts{total: 5}
	c := New(kvstore.NewMemoryStore(), carts, nil)
	require.NoError(t, c.SetCount(intp(2)))

	c.RefreshCount(context.Background())
	c.RefreshCount(context.Background())

	assert.Zero(t, carts.calls, "no HTTP call without a credential")
	n, ok := c.Count()
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestRefreshCount_AssignsTotal(t *testing.T) {
	carts := &fakeCarts{total: 4}
	c := New(signedIn(t), carts, nil)

	c.RefreshCount(context.Background())
	n, ok := c.Count()
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	carts.total = 1
	c.RefreshCount(context.Background())
	n, _ = c.Count()
	assert.Equal(t, 1, n, "recomputed, not incremented")
	assert.Equal(t, 2, carts.calls)
}

func TestRefreshCount_FailureKeepsStaleValue(t *testing.T) {
	carts := &fakeCarts{total: 6}
	c := New(signedIn(t), carts, nil)
	c.RefreshCount(context.Background())

	carts.err = errors.New("503")
	c.RefreshCount(context.Background())

	n, ok := c.Count()
	assert.True(t, ok)
	assert.Equal(t, 6, n)
}

func TestRefreshCount_NegativeTotalIgnored(t *testing.T) {
	carts := &fakeCarts{total: -3}
	c := New(signedIn(t), carts, nil)
	c.RefreshCount(context.Background())

	_, ok := c.Count()
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	c := New(kvstore.NewMemoryStore(), &fakeCarts{}, nil)
	require.NoError(t, c.SetCount(intp(8)))
	c.Reset()
	_, ok := c.Count()
	assert.False(t, ok)
}
