package router

import (
	"context"

	"github.com/dmitrijs2005/shopfront/internal/client/kvstore"
	"github.com/dmitrijs2005/shopfront/internal/common"
)

// Decision is the outcome of a guard check. When Proceed is false the
// caller navigates to Redirect instead.
type Decision struct {
	Proceed  bool
	Redirect string
}

// Guard only checks that a credential is persisted. It never contacts the
// server and does not wait for the session to be restored; validating the
// credential is the session's job.
type Guard struct {
	kv         kvstore.Store
	loginRoute string
}

func NewGuard(kv kvstore.Store) *Guard {
	return &Guard{kv: kv, loginRoute: RouteLogin}
}

func (g *Guard) Check(ctx context.Context, target Route) Decision {
	if !target.Protected || kvstore.Has(ctx, g.kv, common.AccessTokenKey) {
		return Decision{Proceed: true}
	}
	return Decision{Redirect: g.loginRoute}
}
