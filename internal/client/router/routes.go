// Package router maps client paths to named views and decides whether a
// navigation may proceed.
package router

import "strings"

const (
	RouteDashboard         = "dashboard"
	RouteShop              = "Shop"
	RouteShopDetail        = "ShopDetail"
	RouteCart              = "Cart"
	RouteTransaction       = "Transaction"
	RouteTransactionDetail = "TransactionDetail"
	RouteLogin             = "Login"
)

// Route is one entry of the route table. Path segments starting with ":"
// are parameters.
type Route struct {
	Name      string
	Path      string
	Protected bool
}

// Match is a resolved navigation target.
type Match struct {
	Route  Route
	Path   string
	Params map[string]string
}

// DefaultRoutes is the storefront's route table.
var DefaultRoutes = []Route{
	{Name: RouteDashboard, Path: "/"},
	{Name: RouteShop, Path: "/shop"},
	{Name: RouteShopDetail, Path: "/shop/:id"},
	{Name: RouteCart, Path: "/cart", Protected: true},
	{Name: RouteTransaction, Path: "/transaction", Protected: true},
	{Name: RouteTransactionDetail, Path: "/transaction/:id"},
	{Name: RouteLogin, Path: "/login"},
}

type Table struct {
	routes []Route
}

func NewTable(routes []Route) *Table {
	return &Table{routes: routes}
}

// Resolve finds the first route matching path. A trailing slash and any
// query string are ignored.
func (t *Table) Resolve(path string) (Match, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		path = "/"
	}
	segs := split(path)

	for _, r := range t.routes {
		if params, ok := match(split(r.Path), segs); ok {
			return Match{Route: r, Path: path, Params: params}, true
		}
	}
	return Match{}, false
}

// ByName returns the route registered under name.
func (t *Table) ByName(name string) (Route, bool) {
	for _, r := range t.routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func match(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return nil, false
			}
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}
