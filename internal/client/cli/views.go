package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopfront/internal/client/format"
	"github.com/dmitrijs2005/shopfront/internal/client/models"
	"github.com/dmitrijs2005/shopfront/internal/client/router"
)

// navigate resolves path, asks the guard and renders the resulting view.
// A refused navigation renders the login view instead. Protected views are
// not rendered before the session has been restored.
func (a *App) navigate(ctx context.Context, path string) error {
	m, ok := a.routes.Resolve(path)
	if !ok {
		return fmt.Errorf("no page at %s", path)
	}
	if m.Route.Protected && !a.session.Ready() {
		return errNotReady
	}

	d := a.guard.Check(ctx, m.Route)
	if !d.Proceed {
		a.logger.Debug(ctx, "navigation redirected", "from", m.Route.Name, "to", d.Redirect)
		return a.render(ctx, router.Match{Route: router.Route{Name: d.Redirect}})
	}
	return a.render(ctx, m)
}

func (a *App) render(ctx context.Context, m router.Match) error {
	switch m.Route.Name {
	case router.RouteDashboard:
		return a.renderDashboard(ctx)
	case router.RouteShop:
		return a.renderShop(ctx)
	case router.RouteShopDetail:
		return a.renderProduct(ctx, m.Params["id"])
	case router.RouteCart:
		return a.renderCart(ctx)
	case router.RouteTransaction:
		return a.renderOrders(ctx)
	case router.RouteTransactionDetail:
		return a.renderOrder(ctx, m.Params["id"])
	case router.RouteLogin:
		a.printf("Please log in: use 'login' or 'google-login <token>'\n")
		return nil
	}
	return fmt.Errorf("no view for %s", m.Route.Name)
}

func (a *App) renderDashboard(ctx context.Context) error {
	if u, ok := a.session.User(); ok {
		a.printf("Hello, %s!\n", u.Name)
	} else {
		a.printf("Hello, guest!\n")
	}
	if n, ok := a.cart.Count(); ok {
		a.printf("Items in cart: %d\n", n)
	}
	return nil
}

func (a *App) renderShop(ctx context.Context) error {
	products, err := a.api.Products.List(ctx, nil)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		a.printf("No products yet\n")
		return nil
	}
	for _, p := range products {
		stock := fmt.Sprintf("%d in stock", p.Stock)
		if p.Stock == 0 {
			stock = "sold out"
		}
		a.printf("[%d] %-28s %14s  %s\n", p.ID, p.Name, format.Rupiah(p.Price), stock)
	}
	return nil
}

func (a *App) renderProduct(ctx context.Context, id string) error {
	p, err := a.api.Products.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s\n%s\nPrice: %s\nStock: %d\n", p.Name, p.Description, format.Rupiah(p.Price), p.Stock)
	if p.Category != "" {
		a.printf("Category: %s\n", p.Category)
	}
	return nil
}

func (a *App) renderCart(ctx context.Context) error {
	items, err := a.api.Carts.List(ctx, nil)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		a.printf("Your cart is empty\n")
		return nil
	}
	for _, it := range items {
		name := fmt.Sprintf("product #%d", it.ProductID)
		if it.Product != nil {
			name = it.Product.Name
		}
		a.printf("[%d] %-28s x%d  %s\n", it.ID, name, it.Quantity, format.Rupiah(it.Subtotal()))
	}
	a.printf("Total: %s\n", format.Rupiah(models.CartSum(items)))
	return nil
}

func (a *App) renderOrders(ctx context.Context) error {
	orders, err := a.api.Orders.List(ctx, nil)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		a.printf("No orders yet\n")
		return nil
	}
	for _, o := range orders {
		a.printf("[%d] %s  %-9s %s\n", o.ID, o.CreatedAt.Format("2006-01-02"), o.Status, format.Rupiah(o.Total))
	}
	return nil
}

func (a *App) renderOrder(ctx context.Context, id string) error {
	o, err := a.api.Orders.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printf("Order #%d (%s), placed %s\n", o.ID, o.Status, o.CreatedAt.Format("2006-01-02 15:04"))
	for _, it := range o.Items {
		a.printf("  %-28s x%d  %s\n", it.Name, it.Quantity, format.RupiahWithDecimal(it.Price*int64(it.Quantity)))
	}
	a.printf("Total: %s\n", format.RupiahWithDecimal(o.Total))
	return nil
}
