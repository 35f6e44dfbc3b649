package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/shopfront/internal/client/models"
	"github.com/dmitrijs2005/shopfront/internal/client/preference"
)

// Login signs in with email and password. The email may be given as an
// argument; the password is always read without echo.
func (a *App) Login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		v, err := GetSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			return err
		}
		email = v
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.session.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.cart.RefreshCount(ctx)
	a.printf("Welcome, %s!\n", u.Name)
	return nil
}

func (a *App) GoogleLogin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		if a.config != nil && a.config.GoogleClientID != "" {
			a.printf("Sign in with Google for client %s and paste the ID token\n", a.config.GoogleClientID)
		}
		return usageError("google-login <token>")
	}

	u, err := a.session.LoginWithGoogle(ctx, args[0])
	if err != nil {
		return err
	}
	a.cart.RefreshCount(ctx)
	a.printf("Welcome, %s!\n", u.Name)
	return nil
}

// Logout ends the session and forgets the cart count.
func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.session.Logout(ctx)
	a.cart.Reset()
	if err != nil {
		return err
	}
	a.printf("Signed out\n")
	return nil
}

func (a *App) Me(ctx context.Context, _ []string) error {
	u, ok := a.session.User()
	if !ok {
		return errLoginRequired
	}
	a.printf("#%d %s <%s>\n", u.ID, u.Name, u.Email)
	if u.Phone != "" {
		state := "unverified"
		if u.Verified {
			state = "verified"
		}
		a.printf("Phone: %s (%s)\n", u.Phone, state)
	}
	return nil
}

func (a *App) Go(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("go <path>")
	}
	return a.navigate(ctx, args[0])
}

func (a *App) Shop(ctx context.Context, _ []string) error {
	return a.navigate(ctx, "/shop")
}

func (a *App) Product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("product <id>")
	}
	return a.navigate(ctx, "/shop/"+args[0])
}

func (a *App) Cart(ctx context.Context, _ []string) error {
	return a.navigate(ctx, "/cart")
}

func (a *App) Orders(ctx context.Context, _ []string) error {
	return a.navigate(ctx, "/transaction")
}

func (a *App) Order(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("order <id>")
	}
	return a.navigate(ctx, "/transaction/"+args[0])
}

func parseIDs(args []string, n int, usage string) ([]int64, error) {
	if len(args) != n {
		return nil, usageError(usage)
	}
	out := make([]int64, n)
	for i, s := range args {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			return nil, usageError(usage)
		}
		out[i] = v
	}
	return out, nil
}

func (a *App) CartAdd(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, 2, "cart-add <productId> <qty>")
	if err != nil {
		return err
	}
	if err := a.requireMember(); err != nil {
		return err
	}

	it, err := a.api.Carts.Create(ctx, models.CartItem{ProductID: ids[0], Quantity: int(ids[1])})
	if err != nil {
		return err
	}
	a.cart.RefreshCount(ctx)
	a.printf("Added to cart (line %d, quantity %d)\n", it.ID, it.Quantity)
	return nil
}

func (a *App) CartRemove(ctx context.Context, args []string) error {
	if _, err := parseIDs(args, 1, "cart-rm <id>"); err != nil {
		return err
	}
	if err := a.requireMember(); err != nil {
		return err
	}

	if err := a.api.Carts.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.cart.RefreshCount(ctx)
	a.printf("Removed from cart\n")
	return nil
}

// Checkout orders the whole cart for delivery to addressId.
func (a *App) Checkout(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, 1, "checkout <addressId>")
	if err != nil {
		return err
	}
	if err := a.requireMember(); err != nil {
		return err
	}

	o, err := a.api.Orders.Create(ctx, models.CreateOrderRequest{AddressID: ids[0]})
	if err != nil {
		return err
	}
	a.cart.RefreshCount(ctx)
	a.printf("Order #%d placed, status %s\n", o.ID, o.Status)
	return nil
}

func (a *App) Addresses(ctx context.Context, _ []string) error {
	if err := a.requireMember(); err != nil {
		return err
	}

	list, err := a.api.Addresses.List(ctx, nil)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No saved addresses\n")
		return nil
	}
	for _, ad := range list {
		mark := " "
		if ad.IsDefault {
			mark = "*"
		}
		a.printf("%s[%d] %s: %s, %s %s\n", mark, ad.ID, ad.Label, ad.Street, ad.City, ad.PostalCode)
	}
	return nil
}

// VerifyPhone sends a code to phone, asks for it and confirms it. The user
// is re-fetched afterwards so the verified flag shows up; a failed re-fetch
// keeps the session and only leaves the old profile in place.
func (a *App) VerifyPhone(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("verify-phone <phone>")
	}
	if err := a.requireMember(); err != nil {
		return err
	}
	phone := args[0]

	sent, err := a.api.Verification.Send(ctx, phone)
	if err != nil {
		return err
	}
	if sent.Message != "" {
		a.printf("%s\n", sent.Message)
	}

	code, err := GetSimpleText(a.reader, "Enter the code you received", a.out)
	if err != nil {
		return err
	}

	res, err := a.api.Verification.Verify(ctx, phone, code)
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("verification failed: %s", res.Message)
	}

	a.printf("Phone %s verified\n", phone)
	if err := a.session.RefreshUser(ctx); err != nil {
		a.logger.Warn(ctx, "profile refresh after phone verification failed", "error", err)
		a.printf("Profile not refreshed: %s\n", describe(err))
	}
	return nil
}

func (a *App) Dark(ctx context.Context, _ []string) error {
	err := a.prefs.ToggleDark(ctx)
	state := "off"
	if a.prefs.DarkTheme() {
		state = "on"
	}
	a.printf("Dark theme %s\n", state)
	return err
}

func (a *App) Preset(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Current preset: %s\nAvailable: %s\n", a.prefs.PresetName(), strings.Join(preference.Presets, ", "))
		return nil
	}
	if err := a.prefs.SetPreset(ctx, args[0]); err != nil {
		return err
	}
	a.printf("Preset set to %s\n", args[0])
	return nil
}

// Reset wipes every locally stored key and starts over signed out.
func (a *App) Reset(ctx context.Context, _ []string) error {
	if err := a.kv.Clear(ctx); err != nil {
		return err
	}
	if err := a.session.ClearSession(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear session", "error", err)
	}
	a.cart.Reset()
	a.prefs = preference.Load(ctx, a.kv, a.logger)
	a.printf("Local data cleared\n")
	return nil
}
