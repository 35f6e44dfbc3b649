package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shopfront/internal/client/api"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	GoogleLogin(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Me(ctx context.Context, args []string) error
	Go(ctx context.Context, args []string) error
	Shop(ctx context.Context, args []string) error
	Product(ctx context.Context, args []string) error
	Cart(ctx context.Context, args []string) error
	CartAdd(ctx context.Context, args []string) error
	CartRemove(ctx context.Context, args []string) error
	Checkout(ctx context.Context, args []string) error
	Orders(ctx context.Context, args []string) error
	Order(ctx context.Context, args []string) error
	Addresses(ctx context.Context, args []string) error
	VerifyPhone(ctx context.Context, args []string) error
	Dark(ctx context.Context, args []string) error
	Preset(ctx context.Context, args []string) error
	Reset(ctx context.Context, args []string) error
}

const (
	helpGuest  = "Available commands: login, google-login <token>, go <path>, shop, product <id>, dark, preset [name], reset, exit"
	helpMember = "Available commands: me, go <path>, shop, product <id>, cart, cart-add <productId> <qty>, cart-rm <id>, " +
		"checkout <addressId>, orders, order <id>, addresses, verify-phone <phone>, dark, preset [name], logout, reset, exit"
)

// usageError is reported as "Usage: ..." instead of as a failure.
type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }

var (
	errLoginRequired = errors.New("please log in first")
	errNotReady      = errors.New("session is not restored yet")
)

// runREPL reads commands from scanner until EOF, "exit" or "quit". The
// prompt shows statusFn(). Command errors are printed and never stop the
// loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("shop %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}
		case "login":
			err = a.Login(ctx, args)
		case "google-login":
			err = a.GoogleLogin(ctx, args)
		case "logout":
			err = a.Logout(ctx, args)
		case "me":
			err = a.Me(ctx, args)
		case "go":
			err = a.Go(ctx, args)
		case "shop":
			err = a.Shop(ctx, args)
		case "product":
			err = a.Product(ctx, args)
		case "cart":
			err = a.Cart(ctx, args)
		case "cart-add":
			err = a.CartAdd(ctx, args)
		case "cart-rm":
			err = a.CartRemove(ctx, args)
		case "checkout":
			err = a.Checkout(ctx, args)
		case "orders":
			err = a.Orders(ctx, args)
		case "order":
			err = a.Order(ctx, args)
		case "addresses":
			err = a.Addresses(ctx, args)
		case "verify-phone":
			err = a.VerifyPhone(ctx, args)
		case "dark":
			err = a.Dark(ctx, args)
		case "preset":
			err = a.Preset(ctx, args)
		case "reset":
			err = a.Reset(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(describe(err))
		}
	}
}

// describe turns a command error into one line for the user. Remote
// failures are summarized the way the storefront always did: server
// message and status, or a generic network error.
func describe(err error) string {
	var ue usageError
	if errors.As(err, &ue) {
		return "Usage: " + string(ue)
	}

	var he *api.HTTPError
	if errors.As(err, &he) || errors.Is(err, api.ErrUnavailable) || errors.Is(err, api.ErrDecode) {
		status, msg := api.Describe(err)
		return fmt.Sprintf("Error %d: %s", status, msg)
	}

	return "Error: " + err.Error()
}
