package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/shopfront/internal/client/api"
	"github.com/dmitrijs2005/shopfront/internal/client/cartcount"
	"github.com/dmitrijs2005/shopfront/internal/client/config"
	"github.com/dmitrijs2005/shopfront/internal/client/kvstore"
	"github.com/dmitrijs2005/shopfront/internal/client/preference"
	"github.com/dmitrijs2005/shopfront/internal/client/resources"
	"github.com/dmitrijs2005/shopfront/internal/client/router"
	"github.com/dmitrijs2005/shopfront/internal/client/session"
	"github.com/dmitrijs2005/shopfront/internal/filex"
	"github.com/dmitrijs2005/shopfront/internal/logging"
)

// LocalStore is the key-value surface plus the bulk delete used by "reset".
type LocalStore interface {
	kvstore.Store
	Clear(ctx context.Context, keys ...string) error
}

type App struct {
	config *config.Config
	logger logging.Logger

	kv      LocalStore
	api     *resources.Set
	session *session.Store
	cart    *cartcount.Counter
	prefs   *preference.Container
	routes  *router.Table
	guard   *router.Guard

	reader *bufio.Reader
	out    io.Writer
	closer io.Closer
}

// NewApp opens the local store named in c and connects the API client.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewText(os.Stderr, c.LogLevel)

	dsn, err := filex.EnsureDataFile(c.DataFile)
	if err != nil {
		return nil, err
	}

	kv, err := kvstore.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("error initializing local store: %w", err)
	}

	client, err := api.New(api.Options{
		BaseURL: c.APIBaseURL,
		Timeout: c.RequestTimeout,
		Tokens:  api.StoreTokens{Store: kv},
		Logger:  logger,
	})
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	a := newApp(ctx, c, kv, client, logger, bufio.NewReader(os.Stdin), os.Stdout)
	a.closer = kv
	return a, nil
}

// newApp wires the containers over an already built store and transport.
func newApp(ctx context.Context, c *config.Config, kv LocalStore, r resources.Requester, logger logging.Logger, in *bufio.Reader, out io.Writer) *App {
	set := resources.New(r)

	return &App{
		config:  c,
		logger:  logger,
		kv:      kv,
		api:     set,
		session: session.New(kv, set.Users, set.Auth, logger),
		cart:    cartcount.New(kv, set.Carts, logger),
		prefs:   preference.Load(ctx, kv, logger),
		routes:  router.NewTable(router.DefaultRoutes),
		guard:   router.NewGuard(kv),
		reader:  in,
		out:     out,
	}
}

// Boot restores the session from the stored credential and then derives
// the cart count. It runs once before the first command.
func (a *App) Boot(ctx context.Context) {
	a.session.InitializeSession(ctx)
	a.cart.RefreshCount(ctx)
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.Boot(ctx)

	fmt.Fprintln(a.out, "Welcome to the storefront (type 'help' for commands)")
	if u, ok := a.session.User(); ok {
		fmt.Fprintf(a.out, "Signed in as %s\n", u.Name)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(lineReader{r: a.reader}))
}

func (a *App) Close() {
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing local store failed", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// requireMember gates commands that act on the signed-in user's data.
func (a *App) requireMember() error {
	if !a.session.Ready() {
		return errNotReady
	}
	if !a.isLoggedIn() {
		return errLoginRequired
	}
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
