package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/shopfront/internal/client/api"
	"github.com/dmitrijs2005/shopfront/internal/client/config"
	"github.com/dmitrijs2005/shopfront/internal/client/kvstore"
	"github.com/dmitrijs2005/shopfront/internal/client/models"
	"github.com/dmitrijs2005/shopfront/internal/common"
	"github.com/dmitrijs2005/shopfront/internal/devapi/auth"
	"github.com/dmitrijs2005/shopfront/internal/devapi/httpapi"
	"github.com/dmitrijs2005/shopfront/internal/devapi/store"
	"github.com/dmitrijs2005/shopfront/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// syncBuffer lets the test read what the server goroutines log.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// lazyReader produces its content on first read.
type lazyReader struct {
	fn func() string
	r  io.Reader
}

func (l *lazyReader) Read(p []byte) (int, error) {
	if l.r == nil {
		l.r = strings.NewReader(l.fn())
	}
	return l.r.Read(p)
}

type env struct {
	t         *testing.T
	srv       *httptest.Server
	kv        *kvstore.MemoryStore
	serverLog *syncBuffer
}

func newEnv(t *testing.T) *env {
	t.Helper()

	s := store.New()
	hash, err := auth.HashPassword(store.DemoPassword)
	require.NoError(t, err)
	require.NoError(t, store.Seed(s, hash))

	logBuf := &syncBuffer{}
	api := httpapi.NewServer("", s, logging.NewJSON(logBuf, "info"), "e2e-secret", time.Hour)
	srv := httptest.NewServer(api.Router())
	t.Cleanup(srv.Close)

	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(store.DemoPassword), nil }
	t.Cleanup(func() { readPassword = old })

	return &env{t: t, srv: srv, kv: kvstore.NewMemoryStore(), serverLog: logBuf}
}

// app builds a fresh App over the shared local store, as a restarted client
// would be.
func (e *env) app(in io.Reader) (*App, *bytes.Buffer) {
	e.t.Helper()

	client, err := api.New(api.Options{BaseURL: e.srv.URL, Tokens: api.StoreTokens{Store: e.kv}})
	require.NoError(e.t, err)

	if in == nil {
		in = strings.NewReader("")
	}
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()

	a := newApp(context.Background(), cfg, e.kv, client, logging.Nop(), bufio.NewReader(in), out)
	a.Boot(context.Background())
	return a, out
}

// unbooted builds an App like app does but skips Boot.
func (e *env) unbooted() (*App, *bytes.Buffer) {
	e.t.Helper()

	client, err := api.New(api.Options{BaseURL: e.srv.URL, Tokens: api.StoreTokens{Store: e.kv}})
	require.NoError(e.t, err)

	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return newApp(context.Background(), cfg, e.kv, client, logging.Nop(), bufio.NewReader(strings.NewReader("")), out), out
}

func (e *env) credential() (string, bool) {
	v, ok, err := e.kv.Get(context.Background(), common.AccessTokenKey)
	require.NoError(e.t, err)
	return v, ok
}

func TestApp_GuestBoot(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	a, out := e.app(nil)

	assert.False(t, a.isLoggedIn())
	assert.True(t, a.session.Ready())
	_, known := a.cart.Count()
	assert.False(t, known)
	assert.Equal(t, "(guest light/noir)", a.getStatus())

	require.NoError(t, a.Shop(ctx, nil))
	assert.Contains(t, out.String(), "Kopi Toraja 250g")
	assert.Contains(t, out.String(), "Rp 85.000")
	assert.Contains(t, out.String(), "sold out")

	out.Reset()
	require.NoError(t, a.Cart(ctx, nil))
	assert.Contains(t, out.String(), "Please log in", "protected view redirects")

	assert.ErrorIs(t, a.CartAdd(ctx, []string{"1", "1"}), errLoginRequired)

	// detail views are not guarded; the server refuses instead
	err := a.Order(ctx, []string{"1"})
	assert.Equal(t, "Error 401: Missing access token", describe(err))
}

func TestApp_LoginShopReloadLogout(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	a, out := e.app(nil)
	require.NoError(t, a.Login(ctx, []string{store.DemoEmail}))
	assert.Contains(t, out.String(), "Welcome, Demo Shopper!")

	cred, ok := e.credential()
	require.True(t, ok)
	assert.Equal(t, a.session.Credential(), cred)

	n, known := a.cart.Count()
	require.True(t, known)
	assert.Zero(t, n)

	require.NoError(t, a.CartAdd(ctx, []string{"1", "2"}))
	require.NoError(t, a.CartAdd(ctx, []string{"2", "1"}))
	n, _ = a.cart.Count()
	assert.Equal(t, 2, n)
	assert.Equal(t, "(Demo Shopper cart:2 light/noir)", a.getStatus())

	out.Reset()
	require.NoError(t, a.Go(ctx, []string{"/cart"}))
	assert.Contains(t, out.String(), "Kopi Toraja 250g")
	assert.Contains(t, out.String(), "Total: Rp 188.500")

	// restart: the stored credential restores the session and the count
	b, _ := e.app(nil)
	assert.True(t, b.isLoggedIn())
	n, known = b.cart.Count()
	require.True(t, known)
	assert.Equal(t, 2, n)

	require.NoError(t, b.Logout(ctx, nil))
	assert.False(t, b.isLoggedIn())
	_, known = b.cart.Count()
	assert.False(t, known)
	_, ok = e.credential()
	assert.False(t, ok)
}

func TestApp_WrongPasswordKeepsGuest(t *testing.T) {
	e := newEnv(t)
	readPassword = func(int) ([]byte, error) { return []byte("nope"), nil }

	a, _ := e.app(strings.NewReader(store.DemoEmail + "\n"))
	err := a.Login(context.Background(), nil)

	assert.Equal(t, "Error 401: Invalid email or password", describe(err))
	assert.False(t, a.isLoggedIn())
	_, ok := e.credential()
	assert.False(t, ok)
}

func TestApp_RevokedCredentialFailsClosed(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.kv.Set(context.Background(), common.AccessTokenKey, "forged"))

	a, _ := e.app(nil)

	assert.False(t, a.isLoggedIn())
	assert.True(t, a.session.Ready())
	_, ok := e.credential()
	assert.False(t, ok, "rejected credential is removed")
}

func TestApp_GoogleLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, out := e.app(nil)

	assert.IsType(t, usageError(""), a.GoogleLogin(ctx, nil))
	require.NoError(t, a.GoogleLogin(ctx, []string{"google:sari@example.com"}))
	assert.Contains(t, out.String(), "Welcome, sari!")
	assert.True(t, a.isLoggedIn())
}

func TestApp_Checkout(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, out := e.app(nil)
	require.NoError(t, a.Login(ctx, []string{store.DemoEmail}))

	addr, err := a.api.Addresses.Create(ctx, models.Address{Label: "home", Street: "Jl. Pemuda 9", City: "Semarang"})
	require.NoError(t, err)
	require.NoError(t, a.CartAdd(ctx, []string{"3", "1"}))

	err = a.Checkout(ctx, []string{"9999"})
	assert.True(t, strings.HasPrefix(describe(err), "Error 400: "), describe(err))
	n, _ := a.cart.Count()
	assert.Equal(t, 1, n)

	out.Reset()
	require.NoError(t, a.Checkout(ctx, []string{strconv.FormatInt(addr.ID, 10)}))
	assert.Contains(t, out.String(), "status pending")
	n, _ = a.cart.Count()
	assert.Zero(t, n)

	out.Reset()
	require.NoError(t, a.Orders(ctx, nil))
	assert.Contains(t, out.String(), "Rp 150.000")

	orders, err := a.api.Orders.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	out.Reset()
	require.NoError(t, a.Order(ctx, []string{strconv.FormatInt(orders[0].ID, 10)}))
	assert.Contains(t, out.String(), "Batik Tote Bag")
	assert.Contains(t, out.String(), "150.000,00")

	out.Reset()
	require.NoError(t, a.Addresses(ctx, nil))
	assert.Contains(t, out.String(), "*["+strconv.FormatInt(addr.ID, 10)+"] home")
}

func TestApp_VerifyPhone(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	code := &lazyReader{fn: func() string {
		for _, line := range strings.Split(e.serverLog.String(), "\n") {
			if gjson.Get(line, "msg").String() == "verification code issued" {
				return gjson.Get(line, "code").String() + "\n"
			}
		}
		return "\n"
	}}

	a, out := e.app(code)
	require.NoError(t, a.Login(ctx, []string{store.DemoEmail}))
	require.NoError(t, a.VerifyPhone(ctx, []string{"+62812"}))
	assert.Contains(t, out.String(), "Phone +62812 verified")

	out.Reset()
	require.NoError(t, a.Me(ctx, nil))
	assert.Contains(t, out.String(), "Phone: +62812 (verified)")
}

func TestApp_PreferencesAndReset(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, out := e.app(nil)

	require.NoError(t, a.Dark(ctx, nil))
	assert.Contains(t, out.String(), "Dark theme on")
	raw, ok, err := e.kv.Get(ctx, common.ThemeSettingsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"darkTheme":true}`, raw)

	require.NoError(t, a.Preset(ctx, []string{"teal"}))
	assert.Error(t, a.Preset(ctx, []string{"chartreuse"}))
	assert.Equal(t, "(guest dark/teal)", a.getStatus())

	// preferences survive a restart
	b, _ := e.app(nil)
	assert.Equal(t, "(guest dark/teal)", b.getStatus())

	require.NoError(t, b.Login(ctx, []string{store.DemoEmail}))
	require.NoError(t, b.Reset(ctx, nil))
	assert.False(t, b.isLoggedIn())
	assert.Equal(t, "(guest light/noir)", b.getStatus())
	_, ok = e.credential()
	assert.False(t, ok)
}

func TestApp_GoUnknownPath(t *testing.T) {
	e := newEnv(t)
	a, out := e.app(nil)

	assert.Error(t, a.Go(context.Background(), []string{"/admin"}))
	assert.IsType(t, usageError(""), a.Go(context.Background(), nil))

	require.NoError(t, a.Go(context.Background(), []string{"/"}))
	assert.Contains(t, out.String(), "Hello, guest!")
}

func TestApp_ProtectedCommandsWaitForBoot(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.kv.Set(ctx, common.AccessTokenKey, "forged"))
	before := strings.Count(e.serverLog.String(), "\n")

	a, out := e.unbooted()

	assert.ErrorIs(t, a.Cart(ctx, nil), errNotReady)
	assert.ErrorIs(t, a.Orders(ctx, nil), errNotReady)
	assert.ErrorIs(t, a.CartAdd(ctx, []string{"1", "1"}), errNotReady)
	assert.ErrorIs(t, a.Checkout(ctx, []string{"1"}), errNotReady)
	assert.ErrorIs(t, a.Addresses(ctx, nil), errNotReady)
	assert.ErrorIs(t, a.VerifyPhone(ctx, []string{"+62800"}), errNotReady)
	assert.Empty(t, out.String())
	assert.Equal(t, before, strings.Count(e.serverLog.String(), "\n"), "nothing reached the server")

	a.Boot(ctx)
	require.True(t, a.session.Ready())
	require.NoError(t, a.Cart(ctx, nil))
	assert.Contains(t, out.String(), "Please log in")
}

// scriptedRequester answers by path; an error queued for a path is returned
// once it is reached in the script.
type scriptedRequester struct {
	mu     sync.Mutex
	bodies map[string]string
	errs   map[string]error
	calls  []string
}

func (s *scriptedRequester) answer(path string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, path)
	if err := s.errs[path]; err != nil {
		return err
	}
	body, ok := s.bodies[path]
	if !ok {
		return &api.HTTPError{Status: 404, Message: "Not found"}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(body), out)
}

func (s *scriptedRequester) fail(path string, err error) {
	s.mu.Lock()
	s.errs[path] = err
	s.mu.Unlock()
}

func (s *scriptedRequester) Get(_ context.Context, path string, _ url.Values, out any) error {
	return s.answer(path, out)
}

func (s *scriptedRequester) Post(_ context.Context, path string, _, out any) error {
	return s.answer(path, out)
}

func (s *scriptedRequester) Put(_ context.Context, path string, _, out any) error {
	return s.answer(path, out)
}

func (s *scriptedRequester) Delete(_ context.Context, path string, out any) error {
	return s.answer(path, out)
}

func TestApp_VerifyPhoneProfileRefreshFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, common.AccessTokenKey, "tok-123"))

	r := &scriptedRequester{
		bodies: map[string]string{
			"/collection/user/me":      `{"id":1,"name":"A","email":"a@shop.test"}`,
			"/collection/cart/total":   `{"total":0}`,
			"/phone/send-verification": `{"success":true,"message":"Code sent"}`,
			"/phone/verify-code":       `{"success":true}`,
		},
		errs: map[string]error{},
	}

	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	a := newApp(ctx, cfg, kv, r, logging.Nop(), bufio.NewReader(strings.NewReader("123456\n")), out)
	a.Boot(ctx)
	require.True(t, a.isLoggedIn())

	r.fail("/collection/user/me", &api.TransportError{Method: "GET", URL: "/collection/user/me", Err: errors.New("dial tcp: refused")})

	require.NoError(t, a.VerifyPhone(ctx, []string{"+62800"}))
	assert.Contains(t, out.String(), "Phone +62800 verified")
	assert.Contains(t, out.String(), "Profile not refreshed: Error 500: Network error")

	assert.True(t, a.isLoggedIn(), "a failed profile refresh does not sign out")
	u, ok := a.session.User()
	require.True(t, ok)
	assert.Equal(t, "A", u.Name)
	v, ok, err := kv.Get(ctx, common.AccessTokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", v)
	assert.Equal(t, "/collection/user/me", r.calls[len(r.calls)-1])
}

type failingRemoveKV struct {
	*kvstore.MemoryStore
}

func (f failingRemoveKV) Remove(context.Context, string) error {
	return errors.New("locked")
}

func TestApp_ResetLogsCredentialRemovalFailure(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	client, err := api.New(api.Options{BaseURL: e.srv.URL, Tokens: api.StoreTokens{Store: e.kv}})
	require.NoError(t, err)
	logBuf := &syncBuffer{}
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()

	a := newApp(ctx, cfg, failingRemoveKV{MemoryStore: e.kv}, client, logging.NewJSON(logBuf, "info"), bufio.NewReader(strings.NewReader("")), out)
	a.Boot(ctx)
	require.NoError(t, a.Login(ctx, []string{store.DemoEmail}))

	require.NoError(t, a.Reset(ctx, nil))
	assert.Contains(t, out.String(), "Local data cleared")
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, logBuf.String(), "failed to clear session")
	assert.Contains(t, logBuf.String(), "locked")
	_, ok := e.credential()
	assert.False(t, ok, "Clear already wiped the store")
}
