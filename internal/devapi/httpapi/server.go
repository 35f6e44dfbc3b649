// Package httpapi serves the storefront REST API over the in-memory store.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/shopfront/internal/devapi/store"
	"github.com/dmitrijs2005/shopfront/internal/logging"
	"github.com/gorilla/mux"
)

type Server struct {
	address   string
	store     *store.Store
	logger    logging.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewServer(addr string, s *store.Store, l logging.Logger, secretKey string, tokenTTL time.Duration) *Server {
	return &Server{
		address:   addr,
		store:     s,
		logger:    l.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

// Router builds the route table. Product reads and the login endpoints are
// public; everything else needs a bearer token.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "route not found")
	})

	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/google-login", s.handleGoogleLogin).Methods(http.MethodPost)
	r.HandleFunc("/collection/product", s.handleListProducts).Methods(http.MethodGet)
	r.HandleFunc("/collection/product/{id:[0-9]+}", s.handleGetProduct).Methods(http.MethodGet)

	p := r.NewRoute().Subrouter()
	p.Use(s.authMiddleware)

	p.HandleFunc("/phone/send-verification", s.handleSendVerification).Methods(http.MethodPost)
	p.HandleFunc("/phone/verify-code", s.handleVerifyCode).Methods(http.MethodPost)

	p.HandleFunc("/collection/user/me", s.handleMe).Methods(http.MethodGet)
	p.HandleFunc("/collection/user/{id:[0-9]+}", s.handleUpdateUser).Methods(http.MethodPut)

	p.HandleFunc("/collection/product", s.handleCreateProduct).Methods(http.MethodPost)
	p.HandleFunc("/collection/product/{id:[0-9]+}", s.handleUpdateProduct).Methods(http.MethodPut)
	p.HandleFunc("/collection/product/{id:[0-9]+}", s.handleDeleteProduct).Methods(http.MethodDelete)

	p.HandleFunc("/collection/cart/total", s.handleCartTotal).Methods(http.MethodGet)
	p.HandleFunc("/collection/cart", s.handleListCart).Methods(http.MethodGet)
	p.HandleFunc("/collection/cart", s.handleAddCart).Methods(http.MethodPost)
	p.HandleFunc("/collection/cart/{id:[0-9]+}", s.handleGetCart).Methods(http.MethodGet)
	p.HandleFunc("/collection/cart/{id:[0-9]+}", s.handleUpdateCart).Methods(http.MethodPut)
	p.HandleFunc("/collection/cart/{id:[0-9]+}", s.handleDeleteCart).Methods(http.MethodDelete)

	p.HandleFunc("/collection/address", s.handleListAddresses).Methods(http.MethodGet)
	p.HandleFunc("/collection/address", s.handleCreateAddress).Methods(http.MethodPost)
	p.HandleFunc("/collection/address/{id:[0-9]+}", s.handleGetAddress).Methods(http.MethodGet)
	p.HandleFunc("/collection/address/{id:[0-9]+}", s.handleUpdateAddress).Methods(http.MethodPut)
	p.HandleFunc("/collection/address/{id:[0-9]+}", s.handleDeleteAddress).Methods(http.MethodDelete)

	p.HandleFunc("/collection/order", s.handleListOrders).Methods(http.MethodGet)
	p.HandleFunc("/collection/order", s.handleCreateOrder).Methods(http.MethodPost)
	p.HandleFunc("/collection/order/{id:[0-9]+}", s.handleGetOrder).Methods(http.MethodGet)
	p.HandleFunc("/collection/order/{id:[0-9]+}", s.handleUpdateOrder).Methods(http.MethodPut)
	p.HandleFunc("/collection/order/{id:[0-9]+}", s.handleDeleteOrder).Methods(http.MethodDelete)

	return r
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
