// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var _ Server = (*server)(nil)

// Server serves the registry API over HTTP.
type Server interface {
	// AddRoute serves [handler] at /[base][endpoint].
	AddRoute(handler http.Handler, base, endpoint string) error
	// Dispatch serves until Shutdown is called.
	Dispatch() error
	// Handler serves every route with the configured middleware.
	Handler() http.Handler
	Shutdown() error
}

type HTTPConfig struct {
	ReadTimeout       time.Duration `json:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeHeaderTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout"`
}

// Options are the listener settings taken from the node config.
type Options struct {
	HTTP            HTTPConfig
	AllowedOrigins  []string
	AllowedHosts    []string
	ShutdownTimeout time.Duration
}

// Wrapper decorates the handler serving every route.
type Wrapper interface {
	WrapHandler(h http.Handler) http.Handler
}

type server struct {
	log      logging.Logger
	opts     Options
	router   *router
	srv      *http.Server
	listener net.Listener
}

// New returns a server for [listener]. Requests pass through [wrappers] in
// order, then gzip, CORS and the host filter before reaching a route.
func New(log logging.Logger, listener net.Listener, opts Options, wrappers ...Wrapper) (Server, error) {
	router := newRouter()
	handler := gziphandler.GzipHandler(cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
	}).Handler(filterInvalidHosts(router, opts.AllowedHosts)))
	for _, wrapper := range wrappers {
		handler = wrapper.WrapHandler(handler)
	}

	log.Info("API created",
		zap.Strings("allowedOrigins", opts.AllowedOrigins),
		zap.Strings("allowedHosts", opts.AllowedHosts),
		zap.Stringer("address", listener.Addr()),
	)
	return &server{
		log:    log,
		opts:   opts,
		router: router,
		srv: &http.Server{
			Handler:           handler,
			ReadTimeout:       opts.HTTP.ReadTimeout,
			ReadHeaderTimeout: opts.HTTP.ReadHeaderTimeout,
			WriteTimeout:      opts.HTTP.WriteTimeout,
			IdleTimeout:       opts.HTTP.IdleTimeout,
		},
		listener: listener,
	}, nil
}

func (s *server) Dispatch() error {
	return s.srv.Serve(s.listener)
}

func (s *server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *server) AddRoute(handler http.Handler, base, endpoint string) error {
	var url string
	if len(base) > 0 {
		url = "/" + base
	}
	s.log.Info("adding route",
		zap.String("url", url),
		zap.String("endpoint", endpoint),
	)
	return s.router.AddRouter(url, endpoint, handler)
}

func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	// Close drops connections a timed out Shutdown left open.
	_ = s.srv.Close()
	return err
}
