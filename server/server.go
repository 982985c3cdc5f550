// File: server/server.go
// Package server implements the dispatcher: it owns the listening socket,
// the worker pool, and the route table, and routes each accepted connection
// through a pool job.
// License: Apache-2.0

package server

import (
	"net"
	"regexp"
	"runtime"
	"sync"

	"github.com/httpool/httpool/api"
	"github.com/httpool/httpool/core/concurrency"
	"github.com/httpool/httpool/transport/tcp"
)

// route is one (pattern, handler) pair. Matching is first-match-wins over
// registration order; there is no specificity scoring.
type route struct {
	pattern *regexp.Regexp
	handler Handler
}

// Server dispatches accepted connections to registered handlers via the
// worker pool. Registration must complete before Run; the route table is
// read-only afterwards and shared across workers without locking.
type Server struct {
	cfg      *Config
	ln       net.Listener
	executor api.Executor

	routes         []route
	defaultHandler DefaultHandler
	errorHandler   ErrorHandler
	middleware     []Middleware

	shutdownCh chan struct{}
	closeOnce  sync.Once
}

// New binds the listening socket and constructs the worker pool. A bind
// failure aborts construction.
func New(cfg *Config, opts ...ServerOption) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	ln, err := tcp.Listen(tcp.ListenerConfig{Addr: cfg.ListenAddr, ReuseAddr: cfg.ReuseAddr})
	if err != nil {
		return nil, api.WrapError(api.ErrCodeBind, "bind listener", err).WithContext("addr", cfg.ListenAddr)
	}

	return &Server{
		cfg:        cfg,
		ln:         ln,
		executor:   concurrency.New(cfg.Workers),
		shutdownCh: make(chan struct{}),
	}, nil
}

// Handle registers a handler for targets matching pattern. pattern is a
// regular expression; registration order decides match priority. A bad
// pattern is a programmer error and panics, as with regexp.MustCompile.
func (s *Server) Handle(pattern string, h Handler) {
	s.routes = append(s.routes, route{pattern: regexp.MustCompile(pattern), handler: h})
}

// HandleDefault registers the fallback handler invoked when no pattern
// matches.
func (s *Server) HandleDefault(h DefaultHandler) {
	s.defaultHandler = h
}

// HandleError registers the observability sink for transport and parse
// failures.
func (s *Server) HandleError(h ErrorHandler) {
	s.errorHandler = h
}

// Use appends middleware wrapping every pattern handler, outermost first.
func (s *Server) Use(mw ...Middleware) {
	s.middleware = append(s.middleware, mw...)
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// NumWorkers returns the size of the server's worker pool.
func (s *Server) NumWorkers() int {
	return s.executor.NumWorkers()
}

// match returns the first registered handler whose pattern matches target,
// with its captures, or nil if none matches.
func (s *Server) match(target string) (Handler, []string) {
	for _, rt := range s.routes {
		if captures := rt.pattern.FindStringSubmatch(target); captures != nil {
			return rt.handler, captures
		}
	}
	return nil, nil
}

// routeError hands err to the registered error handler, if any. Failures
// without a registered handler are dropped.
func (s *Server) routeError(err error) {
	if s.errorHandler != nil {
		s.errorHandler(err)
	}
}
