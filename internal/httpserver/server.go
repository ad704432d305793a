// Package httpserver hosts the admin API over chi.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skulk-project/skulk/internal/config"
	"github.com/skulk-project/skulk/internal/httpserver/deps"
	"github.com/skulk-project/skulk/internal/httpserver/mw"
	"github.com/skulk-project/skulk/internal/httpserver/routes"
	"github.com/skulk-project/skulk/internal/logger"
)

// Server is the admin API process: a chi router inside an http.Server
// with the lifecycle methods the serve command drives.
type Server struct {
	http *http.Server
	log  logger.Logger
}

// Handler work is capped per request; xclip and pgrep run with their
// own shorter timeouts, so the cap only catches a wedged handler.
const (
	handlerTimeout    = 15 * time.Second
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

// New assembles the router, middleware chain, and listener config.
func New(cfg *config.Config, log logger.Logger, d deps.Deps) *Server {
	r := chi.NewRouter()
	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handlerTimeout))
	r.Use(mw.Log(log))

	routes.Mount(r, d)

	return &Server{
		log: log,
		http: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           r,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       handlerTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			MaxHeaderBytes:    1 << 20,
		},
	}
}

// Start blocks serving requests until Stop is called or the listener
// fails.
func (s *Server) Start() error {
	s.log.Infof("admin API listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests within the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("admin API shutting down")
	return s.http.Shutdown(ctx)
}
