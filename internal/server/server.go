// Package server owns the HTTP listener: router construction, middleware
// stack, timeouts and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/devops-greeter/internal/config"
	"github.com/janisto/devops-greeter/internal/http/routes"
	applog "github.com/janisto/devops-greeter/internal/platform/logging"
	appmiddleware "github.com/janisto/devops-greeter/internal/platform/middleware"
	"github.com/janisto/devops-greeter/internal/platform/respond"
)

const (
	apiTitle = "DevOps Greeter"
	docsPath = "/api-docs"

	maxBodyBytes    = 1 << 20 // 1 MB
	shutdownTimeout = 10 * time.Second
)

// Server is the process-wide listener. Construct it once with New.
type Server struct {
	cfg config.Config
	srv *http.Server
}

// New builds the router and wraps it in an http.Server bound to cfg.Addr().
func New(cfg config.Config, version string) *Server {
	return &Server{
		cfg: cfg,
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewRouter(cfg, version),
			ReadTimeout:       5 * time.Second,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    64 << 10, // 64 KB
			ErrorLog:          zap.NewStdLog(applog.Logger().Named("http")),
		},
	}
}

// NewRouter returns the complete handler tree. OpenAPI, docs and schema
// routes exist only in debug mode; otherwise every path but / and /health is 404.
func NewRouter(cfg config.Config, version string) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP / X-Forwarded-For; deploy behind a proxy that sets them.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(maxBodyBytes),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(cfg.Debug),
		chimiddleware.GetHead,
	)

	humaCfg := huma.DefaultConfig(apiTitle, version)
	if cfg.Debug {
		humaCfg.DocsPath = docsPath
	} else {
		humaCfg.OpenAPIPath = ""
		humaCfg.DocsPath = ""
		humaCfg.SchemasPath = ""
	}
	api := humachi.New(router, humaCfg)

	routes.Register(router, api)
	return router
}

// Handler exposes the router, mainly for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully, giving in-flight requests up to shutdownTimeout to finish.
// It returns early with the error if the listener fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serveErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening",
			zap.String("addr", ln.Addr().String()),
			zap.Bool("debug", s.cfg.Debug),
		)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		applog.LogInfo(ctx, "shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	applog.LogInfo(ctx, "server exited")
	return nil
}
