// Package server exposes the catalog query engine over HTTP.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/carpicker/internal/engine"
	"github.com/Veraticus/carpicker/internal/model"
)

// ServiceName names the spans emitted by the OTel middleware.
const ServiceName = "carpicker"

const healthPath = "/api/health"

// Loader fetches a fresh catalog and reports where it came from.
type Loader func(ctx context.Context) ([]model.Vehicle, string, error)

// Options configures a Server.
type Options struct {
	Logger *slog.Logger
	// TLSConfig, when set, serves HTTPS instead of plain HTTP.
	TLSConfig  *tls.Config
	Addr       string
	CORSOrigin string
	RateLimit  float64
	RateBurst  int
}

// Server answers catalog queries against a shared snapshot.
type Server struct {
	engine   *engine.Engine
	snapshot *engine.Snapshot
	loader   Loader
	logger   *slog.Logger
	opts     Options
}

// New creates a server. loader may be nil, in which case catalog reloads
// are refused.
func New(e *engine.Engine, snapshot *engine.Snapshot, loader Loader, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.CORSOrigin == "" {
		opts.CORSOrigin = "*"
	}
	return &Server{
		engine:   e,
		snapshot: snapshot,
		loader:   loader,
		logger:   opts.Logger,
		opts:     opts,
	}
}

// Handler returns the HTTP handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/predict", s.handlePredict)
	mux.HandleFunc("GET "+healthPath, s.handleHealth)
	mux.HandleFunc("POST /api/catalog/reload", s.handleReload)

	return Chain(mux,
		Logger(s.logger),
		Recover(s.logger),
		CORS(s.opts.CORSOrigin),
		RateLimit(s.opts.RateLimit, s.opts.RateBurst),
		OTel(ServiceName),
	)
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		TLSConfig:         s.opts.TLSConfig,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server starting", "addr", s.opts.Addr, "tls", srv.TLSConfig != nil)
		if srv.TLSConfig != nil {
			errCh <- srv.ListenAndServeTLS("", "")
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
