// Package sandbox is a development stand-in for the catalog backend. It
// serves the list, item and health endpoints over a bbolt repository.
package sandbox

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"catalogadmin/internal/logging"
	"catalogadmin/internal/store"
	"catalogadmin/internal/types"
)

type Server struct {
	addr    string
	version string
	repo    store.Repository
	logger  logging.Logger
	server  *http.Server
}

func New(addr, version string, repo store.Repository, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{
		addr:    addr,
		version: version,
		repo:    repo,
		logger:  logger,
	}
}

// Handler returns the routed API wrapped in request logging.
func (s *Server) Handler() http.Handler {
	api := &API{
		Version: s.version,
		Catalog: s.repo.Catalog(),
		Logger:  s.logger,
	}
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)
	return withAccessLog(s.logger, mux)
}

// Run serves until ctx is canceled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("sandbox_listening", logging.F("addr", "http://"+listener.Addr().String()))
		errCh <- s.server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("sandbox_stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Prepare loads fixtures into an empty catalog, falling back to generated
// seed data when no fixtures path is given.
func Prepare(ctx context.Context, repo store.Repository, fixtures string, seed int, logger logging.Logger) error {
	if logger == nil {
		logger = logging.Nop()
	}
	catalog := repo.Catalog()
	if fixtures != "" {
		empty, err := isEmpty(ctx, catalog)
		if err != nil {
			return err
		}
		if !empty {
			return nil
		}
		snap, err := store.ReadSnapshot(fixtures)
		if err != nil {
			return err
		}
		if err := store.Import(ctx, catalog, snap); err != nil {
			return err
		}
		logger.Info("sandbox_fixtures_loaded",
			logging.F("path", fixtures),
			logging.F("products", len(snap.Products)),
		)
		return nil
	}
	seeded, err := Seed(ctx, catalog, seed, time.Now())
	if err != nil {
		return err
	}
	if seeded {
		logger.Info("sandbox_seeded", logging.F("products", seed))
	}
	return nil
}

func isEmpty(ctx context.Context, catalog store.CatalogStore) (bool, error) {
	count, err := catalog.Count(ctx, types.ResourceCollections)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
