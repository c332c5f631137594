// README: API server lifecycle: listen until the context ends, then drain.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"travelapi/internal/config"
	"travelapi/internal/contextx"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	srv *http.Server
}

func NewServer(cfg config.HTTP, handler http.Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}}
}

// Run blocks until ctx is cancelled or the listener fails. In-flight requests
// get shutdownTimeout to finish.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		contextx.LoggerFromContextOrDefault(ctx).Info("api listening", slog.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
