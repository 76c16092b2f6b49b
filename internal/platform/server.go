package platform

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dalfonso89/multitool-api/internal/logger"
)

// NewShutdownContext creates a context that is canceled when the process receives a shutdown signal
func NewShutdownContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}

// Serve runs server until ctx is done, then gives outstanding requests
// shutdownTimeout to complete. A zero timeout waits for them indefinitely.
func Serve(ctx context.Context, server *http.Server, shutdownTimeout time.Duration, log *logger.Logger) error {
	group, groupContext := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting server on " + server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupContext.Done()
		log.Info("Shutting down server...")

		shutdownContext := context.Background()
		if shutdownTimeout > 0 {
			var cancel context.CancelFunc
			shutdownContext, cancel = context.WithTimeout(shutdownContext, shutdownTimeout)
			defer cancel()
		}
		return server.Shutdown(shutdownContext)
	})

	if err := group.Wait(); err != nil {
		return err
	}

	log.Info("Server exited")
	return nil
}
