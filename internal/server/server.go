// Package server owns the HTTP listener lifecycle and the startup schema
// policy.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/logger"
)

const defaultShutdownTimeout = 10 * time.Second

// Options configures Run.
type Options struct {
	Addr    string
	Handler http.Handler

	// Listener overrides Addr when set.
	Listener net.Listener

	// EnsureSchema runs once at startup and once more after RecheckDelay.
	// Its errors are logged and never stop the server.
	EnsureSchema func(context.Context) error

	// StrictSchema waits for the first EnsureSchema run before serving.
	// Otherwise requests are accepted while it runs.
	StrictSchema bool
	RecheckDelay time.Duration

	ShutdownTimeout time.Duration
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// in-flight requests.
func Run(ctx context.Context, opts Options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.EnsureSchema != nil {
		if opts.StrictSchema {
			runSchema(ctx, opts.EnsureSchema, "startup")
		} else {
			go runSchema(ctx, opts.EnsureSchema, "startup")
		}

		if opts.RecheckDelay > 0 {
			recheck := time.AfterFunc(opts.RecheckDelay, func() {
				runSchema(ctx, opts.EnsureSchema, "recheck")
			})
			defer recheck.Stop()
		}
	}

	ln := opts.Listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", opts.Addr); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Handler:           opts.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func runSchema(ctx context.Context, fn func(context.Context) error, phase string) {
	if ctx.Err() != nil {
		return
	}
	if err := fn(ctx); err != nil {
		logger.Error("server: schema setup failed, continuing", "phase", phase, "error", err)
		return
	}
	logger.Info("server: schema ready", "phase", phase)
}
