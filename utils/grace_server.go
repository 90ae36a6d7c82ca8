package utils

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	defaultReadTimeout     = 60 * time.Second
	defaultWriteTimeout    = defaultReadTimeout
	defaultShutdownTimeout = 30 * time.Second
)

// Server wraps http.Server with signal-driven graceful shutdown and ordered
// teardown hooks for process-wide resources such as the store connection.
type Server struct {
	*http.Server

	hooks        []func(context.Context)
	signalChan   chan os.Signal
	shutdownChan chan struct{}
}

// NewServer creates a Server with timeouts and handler.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		Server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
		},
		signalChan:   make(chan os.Signal, 1),
		shutdownChan: make(chan struct{}),
	}
}

// OnShutdown registers a teardown hook to run after in-flight requests drain.
// Hooks run in registration order.
func (srv *Server) OnShutdown(hook func(context.Context)) {
	srv.hooks = append(srv.hooks, hook)
}

// ListenAndServe serves until SIGTERM or SIGINT, then drains connections and
// runs the teardown hooks. A clean shutdown returns nil.
func (srv *Server) ListenAndServe() error {
	go srv.handleSignals()

	err := srv.Server.ListenAndServe()
	// Wait until Shutdown and all hooks finished.
	<-srv.shutdownChan

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (srv *Server) handleSignals() {
	signal.Notify(srv.signalChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-srv.signalChan
	Sugar.Infof("received %s, graceful shutting down HTTP server", sig)

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		Sugar.Errorf("HTTP server shutdown error: %v", err)
	} else {
		Sugar.Info("HTTP server shutdown success")
	}

	for _, hook := range srv.hooks {
		hook(ctx)
	}
	close(srv.shutdownChan)
}
