package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/desertthunder/tunes/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the player behind the HTTP API until the context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	c, err := r.loadCatalog()
	if err != nil {
		return err
	}

	addr := r.config.Server.Addr
	if cmd.IsSet("addr") {
		addr = cmd.String("addr")
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	player := r.newPlayer()
	defer player.Close()

	router := server.NewBasicRouter()
	router.Use(server.Recoverer(r.logger), server.RequestLogger(r.logger))
	router.Handler(server.NewPlayerHandler(player, c, r.logger))
	r.logger.Debug("routes registered", "routes", router.Routes())

	httpServer := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("starting player API", "addr", listener.Addr().String(), "tracks", c.Len())
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	r.writePlain("→ Listening on http://%s\n", listener.Addr())

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Closing the player first ends open event streams so Shutdown doesn't wait on them.
	player.Close()

	timeout := r.config.Server.ShutdownTimeout.Duration
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	r.logger.Info("player API stopped")
	return r.writePlain("✓ Server stopped\n")
}
