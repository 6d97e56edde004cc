package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/okian/aeris/internal/adapters/http/api"
	"github.com/okian/aeris/internal/adapters/http/site"
	"github.com/okian/aeris/internal/adapters/http/swagger"
	app "github.com/okian/aeris/internal/app"
	"github.com/okian/aeris/pkg/logger"
)

// HTTP server timeout constants. Writes get a long budget because a lookup
// waits on up to four upstream calls, one of them a full OpenSky snapshot.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 90 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func newServeCmd(env *runtimeEnv) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web API and landing page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				env.cfg.Addr = addr
			}
			return serve(cmd.Context(), env)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the addr setting (e.g. :5000)")
	return cmd
}

func serve(ctx context.Context, env *runtimeEnv) error {
	log := env.log
	svc, err := env.startService(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop()

	srv := &http.Server{
		Addr:              env.cfg.Addr,
		Handler:           newRouter(ctx, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", env.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%w: %w", api.ErrServe, err)
		}
		close(errCh)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case err := <-errCh:
		if err != nil {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			return err
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newRouter registers the API, docs and landing page. The landing page
// catches everything else, so it goes last.
func newRouter(ctx context.Context, svc *app.Service, log logger.Logger) *mux.Router {
	r := mux.NewRouter()
	api.NewServer(svc, svc, api.WithLogger(log.Named("http"))).Register(ctx, r)
	swagger.Register(ctx, r)
	site.Register(ctx, r)
	return r
}
