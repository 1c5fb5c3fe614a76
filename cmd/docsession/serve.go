package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	_ "github.com/unifiedui/docsession/docs"
	"github.com/unifiedui/docsession/internal/api/handlers"
	"github.com/unifiedui/docsession/internal/api/middleware"
	"github.com/unifiedui/docsession/internal/api/routes"
	"github.com/unifiedui/docsession/internal/services/ingest"
)

// @title docsession API
// @version 1.0
// @description Session manager for a MongoDB-compatible document database.
// @BasePath /
func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	gin.SetMode(a.cfg.Server.GinMode)
	router := gin.New()

	routes.SetupWithMiddleware(router, &routes.Config{
		HealthHandler:    handlers.NewHealthHandler(a.store, a.cache),
		DocumentsHandler: handlers.NewDocumentsHandler(a.store, ingest.NewIngester(a.store, nil)),
	}, middleware.NewLoggingMiddleware())

	srv := &http.Server{
		Addr:              a.cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return err
		}
		return nil
	case <-quit:
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server exited")
	return nil
}
