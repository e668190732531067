package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tkratz/pokedex-api/internal/config"
	"github.com/tkratz/pokedex-api/internal/database"
	"github.com/tkratz/pokedex-api/internal/handler"
	"github.com/tkratz/pokedex-api/internal/logger"
	"github.com/tkratz/pokedex-api/internal/middleware"
	"github.com/tkratz/pokedex-api/internal/repository"
	"github.com/tkratz/pokedex-api/internal/router"
	"github.com/tkratz/pokedex-api/internal/server"
	"github.com/tkratz/pokedex-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	log, loggerService, err := logger.New(cfg)
	if err != nil {
		os.Exit(1)
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	// The service owns its schema and dataset: tables are rebuilt from
	// the bundled seed files on every start and dropped again on exit.
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.DropSchema(bootstrapCtx, srv.Executor, log); err != nil {
		log.Warn().Err(err).Msg("Could not drop existing schema")
	}
	if err := database.InitSchema(bootstrapCtx, srv.Executor, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to create database schema")
	}
	if err := srv.Seeder.Seed(bootstrapCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed database")
	}
	cancelBootstrap()

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	e := router.Setup(srv, handlers, middlewares)
	srv.SetupHTTPServer(e)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")

	// Drop the demo schema before the pool closes, mirroring the
	// startup bootstrap.
	dropCtx, cancelDrop := context.WithTimeout(context.Background(), shutdownTimeout)
	if err := database.DropSchema(dropCtx, srv.Executor, log); err != nil {
		log.Warn().Err(err).Msg("Could not drop schema on shutdown")
	}
	cancelDrop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	if loggerService != nil {
		loggerService.Shutdown(5 * time.Second)
	}

	log.Info().Msg("Server stopped")
}
