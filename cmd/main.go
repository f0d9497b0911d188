// Package main runs the API to manage account contact records.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/account-api/cmd/httpserver"
	"github.com/go-petr/account-api/internal/middleware"
	"github.com/go-petr/account-api/pkg/configpkg"
	"github.com/go-petr/account-api/pkg/dbpkg"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.Setup(ctx, config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}
	defer db.Close()

	if err := dbpkg.CreateSchema(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("cannot create database schema")
	}

	if config.Environement != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	srv := &http.Server{
		Addr:    config.ServerAddress,
		Handler: server,
	}

	serveErr := make(chan error, 1)

	go func() {
		logger.Info().Str("address", config.ServerAddress).Str("db_driver", config.DBDriver).
			Msg("ACCOUNT API SERVER HAS STARTED")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("cannot start server")
		}

		return
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("server exited")
}
