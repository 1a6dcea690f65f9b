// Package main starts the PPOB wallet API to manage users, balances and bill payments.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/go-ppob/wallet/cmd/httpserver"
	"github.com/go-ppob/wallet/internal/middleware"
	"github.com/go-ppob/wallet/pkg/cachepkg"
	"github.com/go-ppob/wallet/pkg/configpkg"
	"github.com/go-ppob/wallet/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}
	defer db.Close()

	cache, err := cachepkg.NewRedisCache(context.Background(), config.RedisAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to redis")
	}
	defer cache.Close()

	server, err := httpserver.New(db, cache, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("WALLET API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
