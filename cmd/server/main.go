// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

// Package main is the entry point for the Insights server.
//
// Insights serves dashboard KPIs for the ShopCierge conversational
// commerce platform: engagement, revenue, and support metrics computed
// over a shop's chat and order history, plus the conversion funnel and
// topic breakdowns.
//
// # Startup Order
//
//  1. Configuration: layered load via Koanf v2 (defaults, YAML, env)
//  2. Logging: global zerolog logger per LOG_LEVEL / LOG_FORMAT
//  3. MongoDB: connection pool against the platform database
//  4. Engine: metric catalog over the chat and order stores
//  5. HTTP server: chi router under a suture supervisor tree
//
// # Configuration
//
// Required in production:
//   - MONGO_URI: connection string of the platform MongoDB
//   - MONGO_DATABASE: database holding the chats and orders collections
//
// Common overrides:
//   - HTTP_PORT (default 8080)
//   - LOG_LEVEL (default info), LOG_FORMAT (json|console)
//   - CORS_ORIGINS: comma-separated allowed origins
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the server stops
// accepting connections, in-flight requests get the configured
// shutdown timeout to complete, then the MongoDB client disconnects.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shopcierge/insights/internal/api"
	"github.com/shopcierge/insights/internal/config"
	"github.com/shopcierge/insights/internal/engine"
	"github.com/shopcierge/insights/internal/logging"
	"github.com/shopcierge/insights/internal/store"
	"github.com/shopcierge/insights/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("database", cfg.Mongo.Database).
		Msg("starting insights server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := store.Connect(ctx, cfg.Mongo)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer store.Disconnect(context.Background(), client)

	db := client.Database(cfg.Mongo.Database)
	chats := store.NewChatStore(db, cfg.Mongo)
	orders := store.NewOrderStore(db, cfg.Mongo)

	metricEngine := engine.New(chats, orders)

	handler := api.NewHandler(metricEngine, func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
	router := api.NewRouter(handler, cfg.API)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("insights server listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor tree exited")
		os.Exit(1)
	}

	logging.Info().Msg("insights server stopped")
}
