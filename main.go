// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/livepoll/bridge"
	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/poll"
	"github.com/danielhkuo/livepoll/router"
	"github.com/danielhkuo/livepoll/store"
)

func main() {
	// Local development convenience; ignored when no .env file exists
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded .env file")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to Redis
	s, err := store.New(cfg.RedisURL)
	if err != nil {
		slog.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	// Verify connection
	if err := s.Ping(); err != nil {
		slog.Error("redis ping failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Redis ready")

	repo := poll.NewRepository(s, cfg.PollExpiryHours)

	// Live fan-out: hub owns the rooms, bridge feeds it from pub/sub
	hub := bridge.NewHub()
	go hub.Run()

	b := bridge.NewBridge(s, hub)
	go b.Run()

	// Background expiry sweep
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go poll.NewSweeper(repo, cfg.SweepInterval).Run(sweepCtx)

	// Create router
	mux := router.NewRouter(repo, hub, s, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigin, mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	// Teardown: no new requests arrive past this point. Close live
	// connections, then the subscription feeding them, then the sweep,
	// and the Redis connections last.
	hub.Shutdown()
	b.Close()
	stopSweep()
	s.Close()
}
