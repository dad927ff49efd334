package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	musclemap "github.com/claude/musclemap"
	"github.com/claude/musclemap/internal/config"
	"github.com/claude/musclemap/internal/journal"
	"github.com/claude/musclemap/internal/mcp"
	"github.com/claude/musclemap/internal/server"
	"github.com/claude/musclemap/internal/storage"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	log.Info("musclemap starting", "version", Version, "driver", cfg.Database.Driver)

	ctx := context.Background()
	store, closer, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Create server
	srv := server.New(store, cfg.Plan.Threshold, cfg.Auth.APIKey, log)
	mcpSrv := mcp.New(store, cfg.Plan.Threshold, Version, log)
	srv.SetMCP(mcpserver.NewStreamableHTTPServer(mcpSrv))

	// Start server on tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// openStore migrates and connects the configured backend.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (server.Store, io.Closer, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		j, err := journal.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info("journal opened", "path", cfg.Database.Path)
		return j, j, nil
	default:
		dsn := cfg.Database.DSN()
		if err := storage.RunMigrations(dsn, musclemap.MigrationsFS, "migrations"); err != nil {
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
		log.Info("migrations applied")

		db, err := storage.New(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		log.Info("database connected")
		return db, db, nil
	}
}
