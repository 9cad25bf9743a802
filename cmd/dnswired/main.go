package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hvdkamp/dnswire/internal/dns/common/clock"
	"github.com/hvdkamp/dnswire/internal/dns/common/log"
	"github.com/hvdkamp/dnswire/internal/dns/config"
	"github.com/hvdkamp/dnswire/internal/dns/gateways/transport"
	"github.com/hvdkamp/dnswire/internal/dns/repos/msgcache"
	"github.com/hvdkamp/dnswire/internal/dns/repos/records"
	"github.com/hvdkamp/dnswire/internal/dns/services/responder"
)

const (
	version = "0.1.0-dev"
	appName = "dnswired"

	defaultShutdownTimeout = 10 * time.Second
)

// Application holds the wired-together components of the DNS server.
type Application struct {
	config    *config.AppConfig
	store     *records.Store
	transport *transport.UDPTransport
	responder *responder.Responder
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"app":        appName,
		"version":    version,
		"env":        cfg.Env,
		"log_level":  cfg.LogLevel,
		"port":       cfg.Port,
		"record_dir": cfg.RecordDir,
		"db_path":    cfg.DBPath,
		"cache_size": cfg.CacheSize,
	}, "Starting dnswire server")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}
	defer func() {
		if err := app.store.Close(); err != nil {
			log.Warn(map[string]any{"error": err}, "Error closing record store")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err}, "Server failed")
	}

	log.Info(nil, "dnswire server stopped gracefully")
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()
	clk := clock.RealClock{}

	store, err := records.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	loaded, err := records.LoadDirectory(cfg.RecordDir, cfg.DefaultTTL)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load record directory: %w", err)
	}
	if err := store.Replace(loaded); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to populate record store: %w", err)
	}
	log.Info(map[string]any{
		"record_dir": cfg.RecordDir,
		"records":    len(loaded),
	}, "Record store loaded")

	var cache responder.PacketCache
	if cfg.DisableCache {
		log.Info(map[string]any{"disabled": true}, "Response caching disabled")
	} else {
		c, err := msgcache.New(int(cfg.CacheSize), clk)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to create response cache: %w", err)
		}
		cache = c
		log.Info(map[string]any{
			"type": "LRU",
			"size": cfg.CacheSize,
		}, "Response cache configured")
	}

	responderService := responder.New(responder.Options{
		Store:  store,
		Cache:  cache,
		Logger: logger,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	udpTransport := transport.NewUDPTransport(addr, logger)

	return &Application{
		config:    cfg,
		store:     store,
		transport: udpTransport,
		responder: responderService,
	}, nil
}

// Run starts the DNS server and blocks until the context is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if err := app.transport.Start(ctx, app.responder); err != nil {
		return fmt.Errorf("failed to start UDP transport: %w", err)
	}

	log.Info(map[string]any{
		"address":   app.transport.Address(),
		"transport": "UDP",
	}, "DNS server started")

	<-ctx.Done()

	log.Info(nil, "Shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- app.transport.Stop()
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Warn(map[string]any{"error": err}, "Error during transport shutdown")
		}
		log.Info(nil, "Graceful shutdown completed")
		return nil
	case <-shutdownCtx.Done():
		log.Warn(map[string]any{"timeout": defaultShutdownTimeout}, "Shutdown timeout exceeded")
		return fmt.Errorf("shutdown timeout")
	}
}
