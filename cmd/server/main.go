// Package main - Entry point for the seatquote API server
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"seatquote/adapters/payments"
	"seatquote/api"
	"seatquote/core/catalog"
	"seatquote/core/pricing"
	"seatquote/internal/config"
	"seatquote/internal/logging"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Config file (JSON)")
	envFile := flag.String("env-file", ".env", "dotenv file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	offline := flag.Bool("offline", false, "Never call the payments API for enterprise pricing")
	flag.Parse()

	if err := run(*configPath, *envFile, *addr, *offline); err != nil {
		fmt.Fprintf(os.Stderr, "seatquote-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, envFile, addr string, offline bool) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()
	logger := logging.Logger

	c, err := catalog.Load(cfg.Catalog.Path, cfg.Catalog.Currency)
	if err != nil {
		return err
	}

	client := payments.New(&payments.Config{
		BaseURL:   cfg.Payments.APIURL,
		Timeout:   cfg.Payments.Timeout(),
		UserAgent: cfg.Payments.UserAgent,
	})
	opts := []pricing.Option{pricing.WithLogger(logger.Named("pricing"))}
	if !offline {
		opts = append(opts, pricing.WithRemote(client))
	}

	apiServer := api.NewServer(api.Options{
		Version:  version,
		Resolver: pricing.NewResolver(c, opts...),
		Payments: client,
		Config:   cfg,
		Logger:   logger.Named("api"),
	})
	defer apiServer.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      apiServer,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("seatquote server listening",
			zap.String("version", version),
			zap.String("addr", cfg.Server.Addr),
			zap.String("payments_api", cfg.Payments.APIURL),
			zap.Bool("offline", offline),
		)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
