package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vitalvas/portbounce/internal/api"
	"github.com/vitalvas/portbounce/internal/config"
	"github.com/vitalvas/portbounce/pkg/client"
	"github.com/vitalvas/portbounce/pkg/log"
	"github.com/vitalvas/portbounce/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (overrides $"+config.PathEnv+")")
	flag.Parse()

	cfg, err := config.Load(config.ResolvePath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(log.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if err := run(cfg, logger); err != nil {
		logger.Fatalf("portbounced: %v", err)
	}
}

func run(cfg *config.Config, logger log.Logger) error {
	gin.SetMode(cfg.GinMode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	coaClient, err := client.New(client.Config{
		Port:                    cfg.CoA.Port,
		Timeout:                 cfg.CoA.Timeout,
		UseMessageAuthenticator: cfg.CoA.MessageAuthenticator,
		StrictAck:               cfg.CoA.StrictAck,
		Logger:                  logger,
		Metrics:                 metrics.NewCoAMetrics(reg),
	})
	if err != nil {
		return fmt.Errorf("failed to create CoA client: %w", err)
	}

	opts := api.RouterOptions{APIVersion: cfg.APIVersion}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
		opts.Gatherer = reg
	}

	engine := api.NewEngine(logger, metrics.NewHTTPMetrics(reg))
	api.SetupRouter(engine, api.NewCoAHandler(coaClient, logger), opts)

	srv := api.NewServer(cfg.ListenAddr, engine)

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(log.Fields{
			"listen_addr": cfg.ListenAddr,
			"api_version": cfg.APIVersion,
			"coa_port":    cfg.CoA.Port,
			"coa_timeout": cfg.CoA.Timeout.String(),
		}).Info("Starting port bounce API")

		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case s := <-sig:
		logger.Infof("Received %s, shutting down", s)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
