package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nicjohnson145/hlp/set"
	"github.com/nicjohnson145/kvgate/internal/config"
	"github.com/nicjohnson145/kvgate/internal/interceptors"
	"github.com/nicjohnson145/kvgate/internal/logging"
	"github.com/nicjohnson145/kvgate/internal/metrics"
	"github.com/nicjohnson145/kvgate/internal/pruner"
	"github.com/nicjohnson145/kvgate/internal/server"
	"github.com/nicjohnson145/kvgate/internal/storage"
	"github.com/nicjohnson145/kvgate/internal/validation"
	"github.com/nicjohnson145/kvgate/internal/vault"
	"github.com/spf13/viper"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	config.InitConfig()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := logging.Init(&logging.LoggingConfig{
		Level:  logging.LogLevel(viper.GetString(config.LoggingLevel)),
		Format: logging.LogFormat(viper.GetString(config.LoggingFormat)),
	})

	authEnabled := viper.GetBool(config.AuthEnabled)
	signingKey := viper.GetString(config.AuthSigningKey)
	if authEnabled && signingKey == "" {
		logger.Error().Msg("must provide JWT signing key when auth is enabled")
		return fmt.Errorf("must provide JWT signing key when auth is enabled")
	}
	if !authEnabled {
		logger.Warn().Msg("auth is disabled, every caller has full access to the vault")
	}

	storageClient, storageCleanup, err := storage.NewFromEnv(logging.Component(logger, "storage"))
	defer storageCleanup()
	if err != nil {
		logger.Err(err).Msg("error initializing storage client")
		return err
	}

	vaultClient, err := vault.NewFromEnv(ctx, logging.Component(logger, "vault"))
	if err != nil {
		logger.Err(err).Msg("error initializing vault client")
		return err
	}

	validator, err := validation.New()
	if err != nil {
		logger.Err(err).Msg("error initializing validator")
		return err
	}

	collector := metrics.NewCollector()
	registry, err := metrics.NewRegistry(collector)
	if err != nil {
		logger.Err(err).Msg("error initializing metrics registry")
		return err
	}

	var auditPruner *pruner.Pruner
	if viper.GetBool(config.AuditEnabled) {
		auditPruner, err = pruner.NewPruner(pruner.PrunerConfig{
			Logger:        logging.Component(logger, "pruner"),
			StorageClient: storageClient,
			Retention:     viper.GetDuration(config.AuditRetention),
			Schedule:      viper.GetString(config.AuditPruneSchedule),
		})
		if err != nil {
			logger.Err(err).Msg("error initializing audit pruner")
			return err
		}
		auditPruner.Start()
	}

	srv := server.NewServer(server.ServerConfig{
		Logger:         logging.Component(logger, "service"),
		VaultClient:    vaultClient,
		StorageClient:  storageClient,
		Validator:      validator,
		Metrics:        collector,
		MetricsHandler: metrics.Handler(registry),
	})

	mux := http.NewServeMux()
	srv.Register(mux)

	middleware := []func(http.Handler) http.Handler{
		interceptors.NewRequestIDMiddleware(logger),
		interceptors.NewLoggingMiddleware(
			logger,
			interceptors.LoggingInterceptorConfig{
				LogRequests:  viper.GetBool(config.LogRequests),
				LogResponses: viper.GetBool(config.LogResponses),
			},
		),
	}
	if authEnabled {
		middleware = append(middleware, interceptors.NewAuthMiddleware(
			[]byte(signingKey),
			set.New(
				"/healthz",
				"/metrics",
			),
		))
	}
	middleware = append(middleware, interceptors.NewMetricsMiddleware(collector))

	port := viper.GetString(config.Port)
	lis, err := net.Listen("tcp4", ":"+port)
	if err != nil {
		logger.Err(err).Msg("error listening")
		return err
	}

	svr := http.Server{
		Addr:              ":" + port,
		Handler:           h2c.NewHandler(interceptors.Chain(mux, middleware...), &http2.Server{}),
		ReadHeaderTimeout: 3 * time.Second,
	}

	// Setup signal handlers so we can gracefully shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()
		s := <-sigChan
		logger.Info().Msgf("got signal %v, attempting graceful shutdown", s)
		dieCtx, dieCancel := context.WithTimeout(ctx, 10*time.Second)
		defer dieCancel()
		_ = svr.Shutdown(dieCtx)
		if auditPruner != nil {
			if err := auditPruner.Stop(dieCtx); err != nil {
				logger.Err(err).Msg("error stopping audit pruner")
			}
		}
		cancel()
	}()

	logger.Info().Msgf("starting server on port %v", port)
	if err := svr.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Err(err).Msg("error serving")
		return err
	}

	wg.Wait()
	return nil
}
