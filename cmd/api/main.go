package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"calculation-console/internal/auth"
	"calculation-console/internal/calculator"
	"calculation-console/internal/client"
	"calculation-console/internal/config"
	"calculation-console/internal/console"
	"calculation-console/internal/observability"
	"calculation-console/internal/report"
	"calculation-console/internal/server"
	"calculation-console/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {

	if err := loadDotEnv(); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logger
	err = observability.InitLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing
	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		panic(err)
	}
	defer traceShutdown(context.Background())

	// Metrics
	metricShutdown, err := initMetrics(ctx)
	if err != nil {
		panic(err)
	}
	defer metricShutdown(context.Background())

	// Logs
	if cfg.OTelLogsEnabled {
		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			panic(err)
		}
		defer logShutdown(context.Background())
	}

	logger := observability.Logger

	if cfg.JWTSecret == config.DevJWTSecret {
		logger.Warn("JWT_SECRET not set, using the development secret")
	}

	// Storage
	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("open database", zap.String("path", cfg.DatabasePath), zap.Error(err))
	}
	defer store.Close(db)

	calcs := store.NewCalculations(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	svc := auth.NewService(store.NewUsers(db), auth.NewPasswordHasher(0), tokens)
	api := client.New(cfg.ResolvedAPIBaseURL())

	// Router
	router := server.NewRouter(server.Deps{
		Tokens:     tokens,
		Auth:       auth.NewHandler(svc),
		Calculator: calculator.NewHandler(calcs),
		Report:     report.NewHandler(calcs),
		Console:    console.NewHandler(api, console.NewGuard(cfg.SubmissionTTL), cfg.JWTTTL),
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server started",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("api_base_url", cfg.ResolvedAPIBaseURL()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return waitForShutdown(srv, cfg)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		panic(err)
	}
	logger.Info("server stopped")
}

func waitForShutdown(srv *http.Server, cfg config.Config) error {

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(ctx)
}
