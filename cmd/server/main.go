package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	grpchandler "github.com/ogurasousui/employee-directory/internal/adapters/grpc/handler"
	httphandler "github.com/ogurasousui/employee-directory/internal/adapters/http/handler"
	"github.com/ogurasousui/employee-directory/internal/adapters/repository/postgres"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/ogurasousui/employee-directory/internal/platform/config"
	pg "github.com/ogurasousui/employee-directory/internal/platform/db/postgres"
	"github.com/ogurasousui/employee-directory/internal/platform/logger"
	"github.com/ogurasousui/employee-directory/internal/platform/server"
)

func main() {
	bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		bootLog.Warn().Err(err).Msg("failed to load .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		bootLog.Fatal().Err(err).Str("path", cfgPath).Msg("failed to load config")
	}

	log, err := logger.New(cfg.Log, os.Stdout)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to build logger")
	}

	isolation, err := pg.ParseIsolationLevel(cfg.Database.WriteIsolation)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid database.write_isolation")
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database pool")
	}
	defer dbPool.Close()

	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	txManager := pg.NewTransactionManager(dbPool, isolation)
	employeeSvc := employee.NewService(employeeRepo, employee.NewValidator(cfg.Employee.EmailDomain), nil, txManager)

	gin.SetMode(gin.ReleaseMode)
	router := httphandler.NewRouter(httphandler.RouterDeps{
		Employees:      httphandler.NewEmployeeHTTPHandler(employeeSvc, log),
		DB:             dbPool,
		Logger:         log,
		BasePath:       cfg.HTTP.BasePath,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})
	httpServer := server.NewHTTP(cfg.HTTP, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.ListenAddr).Str("base_path", cfg.HTTP.BasePath).Msg("HTTP server listening")
		return httpServer.Run(gctx)
	})

	if cfg.GRPC.ListenAddr != "" {
		grpcServer := server.New(cfg.GRPC.ListenAddr, grpchandler.NewEmployeeGrpcHandler(employeeSvc, log), log, cfg.GRPC.Reflection)
		g.Go(func() error {
			log.Info().Str("addr", cfg.GRPC.ListenAddr).Msg("gRPC server listening")
			return grpcServer.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		dbPool.Close()
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
