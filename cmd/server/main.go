package main

import (
	"context"
	"log"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/users/api/handler"
	"github.com/fastygo/users/internal/config"
	"github.com/fastygo/users/internal/infrastructure/monitor"
	mongoInfra "github.com/fastygo/users/internal/infrastructure/mongo"
	"github.com/fastygo/users/internal/middleware"
	"github.com/fastygo/users/internal/router"
	"github.com/fastygo/users/internal/services/lifecycle"
	"github.com/fastygo/users/pkg/httpcontext"
	"github.com/fastygo/users/pkg/logger"
	mongoRepo "github.com/fastygo/users/repository/mongo"
	userUC "github.com/fastygo/users/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		Environment: cfg.Environment,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	client, err := mongoInfra.NewClient(appCtx, cfg.Mongo, zapLogger)
	if err != nil {
		zapLogger.Fatal("mongo client setup failed", zap.Error(err))
	}
	manager.Register("mongo", func(ctx context.Context) error {
		return mongoInfra.Close(ctx, client, zapLogger)
	})

	coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)

	indexCtx, indexCancel := context.WithTimeout(appCtx, cfg.Mongo.ConnectTimeout)
	mongoInfra.EnsureIndexes(indexCtx, coll.Indexes(), zapLogger)
	indexCancel()

	userUseCase := userUC.New(mongoRepo.NewUserRepository(coll), zapLogger)
	mon := monitor.New(monitor.AdminPinger{Client: client}, cfg.Mongo.ConnectTimeout, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(0)

	handlers := router.Handlers{
		User:   apiHandler.NewUserHandler(userUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers, router.Options{
		StaticDir: cfg.Static.Dir,
		Logger:    zapLogger,
	})

	handler := middleware.Chain(r.Handler,
		middleware.AccessLog(zapLogger),
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			PathPrefix:     "/api/",
		}),
	)

	server := &fasthttp.Server{
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("db", cfg.Mongo.Database),
			zap.String("cors_origins", strings.Join(cfg.CORS.AllowedOrigins, ",")),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
