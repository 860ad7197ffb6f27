package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	callapp "github.com/jfcarod/convocations-api/application/call"
	convocationapp "github.com/jfcarod/convocations-api/application/convocation"
	scraperapp "github.com/jfcarod/convocations-api/application/scraper"
	userapp "github.com/jfcarod/convocations-api/application/user"
	"github.com/jfcarod/convocations-api/cmd/config"
	redisclient "github.com/jfcarod/convocations-api/cmd/redis"
	_ "github.com/jfcarod/convocations-api/docs"
	callRepo "github.com/jfcarod/convocations-api/repository/call"
	convocationRepo "github.com/jfcarod/convocations-api/repository/convocation"
	redisRepo "github.com/jfcarod/convocations-api/repository/redis"
	txRepo "github.com/jfcarod/convocations-api/repository/tx"
	userRepo "github.com/jfcarod/convocations-api/repository/user"
	"github.com/jfcarod/convocations-api/thirdparty/rabbitmq"
	"github.com/jfcarod/convocations-api/transport"
	"github.com/jfcarod/convocations-api/utils/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// @title CONVOCATIONS API
// @version 1.0
// @description Convocations API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize repositories
	ConvocationRepo := convocationRepo.NewConvocationRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	CallRepo := callRepo.NewCallRepository(db)
	TxRepo := txRepo.NewTxRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize entity-event publisher and cache-invalidation consumer
	var publisher rabbitmq.EventPublisher
	if cfg.RabbitMQ.Enabled {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
		}
		defer p.Close()
		publisher = p

		consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, RedisRepo)
		if err != nil {
			logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
		}
		defer consumer.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := consumer.Start(ctx); err != nil {
			logger.Fatal("err start rabbitmq consumer", zap.Error(err))
		}
	}

	// Initialize application layers
	ConvocationApp := convocationapp.NewConvocationApp(ConvocationRepo, TxRepo, RedisRepo, publisher)
	UserApp := userapp.NewUserApp(cfg, UserRepo, TxRepo, RedisRepo, publisher)
	CallApp := callapp.NewCallApp(CallRepo, TxRepo, publisher)
	ScraperApp := scraperapp.NewScraperApp()

	httpTransport := transport.NewTransport(ConvocationApp, UserApp, CallApp, ScraperApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
