package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-register-service/config"
	"github.com/fekuna/omnipos-register-service/internal/auth"
	"github.com/fekuna/omnipos-register-service/internal/cart"
	"github.com/fekuna/omnipos-register-service/internal/middleware"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/pricing"
	"github.com/fekuna/omnipos-register-service/internal/product"
	"github.com/fekuna/omnipos-register-service/internal/product/search"
	"github.com/fekuna/omnipos-register-service/internal/storage"
	"github.com/fekuna/omnipos-register-service/internal/storage/gormkv"
	"github.com/fekuna/omnipos-register-service/internal/storage/memory"
	"github.com/fekuna/omnipos-register-service/internal/storage/postgres"
	redisstore "github.com/fekuna/omnipos-register-service/internal/storage/redis"
	"github.com/fekuna/omnipos-register-service/internal/store"
	"github.com/fekuna/omnipos-register-service/internal/transaction"
	"github.com/fekuna/omnipos-register-service/internal/transaction/publisher"
	"github.com/fekuna/omnipos-register-service/pkg/i18n"
	"github.com/fekuna/omnipos-register-service/pkg/logger"

	authH "github.com/fekuna/omnipos-register-service/internal/auth/handler"
	authRepoPkg "github.com/fekuna/omnipos-register-service/internal/auth/repository"
	authUCPkg "github.com/fekuna/omnipos-register-service/internal/auth/usecase"

	cartH "github.com/fekuna/omnipos-register-service/internal/cart/handler"
	cartRepoPkg "github.com/fekuna/omnipos-register-service/internal/cart/repository"
	cartUCPkg "github.com/fekuna/omnipos-register-service/internal/cart/usecase"

	catH "github.com/fekuna/omnipos-register-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-register-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-register-service/internal/category/usecase"

	ingH "github.com/fekuna/omnipos-register-service/internal/ingredient/handler"
	ingRepoPkg "github.com/fekuna/omnipos-register-service/internal/ingredient/repository"
	ingUCPkg "github.com/fekuna/omnipos-register-service/internal/ingredient/usecase"

	invH "github.com/fekuna/omnipos-register-service/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/omnipos-register-service/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/omnipos-register-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-register-service/internal/inventory/usecase"

	printerH "github.com/fekuna/omnipos-register-service/internal/printer/handler"
	printerRepoPkg "github.com/fekuna/omnipos-register-service/internal/printer/repository"
	printerUCPkg "github.com/fekuna/omnipos-register-service/internal/printer/usecase"

	prodH "github.com/fekuna/omnipos-register-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-register-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-register-service/internal/product/usecase"

	reportH "github.com/fekuna/omnipos-register-service/internal/report/handler"
	reportRepoPkg "github.com/fekuna/omnipos-register-service/internal/report/repository"
	reportUCPkg "github.com/fekuna/omnipos-register-service/internal/report/usecase"

	settingsH "github.com/fekuna/omnipos-register-service/internal/settings/handler"
	settingsRepoPkg "github.com/fekuna/omnipos-register-service/internal/settings/repository"
	settingsUCPkg "github.com/fekuna/omnipos-register-service/internal/settings/usecase"

	txnH "github.com/fekuna/omnipos-register-service/internal/transaction/handler"
	txnRepoPkg "github.com/fekuna/omnipos-register-service/internal/transaction/repository"
	txnUCPkg "github.com/fekuna/omnipos-register-service/internal/transaction/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 1.5 Initialize i18n
	i18n.Init()
	if dir := cfg.Store.LocalesDir; dir != "" {
		for _, lang := range []string{"en", "id"} {
			path := fmt.Sprintf("%s/active.%s.json", strings.TrimRight(dir, "/"), lang)
			if err := i18n.Load(path); err != nil {
				fmt.Fprintf(os.Stderr, "failed to load %s locales: %v\n", lang, err)
			}
		}
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Open Storage
	kv, err := openStorage(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Could not open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer kv.Close()

	// 4. Load Register State
	loc := cfg.Store.Location()
	st := store.New(kv, appLogger, store.Options{
		SeedDemoData: cfg.Store.SeedDemoData,
		BootstrapPIN: cfg.Store.BootstrapPIN,
		Location:     loc,
		OnPersistError: func(key string, err error) {
			appLogger.Warn("Register state kept in memory only", zap.String("key", key), zap.Error(err))
		},
	})
	if err := st.Load(ctx); err != nil {
		appLogger.Fatal("Could not load register state", zap.Error(err))
	}

	// 5. Initialize Repositories
	calc := pricing.NewCalculator(pricing.EmbeddedSellPrice)
	authRepo := authRepoPkg.NewStoreRepository(st)
	catRepo := catRepoPkg.NewStoreRepository(st)
	prodRepo := prodRepoPkg.NewStoreRepository(st)
	ingRepo := ingRepoPkg.NewStoreRepository(st)
	printerRepo := printerRepoPkg.NewStoreRepository(st)
	settingsRepo := settingsRepoPkg.NewStoreRepository(st)
	invRepo := invRepoPkg.NewStoreRepository(st)
	cartRepo := cartRepoPkg.NewStoreRepository(st)
	txnRepo := txnRepoPkg.NewStoreRepository(st, calc)
	reportRepo := reportRepoPkg.NewStoreRepository(st)

	// 5.5 Initialize Kafka Publisher
	var txnPublisher transaction.Publisher = publisher.Noop{}
	if cfg.Kafka.Enabled {
		txnPublisher = publisher.NewKafkaPublisher(&publisher.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		appLogger.Info("Kafka publisher ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	defer txnPublisher.Close()

	// 5.8 Initialize Elasticsearch
	var indexer product.Indexer
	if cfg.Elastic.Enabled {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
			Index:     cfg.Elastic.Index,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch, product search uses the local catalog", zap.Error(err))
		} else {
			if err := esClient.EnsureIndex(ctx); err != nil {
				appLogger.Warn("Could not ensure product index", zap.Error(err))
			}
			indexer = esClient
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 6. Initialize UseCases
	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.TTL)
	carts := cart.NewRegistry()

	authUC := authUCPkg.NewAuthUseCase(authRepo, tokens, carts, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, indexer, appLogger)
	ingUC := ingUCPkg.NewIngredientUseCase(ingRepo, appLogger)
	printerUC := printerUCPkg.NewPrinterUseCase(printerRepo, appLogger)
	settingsUC := settingsUCPkg.NewSettingsUseCase(settingsRepo, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(cartRepo, carts, calc, appLogger)
	txnUC := txnUCPkg.NewTransactionUseCase(txnRepo, carts, txnPublisher, appLogger)
	reportUC := reportUCPkg.NewReportUseCase(reportRepo, cfg.Store.TopProductsLimit, appLogger)

	// 6.5 Initialize Listeners
	if cfg.Kafka.ListenerEnabled {
		reader := invListenerPkg.NewReader(&invListenerPkg.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.StockTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer reader.Close()
		go invListenerPkg.NewInventoryListener(reader, invUC, appLogger).Start(ctx)
		appLogger.Info("Inventory listener started", zap.String("topic", cfg.Kafka.StockTopic))
	}

	// 7. Initialize Handlers
	authHandler := authH.NewAuthHandler(authUC, appLogger)
	catHandler := catH.NewCategoryHandler(catUC, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	ingHandler := ingH.NewIngredientHandler(ingUC, appLogger)
	printerHandler := printerH.NewPrinterHandler(printerUC, appLogger)
	settingsHandler := settingsH.NewSettingsHandler(settingsUC, appLogger)
	invHandler := invH.NewInventoryHandler(invUC, appLogger)
	cartHandler := cartH.NewCartHandler(cartUC, appLogger)
	txnHandler := txnH.NewTransactionHandler(txnUC, loc, appLogger)
	reportHandler := reportH.NewReportHandler(reportUC, loc, appLogger)

	// 8. Build HTTP Router
	router := gin.New()
	router.Use(middleware.RequestLogger(appLogger), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api/v1")
	authHandler.RegisterPublic(api)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(tokens, appLogger))
	authHandler.Register(authed)
	catHandler.RegisterRead(authed)
	prodHandler.RegisterRead(authed)
	ingHandler.RegisterRead(authed)
	printerHandler.RegisterRead(authed)
	settingsHandler.RegisterRead(authed)
	invHandler.RegisterRead(authed)
	cartHandler.Register(authed)
	txnHandler.Register(authed)

	managers := authed.Group("")
	managers.Use(middleware.RequireRole(appLogger, model.RoleAdmin, model.RoleSupervisor))
	catHandler.RegisterWrite(managers)
	prodHandler.RegisterWrite(managers)
	ingHandler.RegisterWrite(managers)
	printerHandler.RegisterWrite(managers)
	settingsHandler.RegisterWrite(managers)
	invHandler.RegisterWrite(managers)
	reportHandler.Register(managers)

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", cfg.Server.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// 9. Start gRPC Health Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	lis, err := net.Listen("tcp", port)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", port), zap.Error(err))
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("port", port))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

// openStorage connects the configured document store.
func openStorage(ctx context.Context, cfg *config.Config, log logger.ZapLogger) (storage.KV, error) {
	switch cfg.Storage.Driver {
	case "memory":
		log.Warn("Using in-memory storage, state is lost on restart")
		return memory.New(), nil
	case "sqlite":
		return gormkv.Open("sqlite", cfg.Storage.SQLitePath)
	case "mysql":
		return gormkv.Open("mysql", cfg.Storage.MySQLDSN)
	case "postgres":
		db, err := postgres.NewPostgres(&postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		kv := postgres.NewKV(db)
		if err := kv.Migrate(ctx); err != nil {
			_ = kv.Close()
			return nil, err
		}
		log.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
		return kv, nil
	case "redis":
		client, err := redisstore.NewClient(ctx, &redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		return redisstore.NewKV(client, cfg.Redis.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
