package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	rentalv1 "github.com/fekuna/omnipos-rental-service/api/rental/v1"
	"github.com/fekuna/omnipos-rental-service/config"
	"github.com/fekuna/omnipos-rental-service/internal/document"
	"github.com/fekuna/omnipos-rental-service/internal/httpserver"
	"github.com/fekuna/omnipos-rental-service/internal/metrics"
	"github.com/fekuna/omnipos-rental-service/internal/notification"
	"github.com/fekuna/omnipos-rental-service/internal/product"
	"github.com/fekuna/omnipos-rental-service/pkg/broker"
	"github.com/fekuna/omnipos-rental-service/pkg/cache"
	"github.com/fekuna/omnipos-rental-service/pkg/i18n"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/fekuna/omnipos-rental-service/pkg/middleware"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/fekuna/omnipos-rental-service/pkg/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	clientH "github.com/fekuna/omnipos-rental-service/internal/client/handler"
	clientRepoPkg "github.com/fekuna/omnipos-rental-service/internal/client/repository"
	clientUCPkg "github.com/fekuna/omnipos-rental-service/internal/client/usecase"

	officeH "github.com/fekuna/omnipos-rental-service/internal/office/handler"
	officeRepoPkg "github.com/fekuna/omnipos-rental-service/internal/office/repository"
	officeUCPkg "github.com/fekuna/omnipos-rental-service/internal/office/usecase"

	supH "github.com/fekuna/omnipos-rental-service/internal/supplier/handler"
	supRepoPkg "github.com/fekuna/omnipos-rental-service/internal/supplier/repository"
	supUCPkg "github.com/fekuna/omnipos-rental-service/internal/supplier/usecase"

	prodH "github.com/fekuna/omnipos-rental-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-rental-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-rental-service/internal/product/usecase"

	stockH "github.com/fekuna/omnipos-rental-service/internal/stock/handler"
	stockRepoPkg "github.com/fekuna/omnipos-rental-service/internal/stock/repository"
	stockUCPkg "github.com/fekuna/omnipos-rental-service/internal/stock/usecase"

	ioH "github.com/fekuna/omnipos-rental-service/internal/internalorder/handler"
	ioRepoPkg "github.com/fekuna/omnipos-rental-service/internal/internalorder/repository"
	ioUCPkg "github.com/fekuna/omnipos-rental-service/internal/internalorder/usecase"

	soH "github.com/fekuna/omnipos-rental-service/internal/supplierorder/handler"
	soListenerPkg "github.com/fekuna/omnipos-rental-service/internal/supplierorder/listener"
	soRepoPkg "github.com/fekuna/omnipos-rental-service/internal/supplierorder/repository"
	soUCPkg "github.com/fekuna/omnipos-rental-service/internal/supplierorder/usecase"

	saleH "github.com/fekuna/omnipos-rental-service/internal/sale/handler"
	saleRepoPkg "github.com/fekuna/omnipos-rental-service/internal/sale/repository"
	saleUCPkg "github.com/fekuna/omnipos-rental-service/internal/sale/usecase"

	contractH "github.com/fekuna/omnipos-rental-service/internal/contract/handler"
	contractRepoPkg "github.com/fekuna/omnipos-rental-service/internal/contract/repository"
	contractUCPkg "github.com/fekuna/omnipos-rental-service/internal/contract/usecase"
	contractWorkerPkg "github.com/fekuna/omnipos-rental-service/internal/contract/worker"
)

func main() {
	// 1. Load Configuration
	cfg := config.LoadEnv()
	i18n.Init()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
	txm := postgres.NewTxManager(db)

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Initialize Kafka
	var (
		notifier         notification.Sender = notification.NopSender{Logger: appLogger}
		deliveryConsumer *broker.KafkaConsumer
	)
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.NotificationsTopic,
		})
		defer producer.Close()
		notifier = notification.NewKafkaSender(producer, appLogger)

		deliveryConsumer = broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.DeliveriesTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer deliveryConsumer.Close()
		appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		appLogger.Warn("KAFKA_BROKERS not set, notifications are dropped and deliveries are not consumed")
	}

	// 6. Initialize Elasticsearch
	var indexer product.Indexer
	if len(cfg.Elastic.Addresses) > 0 {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch, product search uses SQL", zap.Error(err))
		} else {
			indexer = esClient
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	renderer, err := document.NewHTMLRenderer()
	if err != nil {
		appLogger.Fatal("Could not load contract template", zap.Error(err))
	}

	// 7. Initialize Repositories
	clientRepo := clientRepoPkg.NewPGRepository(db)
	officeRepo := officeRepoPkg.NewPGRepository(db)
	supRepo := supRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	stockRepo := stockRepoPkg.NewPGRepository(db)
	ioRepo := ioRepoPkg.NewPGRepository(db)
	soRepo := soRepoPkg.NewPGRepository(db)
	saleRepo := saleRepoPkg.NewPGRepository(db)
	contractRepo := contractRepoPkg.NewPGRepository(db)

	// 8. Initialize UseCases
	stockUC := stockUCPkg.NewStockUseCase(stockRepo, cache.NewLocker(redisClient, cfg.Redis.LockTTL), txm, appLogger)
	clientUC := clientUCPkg.NewClientUseCase(clientRepo, appLogger)
	officeUC := officeUCPkg.NewOfficeUseCase(officeRepo, appLogger)
	supUC := supUCPkg.NewSupplierUseCase(supRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, indexer, appLogger)
	ioUC := ioUCPkg.NewInternalOrderUseCase(ioRepo, officeRepo, prodRepo, stockUC, txm, appLogger)
	soUC := soUCPkg.NewSupplierOrderUseCase(soRepo, supRepo, officeRepo, prodRepo, stockUC, txm, notifier, appLogger)
	saleUC := saleUCPkg.NewSaleUseCase(saleRepo, prodRepo, clientRepo, officeRepo, stockUC, txm, appLogger)
	contractUC := contractUCPkg.NewContractUseCase(contractRepo, clientRepo, officeRepo, prodRepo, stockUC, txm, notifier, renderer, appLogger)

	// 9. Background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	if deliveryConsumer != nil {
		listener := soListenerPkg.NewDeliveryListener(deliveryConsumer, soUC, appLogger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			listener.Start(ctx)
		}()
	}

	expiry := contractWorkerPkg.NewExpiryWorker(contractUC, cfg.Worker.ContractExpiryInterval, appLogger)
	wg.Add(1)
	go func() {
		defer wg.Done()
		expiry.Start(ctx)
	}()

	// 10. HTTP side server: health, metrics, exports, documents
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Register(registry)

	httpServer := httpserver.NewServer(&httpserver.Config{
		Port:         cfg.Server.HTTPPort,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, contractUC, saleUC, map[string]httpserver.Check{
		"postgres": db.PingContext,
		"redis":    redisClient.Ping,
	}, registry, appLogger)
	go func() {
		if err := httpServer.Start(); err != nil {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// 11. Start gRPC Server
	lis, err := net.Listen("tcp", ":"+cfg.Server.GRPCPort)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}

	grpcServer := newGRPCServer(cfg)

	// Register Services
	rentalv1.RegisterClientServiceServer(grpcServer, clientH.NewClientHandler(clientUC, appLogger))
	rentalv1.RegisterOfficeServiceServer(grpcServer, officeH.NewOfficeHandler(officeUC, appLogger))
	rentalv1.RegisterSupplierServiceServer(grpcServer, supH.NewSupplierHandler(supUC, appLogger))
	rentalv1.RegisterProductServiceServer(grpcServer, prodH.NewProductHandler(prodUC, appLogger))
	rentalv1.RegisterStockServiceServer(grpcServer, stockH.NewStockHandler(stockUC, appLogger))
	rentalv1.RegisterInternalOrderServiceServer(grpcServer, ioH.NewInternalOrderHandler(ioUC, appLogger))
	rentalv1.RegisterSupplierOrderServiceServer(grpcServer, soH.NewSupplierOrderHandler(soUC, appLogger))
	rentalv1.RegisterSaleServiceServer(grpcServer, saleH.NewSaleHandler(saleUC, appLogger))
	rentalv1.RegisterContractServiceServer(grpcServer, contractH.NewContractHandler(contractUC, appLogger))

	appLogger.Info("Starting gRPC server", zap.String("port", cfg.Server.GRPCPort))

	// Graceful Shutdown
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http shutdown", zap.Error(err))
	}

	cancel()
	wg.Wait()
	appLogger.Info("Server stopped")
}

// newGRPCServer builds the server with the JSON codec and interceptor chain.
// The protobuf reflection service cannot decode requests under that codec,
// so it is not registered.
func newGRPCServer(cfg *config.Config) *grpc.Server {
	return grpc.NewServer(
		grpc.ForceServerCodec(rentalv1.JSONCodec{}),
		grpc.ChainUnaryInterceptor(
			middleware.ContextInterceptor(),
			middleware.RateLimitInterceptor(rate.NewLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateBurst)),
			metrics.UnaryServerInterceptor(),
		),
	)
}
