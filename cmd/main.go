package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bayillag/epigeo_surveillance/internal/config"
	v1 "github.com/bayillag/epigeo_surveillance/internal/handler/http/v1"
	"github.com/bayillag/epigeo_surveillance/internal/metrics"
	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/repository"
	"github.com/bayillag/epigeo_surveillance/internal/repository/memory"
	"github.com/bayillag/epigeo_surveillance/internal/service"
	"github.com/bayillag/epigeo_surveillance/internal/spatial"
	"github.com/bayillag/epigeo_surveillance/internal/webhook"
	"github.com/bayillag/epigeo_surveillance/pkg/logger"
	"github.com/bayillag/epigeo_surveillance/pkg/postgres"
	redisclient "github.com/bayillag/epigeo_surveillance/pkg/redis"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	_ "github.com/bayillag/epigeo_surveillance/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// storage - репозитории выбранного бэкенда
type storage struct {
	outbreaks service.OutbreakRepository
	links     service.TracingRepository
	regions   service.RegionRepository
	close     func()
}

// @title Epidemiological Geo-Surveillance API
// @version 1.0
// @description Outbreak lifecycle, contact tracing and spatial hotspot analysis for livestock disease surveillance.
// @host localhost:8080
// @BasePath /api/v1
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
		migrationURL = strings.Replace(migrationURL, "postgresql://", "pgx5://", 1)
	}

	m, err := migrate.New(cfg.MigrationsPath, migrationURL)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// loadRegions читает границы воред из REGIONS_FILE; пустой путь - пустой справочник
func loadRegions(path string) ([]models.Region, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open regions file: %w", err)
	}
	defer f.Close()
	return memory.LoadRegionsGeoJSON(f)
}

func openStorage(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*storage, error) {
	regions, err := loadRegions(cfg.RegionsFile)
	if err != nil {
		return nil, err
	}

	if cfg.StorageBackend == config.StorageMemory {
		store := memory.NewStore(regions)
		log.WithField("regions", len(regions)).Info("Using in-memory storage")
		return &storage{outbreaks: store, links: store, regions: store, close: func() {}}, nil
	}

	if err := runMigrations(cfg, log); err != nil {
		return nil, err
	}
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to PostgreSQL")

	regionRepo := repository.NewRegionRepository(dbpool)
	if len(regions) > 0 {
		if err := regionRepo.UpsertRegions(ctx, regions); err != nil {
			dbpool.Close()
			return nil, fmt.Errorf("could not seed regions: %w", err)
		}
		log.WithField("regions", len(regions)).Info("Regions loaded from file")
	}
	return &storage{
		outbreaks: repository.NewOutbreakRepository(dbpool),
		links:     repository.NewTracingRepository(dbpool),
		regions:   regionRepo,
		close:     dbpool.Close,
	}, nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)
	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Redis необязателен: без него события только логируются, а графы кэшируются в памяти
	var (
		publisher  webhook.WebhookPublisher = webhook.NewLogPublisher(log)
		graphStore service.GraphStore
	)
	if cfg.RedisAddr != "" {
		var redisClient *redis.Client
		redisClient, err = redisclient.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")

		publisher = webhook.NewRedisWebhookPublisher(redisClient)
		webhook.NewWebhookWorker(redisClient, log, cfg).Start(ctx)
		graphStore = repository.NewGraphCache(redisClient, cfg.GraphCacheTTL)
	}

	policy, err := spatial.PolicyByName(cfg.Contiguity, cfg.GeometryTolerance)
	if err != nil {
		log.Fatalf("Invalid contiguity policy: %v", err)
	}
	builder := spatial.NewBuilder(policy, log)
	catalog := models.NewDiseaseCatalog(cfg.DiseaseIncubation, cfg.DefaultIncubationDays)

	// Инициализация сервисов
	outbreakService := service.NewOutbreakService(store.outbreaks, log, publisher, m)
	tracingService := service.NewTracingService(store.outbreaks, store.links, catalog, log)
	analysisService := service.NewAnalysisService(store.regions, graphStore, builder, cfg, m, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(outbreakService, tracingService, analysisService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.WithFields(logrus.Fields{
		"port":    cfg.HTTPPort,
		"storage": cfg.StorageBackend,
		"redis":   cfg.RedisAddr != "",
	}).Info("HTTP server started")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
