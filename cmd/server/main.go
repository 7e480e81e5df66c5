package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coverage-planner-go/internal/client"
	"coverage-planner-go/internal/config"
	"coverage-planner-go/internal/database"
	"coverage-planner-go/internal/grpcapi"
	"coverage-planner-go/internal/handler"
	"coverage-planner-go/internal/metrics"
	"coverage-planner-go/internal/repository"
	"coverage-planner-go/internal/service"
	"coverage-planner-go/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()

	// Инициализируем логгер
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Запуск Coverage Planner API Server")

	collector, err := metrics.NewCollector(nil)
	if err != nil {
		logger.Fatalf("Ошибка регистрации метрик: %v", err)
	}

	// Хранилище миссий
	missionRepo, dbCheck := initRepository(cfg, logger)
	defer database.Close()

	// Хранилище артефактов
	store, err := initStorage(cfg, logger)
	if err != nil {
		logger.Fatalf("Ошибка инициализации хранилища артефактов: %v", err)
	}

	// Инициализируем сервисы
	intake := client.NewIntakeClient(cfg.IntakeAPI.BaseURL, time.Duration(cfg.IntakeAPI.Timeout)*time.Second, logger)
	planningService := service.NewPlanningService(intake, cfg.Planner, collector, logger)
	missionService := service.NewMissionService(missionRepo, store, planningService, logger)

	// Настраиваем Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(collector.GinMiddleware())

	handler.NewPlanHandler(planningService, dbCheck, logger).RegisterRoutes(router)
	handler.NewMissionHandler(missionService, logger).RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(collector.Handler()))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Coverage Planner API Server",
			"version": service.Version,
			"status":  "running",
		})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}
	go func() {
		logger.Infof("HTTP сервер запущен на %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Ошибка запуска сервера: %v", err)
		}
	}()

	// gRPC сервер
	grpcServer := grpcapi.NewGRPCServer(planningService, collector, logger)
	grpcAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logger.Fatalf("Ошибка открытия порта gRPC %s: %v", grpcAddr, err)
	}
	go func() {
		logger.Infof("gRPC сервер запущен на %s", grpcAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Errorf("gRPC сервер остановлен с ошибкой: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("Останавливаем серверы...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	grpcServer.GracefulStop()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Ошибка остановки HTTP сервера: %v", err)
	}
	logger.Info("Серверы остановлены")
}

// initRepository подключает PostgreSQL или, если база отключена, хранит миссии в памяти
func initRepository(cfg *config.Config, logger *logrus.Logger) (repository.MissionRepository, func() error) {
	if !cfg.Database.Enabled {
		logger.Warn("База данных отключена, миссии хранятся в памяти процесса")
		return repository.NewMemoryRepository(), nil
	}

	logger.Info("Подключение к базе данных...")
	if err := database.Connect(cfg.Database, logger); err != nil {
		logger.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	if err := database.Migrate(logger); err != nil {
		logger.Fatalf("Ошибка выполнения миграций: %v", err)
	}
	if err := database.HealthCheck(); err != nil {
		logger.Fatalf("База данных недоступна: %v", err)
	}

	logger.Info("База данных успешно подключена и готова к работе")
	return repository.NewMissionRepository(database.DB), database.HealthCheck
}

// initStorage выбирает хранилище артефактов по STORAGE_BACKEND
func initStorage(cfg *config.Config, logger *logrus.Logger) (storage.ArtifactStore, error) {
	switch cfg.Storage.Backend {
	case "minio":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Infof("Артефакты хранятся в MinIO %s, бакет %s", cfg.Storage.MinIO.Endpoint, cfg.Storage.MinIO.Bucket)
		return storage.NewMinIOStore(ctx, storage.MinIOConfig{
			Endpoint:  cfg.Storage.MinIO.Endpoint,
			AccessKey: cfg.Storage.MinIO.AccessKey,
			SecretKey: cfg.Storage.MinIO.SecretKey,
			Bucket:    cfg.Storage.MinIO.Bucket,
			UseSSL:    cfg.Storage.MinIO.UseSSL,
		}, logger)
	case "fs", "":
		logger.Infof("Артефакты хранятся в директории %s", cfg.Storage.Dir)
		return storage.NewFSStore(cfg.Storage.Dir, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// corsMiddleware добавляет заголовки CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
