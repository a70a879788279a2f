package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"stuDealsWs/internal/config"
	"stuDealsWs/internal/modules/realtime/application/handler"
	"stuDealsWs/internal/modules/realtime/application/usecase"
	"stuDealsWs/internal/modules/realtime/domain"
	"stuDealsWs/internal/modules/realtime/infrastructure"
	transport "stuDealsWs/internal/modules/realtime/interface"
	"stuDealsWs/internal/platform/broker"
	"stuDealsWs/internal/shared/auth"
	"stuDealsWs/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID))

	hub := infrastructure.NewHub()

	validator := auth.NewJWTValidator(cfg.Security.JWTSecret)
	snapshotFetcher := infrastructure.NewVendorSnapshotHTTPClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)

	connectUC := usecase.NewConnectVendorUseCase(validator)
	snapshotUC := usecase.NewSnapshotUseCase(snapshotFetcher)
	relayUC := usecase.NewRelayUseCase(hub)

	// One change-stream handler per dashboard domain plus the claim stream.
	registry := broker.NewHandlerRegistry()
	for _, domainName := range append(domain.Domains(), domain.DomainCoupons) {
		topic, ok := cfg.Kafka.Topics[domainName]
		if !ok {
			topic = "studeals." + domainName
		}
		registry.Register(handler.NewDomainStreamHandler(domainName, topic, relayUC, snapshotUC))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID)

	e := echo.New()
	e.Logger.SetOutput(log.Writer())

	e.GET("/ws/vendor", transport.NewVendorWebsocketHandler(hub, connectUC, snapshotUC, relayUC, cfg.Websocket))
	e.POST("/broadcast", transport.NewBroadcastHTTPHandler(connectUC, relayUC))

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	e.Close()
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
