// Command pfcpcored runs the PFCP session/rule core as a standalone
// process: it loads configuration, builds the in-memory session graph,
// and serves the admin and metrics HTTP surfaces. The PFCP message
// dispatcher, UDP socket, and transaction table are external
// collaborators (see internal/pfcpctx/collaborators.go) and are not
// started here.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/your-org/pfcp-core/internal/adminapi"
	"github.com/your-org/pfcp-core/internal/config"
	"github.com/your-org/pfcp-core/internal/metrics"
	"github.com/your-org/pfcp-core/internal/pfcpctx"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	var configPath string
	var adminAddr string
	var metricsPort int
	flag.StringVar(&configPath, "config", "config/pfcpcored.yaml", "Path to configuration file")
	flag.StringVar(&adminAddr, "admin-addr", ":9097", "Admin HTTP listen address")
	flag.IntVar(&metricsPort, "metrics-port", 9098, "Prometheus metrics port")
	flag.Parse()

	logger := initLogger()
	defer logger.Sync()

	logger.Info("starting pfcpcored", zap.String("version", Version), zap.String("build_time", BuildTime))

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	pfcpCtx := pfcpctx.New(logger)
	if err := config.Apply(pfcpCtx, cfg.Local, cfg.Remote, logger); err != nil {
		logger.Fatal("failed to apply configuration", zap.Error(err))
	}
	logger.Info("pfcp core initialized",
		zap.Int("subnets", len(pfcpCtx.Subnets())),
		zap.Int("peers", len(pfcpCtx.Nodes())))

	adminServer := adminapi.NewServer(pfcpCtx, adminAddr, logger)
	metricsServer := metrics.NewServer(metricsPort, logger)

	adminErrChan := make(chan error, 1)
	go func() {
		if err := adminServer.Start(); err != nil {
			adminErrChan <- fmt.Errorf("admin server error: %w", err)
		}
	}()

	metricsErrChan := make(chan error, 1)
	go func() {
		if err := metricsServer.Start(); err != nil {
			metricsErrChan <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	logger.Info("pfcpcored started successfully",
		zap.String("admin_addr", adminAddr),
		zap.Int("metrics_port", metricsPort))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-adminErrChan:
		logger.Error("admin server failed", zap.Error(err))
	case err := <-metricsErrChan:
		logger.Error("metrics server failed", zap.Error(err))
	}

	logger.Info("shutting down pfcpcored...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := adminServer.Stop(shutdownCtx); err != nil {
		logger.Error("error stopping admin server", zap.Error(err))
	}
	if err := metricsServer.Stop(); err != nil {
		logger.Error("error stopping metrics server", zap.Error(err))
	}

	logger.Info("pfcpcored shutdown complete")
}

func initLogger() *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := cfg.Build()
	return logger
}
