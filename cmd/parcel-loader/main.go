package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/parcel-loader/internal/application"
	"github.com/eugenenazirov/parcel-loader/internal/config"
	"github.com/eugenenazirov/parcel-loader/internal/console"
	"github.com/eugenenazirov/parcel-loader/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("parcel-loader", "Parcel Loader - packs parcels into 6x6 delivery machines")

	serveCmd := kingpinApp.Command("serve", "Run the HTTP API").Default()
	configFile := serveCmd.Flag("config", "Path to YAML configuration file").String()
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	strategy := serveCmd.Flag("strategy", "Default loading strategy (id or name)").String()
	logLevel := serveCmd.Flag("log-level", "Log level: debug, info, warn, error").String()
	maxStoredLoads := serveCmd.Flag("max-stored-loads", "Number of load results kept in memory").Int()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	importCmd := kingpinApp.Command("import", "Load parcels from a file or a directory of .txt files and print the report")
	importOpts := importOptions{}
	importCmd.Arg("path", "Parcel file or directory").Required().StringVar(&importOpts.Path)
	importCmd.Flag("strategy", "Loading strategy (id or name)").Default("dense").StringVar(&importOpts.Strategy)
	importCmd.Flag("xlsx", "Write an Excel workbook to this path").StringVar(&importOpts.ExcelPath)
	importCmd.Flag("pdf", "Write a PDF report to this path").StringVar(&importOpts.PDFPath)
	importCmd.Flag("png-dir", "Write one PNG per machine into this directory").StringVar(&importOpts.PNGDir)
	importLogLevel := importCmd.Flag("log-level", "Log level: debug, info, warn, error").Default("warn").String()

	consoleCmd := kingpinApp.Command("console", "Read commands from standard input")
	consoleLogLevel := consoleCmd.Flag("log-level", "Log level: debug, info, warn, error").Default(logging.DefaultLevel).String()

	switch kingpin.MustParse(kingpinApp.Parse(os.Args[1:])) {
	case importCmd.FullCommand():
		logger := mustLogger(*importLogLevel)
		defer func() {
			_ = logger.Sync()
		}()
		if err := runImport(importOpts, os.Stdout, logger); err != nil {
			logger.Error("import failed", zap.Error(err))
			_ = logger.Sync()
			os.Exit(1)
		}

	case consoleCmd.FullCommand():
		logger := mustLogger(*consoleLogLevel)
		defer func() {
			_ = logger.Sync()
		}()
		controller := console.NewController(os.Stdout, logger)
		fmt.Fprint(os.Stdout, controller.Help())
		if err := controller.Listen(os.Stdin); err != nil {
			logger.Error("console stopped", zap.Error(err))
		}

	default:
		overrides := &config.CLIOverrides{
			ConfigFile: *configFile,
		}
		if *port != "" {
			overrides.Port = port
		}
		if *strategy != "" {
			overrides.DefaultStrategy = strategy
		}
		if *logLevel != "" {
			overrides.LogLevel = logLevel
		}
		if *maxStoredLoads > 0 {
			overrides.MaxStoredLoads = maxStoredLoads
		}
		if *rateLimitRPSFlag >= 0 {
			overrides.RateLimitRPS = rateLimitRPSFlag
		}
		if *rateLimitBurstFlag >= 0 {
			overrides.RateLimitBurst = rateLimitBurstFlag
		}
		serve(overrides)
	}
}

func serve(overrides *config.CLIOverrides) {
	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger := mustLogger(cfg.LogLevel)
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

func mustLogger(level string) *zap.Logger {
	logger, err := logging.New(level)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return logger
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
