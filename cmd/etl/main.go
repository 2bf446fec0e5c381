// Package main provides the batch command that converts and normalizes
// every spreadsheet under the source prefix.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"sheetetl/internal/config"
	"sheetetl/internal/converter"
	"sheetetl/internal/logger"
	"sheetetl/internal/normalizer"
	"sheetetl/internal/pipeline"
	"sheetetl/internal/storage"
)

const (
	exitListFailed = 1
	exitFileFailed = 2
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	envFile := flag.String("env-file", ".env", "Path to .env file (ignored if missing)")
	logLevel := flag.String("log-level", "", "Override logging.level")
	initConfig := flag.String("init-config", "", "Write the default configuration to this path and exit")

	flag.Parse()

	if *initConfig != "" {
		if err := config.Default().SaveConfig(*initConfig); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Default configuration written to %s\n", *initConfig)

		return
	}

	os.Exit(run(*configPath, *envFile, *logLevel))
}

func run(configPath, envFile, logLevel string) int {
	if err := config.LoadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return 1
	}

	cfg, err := config.Load(configPath, os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return 1
	}

	if err := cfg.OverrideLogLevel(logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return 1
	}

	var out io.Writer = os.Stderr

	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()

		out = io.MultiWriter(os.Stderr, f)
	}

	log := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: out,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newGateway(ctx, cfg)
	if err != nil {
		log.Error(fmt.Sprintf("Storage setup failed: %v", err))
		return 1
	}

	log.Info("Starting run", "config", cfg.String())

	runner := pipeline.NewRunner(cfg, store, converter.New(), normalizer.NewProcessor(), log)

	sum, err := runner.Run(ctx)
	if sum != nil {
		fmt.Print(sum.Report())
	}

	if err != nil {
		log.Error(fmt.Sprintf("Run aborted: %v", err))

		if errors.Is(err, pipeline.ErrList) {
			return exitListFailed
		}

		return 1
	}

	if cfg.Processing.FailOnFileError && sum.Failed() > 0 {
		return exitFileFailed
	}

	return 0
}

func newGateway(ctx context.Context, cfg *config.Config) (storage.Gateway, error) {
	var g storage.Gateway

	switch cfg.Storage.Driver {
	case config.DriverLocal:
		g = storage.NewLocalGateway(cfg.Storage.LocalRoot)
	default:
		s3g, err := storage.NewS3Gateway(ctx, storage.S3Options{
			Region:       cfg.Storage.Region,
			Endpoint:     cfg.Storage.Endpoint,
			UsePathStyle: cfg.Storage.UsePathStyle,
		})
		if err != nil {
			return nil, err
		}

		g = s3g
	}

	return storage.WithTimeout(g, cfg.Timeout()), nil
}
