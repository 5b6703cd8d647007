// Command sentiment trains a text classifier on one delimited file, tests
// it on another and prints the evaluation metrics.
//
//	go run ./cmd/examples/sentiment --config cmd/examples/sentiment/config.yml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/spf13/pflag"

	"github.com/Stephen0620/NimbusML-Samples/columnar"
	"github.com/Stephen0620/NimbusML-Samples/config"
	"github.com/Stephen0620/NimbusML-Samples/logger"
	"github.com/Stephen0620/NimbusML-Samples/metrics"
	"github.com/Stephen0620/NimbusML-Samples/observability"
	"github.com/Stephen0620/NimbusML-Samples/version"
)

const serviceName = "sentiment"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	configFile := flags.StringP("config", "c", "", "path to config.yml")
	envFile := flags.String("env", "", "path to .env file")
	train := flags.String("train", "", "training file (overrides data.train.path)")
	test := flags.String("test", "", "test file (overrides data.test.path)")
	scores := flags.IntP("scores", "n", -1, "number of prediction rows to print (overrides output.scores)")
	predictions := flags.StringP("predictions", "o", "", "write predictions as an Arrow IPC stream to this file")
	showVersion := flags.BoolP("version", "v", false, "print the version and exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}
	if *showVersion {
		fmt.Println(version.Get())
		return nil
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return err
	}
	if *train != "" {
		cfg.Data.Train.Path = *train
	}
	if *test != "" {
		cfg.Data.Test.Path = *test
	}
	if *scores >= 0 {
		cfg.Output.Scores = *scores
	}
	if *predictions != "" {
		cfg.Output.Predictions = *predictions
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().String()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	log := logger.WithComponent(serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := observability.Setup(ctx, cfg.Name, cfg.Version, cfg.Environment, cfg.Observability)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Warn("observability shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}()

	return evaluate(ctx, &cfg, log)
}

func evaluate(ctx context.Context, cfg *Config, log *logger.Logger) error {
	trainData, err := openStream(cfg.Data.Train, log)
	if err != nil {
		return err
	}
	testData, err := openStream(cfg.Data.Test, log)
	if err != nil {
		return err
	}
	log.Info("schema inferred", logger.Fields(
		logger.FieldPath, trainData.Path(),
		"columns", trainData.Schema().String(),
	))

	p, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}
	if err := p.Fit(ctx, trainData); err != nil {
		return err
	}

	wantScores := cfg.Output.Scores > 0 || cfg.Output.Predictions != ""
	rec, preds, err := p.Test(ctx, testData, wantScores)
	if err != nil {
		return err
	}

	metrics.Render(os.Stdout, rec)
	if cfg.Output.Scores > 0 {
		metrics.RenderPredictions(os.Stdout, preds, cfg.Output.Scores)
	}
	if cfg.Output.Predictions != "" {
		return writePredictions(cfg.Output.Predictions, preds)
	}
	return nil
}

func writePredictions(path string, preds []metrics.Prediction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := columnar.WritePredictions(f, memory.DefaultAllocator, preds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
