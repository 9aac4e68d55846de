// Package main provides the densenet training CLI.
//
// Usage:
//
//	densenet -train data.txt [-config run.toml] [-test data.txt] [-plot loss.png] [-metrics :2112] [-v]
//	densenet version
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/born-ml/densenet/internal/config"
	"github.com/born-ml/densenet/internal/dataset"
	"github.com/born-ml/densenet/internal/metrics"
	"github.com/born-ml/densenet/internal/nn"
	"github.com/born-ml/densenet/internal/report"
)

const version = "v0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "densenet: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	config  string
	train   string
	test    string
	plot    string
	metrics string
	verbose bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("densenet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.config, "config", "", "TOML run configuration (default: built-in 4-10-6-1 setup)")
	fs.StringVar(&opts.train, "train", "", "Training data file (required)")
	fs.StringVar(&opts.test, "test", "", "Evaluation data file (default: the training data)")
	fs.StringVar(&opts.plot, "plot", "", "Write the loss curve to this PNG file")
	fs.StringVar(&opts.metrics, "metrics", "", "Serve Prometheus metrics on this address, e.g. :2112")
	fs.BoolVar(&opts.verbose, "v", false, "Log every epoch")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.train == "" {
		fs.Usage()
		return opts, errors.New("-train is required")
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "version" {
		fmt.Fprintf(stdout, "densenet %s\n", version)
		return nil
	}

	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if opts.verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	cfg := config.Default()
	if opts.config != "" {
		if cfg, err = config.Load(opts.config); err != nil {
			return err
		}
	}

	trainSet, err := dataset.Load(opts.train)
	if err != nil {
		return err
	}
	testSet := trainSet
	if opts.test != "" {
		if testSet, err = dataset.Load(opts.test); err != nil {
			return err
		}
	}
	logger.Info().Int("train", len(trainSet)).Int("test", len(testSet)).Msg("data loaded")

	net, err := nn.New(cfg.Network())
	if err != nil {
		return err
	}
	net.SetLogger(logger)
	logger.Info().Str("run", net.ID()).
		Msgf("training %d epochs in %d stages", cfg.Epochs(), len(cfg.Stages))

	if opts.metrics != "" {
		collector := metrics.NewCollector()
		reg := prometheus.NewRegistry()
		if err := collector.Register(reg); err != nil {
			return err
		}
		net.SetObserver(collector)
		go serveMetrics(opts.metrics, reg, logger)
	}

	stages, err := train(net, cfg, trainSet, testSet, stdout)
	if err != nil {
		return err
	}

	if opts.plot != "" {
		if err := report.SaveLossCurve(opts.plot, "densenet "+net.ID(), stages); err != nil {
			return err
		}
		logger.Info().Str("path", opts.plot).Msg("loss curve written")
	}
	return nil
}

// train evaluates the fresh network, then runs every stage and evaluates
// after each one.
func train(net *nn.Network, cfg config.Config, trainSet, testSet []nn.Sample, out io.Writer) ([]report.Stage, error) {
	rep, err := net.Test(testSet)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "untrained: %v\n", rep)

	stages := make([]report.Stage, 0, len(cfg.Stages))
	for i, s := range cfg.Stages {
		hist, err := net.Train(trainSet, s.Epochs, s.LearningRate)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
		stages = append(stages, report.Stage{
			Name:   fmt.Sprintf("stage %d (lr %g)", i+1, s.LearningRate),
			Losses: hist.Losses,
		})

		rep, err := net.Test(testSet)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
		fmt.Fprintf(out, "stage %d: epochs=%d lr=%g %v\n", i+1, s.Epochs, s.LearningRate, rep)
	}
	return stages, nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server stopped")
	}
}
