package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/evaluator"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/service"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/setup"
)

type config struct {
	File     string               `long:"file" short:"f" env:"QUERY_FILE" description:"file with one query per line, # starts a comment"`
	Timeout  time.Duration        `long:"timeout" env:"QUERY_TIMEOUT" description:"per query timeout" default:"2m"`
	Workers  int                  `long:"workers" env:"QUERY_WORKERS" description:"queries evaluated at once" default:"4"`
	Verbose  bool                 `long:"verbose" short:"v" env:"QUERY_VERBOSE" description:"log every evaluated expression"`
	Provider setup.ProviderConfig `group:"provider" namespace:"provider" env-namespace:"QUERY_PROVIDER"`
	Args     struct {
		Queries []string `positional-arg-name:"query"`
	} `positional-args:"yes"`
}

func main() {
	// A missing .env file is fine, the environment may be set otherwise.
	_ = godotenv.Load()

	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed, err := run(ctx, cfg, os.Stdout, logger)
	if err != nil {
		logger.Error("query run failed", zap.Error(err))
		stop()
		os.Exit(1)
	}
	if failed > 0 {
		stop()
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func run(ctx context.Context, cfg config, out io.Writer, logger *zap.Logger) (failed int, err error) {
	queries := cfg.Args.Queries
	if cfg.File != "" {
		fromFile, err := readQueries(cfg.File)
		if err != nil {
			return 0, err
		}
		queries = append(queries, fromFile...)
	}
	if len(queries) == 0 {
		return 0, errors.New("no queries given, pass them as arguments or with --file")
	}

	p, err := setup.NewProvider(cfg.Provider, logger)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := p.Close(); cerr != nil {
			logger.Warn("failed to close provider", zap.Error(cerr))
		}
	}()

	ev, err := evaluator.NewEvaluator(p, nil, metrics.NewTraversal(), logger.Named("evaluator"))
	if err != nil {
		return 0, err
	}
	svc, err := service.NewService(ev, metrics.NewQuery(), service.Config{
		Timeout: cfg.Timeout,
		Workers: cfg.Workers,
	}, logger)
	if err != nil {
		return 0, err
	}

	for _, o := range svc.RunBatch(ctx, queries) {
		fmt.Fprintln(out, strings.Repeat("=", 100))
		if o.Err != nil {
			failed++
			fmt.Fprintf(out, "Query failed: %s\n %v\n", o.Query, o.Err)
			continue
		}
		fmt.Fprintf(out, "Query result for node %s:\n %t\n", o.Result.Node, o.Result.Value)
	}
	return failed, nil
}

func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open query file: %w", err)
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read query file: %w", err)
	}
	return queries, nil
}
