// Package service runs query text end to end: parse, evaluate under a
// deadline, record the outcome.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/evaluator"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/parser"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider"
	"github.com/goodnatureofminers/blockinsight7000-query/pkg/workerpool"
)

const (
	defaultTimeout = time.Minute
	defaultWorkers = 4
)

// Query outcome labels.
const (
	StatusSyntaxError = "syntax_error"
	StatusNotFound    = "not_found"
	StatusUnavailable = "unavailable"
	StatusInvalid     = "invalid"
	StatusTimeout     = "timeout"
	StatusCanceled    = "canceled"
	StatusError       = "error"
)

// Config tunes query execution.
type Config struct {
	// Timeout bounds a single query. Zero selects one minute.
	Timeout time.Duration
	// Workers bounds the queries of a batch evaluated at once.
	Workers int
}

// Outcome is the result of one query in a batch.
type Outcome struct {
	Query  string
	Result evaluator.Result
	Err    error
}

// Service evaluates query text.
type Service struct {
	evaluator Evaluator
	metrics   Metrics
	timeout   time.Duration
	workers   int
	logger    *zap.Logger
}

// NewService constructs a Service.
func NewService(ev Evaluator, metrics Metrics, cfg Config, logger *zap.Logger) (*Service, error) {
	if ev == nil {
		return nil, errors.New("service evaluator is required")
	}
	if metrics == nil {
		return nil, errors.New("service metrics is required")
	}
	if logger == nil {
		return nil, errors.New("service logger is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &Service{
		evaluator: ev,
		metrics:   metrics,
		timeout:   cfg.Timeout,
		workers:   cfg.Workers,
		logger:    logger.Named("query_service"),
	}, nil
}

// Run parses and evaluates a single query.
func (s *Service) Run(ctx context.Context, text string) (res evaluator.Result, err error) {
	started := time.Now()
	defer func() {
		status := Status(err)
		if err == nil {
			status = strconv.FormatBool(res.Value)
		}
		s.metrics.Observe(status, started)
	}()

	q, err := parser.Parse(text)
	if err != nil {
		s.logger.Info("query rejected", zap.String("query", text), zap.Error(err))
		return evaluator.Result{}, fmt.Errorf("parse query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err = s.evaluator.Evaluate(ctx, q)
	if err != nil {
		s.logger.Warn("query failed",
			zap.String("node", q.Root.ID),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return evaluator.Result{}, err
	}

	s.logger.Info("query evaluated",
		zap.String("node", res.Node),
		zap.Bool("result", res.Value),
		zap.Duration("elapsed", time.Since(started)),
	)
	return res, nil
}

// RunBatch evaluates independent queries in parallel. Outcomes keep the input
// order and a failing query does not stop the others.
func (s *Service) RunBatch(ctx context.Context, texts []string) []Outcome {
	outcomes := make([]Outcome, len(texts))
	for i, text := range texts {
		outcomes[i].Query = text
	}

	started := workerpool.Each(ctx, s.workers, texts, func(ctx context.Context, i int, text string) {
		outcomes[i].Result, outcomes[i].Err = s.Run(ctx, text)
	})
	for i := started; i < len(outcomes); i++ {
		outcomes[i].Err = fmt.Errorf("query not started: %w", context.Cause(ctx))
	}
	return outcomes
}

// Status classifies a query failure.
func Status(err error) string {
	var syntaxErr *parser.SyntaxError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &syntaxErr):
		return StatusSyntaxError
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	case errors.Is(err, provider.ErrNotFound):
		return StatusNotFound
	case errors.Is(err, provider.ErrUnavailable), errors.Is(err, provider.ErrUnsupported):
		return StatusUnavailable
	case isInvalid(err):
		return StatusInvalid
	default:
		return StatusError
	}
}

func isInvalid(err error) bool {
	for _, target := range []error{
		evaluator.ErrUnknownOperator,
		evaluator.ErrFieldNotFound,
		evaluator.ErrIndexOutOfRange,
		evaluator.ErrNotIndexable,
		evaluator.ErrTypeMismatch,
		evaluator.ErrNoCurrentEntity,
		evaluator.ErrInvalidBound,
		evaluator.ErrOperandCount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
