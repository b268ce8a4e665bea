package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/ast"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/evaluator"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Evaluator interface {
		Evaluate(ctx context.Context, q *ast.Query) (evaluator.Result, error)
	}
	Metrics interface {
		Observe(status string, started time.Time)
	}
)
