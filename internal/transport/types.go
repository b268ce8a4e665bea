package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/evaluator"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/service"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	QueryService interface {
		Run(ctx context.Context, text string) (evaluator.Result, error)
		RunBatch(ctx context.Context, texts []string) []service.Outcome
	}
)
