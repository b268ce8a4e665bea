package evaluator

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Provider interface {
		FetchTransaction(ctx context.Context, hash string) (*model.Transaction, error)
		FetchAddress(ctx context.Context, address string) (*model.Address, error)
	}
	Metrics interface {
		ObserveStep(entity, outcome string)
	}
)
