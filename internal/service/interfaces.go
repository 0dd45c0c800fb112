package service

import (
	"context"

	"github.com/bwise1/reportes_api/internal/filter"
	"github.com/bwise1/reportes_api/internal/model"
)

type ReportInserter interface {
	Insert(ctx context.Context, r model.NewReport) (model.Report, error)
}

type ReportQuerier interface {
	Query(ctx context.Context, p filter.Predicate) ([]model.Report, error)
}

// Anonymizer derives the reporter hash from a network origin.
type Anonymizer interface {
	Hash(origin string) string
}
