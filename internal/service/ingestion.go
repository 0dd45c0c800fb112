package service

import (
	"context"
	"strings"

	"github.com/bwise1/reportes_api/internal/model"
	"github.com/bwise1/reportes_api/util"
	"go.uber.org/zap"
)

// IngestionService validates and persists report submissions.
type IngestionService struct {
	Store  ReportInserter
	Hasher Anonymizer
	Logger *zap.Logger
}

func NewIngestionService(store ReportInserter, hasher Anonymizer, logger *zap.Logger) *IngestionService {
	return &IngestionService{Store: store, Hasher: hasher, Logger: logger}
}

// Submit validates req, derives the reporter hash from origin and stores the
// report. Category membership in model.Categories is not checked here.
//
// Errors are either *ValidationError (nothing was stored) or ErrIngestionFailed.
func (s *IngestionService) Submit(ctx context.Context, req model.CreateReportRequest, origin string) (model.Report, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.Report{}, newValidationError(err)
	}

	report, err := s.Store.Insert(ctx, model.NewReport{
		Category:     strings.TrimSpace(req.Category),
		Description:  strings.TrimSpace(req.Description),
		Longitude:    *req.Longitude,
		Latitude:     *req.Latitude,
		ImageURL:     util.StringPtr(req.ImageURL),
		ReporterHash: s.Hasher.Hash(origin),
	})
	if err != nil {
		s.Logger.Error("failed to insert report", zap.Error(err), zap.String("category", req.Category))
		return model.Report{}, ErrIngestionFailed
	}

	s.Logger.Info("report created",
		zap.Int64("id", report.ID),
		zap.String("category", report.Category),
	)
	return report, nil
}
