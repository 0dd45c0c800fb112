package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwise1/reportes_api/internal/filter"
	"github.com/bwise1/reportes_api/internal/model"
	"go.uber.org/zap"
)

// dateLayouts are tried in order for startDate and endDate.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// QueryService lists reports for the map.
type QueryService struct {
	Store  ReportQuerier
	Logger *zap.Logger
}

func NewQueryService(store ReportQuerier, logger *zap.Logger) *QueryService {
	return &QueryService{Store: store, Logger: logger}
}

// List returns the reports matching raw, newest first.
func (s *QueryService) List(ctx context.Context, raw model.ReportFilter) ([]model.Report, error) {
	spec := ParseFilter(raw, s.Logger)

	reports, err := s.Store.Query(ctx, filter.Compile(spec))
	if err != nil {
		s.Logger.Error("failed to query reports", zap.Error(err))
		return nil, ErrQueryFailed
	}
	return reports, nil
}

// ParseFilter converts raw query values to a filter.Spec. A value that does
// not parse is dropped, so the matching filter is simply not applied.
func ParseFilter(raw model.ReportFilter, logger *zap.Logger) filter.Spec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return filter.Spec{
		Category:  strings.TrimSpace(raw.Category),
		StartDate: parseTime("startDate", raw.StartDate, logger),
		EndDate:   parseTime("endDate", raw.EndDate, logger),
		Latitude:  parseFloat("latitude", raw.Latitude, logger),
		Longitude: parseFloat("longitude", raw.Longitude, logger),
		RadiusKm:  parseFloat("radius", raw.Radius, logger),
	}
}

func parseFloat(name, v string, logger *zap.Logger) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logger.Debug("ignoring malformed filter", zap.String("filter", name), zap.String("value", v))
		return nil
	}
	return &f
}

func parseTime(name, v string, logger *zap.Logger) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	logger.Debug("ignoring malformed filter", zap.String("filter", name), zap.String("value", v))
	return nil
}
