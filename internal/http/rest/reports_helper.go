package rest

import (
	"context"

	"github.com/bwise1/reportes_api/internal/model"
	"github.com/bwise1/reportes_api/internal/service"
	"github.com/bwise1/reportes_api/util/values"
	"github.com/pkg/errors"
)

func (api *API) CreateReportHelper(ctx context.Context, req model.CreateReportRequest, origin string) (model.Report, string, string, error) {
	report, err := api.Ingestion.Submit(ctx, req, origin)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return model.Report{}, values.BadRequestBody, "invalid report", err
		}
		return model.Report{}, values.Error, "failed to create report", err
	}

	api.Deps.Metrics.ReportsCreated.Inc()
	return report, values.Created, "report created successfully", nil
}

func (api *API) ListReportsHelper(ctx context.Context, raw model.ReportFilter) ([]model.Report, string, string, error) {
	reports, err := api.Query.List(ctx, raw)
	if err != nil {
		return nil, values.Error, "failed to fetch reports", err
	}

	api.Deps.Metrics.QueryResults.Observe(float64(len(reports)))
	return reports, values.Success, "reports fetched successfully", nil
}
