package reportes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwise1/reportes_api/internal/model"
	"github.com/bwise1/reportes_api/util"
	"github.com/bwise1/reportes_api/util/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, code int, body map[string]interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	_, err := NewClient("localhost:8080")
	assert.Error(t, err)

	_, err = NewClient("/reports")
	assert.Error(t, err)
}

func TestGetReportsEncodesFilter(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/reports", r.URL.Path)
		assert.Equal(t, clientSource, r.Header.Get(values.HeaderRequestSource))

		q := r.URL.Query()
		assert.Equal(t, "accident", q.Get("category"))
		assert.Equal(t, "24.8", q.Get("latitude"))
		assert.Equal(t, "-107.39", q.Get("longitude"))
		assert.Equal(t, "5", q.Get("radius"))
		assert.NotContains(t, q, "startDate")
		assert.NotContains(t, q, "endDate")

		writeEnvelope(t, w, http.StatusOK, map[string]interface{}{
			"status":  values.Success,
			"message": "reports fetched successfully",
			"data": []model.Report{{
				ID: 7, Category: "accident", Description: "crash",
				Latitude: 24.8, Longitude: -107.39, CreatedAt: created,
			}},
		})
	})

	got, err := c.GetReports(context.Background(), model.ReportFilter{
		Category:  "accident",
		Latitude:  "24.8",
		Longitude: "-107.39",
		Radius:    "5",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)
	assert.True(t, created.Equal(got[0].CreatedAt))
}

func TestGetReportsEmptyFilterSendsNoQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		writeEnvelope(t, w, http.StatusOK, map[string]interface{}{"status": values.Success, "data": []model.Report{}})
	})

	got, err := c.GetReports(context.Background(), model.ReportFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSubmitReport(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.CreateReportRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "robbery", req.Category)
		require.NotNil(t, req.Latitude)
		assert.InDelta(t, 0, *req.Latitude, 1e-9)

		writeEnvelope(t, w, http.StatusCreated, map[string]interface{}{
			"status": values.Created,
			"data": model.Report{
				ID: 1, Category: req.Category, Description: req.Description,
				Latitude: *req.Latitude, Longitude: *req.Longitude,
			},
		})
	})

	got, err := c.SubmitReport(context.Background(), model.CreateReportRequest{
		Category:    "robbery",
		Description: "phone taken",
		Latitude:    util.Float64Ptr(0),
		Longitude:   util.Float64Ptr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestSubmitReportUnknownCategory(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.SubmitReport(context.Background(), model.CreateReportRequest{
		Category:    "earthquake",
		Description: "x",
		Latitude:    util.Float64Ptr(1),
		Longitude:   util.Float64Ptr(2),
	})
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.False(t, called)
}

func TestSubmitReportServerRejects(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusBadRequest, map[string]interface{}{
			"status":  values.BadRequestBody,
			"message": "invalid report",
			"errors":  map[string]string{"description": "is required"},
		})
	})

	_, err := c.SubmitReport(context.Background(), model.CreateReportRequest{
		Category:  "other",
		Latitude:  util.Float64Ptr(1),
		Longitude: util.Float64Ptr(2),
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid report", apiErr.Message)
	assert.Equal(t, "is required", apiErr.Fields["description"])
}

func TestNonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.GetReports(context.Background(), model.ReportFilter{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "bad gateway", apiErr.Message)
}
