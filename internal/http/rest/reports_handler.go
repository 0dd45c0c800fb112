package rest

import (
	"io"
	"net/http"

	"github.com/bwise1/reportes_api/internal/model"
	"github.com/bwise1/reportes_api/internal/service"
	"github.com/bwise1/reportes_api/util"
	"github.com/bwise1/reportes_api/util/values"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	maxReportBodyBytes = 64 << 10
	maxImageBytes      = 10 << 20
	imageFolder        = "reports"
)

func (api *API) ReportRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodPost, "/", Handler(api.CreateReport))
	mux.Method(http.MethodGet, "/", Handler(api.ListReports))
	mux.Method(http.MethodPost, "/images", Handler(api.UploadImage))

	return mux
}

func (api *API) CreateReport(w http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := util.TracingFromContext(r.Context())

	var req model.CreateReportRequest
	body := http.MaxBytesReader(w, r.Body, maxReportBodyBytes)
	if decodeErr := util.DecodeJSONBody(&tc, body, &req); decodeErr != nil {
		return api.respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	report, status, message, err := api.CreateReportHelper(r.Context(), req, util.ClientOrigin(r))
	if err != nil {
		resp := api.respondWithError(err, message, status, &tc)
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			resp.Errors = ve.Fields
		}
		return resp
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       report,
		RequestID:  tc.RequestID,
	}
}

func (api *API) ListReports(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := util.TracingFromContext(r.Context())

	var raw model.ReportFilter
	if err := api.queryDecoder.Decode(&raw, r.URL.Query()); err != nil {
		// malformed filters are ignored, not rejected
		api.Logger.Debug("partial filter decode", zap.Error(err))
	}

	reports, status, message, err := api.ListReportsHelper(r.Context(), raw)
	if err != nil {
		return api.respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       reports,
		RequestID:  tc.RequestID,
	}
}

// UploadImage stores a multipart "image" file and returns its public URL for
// use as a report's image_url.
func (api *API) UploadImage(w http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := util.TracingFromContext(r.Context())

	if api.Deps.Images == nil {
		return api.respondWithError(errors.New("image store not configured"), "image upload is not available", values.Unavailable, &tc)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	file, _, err := r.FormFile("image")
	if err != nil {
		return api.respondWithError(err, "image file is required", values.BadRequestBody, &tc)
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := file.Read(head)
	if !isImage(head[:n]) {
		return api.respondWithError(errors.New("not an image"), "file must be an image", values.BadRequestBody, &tc)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return api.respondWithError(err, "unable to read image", values.Error, &tc)
	}

	url, err := api.Deps.Images.UploadImage(r.Context(), file, imageFolder)
	if err != nil {
		return api.respondWithError(err, "failed to upload image", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "image uploaded",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data:       model.ImageUpload{URL: url},
		RequestID:  tc.RequestID,
	}
}

func isImage(head []byte) bool {
	switch http.DetectContentType(head) {
	case "image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp":
		return true
	}
	return false
}
