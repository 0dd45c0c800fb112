package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/bwise1/reportes_api/util"
	"github.com/bwise1/reportes_api/util/values"
)

const healthTimeout = 2 * time.Second

// Health reports whether the database answers a ping.
func (api *API) Health(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := util.TracingFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := api.Deps.DB.Ping(ctx); err != nil {
		return api.respondWithError(err, "database unavailable", values.Unavailable, &tc)
	}

	return &ServerResponse{
		Status:     values.Success,
		Message:    "ok",
		StatusCode: http.StatusOK,
		RequestID:  tc.RequestID,
	}
}
