package rest

import (
	"encoding/json"
	"net/http"

	"github.com/bwise1/reportes_api/util"
	"github.com/bwise1/reportes_api/util/tracing"
	"github.com/bwise1/reportes_api/util/values"
	"go.uber.org/zap"
)

type ServerResponse struct {
	Status     string            `json:"status"`
	Message    string            `json:"message"`
	Data       interface{}       `json:"data,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	StatusCode int               `json:"-"`
}

// respondWithError logs err and builds the client response. err itself is
// never serialized; only message reaches the client.
func (api *API) respondWithError(err error, message, status string, tc *tracing.Context) *ServerResponse {
	code := util.StatusCode(status)
	fields := []zap.Field{zap.Error(err), zap.String("status", status)}
	if tc != nil {
		fields = append(fields, zap.String("request_id", tc.RequestID))
	}
	if code >= http.StatusInternalServerError {
		api.Logger.Error(message, fields...)
	} else {
		api.Logger.Info(message, fields...)
	}

	resp := &ServerResponse{
		Status:     status,
		Message:    message,
		StatusCode: code,
	}
	if tc != nil {
		resp.RequestID = tc.RequestID
	}
	return resp
}

func writeJSONResponse(w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

func writeErrorResponse(w http.ResponseWriter, status, message string) {
	body, err := json.Marshal(&ServerResponse{Status: status, Message: message})
	if err != nil {
		http.Error(w, message, util.StatusCode(values.Error))
		return
	}
	writeJSONResponse(w, body, util.StatusCode(status))
}
