package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bwise1/reportes_api/config"
	deps "github.com/bwise1/reportes_api/internal/debs"
	"github.com/bwise1/reportes_api/internal/service"
	"github.com/bwise1/reportes_api/util/values"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/schema"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	defaultIdleTimeout    = time.Minute
	defaultReadTimeout    = 5 * time.Second
	defaultWriteTimeout   = 10 * time.Second
	defaultShutdownPeriod = 30 * time.Second
)

type Handler func(w http.ResponseWriter, r *http.Request) *ServerResponse

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := h(w, r)
	if resp == nil {
		return
	}
	respByte, err := json.Marshal(resp)
	if err != nil {
		writeErrorResponse(w, values.Error, "unable to marshal server response")
		return
	}
	writeJSONResponse(w, respByte, resp.StatusCode)
}

type API struct {
	Server    *http.Server
	Config    *config.Config
	Deps      *deps.Dependencies
	Logger    *zap.Logger
	Ingestion *service.IngestionService
	Query     *service.QueryService

	queryDecoder *schema.Decoder
}

func New(cfg *config.Config, d *deps.Dependencies, ingestion *service.IngestionService, query *service.QueryService) *API {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &API{
		Config:       cfg,
		Deps:         d,
		Logger:       d.Logger,
		Ingestion:    ingestion,
		Query:        query,
		queryDecoder: decoder,
	}
}

func (api *API) Serve() error {
	api.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", api.Config.Port),
		IdleTimeout:  defaultIdleTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		Handler:      api.Routes(),
	}
	return api.Server.ListenAndServe()
}

// Routes builds the complete HTTP handler.
func (api *API) Routes() http.Handler {
	mux := chi.NewRouter()
	if api.Config.TrustProxy {
		mux.Use(middleware.RealIP)
	}
	mux.Use(middleware.Recoverer)
	mux.Use(RequestTracing)
	mux.Use(api.AccessLogging)
	mux.Use(api.CountRequests)
	mux.Use(CORS(api.Config.AllowedOrigins))

	mux.Method(http.MethodGet, "/healthz", Handler(api.Health))
	mux.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(api.Deps.Metrics.Registry, promhttp.HandlerOpts{}))

	reports := api.ReportRoutes()
	mux.Mount("/reports", reports)
	// path used by the map client
	mux.Mount("/reportes", reports)

	return mux
}

func (api *API) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownPeriod)
	defer cancel()

	return api.Server.Shutdown(ctx)
}
