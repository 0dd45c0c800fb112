package deps

import (
	"context"

	"github.com/bwise1/reportes_api/config"
	"github.com/bwise1/reportes_api/internal/db"
	"github.com/bwise1/reportes_api/internal/store"
	"github.com/bwise1/reportes_api/util/metrics"
	"github.com/bwise1/reportes_api/util/storage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Database is the part of the connection pool the HTTP layer needs.
type Database interface {
	Ping(ctx context.Context) error
	Close()
}

type Dependencies struct {
	DB      Database
	Reports *store.ReportStore
	// Images is nil when Cloudinary is not configured.
	Images  storage.ImageStore
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	database, err := db.New(ctx, cfg.Dsn, db.Options{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	}, logger)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, errors.Wrap(err, "migrating database")
	}

	d := &Dependencies{
		DB:      database,
		Reports: store.NewReportStore(database.Pool()),
		Logger:  logger,
		Metrics: metrics.New(),
	}

	if cfg.CloudinaryEnabled() {
		cld, err := storage.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			database.Close()
			return nil, err
		}
		d.Images = cld
	} else {
		logger.Info("cloudinary not configured, image upload disabled")
	}

	return d, nil
}

func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
