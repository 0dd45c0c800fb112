package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/bwise1/reportes_api/internal/http/reportes"
	"github.com/bwise1/reportes_api/internal/model"
	"github.com/bwise1/reportes_api/util"
	"github.com/bwise1/reportes_api/util/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	baseURL  string
	centre   [2]float64
	count    int
	spreadKm float64
)

var samples = map[string][]string{
	model.CategoryNarcoBlockade: {"burning vehicles blocking the avenue", "armed checkpoint on the highway exit"},
	model.CategoryRobbery:       {"phone snatched at the bus stop", "convenience store held up"},
	model.CategoryAccident:      {"two cars collided at the intersection", "motorcycle down, traffic stopped"},
	model.CategoryOther:         {"traffic light out", "street flooded after the rain"},
}

var seedCommand = &cobra.Command{
	Use:   "seed",
	Short: "Submit sample reports around a centre point",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger, err := logging.New("info", true)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		client, err := reportes.NewClient(baseURL)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		for i := 0; i < count; i++ {
			req := sampleReport(i)
			created, err := client.SubmitReport(ctx, req)
			if err != nil {
				return fmt.Errorf("report %d: %w", i, err)
			}
			logger.Info("report submitted",
				zap.Int64("id", created.ID),
				zap.String("category", created.Category),
				zap.Float64("latitude", created.Latitude),
				zap.Float64("longitude", created.Longitude),
			)
		}

		reports, err := client.GetReports(ctx, model.ReportFilter{})
		if err != nil {
			return err
		}
		logger.Info("seed finished", zap.Int("submitted", count), zap.Int("total", len(reports)))
		return nil
	},
}

func init() {
	flags := seedCommand.Flags()
	flags.StringVar(&baseURL, "url", "http://localhost:8080", "reports API base url")
	flags.Float64Var(&centre[0], "lat", 24.8049, "centre latitude")
	flags.Float64Var(&centre[1], "lon", -107.3940, "centre longitude")
	flags.IntVarP(&count, "count", "n", 12, "number of reports to submit")
	flags.Float64Var(&spreadKm, "spread", 3, "maximum distance from the centre in km")
}

// sampleReport places report i on a spiral around the centre so repeated
// runs produce the same layout.
func sampleReport(i int) model.CreateReportRequest {
	category := model.Categories[i%len(model.Categories)]
	descriptions := samples[category]

	angle := float64(i) * 2.399963 // golden angle
	dist := spreadKm * math.Sqrt(float64(i+1)/float64(count+1))
	// 1 degree of latitude is ~111 km
	dLat := dist / 111 * math.Cos(angle)
	dLon := dist / (111 * math.Cos(centre[0]*math.Pi/180)) * math.Sin(angle)

	return model.CreateReportRequest{
		Category:    category,
		Description: descriptions[(i/len(model.Categories))%len(descriptions)],
		Latitude:    util.Float64Ptr(centre[0] + dLat),
		Longitude:   util.Float64Ptr(centre[1] + dLon),
	}
}

func main() {
	if err := seedCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
