package model

import (
	"time"
)

// Report categories accepted by the map client.
const (
	CategoryNarcoBlockade = "narco-blockade"
	CategoryRobbery       = "robbery"
	CategoryAccident      = "accident"
	CategoryOther         = "other"
)

var Categories = []string{CategoryNarcoBlockade, CategoryRobbery, CategoryAccident, CategoryOther}

// IsCategory reports whether c belongs to the closed category set.
func IsCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

type Report struct {
	ID           int64     `json:"id"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Longitude    float64   `json:"longitude"`
	Latitude     float64   `json:"latitude"`
	ImageURL     *string   `json:"image_url"`
	ReporterHash string    `json:"reporter_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateReportRequest is the inbound submission. Coordinates are pointers so
// that 0 is a valid value distinct from "missing".
type CreateReportRequest struct {
	Category    string   `json:"category" validate:"required,notblank"`
	Description string   `json:"description" validate:"required,notblank"`
	Latitude    *float64 `json:"latitude" validate:"required,latitude"`
	Longitude   *float64 `json:"longitude" validate:"required,longitude"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// NewReport is what the store persists; ReporterHash is always derived server side.
type NewReport struct {
	Category     string
	Description  string
	Longitude    float64
	Latitude     float64
	ImageURL     *string
	ReporterHash string
}

// ReportFilter holds the raw list query parameters. Every field is optional
// and kept as text; parsing is lenient.
type ReportFilter struct {
	Category  string `json:"category,omitempty" schema:"category" url:"category,omitempty"`
	StartDate string `json:"startDate,omitempty" schema:"startDate" url:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty" schema:"endDate" url:"endDate,omitempty"`
	Latitude  string `json:"latitude,omitempty" schema:"latitude" url:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty" schema:"longitude" url:"longitude,omitempty"`
	Radius    string `json:"radius,omitempty" schema:"radius" url:"radius,omitempty"`
}

// ImageUpload is returned by the image upload endpoint.
type ImageUpload struct {
	URL string `json:"url"`
}
