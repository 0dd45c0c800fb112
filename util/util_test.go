package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwise1/reportes_api/util/values"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	testCases := []struct {
		status string
		want   int
	}{
		{values.Success, http.StatusOK},
		{values.Created, http.StatusCreated},
		{values.BadRequestBody, http.StatusBadRequest},
		{values.Error, http.StatusInternalServerError},
		{values.Unavailable, http.StatusServiceUnavailable},
		{"anything-else", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusCode(tc.status))
		})
	}
}

func TestClientOrigin(t *testing.T) {
	testCases := []struct {
		name       string
		remoteAddr string
		want       string
	}{
		{"ipv4 with port", "203.0.113.7:51234", "203.0.113.7"},
		{"ipv6 with port", "[2001:db8::1]:443", "2001:db8::1"},
		{"rewritten by RealIP", "198.51.100.2", "198.51.100.2"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remoteAddr
			assert.Equal(t, tc.want, ClientOrigin(r))
		})
	}
}

func TestValidateStruct(t *testing.T) {
	type point struct {
		Name      string   `json:"name" validate:"notblank"`
		Latitude  *float64 `json:"latitude" validate:"required,latitude"`
		Longitude *float64 `json:"longitude" validate:"required,longitude"`
	}

	assert.NoError(t, ValidateStruct(point{Name: "a", Latitude: Float64Ptr(24.8), Longitude: Float64Ptr(-107.39)}))
	assert.NoError(t, ValidateStruct(point{Name: "equator", Latitude: Float64Ptr(0), Longitude: Float64Ptr(0)}))
	assert.Error(t, ValidateStruct(point{Name: "  ", Latitude: Float64Ptr(1), Longitude: Float64Ptr(1)}))
	assert.Error(t, ValidateStruct(point{Name: "a", Latitude: Float64Ptr(91), Longitude: Float64Ptr(1)}))
	assert.Error(t, ValidateStruct(point{Name: "a", Latitude: Float64Ptr(1), Longitude: Float64Ptr(-181)}))
	assert.Error(t, ValidateStruct(point{Name: "a", Longitude: Float64Ptr(1)}))
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr("   "))
	if assert.NotNil(t, StringPtr(" https://img.example/a.jpg ")) {
		assert.Equal(t, "https://img.example/a.jpg", *StringPtr(" https://img.example/a.jpg "))
	}
}
