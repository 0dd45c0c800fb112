package util

import (
	"strings"
)

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// StringPtr returns nil for blank strings.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Float64Ptr returns a pointer to the given float.
func Float64Ptr(f float64) *float64 {
	return &f
}
