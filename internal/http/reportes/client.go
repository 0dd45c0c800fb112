// Package reportes is a Go client for the reports API, used by the seed
// command and by anything that wants to read the map feed.
package reportes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwise1/reportes_api/internal/model"
	"github.com/bwise1/reportes_api/util/values"
	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"
)

const (
	reportsEndpoint = "/reports"
	clientSource    = "go-client"
)

// ErrUnknownCategory is returned before any request is made when a submission
// uses a category outside model.Categories.
var ErrUnknownCategory = errors.New("unknown report category")

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("reportes: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("reportes: status %d: %s %v", e.StatusCode, e.Message, e.Fields)
}

// Client talks to one reports API deployment.
type Client struct {
	BaseURL    *url.URL
	HTTPClient *http.Client
}

// NewClient creates a client for baseURL with a default timeout.
func NewClient(baseURL string) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("base url %q must be absolute", baseURL)
	}
	return &Client{
		BaseURL: u,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func (c *Client) buildURL(queryParams interface{}) (string, error) {
	u := *c.BaseURL
	u.Path = strings.TrimRight(u.Path, "/") + reportsEndpoint

	if queryParams != nil {
		v, err := query.Values(queryParams)
		if err != nil {
			return "", errors.Wrap(err, "encode query parameters")
		}
		u.RawQuery = v.Encode()
	}
	return u.String(), nil
}

// GetReports lists reports matching f, newest first. Empty fields of f are
// not sent.
func (c *Client) GetReports(ctx context.Context, f model.ReportFilter) ([]model.Report, error) {
	reqURL, err := c.buildURL(f)
	if err != nil {
		return nil, errors.Wrap(err, "build list URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create list request")
	}

	reports := []model.Report{}
	if err := c.do(req, &reports); err != nil {
		return nil, errors.Wrap(err, "list reports")
	}
	return reports, nil
}

// SubmitReport creates a report. The category is checked locally first.
func (c *Client) SubmitReport(ctx context.Context, r model.CreateReportRequest) (model.Report, error) {
	if !model.IsCategory(r.Category) {
		return model.Report{}, errors.Wrapf(ErrUnknownCategory, "%q", r.Category)
	}

	body, err := json.Marshal(r)
	if err != nil {
		return model.Report{}, errors.Wrap(err, "encode report")
	}

	reqURL, err := c.buildURL(nil)
	if err != nil {
		return model.Report{}, errors.Wrap(err, "build submit URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return model.Report{}, errors.Wrap(err, "create submit request")
	}
	req.Header.Set("Content-Type", "application/json")

	var created model.Report
	if err := c.do(req, &created); err != nil {
		return model.Report{}, errors.Wrap(err, "submit report")
	}
	return created, nil
}

func (c *Client) do(req *http.Request, v interface{}) error {
	req.Header.Set(values.HeaderRequestSource, clientSource)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "execute HTTP request")
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	var env envelope
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(bodyBytes))}
		}
		return errors.Wrap(err, "decode response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message, Fields: env.Errors}
	}

	if v != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, v); err != nil {
			return errors.Wrap(err, "decode response data")
		}
	}
	return nil
}
