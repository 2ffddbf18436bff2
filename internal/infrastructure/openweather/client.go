// Package openweather implements the geodata client against the OpenWeather
// current-weather API, which resolves a US ZIP code into coordinates and a
// UTC offset.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/userdir/user-directory/internal/api/metrics"
	"github.com/userdir/user-directory/internal/core/domain"
)

const (
	serviceName    = "openweather"
	requestTimeout = 5 * time.Second
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL, apiKey string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// weatherResponse holds the subset of the upstream payload this client
// needs. Coord is a pointer so a missing coordinate block is detectable as a
// malformed response.
type weatherResponse struct {
	Coord *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	// Timezone is the signed UTC offset in seconds.
	Timezone int `json:"timezone"`
}

// GetByZipCode resolves geodata for a US ZIP code. Every call hits the
// upstream service; there is no retry and no caching. All failure modes
// (network error, timeout, non-200 status, missing coordinates) surface as
// *domain.ExternalServiceError.
func (c *Client) GetByZipCode(ctx context.Context, zipCode string) (*domain.Geodata, error) {
	start := time.Now()
	geo, err := c.fetch(ctx, zipCode)
	metrics.GeodataRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GeodataRequestsTotal.WithLabelValues("error").Inc()
		c.logger.Warn().Err(err).Str("zip_code", zipCode).Msg("openweather lookup failed")
		return nil, &domain.ExternalServiceError{
			Service: serviceName,
			Message: fmt.Sprintf("unable to fetch location data for ZIP code %s", zipCode),
		}
	}

	metrics.GeodataRequestsTotal.WithLabelValues("success").Inc()
	return geo, nil
}

func (c *Client) fetch(ctx context.Context, zipCode string) (*domain.Geodata, error) {
	query := url.Values{}
	query.Set("zip", zipCode+",us")
	query.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if payload.Coord == nil {
		return nil, fmt.Errorf("response missing coordinates")
	}

	return &domain.Geodata{
		Latitude:  payload.Coord.Lat,
		Longitude: payload.Coord.Lon,
		Timezone:  formatUTCOffset(payload.Timezone),
	}, nil
}

// formatUTCOffset renders a signed offset in seconds as "UTC+N"/"UTC-N",
// flooring toward negative infinity when the offset is not a whole hour.
// Zero renders as "UTC+0".
func formatUTCOffset(seconds int) string {
	hours := seconds / 3600
	if seconds%3600 != 0 && seconds < 0 {
		hours--
	}
	return fmt.Sprintf("UTC%+d", hours)
}
