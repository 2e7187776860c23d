// Package transition calls a Transition-style routing server for
// accessibility maps and multi-modal routes.
package transition

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"relocation-estimator/models"
	"relocation-estimator/services"
)

// Ensure Client implements both service interfaces.
var (
	_ services.AccessibilityMapService = (*Client)(nil)
	_ services.RoutingService          = (*Client)(nil)
)

// Default configuration values.
const (
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 10
	DefaultDepartureSeconds  = 8 * 3600
	DefaultMaxTravelTime     = 30 * time.Minute
)

// ErrNoLocation means the address or destination has no point geometry.
var ErrNoLocation = errors.New("transition: missing point geometry")

// Config holds configuration for the Transition client.
type Config struct {
	// BaseURL is the server root, e.g. http://localhost:8080.
	BaseURL string

	// APIToken is sent as a bearer token when set.
	APIToken string

	// Scenario is the id of the transit scenario to route with.
	Scenario string

	// Timeout bounds a single HTTP request (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond and Burst configure the shared rate limiter.
	RequestsPerSecond float64
	Burst             int

	// DepartureSeconds is the departure time in seconds since midnight.
	DepartureSeconds int

	// MaxTravelTime bounds the accessibility map (default: 30m).
	MaxTravelTime time.Duration

	// Modes lists the modes to route with (default: all).
	Modes []models.TravelMode
}

// Client talks to the Transition API.
type Client struct {
	http          *http.Client
	baseURL       string
	token         string
	scenario      string
	limiter       *rate.Limiter
	departure     int
	maxTravelTime time.Duration
	modes         []models.TravelMode
}

// NewClient creates a Client, filling unset configuration with defaults.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.DepartureSeconds <= 0 {
		cfg.DepartureSeconds = DefaultDepartureSeconds
	}
	if cfg.MaxTravelTime <= 0 {
		cfg.MaxTravelTime = DefaultMaxTravelTime
	}
	if len(cfg.Modes) == 0 {
		cfg.Modes = models.TravelModes
	}

	return &Client{
		http:          &http.Client{Timeout: cfg.Timeout},
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		token:         cfg.APIToken,
		scenario:      cfg.Scenario,
		limiter:       rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		departure:     cfg.DepartureSeconds,
		maxTravelTime: cfg.MaxTravelTime,
		modes:         cfg.Modes,
	}
}

// post sends body as JSON to path and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("transition: rate limit: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("transition: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("transition: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("transition: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("transition: decode %s response: %w", path, err)
	}
	return nil
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("transition: %s returned status %d: %s", e.Path, e.StatusCode, e.Body)
}
