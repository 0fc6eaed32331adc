// Package weather fetches current conditions and tracks the selected location.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/verte-zerg/stopcast/internal/model"
)

// DefaultEndpoint is the current-conditions endpoint of the weather provider.
const DefaultEndpoint = "https://api.weatherapi.com/v1/current.json"

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 10 * time.Second

const maxErrorBody = 4 << 10

// ErrFetchFailed covers every way a fetch can fail: transport errors,
// non-success statuses and malformed payloads.
var ErrFetchFailed = errors.New("weather fetch failed")

// Fetcher retrieves the current weather for a location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (model.WeatherSnapshot, error)
}

// Client talks to the weather provider over HTTP.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient builds a client. An empty endpoint selects DefaultEndpoint.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

type currentResponse struct {
	Location *struct {
		Name string `json:"name"`
	} `json:"location"`
	Current *struct {
		TempC      float64 `json:"temp_c"`
		Humidity   float64 `json:"humidity"`
		FeelsLikeC float64 `json:"feelslike_c"`
		PressureMB float64 `json:"pressure_mb"`
		WindKPH    float64 `json:"wind_kph"`
		Condition  *struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
		} `json:"condition"`
	} `json:"current"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Fetch issues one GET for location and parses the response.
func (c *Client) Fetch(ctx context.Context, location string) (model.WeatherSnapshot, error) {
	reqURL, err := c.requestURL(location)
	if err != nil {
		return model.WeatherSnapshot{}, fetchError("failed to build request url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return model.WeatherSnapshot{}, fetchError("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return model.WeatherSnapshot{}, fetchError("request failed: %w", redactKey(err, c.apiKey))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.WeatherSnapshot{}, fetchError("unexpected status: %s%s", resp.Status, providerMessage(resp.Body))
	}
	snap, err := ParseCurrent(resp.Body)
	if err != nil {
		return model.WeatherSnapshot{}, err
	}
	return snap, nil
}

// ParseCurrent decodes a current-conditions payload into a snapshot.
func ParseCurrent(r io.Reader) (model.WeatherSnapshot, error) {
	var payload currentResponse
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return model.WeatherSnapshot{}, fetchError("failed to decode response: %w", err)
	}
	if payload.Location == nil {
		return model.WeatherSnapshot{}, fetchError("missing location in response")
	}
	if payload.Current == nil {
		return model.WeatherSnapshot{}, fetchError("missing current conditions in response")
	}
	if payload.Current.Condition == nil {
		return model.WeatherSnapshot{}, fetchError("missing condition in response")
	}
	cur := payload.Current
	return model.WeatherSnapshot{
		City:        payload.Location.Name,
		Temperature: cur.TempC,
		Humidity:    cur.Humidity,
		FeelsLike:   cur.FeelsLikeC,
		Pressure:    cur.PressureMB,
		WindSpeed:   cur.WindKPH,
		Description: cur.Condition.Text,
		Icon:        cur.Condition.Icon,
	}, nil
}

func (c *Client) requestURL(location string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	q.Set("q", location)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func providerMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload errorResponse
	if err := json.Unmarshal(data, &payload); err != nil || payload.Error.Message == "" {
		return ""
	}
	return fmt.Sprintf(" (%d: %s)", payload.Error.Code, payload.Error.Message)
}

// redactKey keeps the credential out of diagnostics; url errors echo the
// full request URL.
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		uerr.URL = strings.ReplaceAll(uerr.URL, url.QueryEscape(key), "REDACTED")
	}
	return err
}

func fetchError(format string, args ...any) error {
	return fmt.Errorf("%w: %w", ErrFetchFailed, fmt.Errorf(format, args...))
}
