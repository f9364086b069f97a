package season

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "http://ergast.com"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "f1calendar"
)

// SeasonFor returns the season identifier for the given instant: its UTC year.
func SeasonFor(now time.Time) string {
	return strconv.Itoa(now.UTC().Year())
}

// Client fetches season schedules from an Ergast compatible API.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout, Transport: tr},
	}
}

// URL returns the schedule endpoint for season.
func (c *Client) URL(season string) string {
	return fmt.Sprintf("%s/api/f1/%s.json", c.baseURL, season)
}

// Fetch performs a single GET for the season schedule and returns the raw body.
// There is no retry: any failure is returned as a *TransportError.
func (c *Client) Fetch(ctx context.Context, season string) ([]byte, error) {
	url := c.URL(season)
	slog.Info("Fetching F1 season data", "season", season, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &TransportError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes))),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return body, nil
}
