package survey

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher retrieves the two survey documents. Each document is fetched whole,
// not streamed; the two fetches are independent and either may complete
// first.
type Fetcher struct {
	client         *http.Client
	territoriesURL string
	alertsURL      string
}

// NewFetcher creates a fetcher for the given document URLs
func NewFetcher(territoriesURL, alertsURL string) *Fetcher {
	return &Fetcher{
		client:         &http.Client{Timeout: 30 * time.Second},
		territoriesURL: territoriesURL,
		alertsURL:      alertsURL,
	}
}

// FetchTerritories retrieves and decodes the territories document
func (f *Fetcher) FetchTerritories(ctx context.Context) ([]Territory, error) {
	payload, err := f.get(ctx, f.territoriesURL)
	if err != nil {
		return nil, &LoadFailure{Source: "territories", Err: err}
	}
	return DecodeTerritories(payload)
}

// FetchAlerts retrieves and decodes the alerts document
func (f *Fetcher) FetchAlerts(ctx context.Context) ([]Alert, error) {
	payload, err := f.get(ctx, f.alertsURL)
	if err != nil {
		return nil, &LoadFailure{Source: "alerts", Err: err}
	}
	return DecodeAlerts(payload)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}
