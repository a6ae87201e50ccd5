package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// feedResponse is the JSON shape returned by the upstream gold price feed.
type feedResponse struct {
	USDPerGram float64 `json:"usd_per_gram"`
	Source     string  `json:"source"`
}

// HTTPSource implements ports.PriceSource against a JSON price feed.
type HTTPSource struct {
	url        string
	httpClient HTTPClient
}

// NewHTTPSource creates a feed-backed price source.
func NewHTTPSource(url string, httpClient HTTPClient) *HTTPSource {
	return &HTTPSource{url: url, httpClient: httpClient}
}

// FetchSpot fetches the current spot price from the feed.
func (s *HTTPSource) FetchSpot(ctx context.Context) (*domain.SpotPrice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create feed request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch price feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price feed returned status %d", resp.StatusCode)
	}

	var body feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode price feed: %w", err)
	}
	if body.USDPerGram <= 0 {
		return nil, fmt.Errorf("price feed returned non-positive price %f", body.USDPerGram)
	}

	source := body.Source
	if source == "" {
		source = s.url
	}
	return &domain.SpotPrice{
		USDPerGram: body.USDPerGram,
		Source:     source,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// StaticSource implements ports.PriceSource with a fixed price. Used in
// development when no feed URL is configured.
type StaticSource struct {
	usdPerGram float64
}

// NewStaticSource creates a fixed-price source.
func NewStaticSource(usdPerGram float64) *StaticSource {
	return &StaticSource{usdPerGram: usdPerGram}
}

// FetchSpot returns the fixed price.
func (s *StaticSource) FetchSpot(ctx context.Context) (*domain.SpotPrice, error) {
	return &domain.SpotPrice{
		USDPerGram: s.usdPerGram,
		Source:     "static",
		FetchedAt:  time.Now().UTC(),
	}, nil
}
