// Package price fetches supplementary market data for price-strategy
// claims from CoinGecko.
package price

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claimscope/claimscope/internal/model"
	gocache "github.com/patrickmn/go-cache"
)

const cacheKey = "price:current"

// Client fetches current market data for the configured asset. Responses
// are cached for the configured TTL so batch verification does not hammer
// the provider.
type Client struct {
	baseURL    string
	apiKey     string
	assetID    string
	httpClient *http.Client
	cache      *gocache.Cache
}

// coinResponse is the subset of the CoinGecko coin payload we consume.
type coinResponse struct {
	MarketData struct {
		CurrentPrice struct {
			USD float64 `json:"usd"`
		} `json:"current_price"`
		MarketCap struct {
			USD float64 `json:"usd"`
		} `json:"market_cap"`
		ATH struct {
			USD float64 `json:"usd"`
		} `json:"ath"`
		ATHDate struct {
			USD time.Time `json:"usd"`
		} `json:"ath_date"`
		PriceChangePercentage1y *float64 `json:"price_change_percentage_1y"`
	} `json:"market_data"`
}

// NewClient creates a price client from configuration.
func NewClient(config model.PriceConfig, httpTimeout time.Duration) *Client {
	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Client{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		assetID: config.AssetID,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Current returns current price data for the configured asset. Failures are
// plain errors; the verifier treats them as absent context, never as a hard
// verification failure.
func (c *Client) Current(ctx context.Context) (*model.PriceData, error) {
	if cached, found := c.cache.Get(cacheKey); found {
		data := cached.(model.PriceData)
		return &data, nil
	}

	url := fmt.Sprintf(
		"%s/coins/%s?localization=false&tickers=false&community_data=false&developer_data=false",
		c.baseURL, c.assetID,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price provider request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price provider error (%d)", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed coinResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	md := parsed.MarketData
	data := model.PriceData{
		CurrentPrice:    md.CurrentPrice.USD,
		Currency:        "USD",
		MarketCap:       md.MarketCap.USD,
		AllTimeHigh:     md.ATH.USD,
		AllTimeHighDate: md.ATHDate.USD,
	}
	if md.PriceChangePercentage1y != nil {
		data.PercentChange1y = *md.PriceChangePercentage1y
		data.HasPercentChange = true
	}

	c.cache.Set(cacheKey, data, gocache.DefaultExpiration)

	return &data, nil
}
