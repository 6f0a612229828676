package price

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/claimscope/claimscope/internal/model"
)

const coinPayload = `{
	"market_data": {
		"current_price": {"usd": 2.34},
		"market_cap": {"usd": 134000000000},
		"ath": {"usd": 3.84},
		"ath_date": {"usd": "2018-01-07T00:00:00.000Z"},
		"price_change_percentage_1y": 41.7
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(model.PriceConfig{
		BaseURL:  server.URL,
		AssetID:  "ripple",
		CacheTTL: time.Minute,
	}, 5*time.Second)

	return client, server
}

func TestClient_Current(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/ripple" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(coinPayload))
	})

	data, err := client.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}

	if data.CurrentPrice != 2.34 {
		t.Errorf("current price = %v, want 2.34", data.CurrentPrice)
	}
	if data.AllTimeHigh != 3.84 {
		t.Errorf("ath = %v, want 3.84", data.AllTimeHigh)
	}
	if !data.HasPercentChange || data.PercentChange1y != 41.7 {
		t.Errorf("1y change = %v (%v), want 41.7", data.PercentChange1y, data.HasPercentChange)
	}
	if data.Currency != "USD" {
		t.Errorf("currency = %q, want USD", data.Currency)
	}
}

func TestClient_CurrentCachesResponses(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(coinPayload))
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := client.Current(ctx); err != nil {
			t.Fatalf("current %d: %v", i, err)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected 1 upstream call, got %d", got)
	}
}

func TestClient_CurrentUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := client.Current(context.Background()); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestClient_CurrentMissingChangeField(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"market_data": {"current_price": {"usd": 1.0}, "market_cap": {"usd": 1}, "ath": {"usd": 2}, "ath_date": {"usd": "2018-01-07T00:00:00.000Z"}}}`))
	})

	data, err := client.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if data.HasPercentChange {
		t.Error("expected HasPercentChange=false when the field is absent")
	}
}
