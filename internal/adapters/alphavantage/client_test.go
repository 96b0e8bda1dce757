package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"forexscan/internal/domain"

	"github.com/stretchr/testify/require"
)

var eurUsd = domain.CurrencyPair{Base: "EUR", Quote: "USD"}

func TestClient_Success(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
            "Realtime Currency Exchange Rate": {
                "1. From_Currency Code": "EUR",
                "3. To_Currency Code": "USD",
                "5. Exchange Rate": "1.08650",
                "6. Last Refreshed": "2024-05-01 15:35:00",
                "8. Bid Price": "1.08630",
                "9. Ask Price": "1.08670"
            }
        }`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), srv.URL+"/query", "secret")

	rate, err := c.FetchRate(context.Background(), eurUsd)
	require.NoError(t, err)
	require.Equal(t, "CURRENCY_EXCHANGE_RATE", gotQuery.Get("function"))
	require.Equal(t, "EUR", gotQuery.Get("from_currency"))
	require.Equal(t, "USD", gotQuery.Get("to_currency"))
	require.Equal(t, "secret", gotQuery.Get("apikey"))
	require.Equal(t, "EUR", rate.FromCurrency)
	require.Equal(t, "USD", rate.ToCurrency)
	require.InDelta(t, 1.08650, rate.Rate, 1e-9)
	require.Equal(t, "2024-05-01 15:35:00", rate.LastRefreshed)
	require.NotNil(t, rate.BidPrice)
	require.InDelta(t, 1.08630, *rate.BidPrice, 1e-9)
	require.NotNil(t, rate.AskPrice)
	require.InDelta(t, 1.08670, *rate.AskPrice, 1e-9)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(&http.Client{}, srv.URL, "secret")

	_, err := c.FetchRate(context.Background(), eurUsd)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrNetwork)
	require.Contains(t, err.Error(), "EUR/USD")
}

func TestClient_StatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), srv.URL, "secret")

	_, err := c.FetchRate(context.Background(), eurUsd)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrBadStatus)
	require.Contains(t, err.Error(), "503")
	require.Contains(t, err.Error(), "EUR/USD")
}

func TestClient_ProviderErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Error Message": "Invalid API call."}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), srv.URL, "secret")

	_, err := c.FetchRate(context.Background(), eurUsd)
	require.ErrorIs(t, err, domain.ErrProviderMessage)
	require.Contains(t, err.Error(), "Invalid API call.")
}

func TestClient_RateLimitNote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), srv.URL, "secret")

	_, err := c.FetchRate(context.Background(), eurUsd)
	require.ErrorIs(t, err, domain.ErrRateLimited)
	require.Contains(t, err.Error(), "rate limit")
}

func TestClient_MissingQuoteKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"something": "else"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), srv.URL, "secret")

	_, err := c.FetchRate(context.Background(), eurUsd)
	require.ErrorIs(t, err, domain.ErrUnexpectedSchema)
}

func TestClient_JSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{")) // invalid JSON
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), srv.URL, "secret")

	_, err := c.FetchRate(context.Background(), eurUsd)
	require.ErrorIs(t, err, domain.ErrUnexpectedSchema)
}

func TestClient_BaseURLParseError(t *testing.T) {
	c := NewClient(&http.Client{}, "http://::1]", "secret")
	_, err := c.FetchRate(context.Background(), eurUsd)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrNetwork)
}
