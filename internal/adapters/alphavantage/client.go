package alphavantage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"forexscan/internal/domain"
)

const queryFunction = "CURRENCY_EXCHANGE_RATE"

// Client fetches realtime exchange rates from the Alpha Vantage query
// endpoint. The per-call timeout is owned by the injected http.Client.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// apiResponse covers every top-level shape the provider is known to return:
// a quote object on success, "Error Message" on bad input and "Note" when the
// request quota is exhausted. Quote stays nil when its key is absent.
type apiResponse struct {
	ErrorMessage string            `json:"Error Message"`
	Note         string            `json:"Note"`
	Quote        map[string]string `json:"Realtime Currency Exchange Rate"`
}

func (c *Client) FetchRate(ctx context.Context, pair domain.CurrencyPair) (domain.ExchangeRate, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.ExchangeRate{}, &domain.ScanError{
			Kind: domain.ErrNetwork, Pair: pair.String(), Detail: "invalid base URL", Cause: err,
		}
	}

	q := u.Query()
	q.Set("function", queryFunction)
	q.Set("from_currency", pair.Base)
	q.Set("to_currency", pair.Quote)
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.ExchangeRate{}, &domain.ScanError{
			Kind: domain.ErrNetwork, Pair: pair.String(), Detail: "failed to build request", Cause: err,
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.ExchangeRate{}, &domain.ScanError{
			Kind: domain.ErrNetwork, Pair: pair.String(), Detail: "request failed", Cause: err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.ExchangeRate{}, &domain.ScanError{
			Kind: domain.ErrBadStatus, Pair: pair.String(), Detail: resp.Status,
		}
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.ExchangeRate{}, &domain.ScanError{
			Kind: domain.ErrUnexpectedSchema, Pair: pair.String(), Detail: "response is not valid JSON", Cause: err,
		}
	}

	switch {
	case body.ErrorMessage != "":
		return domain.ExchangeRate{}, &domain.ScanError{
			Kind: domain.ErrProviderMessage, Pair: pair.String(), Detail: body.ErrorMessage,
		}
	case body.Note != "":
		return domain.ExchangeRate{}, &domain.ScanError{
			Kind: domain.ErrRateLimited, Pair: pair.String(), Detail: body.Note,
		}
	case body.Quote == nil:
		return domain.ExchangeRate{}, &domain.ScanError{
			Kind: domain.ErrUnexpectedSchema, Pair: pair.String(), Detail: `missing "Realtime Currency Exchange Rate" key`,
		}
	}

	return ParseQuote(pair, body.Quote)
}

func NewClient(httpClient *http.Client, baseURL string, apiKey string) *Client {
	return &Client{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}
