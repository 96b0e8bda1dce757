package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"forexscan/internal/adapters"
	"forexscan/internal/domain"
	"forexscan/internal/scan"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	scanner *scan.Scanner
	cache   adapters.RateCache
}

func NewHandler(scanner *scan.Scanner, rateCache adapters.RateCache) *Handler {
	return &Handler{scanner: scanner, cache: rateCache}
}

type rateResponse struct {
	Pair          string   `json:"pair"`
	Rate          float64  `json:"rate"`
	Bid           *float64 `json:"bid"`
	Ask           *float64 `json:"ask"`
	LastRefreshed string   `json:"last_refreshed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: errorMsg})
}

// GetRates serves quotes for a comma-separated pairs query parameter. Fresh
// cache entries are answered directly; only the misses go through the
// scanner, so repeated polling stays inside the provider's request quota.
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("pairs"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "pairs query parameter is required")
		return
	}

	pairs, err := domain.ParsePairs(strings.Split(raw, ","))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := make([]domain.ExchangeRate, len(pairs))
	var missing []domain.CurrencyPair
	var missingIdx []int
	for i, pair := range pairs {
		if rate, ok := h.cache.Get(pair); ok {
			results[i] = rate
			continue
		}
		missing = append(missing, pair)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) > 0 {
		fetched, scanErr := h.scanner.Run(r.Context(), missing)
		if scanErr != nil {
			status, msg := classify(scanErr)
			if status >= http.StatusInternalServerError {
				logrus.WithError(scanErr).WithFields(logrus.Fields{"handler": "GetRates", "pairs": raw}).Error(msg)
			}
			writeError(w, status, msg)
			return
		}
		for j, rate := range fetched {
			h.cache.Set(missing[j], rate)
			results[missingIdx[j]] = rate
		}
	}

	rows := make([]rateResponse, 0, len(results))
	for _, rate := range results {
		rows = append(rows, rateResponse{
			Pair:          rate.FromCurrency + "/" + rate.ToCurrency,
			Rate:          rate.Rate,
			Bid:           rate.BidPrice,
			Ask:           rate.AskPrice,
			LastRefreshed: rate.LastRefreshed,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(rows)
}

// classify maps a scan failure to an HTTP status and a client-safe message.
// Upstream and internal failures keep their detail in the server log only.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidPair):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, domain.ErrMissingAPIKey):
		return http.StatusInternalServerError, "service is not configured with an API key"
	case errors.Is(err, domain.ErrNetwork),
		errors.Is(err, domain.ErrBadStatus),
		errors.Is(err, domain.ErrProviderMessage),
		errors.Is(err, domain.ErrUnexpectedSchema),
		errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrInvalidRate):
		return http.StatusBadGateway, "upstream rate provider failed"
	default:
		return http.StatusInternalServerError, "ups, couldn't fetch rates this time"
	}
}
