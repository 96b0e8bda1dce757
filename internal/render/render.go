package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"forexscan/internal/domain"
)

const (
	priceWidth     = 12
	refreshedWidth = 19
	absentPrice    = "—"
)

// Table renders rates as an aligned text table. Absent bid/ask values show
// as a dash.
func Table(rates []domain.ExchangeRate) string {
	pairWidth := 4
	for _, r := range rates {
		if l := len(r.FromCurrency) + len(r.ToCurrency) + 1; l > pairWidth {
			pairWidth = l
		}
	}

	type column struct {
		name  string
		width int
	}
	columns := []column{
		{"Pair", pairWidth},
		{"Rate", priceWidth},
		{"Bid", priceWidth},
		{"Ask", priceWidth},
		{"Last Refreshed", refreshedWidth},
	}

	headers := make([]string, len(columns))
	separators := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = fmt.Sprintf("%-*s", c.width, c.name)
		separators[i] = strings.Repeat("-", c.width)
	}

	lines := []string{strings.Join(headers, " | "), strings.Join(separators, "-+-")}
	for _, r := range rates {
		row := []string{
			fmt.Sprintf("%-*s", pairWidth, r.FromCurrency+"/"+r.ToCurrency),
			fmt.Sprintf("%-*.6f", priceWidth, r.Rate),
			price(r.BidPrice),
			price(r.AskPrice),
			fmt.Sprintf("%-*s", refreshedWidth, r.LastRefreshed),
		}
		lines = append(lines, strings.Join(row, " | "))
	}
	return strings.Join(lines, "\n")
}

func price(v *float64) string {
	if v == nil {
		return fmt.Sprintf("%-*s", priceWidth, absentPrice)
	}
	return fmt.Sprintf("%-*.6f", priceWidth, *v)
}

type jsonRow struct {
	Pair          string   `json:"pair"`
	Rate          float64  `json:"rate"`
	Bid           *float64 `json:"bid"`
	Ask           *float64 `json:"ask"`
	LastRefreshed string   `json:"last_refreshed"`
}

// JSON renders rates as an indented JSON list; absent bid/ask become null.
func JSON(rates []domain.ExchangeRate) (string, error) {
	rows := make([]jsonRow, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, jsonRow{
			Pair:          r.FromCurrency + "/" + r.ToCurrency,
			Rate:          r.Rate,
			Bid:           r.BidPrice,
			Ask:           r.AskPrice,
			LastRefreshed: r.LastRefreshed,
		})
	}
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
