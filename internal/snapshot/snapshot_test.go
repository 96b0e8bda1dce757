package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"forexscan/internal/domain"

	"github.com/stretchr/testify/require"
)

func sampleScan() ([]domain.CurrencyPair, []domain.ExchangeRate) {
	bid, ask := 1.08630, 1.08670
	pairs := []domain.CurrencyPair{
		{Base: "EUR", Quote: "USD"},
		{Base: "USD", Quote: "JPY"},
	}
	rates := []domain.ExchangeRate{
		{FromCurrency: "EUR", ToCurrency: "USD", Rate: 1.08650, LastRefreshed: "2024-05-01 15:35:00", BidPrice: &bid, AskPrice: &ask},
		{FromCurrency: "USD", ToCurrency: "JPY", Rate: 154.82, LastRefreshed: "2024-05-01 15:35:00"},
	}
	return pairs, rates
}

func TestBuild_DocumentShape(t *testing.T) {
	pairs, rates := sampleScan()
	generatedAt := time.Date(2024, 5, 1, 15, 36, 0, 0, time.UTC)

	doc := Build(pairs, rates, generatedAt)

	require.Equal(t, "2024-05-01T15:36:00Z", doc.GeneratedAt)
	require.Equal(t, []string{"EUR/USD", "USD/JPY"}, doc.Pairs)
	require.Len(t, doc.Data, 2)
	require.Equal(t, "EUR", doc.Data[0].FromCurrency)
	require.InDelta(t, 1.08650, doc.Data[0].ExchangeRate, 1e-9)
	require.Nil(t, doc.Data[1].BidPrice)
}

func TestBuild_ConvertsGeneratedAtToUTC(t *testing.T) {
	pairs, rates := sampleScan()
	loc := time.FixedZone("UTC+3", 3*60*60)

	doc := Build(pairs, rates, time.Date(2024, 5, 1, 18, 36, 0, 0, loc))

	require.Equal(t, "2024-05-01T15:36:00Z", doc.GeneratedAt)
}

func TestWrite_RoundTripsEveryField(t *testing.T) {
	pairs, rates := sampleScan()
	doc := Build(pairs, rates, time.Now())

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, doc.Write(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var reread Document
	require.NoError(t, json.Unmarshal(raw, &reread))
	require.Equal(t, doc, reread)
	require.Equal(t, rates, reread.Rates())
}

func TestWrite_NullBidAskInFile(t *testing.T) {
	pairs, rates := sampleScan()
	doc := Build(pairs, rates, time.Now())

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, doc.Write(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	data := generic["data"].([]any)
	second := data[1].(map[string]any)
	require.Contains(t, second, "bid_price")
	require.Nil(t, second["bid_price"])
	require.Nil(t, second["ask_price"])
}
