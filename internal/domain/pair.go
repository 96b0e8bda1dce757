package domain

import "strings"

// pairSeparators are normalized to "/" before splitting, so "eur-usd",
// "EUR:USD" and "EUR/USD" all parse to the same pair.
var pairSeparators = strings.NewReplacer("-", "/", ":", "/")

// CurrencyPair is an ordered (base, quote) pair of uppercase currency codes.
// Construct it through ParsePair; codes are not checked against any list of
// real-world currencies.
type CurrencyPair struct {
	Base  string
	Quote string
}

func (p CurrencyPair) String() string {
	return p.Base + "/" + p.Quote
}

func (p CurrencyPair) Reversed() CurrencyPair {
	return CurrencyPair{Base: p.Quote, Quote: p.Base}
}

// ParsePair normalizes a raw user string like "eur-usd" into a CurrencyPair.
// Parsing an already-normalized pair yields the same result.
func ParsePair(raw string) (CurrencyPair, error) {
	cleaned := strings.ToUpper(pairSeparators.Replace(strings.TrimSpace(raw)))

	base, quote, found := strings.Cut(cleaned, "/")
	if !found {
		return CurrencyPair{}, &ScanError{
			Kind:   ErrInvalidPair,
			Detail: "'" + raw + "': use the format BASE/QUOTE (e.g. EUR/USD)",
		}
	}
	if base == "" || quote == "" {
		return CurrencyPair{}, &ScanError{
			Kind:   ErrInvalidPair,
			Detail: "'" + raw + "': both base and quote currencies are required",
		}
	}
	return CurrencyPair{Base: base, Quote: quote}, nil
}

// ParsePairs parses a batch of raw pair strings, preserving input order.
func ParsePairs(raw []string) ([]CurrencyPair, error) {
	pairs := make([]CurrencyPair, 0, len(raw))
	for _, r := range raw {
		p, err := ParsePair(r)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}
