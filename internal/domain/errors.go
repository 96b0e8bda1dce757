package domain

import "errors"

// Failure kinds produced by the scan pipeline. Callers match on these with
// errors.Is; the concrete error is usually a *ScanError wrapping one of them.
var (
	ErrInvalidPair      = errors.New("invalid currency pair")
	ErrMissingAPIKey    = errors.New("missing API key")
	ErrNetwork          = errors.New("network error")
	ErrBadStatus        = errors.New("unexpected HTTP status")
	ErrProviderMessage  = errors.New("provider returned an error")
	ErrRateLimited      = errors.New("provider rate limit reached")
	ErrUnexpectedSchema = errors.New("unexpected response structure")
	ErrMissingField     = errors.New("response missing field")
	ErrInvalidRate      = errors.New("invalid numeric value in response")
	ErrDemoUnavailable  = errors.New("demo data unavailable")
)

// ScanError is a classified domain failure. Pair identifies the offending
// currency pair where one applies; Detail carries provider-supplied or
// contextual message text. Raw transport errors are attached as Cause and
// never surfaced on their own.
type ScanError struct {
	Kind   error
	Pair   string
	Detail string
	Cause  error
}

func (e *ScanError) Error() string {
	msg := e.Kind.Error()
	if e.Pair != "" {
		msg += " for " + e.Pair
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap exposes the kind sentinel so errors.Is(err, ErrNetwork) works; the
// transport cause stays reachable for logging via the second element.
func (e *ScanError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}
