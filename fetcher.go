package eucatalog

import "context"

// Fetcher retrieves remote resources with a single GET request.
// Implementations never retry: a transport failure or a non-2xx status
// returns an ENETWORK error.
type Fetcher interface {
	// FetchText returns the response body decoded as text.
	FetchText(ctx context.Context, url string) (string, error)

	// FetchBytes returns the raw response body.
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}
