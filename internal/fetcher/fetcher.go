package fetcher

import "context"

// Source is implemented by anything that can produce the input text for a day.
// The cached fetcher in package input is the production implementation.
type Source interface {
	// Get returns the resource text for day, or a *FetchError describing why it could not.
	Get(ctx context.Context, day int) (string, error)
}
