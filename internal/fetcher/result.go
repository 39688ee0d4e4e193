package fetcher

// Result represents the outcome of fetching a single day.
// It's sent through channels from worker goroutines to the coordinator.
type Result struct {
	Day int

	// Content is the resource text. Empty when Error is set.
	Content string

	Error error
}
