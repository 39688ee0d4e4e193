package coordinator

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"inputfetcher/internal/fetcher"
)

// Coordinator warms the cache for a set of days concurrently
type Coordinator struct {
	source fetcher.Source
	days   []int
}

// New creates a new Coordinator for the given days. Duplicate days are dropped
// so that no two goroutines ever write the same cache entry.
func New(source fetcher.Source, days []int) *Coordinator {
	seen := make(map[int]bool, len(days))
	unique := make([]int, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			unique = append(unique, d)
		}
	}
	return &Coordinator{
		source: source,
		days:   unique,
	}
}

// Warm fetches every day in its own goroutine and returns the results ordered by day
func (c *Coordinator) Warm(ctx context.Context) ([]fetcher.Result, error) {
	if len(c.days) == 0 {
		return nil, fmt.Errorf("no days requested")
	}

	resultChan := make(chan fetcher.Result, len(c.days))

	var wg sync.WaitGroup
	for _, d := range c.days {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()

			content, err := c.source.Get(ctx, day)
			resultChan <- fetcher.Result{
				Day:     day,
				Content: content,
				Error:   err,
			}
		}(d)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]fetcher.Result, 0, len(c.days))
	for result := range resultChan {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Day < results[j].Day })

	return results, nil
}

// Run warms the cache and writes one line per day to w in the format:
//   - Success: "day N: B bytes"
//   - Error: "day N: ERROR - error message"
//
// It returns the number of days that failed.
func (c *Coordinator) Run(ctx context.Context, w io.Writer) (int, error) {
	results, err := c.Warm(ctx)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, result := range results {
		if result.Error != nil {
			failed++
			fmt.Fprintf(w, "day %d: ERROR - %v\n", result.Day, result.Error)
		} else {
			fmt.Fprintf(w, "day %d: %d bytes\n", result.Day, len(result.Content))
		}
	}
	return failed, nil
}
