package api

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FetchAll fetches the given collections concurrently. The first failure
// cancels the remaining requests and is returned.
func FetchAll(ctx context.Context, f Fetcher, collections ...Collection) (map[Collection][]Record, error) {
	if len(collections) == 0 {
		collections = Collections
	}

	var mu sync.Mutex
	results := make(map[Collection][]Record, len(collections))

	eg, egCtx := errgroup.WithContext(ctx)
	for _, c := range collections {
		c := c
		eg.Go(func() error {
			records, err := f.Fetch(egCtx, c)
			if err != nil {
				return err
			}
			mu.Lock()
			results[c] = records
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
