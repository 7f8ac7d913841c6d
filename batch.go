package cityroads

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchResult Outcome of a multi-city run. One city's failure never aborts
// the rest of the batch; failures are collected per city instead.
type BatchResult struct {
	Results []*CityResult
	Failed  map[string]error
}

// ProcessCities processes each city as an isolated unit of work, fanning out
// across at most workers goroutines. Every city loads its own store handles
// (shapefile readers are not safe to share), so the only shared resource is
// the output directory, which holds distinct files per city.
func (p *Pipeline) ProcessCities(cities []string, workers int) *BatchResult {
	if workers < 1 {
		workers = 1
	}

	results := make([]*CityResult, len(cities))
	batch := &BatchResult{Failed: make(map[string]error)}

	var mu sync.Mutex
	var eg errgroup.Group
	eg.SetLimit(workers)
	for i, cityName := range cities {
		i, cityName := i, cityName
		eg.Go(func() error {
			result, err := p.ProcessCity(cityName)
			if err != nil {
				p.logger.Error("error processing city", zap.String("city", cityName), zap.Error(err))
				mu.Lock()
				batch.Failed[cityName] = err
				mu.Unlock()
				return nil
			}
			results[i] = result
			return nil
		})
	}
	eg.Wait()

	// Keep the caller's city order, dropping failed slots.
	for _, result := range results {
		if result != nil {
			batch.Results = append(batch.Results, result)
		}
	}
	return batch
}
