package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/arrcore/domain"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator splits large collections into batches evaluated in
// parallel. The result keeps the input order.
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate returns the items f keeps.
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, f CompiledFilter, items domain.DownloadItems) (domain.DownloadItems, error) {
	if len(items) == 0 {
		return domain.DownloadItems{}, nil
	}
	if len(items) <= e.batchSize {
		return items.Filter(f.Evaluate), nil
	}

	batches := make([]domain.DownloadItems, 0, len(items)/e.batchSize+1)
	for start := 0; start < len(items); start += e.batchSize {
		batches = append(batches, items[start:min(start+e.batchSize, len(items))])
	}
	results := make([]domain.DownloadItems, len(batches))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)
	for i, batch := range batches {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = batch.Filter(f.Evaluate)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(domain.DownloadItems, 0, len(items))
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
