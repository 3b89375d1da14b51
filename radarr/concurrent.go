package radarr

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golift.io/starr/radarr"

	"github.com/s0up4200/arrcore/arr"
)

const (
	deleteConcurrency = 5
	searchBatchSize   = 10
	searchConcurrency = 3
)

// BatchDeleteResult contains the results of a batch delete operation
type BatchDeleteResult struct {
	Requested  int
	Successful []int64
	Failed     []DeleteError
}

// DeleteError describes one failed deletion.
type DeleteError struct {
	MovieID int64
	Err     error
}

func (e DeleteError) Error() string {
	return fmt.Sprintf("failed to delete movie %d: %v", e.MovieID, e.Err)
}

func (e DeleteError) Unwrap() error { return e.Err }

// BatchDeleteMovies deletes movies concurrently. Individual failures are
// collected, never returned early.
func (c *Client) BatchDeleteMovies(ctx context.Context, movieIDs []int64, deleteFiles bool) BatchDeleteResult {
	result := BatchDeleteResult{Requested: len(movieIDs)}
	if len(movieIDs) == 0 {
		return result
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)

	successChan := make(chan int64, len(movieIDs))
	errorChan := make(chan DeleteError, len(movieIDs))

	for _, id := range movieIDs {
		g.Go(func() error {
			if err := c.DeleteMovie(ctx, id, deleteFiles); err != nil {
				errorChan <- DeleteError{MovieID: id, Err: err}
			} else {
				successChan <- id
			}
			return nil
		})
	}

	_ = g.Wait()
	close(successChan)
	close(errorChan)

	for id := range successChan {
		result.Successful = append(result.Successful, id)
	}
	for err := range errorChan {
		result.Failed = append(result.Failed, err)
	}
	return result
}

// BatchSearchMovies queues MoviesSearch commands in batches of ten ids.
// A failed batch is logged and the rest still run.
func (c *Client) BatchSearchMovies(ctx context.Context, movieIDs []int64) error {
	if len(movieIDs) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(searchConcurrency)

	for start := 0; start < len(movieIDs); start += searchBatchSize {
		batch := movieIDs[start:min(start+searchBatchSize, len(movieIDs))]
		g.Go(func() error {
			_, err := c.SendCommand(ctx, &radarr.CommandRequest{
				Name:     arr.CommandMoviesSearch.String(),
				MovieIDs: batch,
			})
			if err != nil {
				c.logger.Error().Err(err).Ints64("movie_ids", batch).Msg("failed to trigger search for batch")
				return nil
			}
			c.logger.Info().Ints64("movie_ids", batch).Msg("triggered search for batch")
			return nil
		})
	}

	return g.Wait()
}
