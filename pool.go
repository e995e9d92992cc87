package qtwirl

import (
	"context"

	"golang.org/x/sync/errgroup"
)

/*
TwirlBatch twirls every model on a pool of Config.Workers workers and
returns the results in input order. The first failure cancels the remaining
work and is returned with the index of the offending model; no partial
results are returned.
*/
func (t *Twirler) TwirlBatch(ctx context.Context, models []*ErrorModel) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]Result, len(models))
	if len(models) == 0 {
		return results, nil
	}

	workers, ctx := errgroup.WithContext(ctx)
	jobs := make(chan Job)

	for i := 0; i < min(t.config.Workers, len(models)); i++ {
		worker := &Worker{
			twirler: t,
			jobs:    jobs,
			results: results,
		}
		workers.Go(func() error {
			return worker.run(ctx)
		})
	}

	workers.Go(func() error {
		defer close(jobs)

		for i, model := range models {
			select {
			case jobs <- Job{Index: i, Model: model}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := workers.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
