package qtwirl

import (
	"context"
	"fmt"
)

// Worker twirls jobs from a shared channel until it closes.
type Worker struct {
	twirler *Twirler
	jobs    <-chan Job
	results []Result
}

func (w *Worker) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job, ok := <-w.jobs:
			if !ok {
				return nil
			}

			result, err := w.twirler.Twirl(job.Model)
			if err != nil {
				return fmt.Errorf("error model %d: %w", job.Index, err)
			}

			// Each index is written by exactly one worker.
			w.results[job.Index] = result
		}
	}
}
