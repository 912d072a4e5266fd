// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/MKhiriev/go-enml/internal/config"
	"github.com/MKhiriev/go-enml/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one job.
type Result struct {
	Output string
	Err    error
}

type Workers struct {
	concurrency int
	logger      *logger.Logger
}

// NewWorkers returns a pool running at most cfg.Concurrency jobs at once.
func NewWorkers(cfg config.Workers, log *logger.Logger) *Workers {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Workers{concurrency: concurrency, logger: log}
}

// Run executes jobs and returns their results in input order. A failing job
// does not stop the others; jobs not started before ctx is done report
// ctx.Err().
func (w *Workers) Run(ctx context.Context, jobs []Worker) []Result {
	results := make([]Result, len(jobs))

	var g errgroup.Group
	g.SetLimit(w.concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Err: err}
				return nil
			}
			out, err := job.Run(ctx)
			if err != nil {
				w.logger.Warn().Err(err).Int("job", i).Msg("job failed")
			}
			results[i] = Result{Output: out, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	w.logger.Debug().Int("jobs", len(jobs)).Int("concurrency", w.concurrency).Msg("all jobs finished")
	return results
}
