package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/vtx/internal/shared"
	"golang.org/x/time/rate"
)

// BulkUploadOpts contains configuration for bulk uploads.
type BulkUploadOpts struct {
	NumWorkers int     // Concurrent workers (default: 3, max: 10)
	RateLimit  float64 // Upload starts per second (default: 2)
}

// BulkUploadResult summarizes a bulk upload.
type BulkUploadResult struct {
	Total      int
	Successful int
	Failed     int
	Results    []UploadResult // Completion order
}

// BulkUpload uploads jobs concurrently with rate limiting and progress tracking.
//
// A worker pool pulls jobs from a channel; starts are paced by a [rate.Limiter].
// Individual failures are recorded on the result. The returned error is only set when
// ctx ends before every job was attempted.
func (e *UploadEngine) BulkUpload(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	jobs []UploadJob,
	opts BulkUploadOpts,
) (*BulkUploadResult, error) {
	if e.backend == nil {
		return nil, fmt.Errorf("%w: backend not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	result := &BulkUploadResult{
		Total:   len(jobs),
		Results: make([]UploadResult, 0, len(jobs)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	queue := make(chan UploadJob, len(jobs))
	results := make(chan UploadResult, len(jobs))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.uploadWorker(ctx, &wg, queue, results)
	}

	var stopErr error
	go func() {
		defer close(queue)
		for i, job := range jobs {
			if err := limiter.Wait(ctx); err != nil {
				stopErr = err
				return
			}
			e.sendProgress(prog, bulkStartUpdate(i+1, len(jobs), job.FileName()))
			queue <- job
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success() {
			result.Successful++
			e.sendProgress(prog, bulkCompletedUpdate(completed, len(jobs), res.Job.FileName(), res.VideoID))
		} else {
			result.Failed++
			e.sendProgress(prog, bulkFailedUpdate(completed, len(jobs), res.Job.FileName(), res.Error))
		}
	}

	if completed < len(jobs) {
		if stopErr == nil {
			stopErr = ctx.Err()
		}
		return result, fmt.Errorf("bulk upload interrupted after %d of %d files: %w", completed, len(jobs), stopErr)
	}
	return result, nil
}

// uploadWorker uploads jobs from the queue until it closes or ctx ends.
func (e *UploadEngine) uploadWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	queue <-chan UploadJob,
	results chan<- UploadResult,
) {
	defer wg.Done()

	for job := range queue {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, _ := e.Upload(ctx, nil, job)
		results <- *res
	}
}
