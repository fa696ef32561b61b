package repoeval

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// WorkerGate bounds concurrent clone, filesystem walk and analyzer
// subprocess work across all in-flight evaluations. It is process-wide,
// created once at startup and shared; admission control is the only
// synchronization evaluations need since each owns disjoint filesystem
// state.
type WorkerGate struct {
	sem *semaphore.Weighted
}

func NewWorkerGate(workers int64) *WorkerGate {
	return &WorkerGate{sem: semaphore.NewWeighted(workers)}
}

// Do runs f once a worker slot is available. Acquisition respects ctx
// cancellation, so a dropped request does not queue dead work.
func (g *WorkerGate) Do(ctx context.Context, f func() error) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer g.sem.Release(1)
	return f()
}
