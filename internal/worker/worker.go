// Package worker runs several aircraft analyses concurrently through a
// bounded pool. Each job gets its own storage backend, so jobs never share
// mutable state beyond the pool's own counters.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aeroperf/aeroperf/pkg/core"
)

// DefaultWorkers is the pool size used when none is configured.
const DefaultWorkers = 4

// Job is one aircraft analysis to execute.
type Job struct {
	Name    string
	Config  core.AircraftConfig
	Request core.ReportRequest
}

// Result pairs a job with its outcome.
type Result struct {
	Job     Job
	Report  *core.PerformanceReport
	Err     error
	Elapsed time.Duration
}

// RunFunc executes one job and returns its report.
type RunFunc func(ctx context.Context, job Job) (*core.PerformanceReport, error)

// Logger is the minimal logging interface the pool depends on.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Dependencies holds all dependencies for the worker manager.
type Dependencies struct {
	Run     RunFunc
	Logger  Logger
	Workers int
}

// Manager manages the analysis worker pool.
type Manager struct {
	deps Dependencies

	completed atomic.Int64
	failed    atomic.Int64
}

// NewManager creates a new worker manager.
func NewManager(deps Dependencies) (*Manager, error) {
	if deps.Run == nil {
		return nil, errors.New("worker pool requires a run function")
	}
	if deps.Logger == nil {
		return nil, errors.New("worker pool requires a logger")
	}
	if deps.Workers <= 0 {
		deps.Workers = DefaultWorkers
	}
	return &Manager{deps: deps}, nil
}

// Stats returns the number of jobs completed and failed so far.
func (m *Manager) Stats() (completed, failed int64) {
	return m.completed.Load(), m.failed.Load()
}

// Process runs all jobs through the pool and returns one result per job,
// in job order. A cancelled context marks the remaining jobs as failed
// without starting them.
func (m *Manager) Process(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	indexes := make(chan int)

	workers := m.deps.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = m.runJob(ctx, jobs[i])
			}
		}()
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}

func (m *Manager) runJob(ctx context.Context, job Job) Result {
	start := time.Now()
	res := Result{Job: job}

	if err := ctx.Err(); err != nil {
		res.Err = err
	} else {
		m.deps.Logger.Debug("Starting analysis job", "aircraft", job.Name)
		res.Report, res.Err = m.deps.Run(ctx, job)
	}
	res.Elapsed = time.Since(start)

	if res.Err != nil {
		m.failed.Add(1)
		m.deps.Logger.Error("Analysis job failed", "aircraft", job.Name, "error", res.Err)
		return res
	}
	m.completed.Add(1)
	m.deps.Logger.Info("Analysis job finished", "aircraft", job.Name, "elapsed", res.Elapsed.String())
	return res
}
