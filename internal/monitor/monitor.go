// Package monitor periodically logs runtime status while a batch of
// analyses is executing: pool progress, goroutine count and heap usage.
package monitor

import (
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/aeroperf/aeroperf/internal/runctx"
)

// StatsFunc reports the number of jobs completed and failed so far.
type StatsFunc func() (completed, failed int64)

// Dependencies holds all dependencies for the monitor service.
type Dependencies struct {
	Logger     *slog.Logger
	RunContext *runctx.Context
	Stats      StatsFunc
	Interval   time.Duration
}

// Status is one snapshot of the running session.
type Status struct {
	Tag           string
	AircraftName  string
	Uptime        time.Duration
	Goroutines    int
	HeapAllocMB   float64
	JobsCompleted int64
	JobsFailed    int64
}

// Service manages status monitoring.
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewService creates a new monitor service.
func NewService(deps Dependencies) *Service {
	if deps.Interval <= 0 {
		deps.Interval = 30 * time.Second
	}
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running.
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetStatus returns the current session status.
func (s *Service) GetStatus() Status {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	status := Status{
		Tag:          s.deps.RunContext.Tag(),
		AircraftName: s.deps.RunContext.AircraftName(),
		Uptime:       time.Since(s.deps.RunContext.SessionStart()).Round(time.Second),
		Goroutines:   runtime.NumGoroutine(),
		HeapAllocMB:  float64(mem.HeapAlloc) / (1024 * 1024),
	}
	if s.deps.Stats != nil {
		status.JobsCompleted, status.JobsFailed = s.deps.Stats()
	}
	return status
}

// Start begins periodic status logging. Calling Start on a running
// service is a no-op.
func (s *Service) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	go s.loop()
}

// Stop halts periodic status logging.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return
	}
	s.isRunning = false
	close(s.stopChan)
}

func (s *Service) loop() {
	ticker := time.NewTicker(s.deps.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.logStatus()
		case <-s.stopChan:
			return
		}
	}
}

func (s *Service) logStatus() {
	status := s.GetStatus()
	s.deps.Logger.Info("Session status",
		"tag", status.Tag,
		"aircraft", status.AircraftName,
		"uptime", status.Uptime.String(),
		"goroutines", status.Goroutines,
		"heapAllocMB", status.HeapAllocMB,
		"jobsCompleted", status.JobsCompleted,
		"jobsFailed", status.JobsFailed,
	)
}
