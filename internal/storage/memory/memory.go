// Package memory implements the storage.Backend interface by accumulating
// run results in memory and exporting them to a JSON report file on EndRun.
package memory

import (
	"fmt"
	"sync"

	"github.com/aeroperf/aeroperf/internal/config"
	"github.com/aeroperf/aeroperf/internal/geo"
	"github.com/aeroperf/aeroperf/pkg/core"
)

// Backend stores run results in memory and exports to JSON
type Backend struct {
	cfg config.MemoryConfig

	aircraftName string
	aircraft     core.AircraftConfig
	request      core.ReportRequest

	summary     *core.PerformanceReport
	climb       []core.ClimbProfilePoint
	curveAltM   float64
	thrustCurve []core.ThrustCurvePoint
	rangeRing   *geo.RangeRing

	lastExportPath string
	started        bool
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartRun begins recording a new analysis run
func (b *Backend) StartRun(aircraftName string, cfg core.AircraftConfig, req core.ReportRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.aircraftName = aircraftName
	b.aircraft = cfg
	b.request = req

	// Reset all collections
	b.summary = nil
	b.climb = nil
	b.thrustCurve = nil
	b.curveAltM = 0
	b.rangeRing = nil
	b.started = true

	return nil
}

// EndRun finalizes and exports the run data
func (b *Backend) EndRun() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return fmt.Errorf("no run in progress")
	}
	return b.exportJSON()
}

// RecordSummary stores the scalar results of the run
func (b *Backend) RecordSummary(report core.PerformanceReport) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.summary = &report
	return nil
}

// RecordClimbProfile stores the climb profile samples
func (b *Backend) RecordClimbProfile(profile []core.ClimbProfilePoint) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.climb = append([]core.ClimbProfilePoint(nil), profile...)
	return nil
}

// RecordThrustCurve stores the thrust-vs-Mach curve
func (b *Backend) RecordThrustCurve(altitudeM float64, curve []core.ThrustCurvePoint) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.curveAltM = altitudeM
	b.thrustCurve = append([]core.ThrustCurvePoint(nil), curve...)
	return nil
}

// RecordRangeRing stores the cruise range ring
func (b *Backend) RecordRangeRing(ring *geo.RangeRing) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rangeRing = ring
	return nil
}

// GetExportedFilePath returns the path of the last exported report file.
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.lastExportPath
}
