package storage

import (
	"github.com/aeroperf/aeroperf/internal/geo"
	"github.com/aeroperf/aeroperf/pkg/core"
)

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Run management
	StartRun(aircraftName string, cfg core.AircraftConfig, req core.ReportRequest) error
	EndRun() error

	// Result recording
	RecordSummary(report core.PerformanceReport) error
	RecordClimbProfile(profile []core.ClimbProfilePoint) error
	RecordThrustCurve(altitudeM float64, curve []core.ThrustCurvePoint) error
	RecordRangeRing(ring *geo.RangeRing) error
}

// Exportable is an optional interface for storage backends that produce
// report files on disk.
type Exportable interface {
	GetExportedFilePath() string
}
