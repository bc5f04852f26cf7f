// Package runner orchestrates a full analysis run: it drives the estimation
// routines in pkg/perf, assembles the report, and fans the results out to
// the configured storage backend and the optional InfluxDB sink.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/aeroperf/aeroperf/internal/geo"
	"github.com/aeroperf/aeroperf/internal/influx"
	"github.com/aeroperf/aeroperf/internal/storage"
	"github.com/aeroperf/aeroperf/pkg/core"
	"github.com/aeroperf/aeroperf/pkg/perf"
)

// Logger is the minimal logging interface the runner depends on.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Dependencies holds everything a Runner needs. Influx and Meter are
// optional; Backend and Logger are required.
type Dependencies struct {
	Backend storage.Backend
	Influx  *influx.Manager
	Meter   metric.Meter
	Logger  Logger
}

// Runner executes analysis runs.
type Runner struct {
	deps Dependencies

	runsCompleted metric.Int64Counter
	runsFailed    metric.Int64Counter
	runDuration   metric.Float64Histogram
}

// New creates a Runner and registers its instruments.
func New(deps Dependencies) (*Runner, error) {
	if deps.Backend == nil {
		return nil, errors.New("runner requires a storage backend")
	}
	if deps.Logger == nil {
		return nil, errors.New("runner requires a logger")
	}

	r := &Runner{deps: deps}

	if deps.Meter != nil {
		var err error
		if r.runsCompleted, err = deps.Meter.Int64Counter("analysis.runs.completed"); err != nil {
			return nil, err
		}
		if r.runsFailed, err = deps.Meter.Int64Counter("analysis.runs.failed"); err != nil {
			return nil, err
		}
		if r.runDuration, err = deps.Meter.Float64Histogram("analysis.run.duration_seconds"); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// RunReport executes the full estimation suite for one aircraft and persists
// the results. Domain errors abort the run; convergence shortfalls are
// recorded as report notes with whatever partial results were produced.
func (r *Runner) RunReport(ctx context.Context, cfg core.AircraftConfig, req core.ReportRequest) (*core.PerformanceReport, error) {
	start := time.Now()

	report, err := r.buildReport(cfg, req)
	if err != nil {
		r.countFailure(ctx)
		return nil, err
	}

	if err := r.persist(ctx, report); err != nil {
		r.countFailure(ctx)
		return nil, err
	}

	if r.runsCompleted != nil {
		r.runsCompleted.Add(ctx, 1)
	}
	if r.runDuration != nil {
		r.runDuration.Record(ctx, time.Since(start).Seconds())
	}

	r.deps.Logger.Info("Analysis run complete",
		"aircraft", req.AircraftName,
		"serviceCeilingM", report.ServiceCeilingM,
		"rangeM", report.RangeM,
		"duration", time.Since(start).String(),
	)
	return report, nil
}

// buildReport runs the estimation routines and assembles the report.
func (r *Runner) buildReport(cfg core.AircraftConfig, req core.ReportRequest) (*core.PerformanceReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := &core.PerformanceReport{
		Aircraft: cfg,
		Request:  req,
	}

	// Steady cruise at the requested condition
	cruise, err := perf.CruisePerformance(cfg, req.WeightKg, req.CruiseAltitudeM, req.CruiseMach)
	if err != nil {
		return nil, fmt.Errorf("cruise analysis: %w", err)
	}
	report.Cruise = cruise

	// Thrust lapse curve
	curve, err := perf.ThrustMachCurve(cfg, req.CurveAltitudeM, req.CurveMachMin, req.CurveMachMax, req.CurveSamples)
	if err != nil {
		return nil, fmt.Errorf("thrust curve: %w", err)
	}
	report.ThrustCurve = curve

	// Service ceiling; an unreachable threshold is reported, not fatal
	ceiling, err := perf.ServiceCeiling(cfg, req.WeightKg, req.CeilingThresholdROC)
	if err != nil {
		var cerr *core.ConvergenceError
		if !errors.As(err, &cerr) {
			return nil, fmt.Errorf("service ceiling: %w", err)
		}
		report.Notes = append(report.Notes, fmt.Sprintf("service ceiling: %s", cerr.Reason))
	}
	report.ServiceCeilingM = ceiling

	// Time to climb; a partial profile is kept on convergence failure
	timeS, profile, err := perf.TimeToClimb(cfg, req.WeightKg, req.ClimbStartM, req.ClimbTargetM, req.ClimbStepM)
	if err != nil {
		var cerr *core.ConvergenceError
		if !errors.As(err, &cerr) {
			return nil, fmt.Errorf("time to climb: %w", err)
		}
		report.Notes = append(report.Notes, fmt.Sprintf("climb stopped at %.0f m: %s", cerr.AltitudeM, cerr.Reason))
	}
	report.TimeToClimbS = timeS
	report.ClimbProfile = profile

	// Breguet range and endurance at the cruise condition
	cruiseVelocity := cruise.Condition.TrueAirspeedMS
	rangeM, err := perf.BreguetRange(cfg, cruiseVelocity, req.CruiseAltitudeM, req.WeightKg, req.FinalWeightKg)
	if err != nil {
		return nil, fmt.Errorf("range estimate: %w", err)
	}
	report.RangeM = rangeM

	enduranceS, err := perf.Endurance(cfg, cruiseVelocity, req.CruiseAltitudeM, req.WeightKg, req.FinalWeightKg)
	if err != nil {
		return nil, fmt.Errorf("endurance estimate: %w", err)
	}
	report.EnduranceS = enduranceS

	return report, nil
}

// persist writes the report through the storage backend and the optional
// InfluxDB sink.
func (r *Runner) persist(ctx context.Context, report *core.PerformanceReport) error {
	backend := r.deps.Backend
	req := report.Request

	if err := backend.StartRun(req.AircraftName, report.Aircraft, req); err != nil {
		return fmt.Errorf("start run: %w", err)
	}

	if err := backend.RecordSummary(*report); err != nil {
		return fmt.Errorf("record summary: %w", err)
	}
	if err := backend.RecordClimbProfile(report.ClimbProfile); err != nil {
		return fmt.Errorf("record climb profile: %w", err)
	}
	if err := backend.RecordThrustCurve(req.CurveAltitudeM, report.ThrustCurve); err != nil {
		return fmt.Errorf("record thrust curve: %w", err)
	}

	if report.RangeM > 0 {
		ring, err := geo.NewRangeRing(req.OriginLat, req.OriginLon, report.RangeM)
		if err != nil {
			// keep the run; the ring is a derived visualization
			r.deps.Logger.Error("Failed to build range ring", "error", err)
		} else if err := backend.RecordRangeRing(ring); err != nil {
			return fmt.Errorf("record range ring: %w", err)
		}
	}

	if err := backend.EndRun(); err != nil {
		return fmt.Errorf("end run: %w", err)
	}

	r.writeInflux(ctx, report)
	return nil
}

// writeInflux mirrors the run results into InfluxDB when a manager is
// configured. Failures are logged, never fatal.
func (r *Runner) writeInflux(ctx context.Context, report *core.PerformanceReport) {
	m := r.deps.Influx
	if m == nil {
		return
	}

	req := report.Request
	now := time.Now().UTC()

	for _, p := range influx.ClimbProfilePoints(req.AircraftName, req.Tag, now, report.ClimbProfile) {
		if err := m.WritePoint(ctx, influx.BucketClimbProfile, p); err != nil {
			r.deps.Logger.Error("Failed to write climb point", "error", err)
			return
		}
	}
	for _, p := range influx.ThrustCurvePoints(req.AircraftName, req.Tag, now, req.CurveAltitudeM, report.ThrustCurve) {
		if err := m.WritePoint(ctx, influx.BucketThrustCurve, p); err != nil {
			r.deps.Logger.Error("Failed to write thrust point", "error", err)
			return
		}
	}
	if err := m.WritePoint(ctx, influx.BucketSummary, influx.SummaryPoint(req.AircraftName, req.Tag, now, *report)); err != nil {
		r.deps.Logger.Error("Failed to write summary point", "error", err)
	}
}

func (r *Runner) countFailure(ctx context.Context) {
	if r.runsFailed != nil {
		r.runsFailed.Add(ctx, 1)
	}
}
