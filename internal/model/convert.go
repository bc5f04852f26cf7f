package model

import (
	"encoding/json"
	"time"

	"github.com/aeroperf/aeroperf/pkg/core"
	"gorm.io/datatypes"
)

// AircraftFromConfig flattens an engine configuration into an Aircraft row,
// keeping the full configuration as a JSON snapshot.
func AircraftFromConfig(name string, cfg core.AircraftConfig) (Aircraft, error) {
	snapshot, err := json.Marshal(cfg)
	if err != nil {
		return Aircraft{}, err
	}
	return Aircraft{
		Name:                name,
		MassKg:              cfg.MassKg,
		WingAreaM2:          cfg.WingAreaM2,
		CD0:                 cfg.CD0,
		InducedDragK:        cfg.InducedDragK,
		SeaLevelThrustN:     cfg.SeaLevelThrustN,
		ThrustLapseExponent: cfg.ThrustLapseExponent,
		SFC:                 cfg.SFC,
		Throttle:            cfg.Throttle,
		ConfigSnapshot:      datatypes.JSON(snapshot),
	}, nil
}

// RunFromRequest builds the AnalysisRun row for a report request.
func RunFromRequest(aircraftID uint, req core.ReportRequest, engineVersion string, startTime time.Time) AnalysisRun {
	return AnalysisRun{
		AircraftID:          aircraftID,
		Tag:                 req.Tag,
		StartTime:           startTime,
		EngineVersion:       engineVersion,
		CeilingThresholdROC: req.CeilingThresholdROC,
		ClimbStepM:          req.ClimbStepM,
	}
}

// SummaryFromReport flattens the scalar results of a report.
func SummaryFromReport(runID uint, report core.PerformanceReport) PerformanceSummary {
	notes := ""
	for i, n := range report.Notes {
		if i > 0 {
			notes += "; "
		}
		notes += n
	}
	return PerformanceSummary{
		RunID:            runID,
		ServiceCeilingM:  report.ServiceCeilingM,
		ClimbStartM:      report.Request.ClimbStartM,
		ClimbTargetM:     report.Request.ClimbTargetM,
		TimeToClimbS:     report.TimeToClimbS,
		RangeM:           report.RangeM,
		EnduranceS:       report.EnduranceS,
		CruiseAltitudeM:  report.Request.CruiseAltitudeM,
		CruiseMach:       report.Request.CruiseMach,
		LiftToDrag:       report.Cruise.LiftToDrag,
		ThrustRequiredN:  report.Cruise.ThrustRequiredN,
		ThrustAvailableN: report.Cruise.ThrustAvailableN,
		PowerRequiredW:   report.Cruise.PowerRequiredW,
		PowerAvailableW:  report.Cruise.PowerAvailableW,
		FuelFlowKgS:      report.Cruise.FuelFlowKgS,
		Notes:            notes,
	}
}

// ClimbSamplesFromProfile converts a climb profile into sample rows.
func ClimbSamplesFromProfile(runID uint, profile []core.ClimbProfilePoint) []ClimbSample {
	samples := make([]ClimbSample, 0, len(profile))
	for i, p := range profile {
		samples = append(samples, ClimbSample{
			RunID:         runID,
			Seq:           uint(i),
			AltitudeM:     p.AltitudeM,
			RateOfClimbMS: p.RateOfClimbMS,
			VelocityMS:    p.VelocityMS,
			TimeS:         p.TimeS,
		})
	}
	return samples
}

// ThrustSamplesFromCurve converts a thrust-vs-Mach curve into sample rows.
func ThrustSamplesFromCurve(runID uint, altitudeM float64, curve []core.ThrustCurvePoint) []ThrustSample {
	samples := make([]ThrustSample, 0, len(curve))
	for i, p := range curve {
		samples = append(samples, ThrustSample{
			RunID:     runID,
			Seq:       uint(i),
			AltitudeM: altitudeM,
			Mach:      p.Mach,
			ThrustN:   p.ThrustN,
		})
	}
	return samples
}
