package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aeroperf/aeroperf/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() core.PerformanceReport {
	return core.PerformanceReport{
		Aircraft: core.AircraftConfig{
			MassKg:              10000,
			WingAreaM2:          40,
			CD0:                 0.02,
			InducedDragK:        0.045,
			SeaLevelThrustN:     50000,
			ThrustLapseExponent: 0.8,
			SFC:                 2e-5,
			Throttle:            1.0,
		},
		Request: core.ReportRequest{
			AircraftName:        "test-jet",
			Tag:                 "baseline",
			WeightKg:            10000,
			FinalWeightKg:       8000,
			CruiseAltitudeM:     9000,
			CruiseMach:          0.78,
			CeilingThresholdROC: 0.5,
			ClimbTargetM:        9000,
			ClimbStepM:          100,
		},
		Cruise: core.CruisePoint{
			LiftToDrag:       14.2,
			ThrustRequiredN:  6900,
			ThrustAvailableN: 21000,
		},
		ServiceCeilingM: 15800,
		TimeToClimbS:    620,
		RangeM:          4.1e6,
		EnduranceS:      17000,
		Notes:           []string{"ceiling capped", "profile truncated"},
	}
}

func TestAircraftFromConfig(t *testing.T) {
	report := testReport()

	row, err := AircraftFromConfig(report.Request.AircraftName, report.Aircraft)
	require.NoError(t, err)

	assert.Equal(t, "test-jet", row.Name)
	assert.Equal(t, 10000.0, row.MassKg)
	assert.Equal(t, 0.02, row.CD0)

	var roundTrip core.AircraftConfig
	require.NoError(t, json.Unmarshal(row.ConfigSnapshot, &roundTrip))
	assert.Equal(t, report.Aircraft, roundTrip)
}

func TestRunFromRequest(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	run := RunFromRequest(7, testReport().Request, "1.0.0", start)

	assert.Equal(t, uint(7), run.AircraftID)
	assert.Equal(t, "baseline", run.Tag)
	assert.Equal(t, start, run.StartTime)
	assert.Equal(t, 0.5, run.CeilingThresholdROC)
	assert.Equal(t, 100.0, run.ClimbStepM)
}

func TestSummaryFromReport(t *testing.T) {
	summary := SummaryFromReport(3, testReport())

	assert.Equal(t, uint(3), summary.RunID)
	assert.Equal(t, 15800.0, summary.ServiceCeilingM)
	assert.Equal(t, 620.0, summary.TimeToClimbS)
	assert.Equal(t, 4.1e6, summary.RangeM)
	assert.Equal(t, 14.2, summary.LiftToDrag)
	assert.Equal(t, "ceiling capped; profile truncated", summary.Notes)
}

func TestClimbSamplesFromProfile(t *testing.T) {
	profile := []core.ClimbProfilePoint{
		{AltitudeM: 0, RateOfClimbMS: 20, VelocityMS: 150, TimeS: 0},
		{AltitudeM: 100, RateOfClimbMS: 19.5, VelocityMS: 151, TimeS: 5},
	}

	samples := ClimbSamplesFromProfile(9, profile)
	require.Len(t, samples, 2)
	assert.Equal(t, uint(0), samples[0].Seq)
	assert.Equal(t, uint(1), samples[1].Seq)
	assert.Equal(t, uint(9), samples[1].RunID)
	assert.Equal(t, 100.0, samples[1].AltitudeM)
	assert.Equal(t, 5.0, samples[1].TimeS)
}

func TestThrustSamplesFromCurve(t *testing.T) {
	curve := []core.ThrustCurvePoint{
		{Mach: 0.2, ThrustN: 40000},
		{Mach: 0.4, ThrustN: 38000},
		{Mach: 0.6, ThrustN: 36000},
	}

	samples := ThrustSamplesFromCurve(4, 11000, curve)
	require.Len(t, samples, 3)
	for i, s := range samples {
		assert.Equal(t, uint(4), s.RunID)
		assert.Equal(t, uint(i), s.Seq)
		assert.Equal(t, 11000.0, s.AltitudeM)
		assert.Equal(t, curve[i].Mach, s.Mach)
		assert.Equal(t, curve[i].ThrustN, s.ThrustN)
	}
}
