package perf

import (
	"errors"
	"testing"

	"github.com/aeroperf/aeroperf/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateOfClimb_ZeroExcessPower(t *testing.T) {
	cfg := testConfig()
	cfg.ThrustLapseExponent = 0 // thrust independent of altitude

	// Make thrust available exactly equal to drag at the test condition.
	atmos, err := AtmosphereAt(0)
	require.NoError(t, err)
	drag, err := DragForce(cfg, 10000, atmos.DensityKgM3, 150)
	require.NoError(t, err)
	cfg.SeaLevelThrustN = drag

	roc, err := RateOfClimb(cfg, 10000, 0, 150)
	require.NoError(t, err)
	assert.InDelta(t, 0, roc, 1e-9)
}

func TestRateOfClimb_DomainErrors(t *testing.T) {
	cfg := testConfig()

	_, err := RateOfClimb(cfg, 10000, 0, 0)
	var derr *core.DomainError
	require.True(t, errors.As(err, &derr))

	_, err = RateOfClimb(cfg, 10000, -5, 100)
	require.True(t, errors.As(err, &derr))
}

func TestBestRateOfClimb_InteriorMaximum(t *testing.T) {
	cfg := testConfig()

	vStar, rocStar, err := BestRateOfClimb(cfg, 10000, 5000)
	require.NoError(t, err)
	assert.Greater(t, rocStar, 0.0)
	assert.Greater(t, vStar, climbSearchMinVelocityMS)
	assert.Less(t, vStar, climbSearchMaxVelocityMS)

	// Neighbours on either side must not beat the optimum.
	for _, dv := range []float64{-10, -5, 5, 10} {
		roc, err := RateOfClimb(cfg, 10000, 5000, vStar+dv)
		require.NoError(t, err)
		assert.LessOrEqual(t, roc, rocStar+1e-9, "ROC at %.1f m/s", vStar+dv)
	}
}

func TestBestRateOfClimb_Deterministic(t *testing.T) {
	cfg := testConfig()

	v1, roc1, err := BestRateOfClimb(cfg, 10000, 8000)
	require.NoError(t, err)
	v2, roc2, err := BestRateOfClimb(cfg, 10000, 8000)
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, roc1, roc2)
}

func TestServiceCeiling_ThresholdProperty(t *testing.T) {
	cfg := testConfig()
	const threshold = 0.5

	ceiling, err := ServiceCeiling(cfg, 10000, threshold)
	require.NoError(t, err)
	assert.Greater(t, ceiling, 0.0)
	assert.Less(t, ceiling, MaxModelAltitudeM)

	// At the ceiling the best achievable ROC equals the threshold.
	_, roc, err := BestRateOfClimb(cfg, 10000, ceiling)
	require.NoError(t, err)
	assert.InDelta(t, threshold, roc, 0.01)
}

func TestServiceCeiling_AboveModelBound(t *testing.T) {
	cfg := testConfig()
	cfg.ThrustLapseExponent = 0 // no lapse: the aircraft out-climbs the model

	ceiling, err := ServiceCeiling(cfg, 10000, 0.5)
	require.Error(t, err)

	var cerr *core.ConvergenceError
	require.True(t, errors.As(err, &cerr), "expected ConvergenceError, got %v", err)
	assert.Equal(t, MaxModelAltitudeM, ceiling)
	assert.Equal(t, MaxModelAltitudeM, cerr.AltitudeM)
}

func TestServiceCeiling_GroundedAircraft(t *testing.T) {
	cfg := testConfig()
	cfg.SeaLevelThrustN = 1000 // not enough thrust to climb at all

	ceiling, err := ServiceCeiling(cfg, 10000, 0.5)
	require.NoError(t, err)
	assert.Zero(t, ceiling)
}

func TestTimeToClimb_EndToEnd(t *testing.T) {
	cfg := testConfig()

	total, profile, err := TimeToClimb(cfg, 10000, 0, 5000, 100)
	require.NoError(t, err)

	assert.Greater(t, total, 0.0)
	require.GreaterOrEqual(t, len(profile), 2)
	assert.Equal(t, 0.0, profile[0].AltitudeM)
	assert.Equal(t, 5000.0, profile[len(profile)-1].AltitudeM)
	assert.Equal(t, total, profile[len(profile)-1].TimeS)

	for i := 1; i < len(profile); i++ {
		assert.Greater(t, profile[i].AltitudeM, profile[i-1].AltitudeM, "altitude at %d", i)
		assert.Greater(t, profile[i].TimeS, profile[i-1].TimeS, "time at %d", i)
	}
}

func TestTimeToClimb_StepHalvingAgreement(t *testing.T) {
	cfg := testConfig()

	coarse, _, err := TimeToClimb(cfg, 10000, 0, 5000, 100)
	require.NoError(t, err)
	fine, _, err := TimeToClimb(cfg, 10000, 0, 5000, 50)
	require.NoError(t, err)

	assert.InEpsilon(t, fine, coarse, 0.01, "step halving must agree within 1%%")
}

func TestTimeToClimb_CannotReachTarget(t *testing.T) {
	cfg := testConfig()
	cfg.SeaLevelThrustN = 20000 // absolute ceiling well below the model bound

	ceiling, err := ServiceCeiling(cfg, 10000, 0)
	require.NoError(t, err)

	total, profile, err := TimeToClimb(cfg, 10000, 0, MaxModelAltitudeM, 100)
	require.Error(t, err)

	var cerr *core.ConvergenceError
	require.True(t, errors.As(err, &cerr), "expected ConvergenceError, got %v", err)
	assert.Greater(t, total, 0.0, "partial time is surfaced")
	assert.NotEmpty(t, profile, "partial profile is surfaced")
	assert.LessOrEqual(t, cerr.AltitudeM, MaxModelAltitudeM)
	assert.InDelta(t, ceiling, cerr.AltitudeM, 150, "stall altitude near absolute ceiling")
}

func TestTimeToClimb_DomainErrors(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name   string
		start  float64
		target float64
		step   float64
	}{
		{name: "zero step", start: 0, target: 5000, step: 0},
		{name: "negative start", start: -100, target: 5000, step: 100},
		{name: "target below start", start: 5000, target: 1000, step: 100},
		{name: "target above model", start: 0, target: 25000, step: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := TimeToClimb(cfg, 10000, tt.start, tt.target, tt.step)
			require.Error(t, err)

			var derr *core.DomainError
			assert.True(t, errors.As(err, &derr), "expected DomainError, got %v", err)
		})
	}
}
