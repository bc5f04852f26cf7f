package perf

import (
	"errors"
	"math"
	"testing"

	"github.com/aeroperf/aeroperf/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() core.AircraftConfig {
	return core.AircraftConfig{
		MassKg:              10000,
		WingAreaM2:          40,
		CD0:                 0.02,
		InducedDragK:        0.045,
		SeaLevelThrustN:     50000,
		ThrustLapseExponent: 0.8,
		SFC:                 2e-5,
		Throttle:            1.0,
	}
}

func TestLiftCoefficient_KnownValue(t *testing.T) {
	cfg := testConfig()

	// CL = W*g / (0.5*rho*V^2*S)
	cl, err := LiftCoefficient(cfg, 10000, 1.225, 100)
	require.NoError(t, err)

	want := 10000 * GravityMS2 / (0.5 * 1.225 * 100 * 100 * 40)
	assert.InDelta(t, want, cl, 1e-12)
}

func TestDragForce_ParabolicPolar(t *testing.T) {
	cfg := testConfig()

	drag, err := DragForce(cfg, 10000, 1.225, 100)
	require.NoError(t, err)

	q := 0.5 * 1.225 * 100 * 100.0
	cl := 10000 * GravityMS2 / (q * 40)
	want := (0.02 + 0.045*cl*cl) * q * 40
	assert.InDelta(t, want, drag, 1e-9)
}

func TestDragForce_DomainErrors(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name     string
		weight   float64
		density  float64
		velocity float64
	}{
		{name: "zero velocity", weight: 10000, density: 1.225, velocity: 0},
		{name: "negative velocity", weight: 10000, density: 1.225, velocity: -50},
		{name: "zero density", weight: 10000, density: 0, velocity: 100},
		{name: "zero weight", weight: 0, density: 1.225, velocity: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DragForce(cfg, tt.weight, tt.density, tt.velocity)
			require.Error(t, err)

			var derr *core.DomainError
			assert.True(t, errors.As(err, &derr), "expected DomainError, got %v", err)
		})
	}
}

func TestLiftToDrag_PeaksAtMinimumDragSpeed(t *testing.T) {
	cfg := testConfig()

	// L/D is maximal where CL = sqrt(CD0/k); solve for the speed there.
	clStar := math.Sqrt(cfg.CD0 / cfg.InducedDragK)
	q := 10000 * GravityMS2 / (clStar * cfg.WingAreaM2)
	vStar := math.Sqrt(2 * q / 1.225)

	ldStar, err := LiftToDrag(cfg, 10000, 1.225, vStar)
	require.NoError(t, err)

	for _, dv := range []float64{-20, -10, 10, 20} {
		ld, err := LiftToDrag(cfg, 10000, 1.225, vStar+dv)
		require.NoError(t, err)
		assert.Less(t, ld, ldStar, "L/D at %.1f m/s", vStar+dv)
	}

	// Analytic maximum: 1/(2*sqrt(CD0*k)).
	assert.InEpsilon(t, 1/(2*math.Sqrt(cfg.CD0*cfg.InducedDragK)), ldStar, 1e-9)
}
