package perf

import (
	"errors"
	"testing"

	"github.com/aeroperf/aeroperf/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCruisePerformance_Balances(t *testing.T) {
	cfg := testConfig()

	pt, err := CruisePerformance(cfg, 10000, 9000, 0.6)
	require.NoError(t, err)

	assert.InDelta(t, 10000*GravityMS2, pt.LiftN, 1e-9, "lift balances weight in level flight")
	assert.Equal(t, pt.DragN, pt.ThrustRequiredN)
	assert.InDelta(t, pt.DragN*pt.Condition.TrueAirspeedMS, pt.PowerRequiredW, 1e-6)
	assert.InDelta(t, pt.ThrustAvailableN*pt.Condition.TrueAirspeedMS, pt.PowerAvailableW, 1e-6)
	assert.InDelta(t, pt.DragN*cfg.SFC, pt.FuelFlowKgS, 1e-12)
	assert.Equal(t, 0.6, pt.Condition.Mach)
	assert.Greater(t, pt.LiftToDrag, 1.0)
}

func TestCruisePerformance_ZeroExcessThrust(t *testing.T) {
	cfg := testConfig()
	cfg.ThrustLapseExponent = 0

	probe, err := CruisePerformance(cfg, 10000, 6000, 0.7)
	require.NoError(t, err)

	// Pin thrust available to the drag at this condition: ROC must vanish.
	cfg.SeaLevelThrustN = probe.DragN
	pt, err := CruisePerformance(cfg, 10000, 6000, 0.7)
	require.NoError(t, err)
	assert.InDelta(t, 0, pt.RateOfClimbMS, 1e-9)
}

func TestCruisePerformance_DomainErrors(t *testing.T) {
	cfg := testConfig()

	var derr *core.DomainError

	_, err := CruisePerformance(cfg, 10000, 9000, 0)
	require.True(t, errors.As(err, &derr))

	_, err = CruisePerformance(cfg, 10000, 30000, 0.6)
	require.True(t, errors.As(err, &derr))

	_, err = CruisePerformance(cfg, -1, 9000, 0.6)
	require.True(t, errors.As(err, &derr))
}
