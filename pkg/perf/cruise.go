// pkg/perf/cruise.go
package perf

import "github.com/aeroperf/aeroperf/pkg/core"

// CruisePerformance evaluates steady level cruise at the given weight,
// altitude and Mach number: lift, drag, L/D, thrust and power required
// versus available, cruise fuel flow, and the instantaneous rate of climb
// the excess power would support.
func CruisePerformance(cfg core.AircraftConfig, weightKg, altitudeM, mach float64) (core.CruisePoint, error) {
	if mach <= 0 {
		return core.CruisePoint{}, core.NewDomainError("mach", mach, "must be positive")
	}

	atmos, err := AtmosphereAt(altitudeM)
	if err != nil {
		return core.CruisePoint{}, err
	}
	velocityMS := mach * atmos.SpeedOfSoundMS

	drag, err := DragForce(cfg, weightKg, atmos.DensityKgM3, velocityMS)
	if err != nil {
		return core.CruisePoint{}, err
	}
	ld, err := LiftToDrag(cfg, weightKg, atmos.DensityKgM3, velocityMS)
	if err != nil {
		return core.CruisePoint{}, err
	}
	thrustAvail, err := ThrustAvailable(cfg, altitudeM, mach)
	if err != nil {
		return core.CruisePoint{}, err
	}
	fuelFlow, err := FuelFlow(cfg, drag)
	if err != nil {
		return core.CruisePoint{}, err
	}

	return core.CruisePoint{
		Condition: core.FlightCondition{
			AltitudeM:      altitudeM,
			TrueAirspeedMS: velocityMS,
			Mach:           mach,
			WeightKg:       weightKg,
		},
		LiftN:            weightKg * GravityMS2,
		DragN:            drag,
		LiftToDrag:       ld,
		ThrustRequiredN:  drag,
		ThrustAvailableN: thrustAvail,
		PowerRequiredW:   drag * velocityMS,
		PowerAvailableW:  thrustAvail * velocityMS,
		FuelFlowKgS:      fuelFlow,
		RateOfClimbMS:    (thrustAvail - drag) * velocityMS / (weightKg * GravityMS2),
	}, nil
}
