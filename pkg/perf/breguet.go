// pkg/perf/breguet.go
package perf

import (
	"math"

	"github.com/aeroperf/aeroperf/pkg/core"
)

// validateCruiseWeights checks the weight preconditions shared by the
// Breguet range and endurance estimates.
func validateCruiseWeights(cfg core.AircraftConfig, initialWeightKg, finalWeightKg float64) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if finalWeightKg <= 0 {
		return core.NewDomainError("finalWeightKg", finalWeightKg, "must be positive")
	}
	if finalWeightKg >= initialWeightKg {
		return core.NewDomainError("finalWeightKg", finalWeightKg, "must be below initial weight")
	}
	if initialWeightKg > cfg.MassKg {
		return core.NewDomainError("initialWeightKg", initialWeightKg, "exceeds configured aircraft mass")
	}
	return nil
}

// BreguetRange estimates still-air cruise range in meters:
//
//	R = V * (L/D) / (SFC * g) * ln(Wi/Wf)
//
// L/D is evaluated at the average cruise weight (Wi+Wf)/2, the usual
// constant-condition approximation for the whole cruise segment.
func BreguetRange(cfg core.AircraftConfig, cruiseVelocityMS, cruiseAltitudeM, initialWeightKg, finalWeightKg float64) (float64, error) {
	if cruiseVelocityMS <= 0 {
		return 0, core.NewDomainError("cruiseVelocityMS", cruiseVelocityMS, "must be positive")
	}
	if err := validateCruiseWeights(cfg, initialWeightKg, finalWeightKg); err != nil {
		return 0, err
	}

	atmos, err := AtmosphereAt(cruiseAltitudeM)
	if err != nil {
		return 0, err
	}

	meanWeightKg := (initialWeightKg + finalWeightKg) / 2
	ld, err := LiftToDrag(cfg, meanWeightKg, atmos.DensityKgM3, cruiseVelocityMS)
	if err != nil {
		return 0, err
	}

	return cruiseVelocityMS * ld / (cfg.SFC * GravityMS2) * math.Log(initialWeightKg/finalWeightKg), nil
}

// Endurance estimates cruise endurance in seconds:
//
//	E = (L/D) / (SFC * g) * ln(Wi/Wf)
//
// with the same average-weight L/D approximation as BreguetRange.
func Endurance(cfg core.AircraftConfig, cruiseVelocityMS, cruiseAltitudeM, initialWeightKg, finalWeightKg float64) (float64, error) {
	r, err := BreguetRange(cfg, cruiseVelocityMS, cruiseAltitudeM, initialWeightKg, finalWeightKg)
	if err != nil {
		return 0, err
	}
	return r / cruiseVelocityMS, nil
}
