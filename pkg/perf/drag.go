// pkg/perf/drag.go
package perf

import "github.com/aeroperf/aeroperf/pkg/core"

// LiftCoefficient returns CL for level flight at the given weight and
// dynamic condition. There is no stall bound: CL is whatever the balance
// requires, and the caller is responsible for physically sane velocities.
func LiftCoefficient(cfg core.AircraftConfig, weightKg, densityKgM3, velocityMS float64) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if weightKg <= 0 {
		return 0, core.NewDomainError("weightKg", weightKg, "must be positive")
	}
	if densityKgM3 <= 0 {
		return 0, core.NewDomainError("densityKgM3", densityKgM3, "must be positive")
	}
	if velocityMS <= 0 {
		return 0, core.NewDomainError("velocityMS", velocityMS, "must be positive")
	}

	q := 0.5 * densityKgM3 * velocityMS * velocityMS
	return weightKg * GravityMS2 / (q * cfg.WingAreaM2), nil
}

// DragForce evaluates the parabolic drag polar CD = CD0 + k*CL^2 and
// returns the drag force in newtons.
func DragForce(cfg core.AircraftConfig, weightKg, densityKgM3, velocityMS float64) (float64, error) {
	cl, err := LiftCoefficient(cfg, weightKg, densityKgM3, velocityMS)
	if err != nil {
		return 0, err
	}
	cd := cfg.CD0 + cfg.InducedDragK*cl*cl
	q := 0.5 * densityKgM3 * velocityMS * velocityMS
	return cd * q * cfg.WingAreaM2, nil
}

// LiftToDrag returns CL/CD at the given condition.
func LiftToDrag(cfg core.AircraftConfig, weightKg, densityKgM3, velocityMS float64) (float64, error) {
	cl, err := LiftCoefficient(cfg, weightKg, densityKgM3, velocityMS)
	if err != nil {
		return 0, err
	}
	cd := cfg.CD0 + cfg.InducedDragK*cl*cl
	if cd <= 0 {
		return 0, core.NewDomainError("cd", cd, "drag coefficient collapsed to zero")
	}
	return cl / cd, nil
}
