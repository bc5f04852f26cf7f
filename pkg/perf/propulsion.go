// pkg/perf/propulsion.go
package perf

import (
	"math"

	"github.com/aeroperf/aeroperf/pkg/core"
)

// ThrustAvailable returns the thrust the installed engines can deliver at
// the given altitude and Mach number:
//
//	T(h, M) = T_SL * throttle * sigma(h)^n * machFactor(M)
//
// where n is the configured lapse exponent and machFactor is the optional
// Mach-correction strategy (1.0 when unset).
func ThrustAvailable(cfg core.AircraftConfig, altitudeM, mach float64) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if mach < 0 {
		return 0, core.NewDomainError("mach", mach, "must be non-negative")
	}

	sigma, err := DensityRatioAt(altitudeM)
	if err != nil {
		return 0, err
	}

	thrust := cfg.SeaLevelThrustN * cfg.Throttle * math.Pow(sigma, cfg.ThrustLapseExponent)
	return thrust * cfg.MachFactor(mach), nil
}

// FuelFlow returns the fuel mass flow for the given thrust using the
// linear SFC model.
func FuelFlow(cfg core.AircraftConfig, thrustN float64) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if thrustN < 0 {
		return 0, core.NewDomainError("thrustN", thrustN, "must be non-negative")
	}
	return thrustN * cfg.SFC, nil
}

// ThrustMachCurve samples ThrustAvailable over [machMin, machMax] at a
// fixed altitude and returns the ordered (Mach, thrust) series. samples
// is the number of points, minimum 2.
func ThrustMachCurve(cfg core.AircraftConfig, altitudeM, machMin, machMax float64, samples int) ([]core.ThrustCurvePoint, error) {
	if samples < 2 {
		return nil, core.NewDomainError("samples", float64(samples), "curve needs at least 2 points")
	}
	if machMin < 0 {
		return nil, core.NewDomainError("machMin", machMin, "must be non-negative")
	}
	if machMax <= machMin {
		return nil, core.NewDomainError("machMax", machMax, "must exceed machMin")
	}

	curve := make([]core.ThrustCurvePoint, 0, samples)
	step := (machMax - machMin) / float64(samples-1)
	for i := 0; i < samples; i++ {
		m := machMin + float64(i)*step
		thrust, err := ThrustAvailable(cfg, altitudeM, m)
		if err != nil {
			return nil, err
		}
		curve = append(curve, core.ThrustCurvePoint{Mach: m, ThrustN: thrust})
	}
	return curve, nil
}
