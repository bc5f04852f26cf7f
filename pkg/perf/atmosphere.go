// Package perf is the aircraft performance engine. Every operation is a
// pure function of its arguments: no package state is mutated, identical
// inputs always produce identical outputs, and concurrent callers need no
// coordination. Errors follow a two-way taxonomy — *core.DomainError for
// inputs outside the physically valid range, *core.ConvergenceError for
// bounded searches that exhaust their budget.
package perf

import (
	"math"

	"github.com/aeroperf/aeroperf/pkg/core"
)

// International Standard Atmosphere reference constants.
const (
	// SeaLevelTemperatureK is the ISA sea-level temperature.
	SeaLevelTemperatureK = 288.15
	// SeaLevelPressurePa is the ISA sea-level pressure.
	SeaLevelPressurePa = 101325.0
	// TemperatureLapseKPerM is the tropospheric temperature lapse rate.
	TemperatureLapseKPerM = 0.0065
	// GravityMS2 is standard gravitational acceleration.
	GravityMS2 = 9.80665
	// GasConstantAir is the specific gas constant of dry air, J/(kg*K).
	GasConstantAir = 287.05
	// GammaAir is the ratio of specific heats for air.
	GammaAir = 1.4

	// TropopauseAltitudeM is the top of the linear-lapse troposphere.
	TropopauseAltitudeM = 11000.0
	// TropopauseTemperatureK is the isothermal lower-stratosphere temperature.
	TropopauseTemperatureK = 216.65
	// MaxModelAltitudeM is the upper validity bound of the model.
	MaxModelAltitudeM = 20000.0
)

// tropopausePressurePa is the tropospheric pressure evaluated at 11 km,
// the anchor for the isothermal layer above.
var tropopausePressurePa = SeaLevelPressurePa * math.Pow(
	TropopauseTemperatureK/SeaLevelTemperatureK,
	GravityMS2/(TemperatureLapseKPerM*GasConstantAir),
)

// seaLevelDensityKgM3 follows from the ideal gas law at the sea-level state.
var seaLevelDensityKgM3 = SeaLevelPressurePa / (GasConstantAir * SeaLevelTemperatureK)

// AtmosphereAt returns the ISA state at the given geometric altitude.
// Valid from 0 to MaxModelAltitudeM; anything outside is a DomainError.
func AtmosphereAt(altitudeM float64) (core.AtmosphereState, error) {
	if altitudeM < 0 {
		return core.AtmosphereState{}, core.NewDomainError("altitudeM", altitudeM, "must be non-negative")
	}
	if altitudeM > MaxModelAltitudeM {
		return core.AtmosphereState{}, core.NewDomainError("altitudeM", altitudeM, "exceeds model ceiling of 20 km")
	}

	var tempK, pressurePa float64
	if altitudeM <= TropopauseAltitudeM {
		tempK = SeaLevelTemperatureK - TemperatureLapseKPerM*altitudeM
		pressurePa = SeaLevelPressurePa * math.Pow(
			tempK/SeaLevelTemperatureK,
			GravityMS2/(TemperatureLapseKPerM*GasConstantAir),
		)
	} else {
		tempK = TropopauseTemperatureK
		pressurePa = tropopausePressurePa * math.Exp(
			-GravityMS2*(altitudeM-TropopauseAltitudeM)/(GasConstantAir*TropopauseTemperatureK),
		)
	}

	return core.AtmosphereState{
		AltitudeM:      altitudeM,
		TemperatureK:   tempK,
		PressurePa:     pressurePa,
		DensityKgM3:    pressurePa / (GasConstantAir * tempK),
		SpeedOfSoundMS: math.Sqrt(GammaAir * GasConstantAir * tempK),
	}, nil
}

// DensityRatioAt returns sigma = rho(h)/rho(0) for the standard atmosphere.
func DensityRatioAt(altitudeM float64) (float64, error) {
	atmos, err := AtmosphereAt(altitudeM)
	if err != nil {
		return 0, err
	}
	return atmos.DensityKgM3 / seaLevelDensityKgM3, nil
}
