// Package library carries built-in aircraft presets so the engine can run
// without a config file. Coefficients are public-domain ballpark figures
// suitable for estimation only.
package library

import (
	"fmt"
	"sort"

	"github.com/aeroperf/aeroperf/internal/util"
	"github.com/aeroperf/aeroperf/pkg/core"
)

// presets maps preset name to configuration. Thrust figures are all-engine
// totals.
var presets = map[string]core.AircraftConfig{
	"b777-300": {
		MassKg:              299370,
		WingAreaM2:          427.8,
		CD0:                 0.018,
		InducedDragK:        0.045,
		SeaLevelThrustN:     800000,
		ThrustLapseExponent: 0.8,
		SFC:                 util.TSFCHandbookToSI(0.6),
		Throttle:            1.0,
		MachCorrection:      core.LinearMachCorrection(0, 0.25),
	},
	"a320-200": {
		MassKg:              73500,
		WingAreaM2:          122.6,
		CD0:                 0.023,
		InducedDragK:        0.0435,
		SeaLevelThrustN:     222400,
		ThrustLapseExponent: 0.8,
		SFC:                 util.TSFCHandbookToSI(0.596),
		Throttle:            1.0,
		MachCorrection:      core.LinearMachCorrection(0, 0.25),
	},
	"e175": {
		MassKg:              38790,
		WingAreaM2:          72.72,
		CD0:                 0.022,
		InducedDragK:        0.044,
		SeaLevelThrustN:     127600,
		ThrustLapseExponent: 0.8,
		SFC:                 util.TSFCHandbookToSI(0.64),
		Throttle:            1.0,
		MachCorrection:      core.LinearMachCorrection(0, 0.25),
	},
	"tutor-jet": {
		MassKg:              10000,
		WingAreaM2:          40,
		CD0:                 0.02,
		InducedDragK:        0.045,
		SeaLevelThrustN:     50000,
		ThrustLapseExponent: 0.8,
		SFC:                 2e-5,
		Throttle:            1.0,
	},
}

// Names returns the sorted preset names.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the preset configuration for the given name.
func Get(name string) (core.AircraftConfig, error) {
	cfg, ok := presets[name]
	if !ok {
		return core.AircraftConfig{}, fmt.Errorf("unknown aircraft preset: %s", name)
	}
	return cfg, nil
}
