package core

// MachCorrectionFunc maps a Mach number to a multiplicative thrust factor.
// It models ram-drag / thrust roll-off at high Mach. A nil function means
// no correction (factor 1.0 everywhere).
type MachCorrectionFunc func(mach float64) float64

// NoMachCorrection returns 1.0 for every Mach number.
func NoMachCorrection(mach float64) float64 {
	return 1.0
}

// LinearMachCorrection returns a monotone-decreasing correction that is 1.0
// at or below onset and falls off linearly with the given slope above it.
// The factor never drops below zero.
func LinearMachCorrection(onset, slope float64) MachCorrectionFunc {
	return func(mach float64) float64 {
		if mach <= onset {
			return 1.0
		}
		f := 1.0 - slope*(mach-onset)
		if f < 0 {
			return 0
		}
		return f
	}
}

// AircraftConfig holds the design parameters the engine operates on.
// All aerodynamic and propulsion coefficients are taken as given inputs;
// nothing is estimated from geometry.
type AircraftConfig struct {
	// MassKg is the reference (maximum analysis) mass in kilograms.
	MassKg float64 `json:"massKg" mapstructure:"massKg"`
	// WingAreaM2 is the wing reference area in square meters.
	WingAreaM2 float64 `json:"wingAreaM2" mapstructure:"wingAreaM2"`
	// CD0 is the zero-lift drag coefficient of the parabolic polar.
	CD0 float64 `json:"cd0" mapstructure:"cd0"`
	// InducedDragK is the induced-drag factor k in CD = CD0 + k*CL^2.
	InducedDragK float64 `json:"inducedDragK" mapstructure:"inducedDragK"`
	// SeaLevelThrustN is total static thrust at sea level in newtons.
	SeaLevelThrustN float64 `json:"seaLevelThrustN" mapstructure:"seaLevelThrustN"`
	// ThrustLapseExponent is the density-ratio exponent n in
	// T(h) = T_SL * throttle * sigma^n. Typically 0.7-1.0 for turbofans.
	ThrustLapseExponent float64 `json:"thrustLapseExponent" mapstructure:"thrustLapseExponent"`
	// SFC is thrust-specific fuel consumption in kg/(N*s).
	SFC float64 `json:"sfc" mapstructure:"sfc"`
	// Throttle is the engine throttle setting, fraction in [0,1].
	Throttle float64 `json:"throttle" mapstructure:"throttle"`

	// MachCorrection is the optional high-Mach thrust roll-off strategy.
	// Nil means uncorrected (factor 1.0).
	MachCorrection MachCorrectionFunc `json:"-" mapstructure:"-"`
}

// Validate checks the configuration invariants. It returns a *DomainError
// describing the first violated constraint, or nil.
func (c *AircraftConfig) Validate() error {
	switch {
	case c.MassKg <= 0:
		return NewDomainError("massKg", c.MassKg, "must be positive")
	case c.WingAreaM2 <= 0:
		return NewDomainError("wingAreaM2", c.WingAreaM2, "must be positive")
	case c.CD0 < 0:
		return NewDomainError("cd0", c.CD0, "must be non-negative")
	case c.InducedDragK < 0:
		return NewDomainError("inducedDragK", c.InducedDragK, "must be non-negative")
	case c.SeaLevelThrustN < 0:
		return NewDomainError("seaLevelThrustN", c.SeaLevelThrustN, "must be non-negative")
	case c.ThrustLapseExponent < 0:
		return NewDomainError("thrustLapseExponent", c.ThrustLapseExponent, "must be non-negative")
	case c.SFC <= 0:
		return NewDomainError("sfc", c.SFC, "must be positive")
	case c.Throttle < 0 || c.Throttle > 1:
		return NewDomainError("throttle", c.Throttle, "must be within [0,1]")
	}
	return nil
}

// MachFactor evaluates the Mach-correction strategy, treating nil as 1.0.
func (c *AircraftConfig) MachFactor(mach float64) float64 {
	if c.MachCorrection == nil {
		return 1.0
	}
	return c.MachCorrection(mach)
}
