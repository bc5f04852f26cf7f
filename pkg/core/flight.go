package core

// AtmosphereState is the standard-atmosphere state at one altitude.
// It is derived per query and never stored between calls.
type AtmosphereState struct {
	AltitudeM      float64 `json:"altitudeM"`
	TemperatureK   float64 `json:"temperatureK"`
	PressurePa     float64 `json:"pressurePa"`
	DensityKgM3    float64 `json:"densityKgM3"`
	SpeedOfSoundMS float64 `json:"speedOfSoundMS"`
}

// FlightCondition describes one evaluation point of a climb or cruise.
// WeightKg may differ from AircraftConfig.MassKg once fuel has burned.
type FlightCondition struct {
	AltitudeM      float64 `json:"altitudeM"`
	TrueAirspeedMS float64 `json:"trueAirspeedMS"`
	Mach           float64 `json:"mach"`
	WeightKg       float64 `json:"weightKg"`
}

// ClimbProfilePoint is one sample of a climb integration. Sequences are
// append-only and strictly increasing in both altitude and time.
type ClimbProfilePoint struct {
	AltitudeM     float64 `json:"altitudeM"`
	RateOfClimbMS float64 `json:"rateOfClimbMS"`
	VelocityMS    float64 `json:"velocityMS"`
	TimeS         float64 `json:"timeS"`
}

// ThrustCurvePoint is one sample of a thrust-vs-Mach curve at fixed altitude.
type ThrustCurvePoint struct {
	Mach    float64 `json:"mach"`
	ThrustN float64 `json:"thrustN"`
}

// CruisePoint summarizes steady cruise at one flight condition.
type CruisePoint struct {
	Condition        FlightCondition `json:"condition"`
	LiftN            float64         `json:"liftN"`
	DragN            float64         `json:"dragN"`
	LiftToDrag       float64         `json:"liftToDrag"`
	ThrustRequiredN  float64         `json:"thrustRequiredN"`
	ThrustAvailableN float64         `json:"thrustAvailableN"`
	PowerRequiredW   float64         `json:"powerRequiredW"`
	PowerAvailableW  float64         `json:"powerAvailableW"`
	FuelFlowKgS      float64         `json:"fuelFlowKgS"`
	RateOfClimbMS    float64         `json:"rateOfClimbMS"`
}
