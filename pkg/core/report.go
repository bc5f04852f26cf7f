package core

// ReportRequest describes one full analysis of an aircraft configuration.
type ReportRequest struct {
	AircraftName  string  `json:"aircraftName" mapstructure:"aircraftName"`
	Tag           string  `json:"tag" mapstructure:"tag"`
	WeightKg      float64 `json:"weightKg" mapstructure:"weightKg"`
	FinalWeightKg float64 `json:"finalWeightKg" mapstructure:"finalWeightKg"`

	CruiseAltitudeM float64 `json:"cruiseAltitudeM" mapstructure:"cruiseAltitudeM"`
	CruiseMach      float64 `json:"cruiseMach" mapstructure:"cruiseMach"`

	CeilingThresholdROC float64 `json:"ceilingThresholdRoc" mapstructure:"ceilingThresholdRoc"`
	ClimbStartM         float64 `json:"climbStartM" mapstructure:"climbStartM"`
	ClimbTargetM        float64 `json:"climbTargetM" mapstructure:"climbTargetM"`
	ClimbStepM          float64 `json:"climbStepM" mapstructure:"climbStepM"`

	CurveAltitudeM float64 `json:"curveAltitudeM" mapstructure:"curveAltitudeM"`
	CurveMachMin   float64 `json:"curveMachMin" mapstructure:"curveMachMin"`
	CurveMachMax   float64 `json:"curveMachMax" mapstructure:"curveMachMax"`
	CurveSamples   int     `json:"curveSamples" mapstructure:"curveSamples"`

	OriginLat float64 `json:"originLat" mapstructure:"originLat"`
	OriginLon float64 `json:"originLon" mapstructure:"originLon"`
}

// PerformanceReport aggregates the results of one analysis run. Optional
// sections that could not be computed are left zero and explained in Notes.
type PerformanceReport struct {
	Aircraft AircraftConfig `json:"aircraft"`
	Request  ReportRequest  `json:"request"`

	Cruise      CruisePoint        `json:"cruise"`
	ThrustCurve []ThrustCurvePoint `json:"thrustCurve"`

	ServiceCeilingM float64             `json:"serviceCeilingM"`
	TimeToClimbS    float64             `json:"timeToClimbS"`
	ClimbProfile    []ClimbProfilePoint `json:"climbProfile"`

	RangeM     float64 `json:"rangeM"`
	EnduranceS float64 `json:"enduranceS"`

	Notes []string `json:"notes,omitempty"`
}
