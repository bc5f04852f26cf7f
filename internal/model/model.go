package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent
// tables in the database schema
var DatabaseModels = []interface{}{
	&ServiceInfo{},
	&Aircraft{},
	&AnalysisRun{},
	&PerformanceSummary{},
	&ClimbSample{},
	&ThrustSample{},
	&RangeRing{},
}

// DatabaseModelsSQLite is the schema subset for SQLite, which has no
// spatial type for the range-ring geometry.
var DatabaseModelsSQLite = []interface{}{
	&ServiceInfo{},
	&Aircraft{},
	&AnalysisRun{},
	&PerformanceSummary{},
	&ClimbSample{},
	&ThrustSample{},
}

////////////////////////
// SYSTEM MODELS
////////////////////////

// ServiceInfo contains information about the instance writing to this schema
type ServiceInfo struct {
	gorm.Model
	ServiceName   string `json:"serviceName" gorm:"size:127"`
	Description   string `json:"description" gorm:"size:255"`
	EngineVersion string `json:"engineVersion" gorm:"size:32"`
}

func (*ServiceInfo) TableName() string {
	return "service_infos"
}

////////////////////////
// ANALYSIS MODELS
////////////////////////

// Aircraft is one analyzed airframe. The full engine configuration is kept
// as a JSON snapshot alongside the flattened columns used for querying.
type Aircraft struct {
	gorm.Model
	Name                string         `json:"name" gorm:"size:127;index:idx_aircraft_name"`
	MassKg              float64        `json:"massKg"`
	WingAreaM2          float64        `json:"wingAreaM2"`
	CD0                 float64        `json:"cd0"`
	InducedDragK        float64        `json:"inducedDragK"`
	SeaLevelThrustN     float64        `json:"seaLevelThrustN"`
	ThrustLapseExponent float64        `json:"thrustLapseExponent"`
	SFC                 float64        `json:"sfc"`
	Throttle            float64        `json:"throttle"`
	ConfigSnapshot      datatypes.JSON `json:"configSnapshot"`
	Runs                []AnalysisRun
}

func (*Aircraft) TableName() string {
	return "aircraft"
}

// AnalysisRun is one invocation of the full performance suite
type AnalysisRun struct {
	gorm.Model
	AircraftID          uint      `json:"aircraftId" gorm:"index:idx_run_aircraft_id"`
	Aircraft            Aircraft  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:AircraftID;"`
	Tag                 string    `json:"tag" gorm:"size:64"`
	StartTime           time.Time `json:"startTime"`
	EngineVersion       string    `json:"engineVersion" gorm:"size:32"`
	CeilingThresholdROC float64   `json:"ceilingThresholdRoc"`
	ClimbStepM          float64   `json:"climbStepM"`
}

func (*AnalysisRun) TableName() string {
	return "analysis_runs"
}

// PerformanceSummary holds the scalar results of one run
type PerformanceSummary struct {
	gorm.Model
	RunID uint        `json:"runId" gorm:"index:idx_summary_run_id"`
	Run   AnalysisRun `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RunID;"`

	ServiceCeilingM float64 `json:"serviceCeilingM"`
	ClimbStartM     float64 `json:"climbStartM"`
	ClimbTargetM    float64 `json:"climbTargetM"`
	TimeToClimbS    float64 `json:"timeToClimbS"`
	RangeM          float64 `json:"rangeM"`
	EnduranceS      float64 `json:"enduranceS"`

	CruiseAltitudeM  float64 `json:"cruiseAltitudeM"`
	CruiseMach       float64 `json:"cruiseMach"`
	LiftToDrag       float64 `json:"liftToDrag"`
	ThrustRequiredN  float64 `json:"thrustRequiredN"`
	ThrustAvailableN float64 `json:"thrustAvailableN"`
	PowerRequiredW   float64 `json:"powerRequiredW"`
	PowerAvailableW  float64 `json:"powerAvailableW"`
	FuelFlowKgS      float64 `json:"fuelFlowKgS"`

	// Notes carries convergence diagnostics surfaced by the engine.
	Notes string `json:"notes" gorm:"size:2000"`
}

func (*PerformanceSummary) TableName() string {
	return "performance_summaries"
}

// ClimbSample is one point of a climb-profile integration
type ClimbSample struct {
	ID    uint        `json:"id" gorm:"primarykey"`
	RunID uint        `json:"runId" gorm:"index:idx_climbsample_run_id"`
	Run   AnalysisRun `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RunID;"`

	Seq           uint    `json:"seq"`
	AltitudeM     float64 `json:"altitudeM"`
	RateOfClimbMS float64 `json:"rateOfClimbMS"`
	VelocityMS    float64 `json:"velocityMS"`
	TimeS         float64 `json:"timeS"`
}

func (*ClimbSample) TableName() string {
	return "climb_samples"
}

// ThrustSample is one point of a thrust-vs-Mach curve
type ThrustSample struct {
	ID    uint        `json:"id" gorm:"primarykey"`
	RunID uint        `json:"runId" gorm:"index:idx_thrustsample_run_id"`
	Run   AnalysisRun `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RunID;"`

	Seq       uint    `json:"seq"`
	AltitudeM float64 `json:"altitudeM"`
	Mach      float64 `json:"mach"`
	ThrustN   float64 `json:"thrustN"`
}

func (*ThrustSample) TableName() string {
	return "thrust_samples"
}

// RangeRing is the cruise-range ring around the configured origin,
// stored as an EPSG:3857 polygon
type RangeRing struct {
	gorm.Model
	RunID uint        `json:"runId" gorm:"index:idx_rangering_run_id"`
	Run   AnalysisRun `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RunID;"`

	OriginLat float64      `json:"originLat"`
	OriginLon float64      `json:"originLon"`
	RadiusM   float64      `json:"radiusM"`
	Ring      geom.Polygon `json:"ring"`
}

func (*RangeRing) TableName() string {
	return "range_rings"
}
