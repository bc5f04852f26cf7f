package config

import (
	"fmt"
	"time"

	"github.com/aeroperf/aeroperf/pkg/core"
	"github.com/spf13/viper"
)

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds SQLite storage backend settings
type SQLiteConfig struct {
	OutputDir    string        `json:"outputDir" mapstructure:"outputDir"`
	DumpInterval time.Duration `json:"dumpInterval" mapstructure:"dumpInterval"`
}

// StorageConfig selects and configures the result storage backend
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
}

// OTelConfig holds OpenTelemetry export settings
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

// MachCorrectionConfig describes the optional linear thrust falloff with
// Mach number. A zero slope disables the correction.
type MachCorrectionConfig struct {
	Onset float64 `json:"onset" mapstructure:"onset"`
	Slope float64 `json:"slope" mapstructure:"slope"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("defaultTag", "baseline")
	viper.SetDefault("logsDir", "./aeroperflogs")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "aeroperf")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "aeroperf-metrics")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("api.serverUrl", "")
	viper.SetDefault("api.apiKey", "")

	viper.SetDefault("batch.workers", 4)
	viper.SetDefault("monitor.interval", "30s")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./reports")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.outputDir", "./reports")
	viper.SetDefault("storage.sqlite.dumpInterval", "3m")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "aeroperf")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("analysis.weightKg", 0.0)
	viper.SetDefault("analysis.finalWeightKg", 0.0)
	viper.SetDefault("analysis.cruiseAltitudeM", 10000.0)
	viper.SetDefault("analysis.cruiseMach", 0.78)
	viper.SetDefault("analysis.ceilingThresholdRoc", 0.508)
	viper.SetDefault("analysis.climbStartM", 0.0)
	viper.SetDefault("analysis.climbTargetM", 10000.0)
	viper.SetDefault("analysis.climbStepM", 100.0)
	viper.SetDefault("analysis.curveAltitudeM", 10000.0)
	viper.SetDefault("analysis.curveMachMin", 0.1)
	viper.SetDefault("analysis.curveMachMax", 0.9)
	viper.SetDefault("analysis.curveSamples", 33)
	viper.SetDefault("analysis.originLat", 0.0)
	viper.SetDefault("analysis.originLon", 0.0)

	viper.SetDefault("aircraft.throttle", 1.0)
	viper.SetDefault("aircraft.machCorrection.onset", 0.0)
	viper.SetDefault("aircraft.machCorrection.slope", 0.0)

	viper.SetConfigName("aeroperf.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStorageConfig returns the storage backend configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			OutputDir:    viper.GetString("storage.sqlite.outputDir"),
			DumpInterval: viper.GetDuration("storage.sqlite.dumpInterval"),
		},
	}
}

// GetOTelConfig returns the OpenTelemetry export configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetAircraftConfig decodes the aircraft section into an engine
// configuration. The Mach correction closure is built from the
// machCorrection subsection, so it cannot be decoded directly.
func GetAircraftConfig() (core.AircraftConfig, error) {
	var cfg core.AircraftConfig
	if err := viper.UnmarshalKey("aircraft", &cfg); err != nil {
		return core.AircraftConfig{}, fmt.Errorf("error decoding aircraft config: %v", err)
	}

	var mc MachCorrectionConfig
	if err := viper.UnmarshalKey("aircraft.machCorrection", &mc); err != nil {
		return core.AircraftConfig{}, fmt.Errorf("error decoding mach correction config: %v", err)
	}
	if mc.Slope != 0 {
		cfg.MachCorrection = core.LinearMachCorrection(mc.Onset, mc.Slope)
	}

	if err := cfg.Validate(); err != nil {
		return core.AircraftConfig{}, err
	}
	return cfg, nil
}

// GetReportRequest assembles a run request from the analysis section. The
// weights default to the aircraft mass when unset.
func GetReportRequest(aircraftMassKg float64) core.ReportRequest {
	req := core.ReportRequest{
		AircraftName:        viper.GetString("aircraft.name"),
		Tag:                 viper.GetString("defaultTag"),
		WeightKg:            viper.GetFloat64("analysis.weightKg"),
		FinalWeightKg:       viper.GetFloat64("analysis.finalWeightKg"),
		CruiseAltitudeM:     viper.GetFloat64("analysis.cruiseAltitudeM"),
		CruiseMach:          viper.GetFloat64("analysis.cruiseMach"),
		CeilingThresholdROC: viper.GetFloat64("analysis.ceilingThresholdRoc"),
		ClimbStartM:         viper.GetFloat64("analysis.climbStartM"),
		ClimbTargetM:        viper.GetFloat64("analysis.climbTargetM"),
		ClimbStepM:          viper.GetFloat64("analysis.climbStepM"),
		CurveAltitudeM:      viper.GetFloat64("analysis.curveAltitudeM"),
		CurveMachMin:        viper.GetFloat64("analysis.curveMachMin"),
		CurveMachMax:        viper.GetFloat64("analysis.curveMachMax"),
		CurveSamples:        viper.GetInt("analysis.curveSamples"),
		OriginLat:           viper.GetFloat64("analysis.originLat"),
		OriginLon:           viper.GetFloat64("analysis.originLon"),
	}
	if req.WeightKg <= 0 {
		req.WeightKg = aircraftMassKg
	}
	if req.FinalWeightKg <= 0 {
		// assume 20% of the start weight burned when no final weight is given
		req.FinalWeightKg = 0.8 * req.WeightKg
	}
	return req
}
