package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aeroperf.cfg.json"), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"defaultTag": "ferry",
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, "ferry", viper.GetString("defaultTag"))
	assert.Equal(t, "10.0.0.1", viper.GetString("db.host"))
	assert.Equal(t, "5433", viper.GetString("db.port"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "baseline", viper.GetString("defaultTag"))
	assert.Equal(t, "./aeroperflogs", viper.GetString("logsDir"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "5432", viper.GetString("db.port"))
	assert.Equal(t, "postgres", viper.GetString("db.username"))
	assert.Equal(t, "aeroperf", viper.GetString("db.database"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", viper.GetString("graylog.address"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, "8086", viper.GetString("influx.port"))
	assert.Equal(t, 4, viper.GetInt("batch.workers"))
	assert.Equal(t, "30s", viper.GetString("monitor.interval"))
	assert.Equal(t, "", viper.GetString("api.serverUrl"))
	assert.Equal(t, "memory", viper.GetString("storage.type"))
	assert.Equal(t, "./reports", viper.GetString("storage.memory.outputDir"))
	assert.Equal(t, true, viper.GetBool("storage.memory.compressOutput"))
	assert.Equal(t, "3m", viper.GetString("storage.sqlite.dumpInterval"))
	assert.Equal(t, false, viper.GetBool("otel.enabled"))
	assert.Equal(t, "aeroperf", viper.GetString("otel.serviceName"))
	assert.Equal(t, "5s", viper.GetString("otel.batchTimeout"))
	assert.Equal(t, "", viper.GetString("otel.endpoint"))
	assert.Equal(t, true, viper.GetBool("otel.insecure"))
	assert.Equal(t, 0.508, viper.GetFloat64("analysis.ceilingThresholdRoc"))
	assert.Equal(t, 100.0, viper.GetFloat64("analysis.climbStepM"))
	assert.Equal(t, 33, viper.GetInt("analysis.curveSamples"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	assert.Equal(t, "testValue", GetString("testKey"))
}

func TestGetInt(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testInt", 42)
	assert.Equal(t, 42, GetInt("testInt"))
}

func TestGetBool(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testBool", true)
	assert.Equal(t, true, GetBool("testBool"))
}

func TestGetStorageConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{}`)
	require.NoError(t, Load(dir))

	cfg := GetStorageConfig()
	assert.Equal(t, "memory", cfg.Type)
	assert.Equal(t, "./reports", cfg.Memory.OutputDir)
	assert.Equal(t, true, cfg.Memory.CompressOutput)
	assert.Equal(t, 3*time.Minute, cfg.SQLite.DumpInterval)
}

func TestGetStorageConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"storage": {
			"type": "sqlite",
			"memory": { "outputDir": "/tmp/out", "compressOutput": false },
			"sqlite": { "dumpInterval": "10m" }
		}
	}`)
	require.NoError(t, Load(dir))

	sc := GetStorageConfig()
	assert.Equal(t, "sqlite", sc.Type)
	assert.Equal(t, "/tmp/out", sc.Memory.OutputDir)
	assert.Equal(t, false, sc.Memory.CompressOutput)
	assert.Equal(t, 10*time.Minute, sc.SQLite.DumpInterval)
}

func TestGetOTelConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"otel": {
			"enabled": true,
			"serviceName": "my-service",
			"batchTimeout": "30s",
			"endpoint": "localhost:4317",
			"insecure": false
		}
	}`)
	require.NoError(t, Load(dir))

	oc := GetOTelConfig()
	assert.Equal(t, true, oc.Enabled)
	assert.Equal(t, "my-service", oc.ServiceName)
	assert.Equal(t, 30*time.Second, oc.BatchTimeout)
	assert.Equal(t, "localhost:4317", oc.Endpoint)
	assert.Equal(t, false, oc.Insecure)
}

func TestGetAircraftConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"aircraft": {
			"name": "test-jet",
			"massKg": 10000,
			"wingAreaM2": 40,
			"cd0": 0.02,
			"inducedDragK": 0.045,
			"seaLevelThrustN": 50000,
			"thrustLapseExponent": 0.8,
			"sfc": 0.00002,
			"machCorrection": { "onset": 0.0, "slope": 0.25 }
		}
	}`)
	require.NoError(t, Load(dir))

	cfg, err := GetAircraftConfig()
	require.NoError(t, err)

	assert.Equal(t, 10000.0, cfg.MassKg)
	assert.Equal(t, 40.0, cfg.WingAreaM2)
	assert.Equal(t, 1.0, cfg.Throttle) // default
	require.NotNil(t, cfg.MachCorrection)
	assert.InDelta(t, 0.8, cfg.MachFactor(0.8), 1e-12)
}

func TestGetAircraftConfig_Invalid(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"aircraft": { "massKg": -5, "wingAreaM2": 40, "sfc": 0.00002 }
	}`)
	require.NoError(t, Load(dir))

	_, err := GetAircraftConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "massKg")
}

func TestGetReportRequest_WeightFallback(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{}`)
	require.NoError(t, Load(dir))

	req := GetReportRequest(10000)
	assert.Equal(t, 10000.0, req.WeightKg)
	assert.Equal(t, 8000.0, req.FinalWeightKg)
	assert.Equal(t, "baseline", req.Tag)
	assert.Equal(t, 0.508, req.CeilingThresholdROC)
}
