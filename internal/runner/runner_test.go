package runner

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/aeroperf/aeroperf/internal/config"
	"github.com/aeroperf/aeroperf/internal/library"
	"github.com/aeroperf/aeroperf/internal/logging"
	"github.com/aeroperf/aeroperf/internal/storage/memory"
	"github.com/aeroperf/aeroperf/pkg/core"
	"github.com/aeroperf/aeroperf/pkg/perf"
)

func testLogger() Logger {
	return logging.NewRunnerLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testRequest(name string) core.ReportRequest {
	return core.ReportRequest{
		AircraftName:        name,
		Tag:                 "test",
		WeightKg:            10000,
		FinalWeightKg:       8000,
		CruiseAltitudeM:     9000,
		CruiseMach:          0.7,
		CeilingThresholdROC: 2.0,
		ClimbStartM:         0,
		ClimbTargetM:        9000,
		ClimbStepM:          500,
		CurveAltitudeM:      9000,
		CurveMachMin:        0.3,
		CurveMachMax:        0.8,
		CurveSamples:        6,
		OriginLat:           43.6,
		OriginLon:           -79.4,
	}
}

func newTestRunner(t *testing.T) (*Runner, *memory.Backend) {
	t.Helper()

	backend := memory.New(config.MemoryConfig{OutputDir: t.TempDir()})
	require.NoError(t, backend.Init())

	r, err := New(Dependencies{
		Backend: backend,
		Meter:   noop.NewMeterProvider().Meter("test"),
		Logger:  testLogger(),
	})
	require.NoError(t, err)
	return r, backend
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Dependencies{Logger: testLogger()})
	assert.ErrorContains(t, err, "storage backend")

	backend := memory.New(config.MemoryConfig{OutputDir: t.TempDir()})
	_, err = New(Dependencies{Backend: backend})
	assert.ErrorContains(t, err, "logger")
}

func TestRunReport_FullSuite(t *testing.T) {
	cfg, err := library.Get("tutor-jet")
	require.NoError(t, err)

	r, backend := newTestRunner(t)
	req := testRequest("tutor-jet")

	report, err := r.RunReport(context.Background(), cfg, req)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Empty(t, report.Notes)
	assert.Greater(t, report.ServiceCeilingM, req.ClimbTargetM)
	assert.Less(t, report.ServiceCeilingM, perf.MaxModelAltitudeM)
	assert.Greater(t, report.TimeToClimbS, 0.0)
	assert.Greater(t, report.RangeM, 0.0)
	assert.Greater(t, report.EnduranceS, 0.0)
	assert.Len(t, report.ThrustCurve, req.CurveSamples)
	assert.NotEmpty(t, report.ClimbProfile)
	assert.InDelta(t, req.CruiseMach, report.Cruise.Condition.Mach, 1e-12)

	// EndRun exported a JSON report
	path := backend.GetExportedFilePath()
	require.NotEmpty(t, path)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var export memory.ReportExport
	require.NoError(t, json.Unmarshal(raw, &export))
	assert.Equal(t, "tutor-jet", export.AircraftName)
	require.NotNil(t, export.Summary)
	assert.InDelta(t, report.RangeM, export.Summary.RangeM, 1e-9)
	require.NotNil(t, export.RangeRing)
	assert.InDelta(t, report.RangeM, export.RangeRing.RadiusM, 1e-9)
}

func TestRunReport_CeilingAboveModelLimit(t *testing.T) {
	cfg, err := library.Get("tutor-jet")
	require.NoError(t, err)
	cfg.SeaLevelThrustN = 500000
	cfg.ThrustLapseExponent = 0.5

	r, _ := newTestRunner(t)

	report, err := r.RunReport(context.Background(), cfg, testRequest("overpowered"))
	require.NoError(t, err)

	assert.InDelta(t, perf.MaxModelAltitudeM, report.ServiceCeilingM, 1e-9)
	require.Len(t, report.Notes, 1)
	assert.Contains(t, report.Notes[0], "service ceiling")
}

func TestRunReport_ClimbTargetAboveCeiling(t *testing.T) {
	cfg, err := library.Get("tutor-jet")
	require.NoError(t, err)
	cfg.SeaLevelThrustN = 12000

	r, _ := newTestRunner(t)
	req := testRequest("underpowered")
	req.ClimbTargetM = 15000
	req.CruiseAltitudeM = 3000
	req.CurveAltitudeM = 3000

	report, err := r.RunReport(context.Background(), cfg, req)
	require.NoError(t, err)

	// the climb stalls out below the target but the partial profile survives
	assert.NotEmpty(t, report.ClimbProfile)
	last := report.ClimbProfile[len(report.ClimbProfile)-1]
	assert.Less(t, last.AltitudeM, req.ClimbTargetM)
	require.NotEmpty(t, report.Notes)
	assert.Contains(t, report.Notes[len(report.Notes)-1], "climb stopped")
}

func TestRunReport_InvalidConfig(t *testing.T) {
	cfg, err := library.Get("tutor-jet")
	require.NoError(t, err)
	cfg.MassKg = 0

	r, _ := newTestRunner(t)

	_, err = r.RunReport(context.Background(), cfg, testRequest("broken"))
	require.Error(t, err)

	var derr *core.DomainError
	assert.ErrorAs(t, err, &derr)
}
