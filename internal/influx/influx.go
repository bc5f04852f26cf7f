package influx

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/aeroperf/aeroperf/pkg/core"
)

// Bucket names for analysis series.
const (
	BucketClimbProfile = "climb_profile"
	BucketThrustCurve  = "thrust_curve"
	BucketSummary      = "performance_summary"
)

// DefaultBucketNames are the InfluxDB buckets written by the engine.
var DefaultBucketNames = []string{
	BucketClimbProfile,
	BucketThrustCurve,
	BucketSummary,
}

// Manager handles InfluxDB connections and writes.
type Manager struct {
	Client       influxdb2.Client
	Writers      map[string]influxdb2_api.WriteAPI
	BackupWriter *gzip.Writer
	IsValid      bool
	BucketNames  []string
	Logger       zerolog.Logger
	BackupPath   string
}

// NewManager creates a new InfluxDB manager.
func NewManager(log zerolog.Logger, backupPath string) *Manager {
	return &Manager{
		Writers:     make(map[string]influxdb2_api.WriteAPI),
		IsValid:     false,
		BucketNames: DefaultBucketNames,
		Logger:      log,
		BackupPath:  backupPath,
	}
}

// Connect establishes a connection to InfluxDB.
func (m *Manager) Connect() error {
	if !viper.GetBool("influx.enabled") {
		return errors.New("influxdb.Enabled is false")
	}

	m.Client = influxdb2.NewClientWithOptions(
		fmt.Sprintf(
			"%s://%s:%s",
			viper.GetString("influx.protocol"),
			viper.GetString("influx.host"),
			viper.GetString("influx.port"),
		),
		viper.GetString("influx.token"),
		influxdb2.DefaultOptions().
			SetBatchSize(2500).
			SetFlushInterval(1000),
	)

	// validate client connection health
	running, err := m.Client.Ping(context.Background())

	if err != nil || !running {
		m.IsValid = false
		// create backup writer
		if m.BackupWriter == nil {
			m.Logger.Info().Str("backupPath", m.BackupPath).
				Msg("Failed to initialize InfluxDB client, writing to backup file")

			file, err := os.OpenFile(m.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				return fmt.Errorf("error creating backup file: %v", err)
			}
			m.BackupWriter = gzip.NewWriter(file)
		}
	} else {
		m.IsValid = true
	}

	if m.IsValid {
		err = m.setupOrganizationAndBuckets()
		if err != nil {
			return err
		}
		m.CreateWriters()
		m.Logger.Info().Msg("InfluxDB client initialized")
	} else {
		m.Logger.Warn().Msg("InfluxDB client failed to initialize, using backup writer")
	}

	return nil
}

func (m *Manager) setupOrganizationAndBuckets() error {
	ctx := context.Background()
	orgName := viper.GetString("influx.org")

	// ensure org exists
	_, err := m.Client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		m.Logger.Info().Str("org", orgName).Msg("Organization not found, creating")
		_, err = m.Client.OrganizationsAPI().CreateOrganizationWithName(ctx, orgName)
		if err != nil {
			m.Logger.Error().Err(err).Str("org", orgName).Msg("Error creating organization")
			return err
		}
	}

	// get influxOrg
	influxOrg, err := m.Client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		m.Logger.Error().Err(err).Str("org", orgName).Msg("Error getting organization")
		return err
	}

	// ensure buckets exist with 90 day retention
	for _, bucket := range m.BucketNames {
		_, err = m.Client.BucketsAPI().FindBucketByName(ctx, bucket)
		if err != nil {
			m.Logger.Info().Str("bucket", bucket).Msg("Bucket not found, creating")

			rule := domain.RetentionRuleTypeExpire
			_, err = m.Client.BucketsAPI().CreateBucketWithName(ctx, influxOrg, bucket, domain.RetentionRule{
				Type:         &rule,
				EverySeconds: 60 * 60 * 24 * 90, // 90 days
			})
			if err != nil {
				m.Logger.Error().Err(err).Str("bucket", bucket).Msg("Error creating bucket")
				return err
			}
		}
	}

	return nil
}

// CreateWriters creates write APIs for all configured buckets.
func (m *Manager) CreateWriters() {
	orgName := viper.GetString("influx.org")
	for _, bucket := range m.BucketNames {
		m.Logger.Trace().Str("bucket", bucket).Msg("Creating InfluxDB writer")
		m.Writers[bucket] = m.Client.WriteAPI(orgName, bucket)

		errorsCh := m.Writers[bucket].Errors()
		go func(bucketName string, errorsCh <-chan error) {
			for writeErr := range errorsCh {
				m.Logger.Error().Err(writeErr).Str("bucket", bucketName).
					Msg("Error sending data to InfluxDB")
			}
		}(bucket, errorsCh)

		m.Logger.Trace().Str("bucket", bucket).Msg("InfluxDB writer created")
	}

	m.Logger.Debug().Msg("InfluxDB writers initialized")
}

// WritePoint writes a point to InfluxDB or backup file.
func (m *Manager) WritePoint(ctx context.Context, bucket string, point *influxdb2_write.Point) error {
	if m.IsValid {
		if _, ok := m.Writers[bucket]; !ok {
			return fmt.Errorf("influxDB bucket '%s' not registered", bucket)
		}
		m.Writers[bucket].WritePoint(point)
	} else {
		if m.BackupWriter == nil {
			return fmt.Errorf("influxDB client not initialized and backup writer not available")
		}

		lineProtocol := influxdb2_write.PointToLineProtocol(point, time.Duration(1*time.Nanosecond))
		_, err := m.BackupWriter.Write([]byte(lineProtocol + "\n"))
		if err != nil {
			return fmt.Errorf("error writing to InfluxDB backup file: %s", err)
		}
	}

	return nil
}

// ClimbProfilePoints builds one point per climb profile sample. The sample
// time offsets are folded into the point timestamps so the profile plots as
// a time series.
func ClimbProfilePoints(aircraftName, tag string, start time.Time, profile []core.ClimbProfilePoint) []*influxdb2_write.Point {
	points := make([]*influxdb2_write.Point, 0, len(profile))
	for _, sample := range profile {
		p := influxdb2_write.NewPointWithMeasurement("climb").
			AddTag("aircraft", aircraftName).
			AddTag("tag", tag).
			AddField("altitude_m", sample.AltitudeM).
			AddField("roc_ms", sample.RateOfClimbMS).
			AddField("velocity_ms", sample.VelocityMS).
			SetTime(start.Add(time.Duration(sample.TimeS * float64(time.Second))))
		points = append(points, p)
	}
	return points
}

// ThrustCurvePoints builds one point per thrust curve sample. The samples all
// share one wall-clock instant, and InfluxDB keys a point on
// measurement+tagset+timestamp, so each sample gets a mach tag to keep the
// series from overwriting itself.
func ThrustCurvePoints(aircraftName, tag string, ts time.Time, altitudeM float64, curve []core.ThrustCurvePoint) []*influxdb2_write.Point {
	points := make([]*influxdb2_write.Point, 0, len(curve))
	for _, sample := range curve {
		p := influxdb2_write.NewPointWithMeasurement("thrust").
			AddTag("aircraft", aircraftName).
			AddTag("tag", tag).
			AddTag("mach", strconv.FormatFloat(sample.Mach, 'f', 3, 64)).
			AddField("altitude_m", altitudeM).
			AddField("mach", sample.Mach).
			AddField("thrust_n", sample.ThrustN).
			SetTime(ts)
		points = append(points, p)
	}
	return points
}

// SummaryPoint builds the single scalar-results point for a run.
func SummaryPoint(aircraftName, tag string, ts time.Time, report core.PerformanceReport) *influxdb2_write.Point {
	return influxdb2_write.NewPointWithMeasurement("summary").
		AddTag("aircraft", aircraftName).
		AddTag("tag", tag).
		AddField("service_ceiling_m", report.ServiceCeilingM).
		AddField("time_to_climb_s", report.TimeToClimbS).
		AddField("range_m", report.RangeM).
		AddField("endurance_s", report.EnduranceS).
		AddField("lift_to_drag", report.Cruise.LiftToDrag).
		AddField("thrust_required_n", report.Cruise.ThrustRequiredN).
		AddField("thrust_available_n", report.Cruise.ThrustAvailableN).
		AddField("fuel_flow_kgs", report.Cruise.FuelFlowKgS).
		SetTime(ts)
}

// Close flushes writers and closes the client or backup writer.
func (m *Manager) Close() {
	if m.IsValid && m.Client != nil {
		for _, w := range m.Writers {
			w.Flush()
		}
		m.Client.Close()
	}
	if m.BackupWriter != nil {
		m.BackupWriter.Close()
	}
}
