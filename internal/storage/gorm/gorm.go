// Package gormstorage implements the storage.Backend interface on top of a
// GORM connection, with internal queues and a background DB writer goroutine
// for the high-volume sample tables.
package gormstorage

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aeroperf/aeroperf/internal/database"
	"github.com/aeroperf/aeroperf/internal/geo"
	"github.com/aeroperf/aeroperf/internal/model"
	"github.com/aeroperf/aeroperf/internal/queue"
	"github.com/aeroperf/aeroperf/pkg/core"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB            *gorm.DB
	Logger        zerolog.Logger
	EngineVersion string

	// SQLiteSchema selects the schema subset without the geometry column.
	SQLiteSchema bool
}

// queues holds the write queues for batch DB insertion.
type queues struct {
	ClimbSamples  *queue.Queue[model.ClimbSample]
	ThrustSamples *queue.Queue[model.ThrustSample]
}

func newQueues() *queues {
	return &queues{
		ClimbSamples:  queue.New[model.ClimbSample](),
		ThrustSamples: queue.New[model.ThrustSample](),
	}
}

// Backend implements storage.Backend using GORM with queue-based batch writes.
type Backend struct {
	deps     Dependencies
	queues   *queues
	runID    atomic.Uint64
	stopChan chan struct{}
	dbReady  bool
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{
		deps: deps,
	}
}

// Init runs schema migration and starts the DB writer goroutine.
func (b *Backend) Init() error {
	b.queues = newQueues()
	b.stopChan = make(chan struct{})

	if b.deps.DB == nil {
		return fmt.Errorf("no database connection provided")
	}

	if err := b.setupDB(); err != nil {
		return fmt.Errorf("failed to setup DB: %w", err)
	}
	b.dbReady = true

	b.startDBWriter()
	return nil
}

// setupDB migrates tables and creates the service info row if missing.
func (b *Backend) setupDB() error {
	return database.Migrate(b.deps.DB, b.deps.Logger, b.deps.EngineVersion, b.deps.SQLiteSchema)
}

// Close stops the DB writer goroutine after a final queue flush.
func (b *Backend) Close() error {
	if b.stopChan != nil {
		close(b.stopChan)
	}
	b.flushQueues()
	return nil
}

// StartRun performs aircraft get-or-create and run create in the DB.
func (b *Backend) StartRun(aircraftName string, cfg core.AircraftConfig, req core.ReportRequest) error {
	db := b.deps.DB

	aircraft, err := model.AircraftFromConfig(aircraftName, cfg)
	if err != nil {
		return fmt.Errorf("failed to build aircraft row: %w", err)
	}

	// Aircraft get-or-insert by name
	if err := db.Where(model.Aircraft{Name: aircraftName}).FirstOrCreate(&aircraft).Error; err != nil {
		return fmt.Errorf("failed to get or insert aircraft: %w", err)
	}

	run := model.RunFromRequest(aircraft.ID, req, b.deps.EngineVersion, time.Now().UTC())
	if err := db.Create(&run).Error; err != nil {
		return fmt.Errorf("failed to insert new run: %w", err)
	}

	b.runID.Store(uint64(run.ID))
	return nil
}

// SetRunID sets the current run ID for the DB writer (used by CLI tools).
func (b *Backend) SetRunID(id uint) {
	b.runID.Store(uint64(id))
}

// EndRun drains the sample queues so the run is fully persisted.
func (b *Backend) EndRun() error {
	b.flushQueues()
	return nil
}

// RecordSummary inserts the run summary synchronously. Summaries are one
// row per run and need no batching.
func (b *Backend) RecordSummary(report core.PerformanceReport) error {
	summary := model.SummaryFromReport(uint(b.runID.Load()), report)
	if err := b.deps.DB.Create(&summary).Error; err != nil {
		return fmt.Errorf("failed to insert summary: %w", err)
	}
	return nil
}

// RecordClimbProfile converts and queues climb profile samples.
func (b *Backend) RecordClimbProfile(profile []core.ClimbProfilePoint) error {
	samples := model.ClimbSamplesFromProfile(uint(b.runID.Load()), profile)
	b.queues.ClimbSamples.Push(samples...)
	return nil
}

// RecordThrustCurve converts and queues thrust curve samples.
func (b *Backend) RecordThrustCurve(altitudeM float64, curve []core.ThrustCurvePoint) error {
	samples := model.ThrustSamplesFromCurve(uint(b.runID.Load()), altitudeM, curve)
	b.queues.ThrustSamples.Push(samples...)
	return nil
}

// RecordRangeRing inserts the ring synchronously. Skipped on the SQLite
// schema, which has no geometry column.
func (b *Backend) RecordRangeRing(ring *geo.RangeRing) error {
	if b.deps.SQLiteSchema || ring == nil {
		return nil
	}

	row := model.RangeRing{
		RunID:     uint(b.runID.Load()),
		OriginLat: ring.OriginLat,
		OriginLon: ring.OriginLon,
		RadiusM:   ring.RadiusM,
		Ring:      ring.Ring,
	}
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert range ring: %w", err)
	}
	return nil
}

// writeQueue writes all items from a queue to the database in a transaction.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], name string, log zerolog.Logger, prepare func([]T)) {
	if q.Empty() {
		return
	}

	tx := db.Begin()
	items := q.Drain()
	if prepare != nil {
		prepare(items)
	}
	if err := tx.Create(&items).Error; err != nil {
		log.Error().Err(err).Str("queue", name).Msg("Error writing queue")
		tx.Rollback()
		q.Push(items...)
		return
	}

	tx.Commit()
}

// flushQueues drains both sample queues once, stamping the current run ID.
func (b *Backend) flushQueues() {
	runID := uint(b.runID.Load())

	writeQueue(b.deps.DB, b.queues.ClimbSamples, "climb samples", b.deps.Logger, func(items []model.ClimbSample) {
		for i := range items {
			if items[i].RunID == 0 {
				items[i].RunID = runID
			}
		}
	})
	writeQueue(b.deps.DB, b.queues.ThrustSamples, "thrust samples", b.deps.Logger, func(items []model.ThrustSample) {
		for i := range items {
			if items[i].RunID == 0 {
				items[i].RunID = runID
			}
		}
	})
}

// startDBWriter starts the background goroutine that periodically drains
// queues into the DB.
func (b *Backend) startDBWriter() {
	go func() {
		for {
			select {
			case <-b.stopChan:
				return
			default:
			}

			if !b.dbReady {
				time.Sleep(1 * time.Second)
				continue
			}

			b.flushQueues()
			time.Sleep(2 * time.Second)
		}
	}()
}
