package main

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aeroperf/aeroperf/internal/config"
	"github.com/aeroperf/aeroperf/internal/database"
	"github.com/aeroperf/aeroperf/internal/influx"
	"github.com/aeroperf/aeroperf/internal/model"
	"github.com/aeroperf/aeroperf/internal/storage"
)

// initStorage creates the configured storage backend and, when enabled,
// the InfluxDB manager. The influx manager is nil when disabled.
func initStorage() (storage.Backend, *influx.Manager, error) {
	storageCfg := config.GetStorageConfig()

	backend, err := storage.NewBackend(storageCfg, EngineVersion, SubsysLogger)
	if err != nil {
		Logger.Error("Failed to create storage backend", "error", err)
		return nil, nil, err
	}
	if err := backend.Init(); err != nil {
		Logger.Error("Failed to initialize storage backend", "error", err)
		return nil, nil, err
	}
	Logger.Info("Storage backend initialized", "type", storageCfg.Type)

	var influxManager *influx.Manager
	if viper.GetBool("influx.enabled") {
		backupPath := filepath.Join(viper.GetString("logsDir"),
			fmt.Sprintf("influx_backup_%s.lp.gz", SessionStartTime.Format("20060102_150405")))
		influxManager = influx.NewManager(SubsysLogger, backupPath)
		if err := influxManager.Connect(); err != nil {
			Logger.Error("Failed to connect to InfluxDB", "error", err)
			influxManager = nil
		}
	}

	return backend, influxManager, nil
}

// exportBackups re-exports stored analysis runs from sqlite backup
// databases as gzipped JSON files, one per run, next to each database.
func exportBackups(paths []string) error {
	if len(paths) == 0 {
		found, err := database.GetBackupDBPaths(config.GetStorageConfig().SQLite.OutputDir)
		if err != nil {
			return err
		}
		paths = found
	}
	if len(paths) == 0 {
		return errors.New("no backup databases found")
	}

	manager := database.NewManager(SubsysLogger)
	for _, path := range paths {
		if err := exportBackupDB(manager, path); err != nil {
			return fmt.Errorf("export %s: %w", path, err)
		}
	}
	return nil
}

func exportBackupDB(manager *database.Manager, path string) error {
	db, err := manager.GetSqliteDB(path)
	if err != nil {
		return err
	}

	var runs []model.AnalysisRun
	if err := db.Model(&model.AnalysisRun{}).Order("id").Find(&runs).Error; err != nil {
		return fmt.Errorf("error getting runs: %w", err)
	}
	Logger.Info("Exporting runs from backup database", "path", path, "runs", len(runs))

	for _, run := range runs {
		export := make(map[string]any)

		var aircraft model.Aircraft
		if err := db.Model(&model.Aircraft{}).Where("id = ?", run.AircraftID).First(&aircraft).Error; err != nil {
			return fmt.Errorf("error getting aircraft for run %d: %w", run.ID, err)
		}
		export["aircraft"] = aircraft
		export["tag"] = run.Tag
		export["startTime"] = run.StartTime.Format(time.RFC3339)
		export["engineVersion"] = run.EngineVersion

		var summary model.PerformanceSummary
		err = db.Model(&model.PerformanceSummary{}).Where("run_id = ?", run.ID).First(&summary).Error
		if err == nil {
			export["summary"] = summary
		}

		var climb []model.ClimbSample
		if err := db.Model(&model.ClimbSample{}).Where("run_id = ?", run.ID).Order("seq").Find(&climb).Error; err != nil {
			return fmt.Errorf("error getting climb samples for run %d: %w", run.ID, err)
		}
		export["climbProfile"] = climb

		var curve []model.ThrustSample
		if err := db.Model(&model.ThrustSample{}).Where("run_id = ?", run.ID).Order("seq").Find(&curve).Error; err != nil {
			return fmt.Errorf("error getting thrust samples for run %d: %w", run.ID, err)
		}
		export["thrustCurve"] = curve

		outPath := exportFilePath(path, run)
		if err := writeGzipJSON(outPath, export); err != nil {
			return err
		}
		Logger.Info("Exported run", "run", run.ID, "file", outPath)
	}

	return nil
}

func exportFilePath(dbPath string, run model.AnalysisRun) string {
	base := strings.TrimSuffix(filepath.Base(dbPath), filepath.Ext(dbPath))
	name := fmt.Sprintf("%s_run%d_%s.json.gz", base, run.ID, run.Tag)
	return filepath.Join(filepath.Dir(dbPath), name)
}

func writeGzipJSON(path string, data any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating export file: %w", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	enc := json.NewEncoder(gz)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		gz.Close()
		return fmt.Errorf("error encoding export: %w", err)
	}
	return gz.Close()
}
