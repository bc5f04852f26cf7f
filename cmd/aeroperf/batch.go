package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/viper"

	"github.com/aeroperf/aeroperf/internal/api"
	"github.com/aeroperf/aeroperf/internal/config"
	"github.com/aeroperf/aeroperf/internal/library"
	"github.com/aeroperf/aeroperf/internal/logging"
	"github.com/aeroperf/aeroperf/internal/monitor"
	"github.com/aeroperf/aeroperf/internal/runner"
	"github.com/aeroperf/aeroperf/internal/storage/memory"
	"github.com/aeroperf/aeroperf/internal/util"
	"github.com/aeroperf/aeroperf/internal/worker"
	"github.com/aeroperf/aeroperf/pkg/core"
)

// runBatch analyzes every built-in preset through the worker pool. Each
// job writes its own JSON report through a dedicated memory backend;
// database and influx sinks are meant for single tracked runs, not bulk
// preset sweeps.
func runBatch() error {
	storageCfg := config.GetStorageConfig()

	jobs := make([]worker.Job, 0, len(library.Names()))
	for _, name := range library.Names() {
		cfg, err := library.Get(name)
		if err != nil {
			return err
		}
		req := config.GetReportRequest(cfg.MassKg)
		req.AircraftName = name
		jobs = append(jobs, worker.Job{Name: name, Config: cfg, Request: req})
	}

	pool, err := worker.NewManager(worker.Dependencies{
		Run:     batchRunFunc(storageCfg.Memory),
		Logger:  logging.NewRunnerLogger(Logger),
		Workers: viper.GetInt("batch.workers"),
	})
	if err != nil {
		return err
	}

	mon := monitor.NewService(monitor.Dependencies{
		Logger:     Logger,
		RunContext: RunContext,
		Stats:      pool.Stats,
		Interval:   viper.GetDuration("monitor.interval"),
	})
	mon.Start()
	defer mon.Stop()

	results := pool.Process(context.Background(), jobs)
	printBatchResults(results)

	completed, failed := pool.Stats()
	Logger.Info("Batch complete", "completed", completed, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(jobs))
	}
	return nil
}

// batchRunFunc builds the per-job run function. Every job gets a fresh
// memory backend so concurrent exports cannot interleave.
func batchRunFunc(memCfg config.MemoryConfig) worker.RunFunc {
	return func(ctx context.Context, job worker.Job) (*core.PerformanceReport, error) {
		backend := memory.New(memCfg)
		if err := backend.Init(); err != nil {
			return nil, err
		}
		defer backend.Close()

		r, err := runner.New(runner.Dependencies{
			Backend: backend,
			Meter:   OTelProvider.Meter(ServiceName),
			Logger:  logging.NewRunnerLogger(Logger),
		})
		if err != nil {
			return nil, err
		}
		return r.RunReport(ctx, job.Config, job.Request)
	}
}

func printBatchResults(results []worker.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Aircraft\tCeiling (m)\tClimb (s)\tRange (km)\tEndurance (h)\tStatus")
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t%v\n", res.Job.Name, res.Err)
			continue
		}
		status := "ok"
		if len(res.Report.Notes) > 0 {
			status = strings.Join(res.Report.Notes, "; ")
		}
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.1f\t%.2f\t%s\n",
			res.Job.Name,
			res.Report.ServiceCeilingM,
			res.Report.TimeToClimbS,
			util.MetersToKM(res.Report.RangeM),
			util.SecondsToHours(res.Report.EnduranceS),
			status,
		)
	}
	w.Flush()
}

// publishReports uploads exported report files to the configured results
// hub. With no arguments it publishes everything in the memory backend's
// output directory.
func publishReports(paths []string) error {
	serverURL := viper.GetString("api.serverUrl")
	if serverURL == "" {
		return fmt.Errorf("api.serverUrl is not configured")
	}

	if len(paths) == 0 {
		outputDir := config.GetStorageConfig().Memory.OutputDir
		for _, pattern := range []string{"*.json", "*.json.gz"} {
			found, err := filepath.Glob(filepath.Join(outputDir, pattern))
			if err != nil {
				return err
			}
			paths = append(paths, found...)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no report files to publish")
	}

	client := api.New(serverURL, viper.GetString("api.apiKey"))
	if err := client.Healthcheck(); err != nil {
		return fmt.Errorf("results hub unreachable: %w", err)
	}

	for _, path := range paths {
		meta := api.UploadMetadata{
			AircraftName:  aircraftNameFromExport(path),
			Tag:           viper.GetString("defaultTag"),
			EngineVersion: EngineVersion,
		}
		if err := client.Upload(path, meta); err != nil {
			return fmt.Errorf("upload %s: %w", path, err)
		}
		Logger.Info("Published report", "file", path)
	}
	return nil
}

// aircraftNameFromExport recovers the aircraft name from an export
// filename of the form <name>_<date>_<time>.json[.gz].
func aircraftNameFromExport(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".json")
	parts := strings.Split(base, "_")
	if len(parts) > 2 {
		return strings.Join(parts[:len(parts)-2], "_")
	}
	return base
}
