package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aeroperf/aeroperf/internal/config"
	"github.com/aeroperf/aeroperf/internal/logging"
	intOtel "github.com/aeroperf/aeroperf/internal/otel"
	"github.com/aeroperf/aeroperf/internal/runctx"
	"github.com/rs/zerolog"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	EngineVersion string = "0.1.0"
	BuildDate     string = "unknown"

	ServiceName string = "aeroperf"
)

// file paths
var (
	// ConfigDir is the directory searched for aeroperf.cfg.json.
	ConfigDir string

	LogFilePath string
	LogFile     *os.File
)

// global state
var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// SubsysLogger is the zerolog logger shared by the storage, database
	// and influx subsystems
	SubsysLogger zerolog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	SessionStartTime time.Time = time.Now()

	// RunContext tracks the active run tag and aircraft for log stamping
	// and status monitoring
	RunContext *runctx.Context = runctx.NewContext(SessionStartTime)
)

func main() {
	pflag.Usage = usage
	configDir := pflag.StringP("config", "c", ".", "directory containing aeroperf.cfg.json")
	aircraftName := pflag.StringP("aircraft", "a", "", "built-in aircraft preset to analyze instead of the configured one")
	tag := pflag.StringP("tag", "t", "", "tag recorded with the analysis run")
	logLevel := pflag.StringP("logLevel", "l", "", "log level override (trace|debug|info|warn|error)")
	pflag.Parse()

	ConfigDir = *configDir
	if err := config.Load(ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if *tag != "" {
		viper.Set("defaultTag", *tag)
	}
	if *logLevel != "" {
		viper.Set("logLevel", *logLevel)
	}
	RunContext.SetRun(viper.GetString("defaultTag"), "none")

	if err := initLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "logging setup failed: %v\n", err)
		os.Exit(1)
	}
	defer teardown()

	Logger.Info("Starting up...",
		"version", EngineVersion,
		"buildDate", BuildDate,
		"configDir", ConfigDir,
	)

	cmd := "report"
	args := pflag.Args()
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	if err := runCommand(cmd, args, *aircraftName); err != nil {
		Logger.Error("Command failed", "command", cmd, "error", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		teardown()
		os.Exit(1)
	}
}

// initLogging opens the session log file and wires up the slog manager,
// the OTel provider and the zerolog subsystem logger. All three share the
// same file.
func initLogging() error {
	logsDir := viper.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create logs dir: %w", err)
	}

	LogFilePath = logging.LogFilePath(logsDir, ServiceName, SessionStartTime)
	var err error
	LogFile, err = os.OpenFile(LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	otelCfg := config.GetOTelConfig()
	OTelProvider, err = intOtel.New(intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		LogWriter:    LogFile,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	})
	if err != nil {
		return fmt.Errorf("failed to set up otel: %w", err)
	}

	level := viper.GetString("logLevel")
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(LogFile, level, OTelProvider.LoggerProvider(), func() []slog.Attr {
		return []slog.Attr{slog.String("runTag", RunContext.Tag())}
	})
	Logger = SlogManager.Logger()

	graylogAddr := ""
	if viper.GetBool("graylog.enabled") {
		graylogAddr = viper.GetString("graylog.address")
	}
	SubsysLogger, err = logging.NewZerologLogger(os.Stderr, LogFile, level, graylogAddr)
	if err != nil {
		// degraded but usable; the console and file writers still work
		Logger.Error("Graylog writer unavailable", "error", err)
	}

	return nil
}

// teardown flushes telemetry and closes the log file. Safe to call twice.
func teardown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if SlogManager != nil {
		if err := SlogManager.Flush(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "log flush failed: %v\n", err)
		}
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "otel shutdown failed: %v\n", err)
		}
		OTelProvider = nil
	}
	if LogFile != nil {
		LogFile.Close()
		LogFile = nil
	}
}

func usage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] [command]

Commands:
  report              run the full analysis suite and store the results (default)
  batch               run the full suite for every built-in preset concurrently
  atmosphere <alt>..  print the standard-atmosphere state at one or more altitudes (m)
  cruise              print the steady-cruise operating point
  curve               print the thrust-vs-Mach curve
  ceiling             print the service ceiling
  climb               print the time to climb and the climb profile
  range               print the Breguet range and endurance estimates
  presets             list the built-in aircraft presets
  publish <file>...   upload exported report files to the results hub
  export <db>...      re-export stored runs from sqlite backup databases as JSON

Flags:
`, name)
	pflag.PrintDefaults()
}
