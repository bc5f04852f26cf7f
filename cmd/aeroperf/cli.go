package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/aeroperf/aeroperf/internal/config"
	"github.com/aeroperf/aeroperf/internal/library"
	"github.com/aeroperf/aeroperf/internal/logging"
	"github.com/aeroperf/aeroperf/internal/runner"
	"github.com/aeroperf/aeroperf/internal/util"
	"github.com/aeroperf/aeroperf/pkg/core"
	"github.com/aeroperf/aeroperf/pkg/perf"
)

// runCommand dispatches one CLI subcommand.
func runCommand(cmd string, args []string, presetName string) error {
	switch cmd {
	case "report":
		return runReport(presetName)
	case "batch":
		return runBatch()
	case "atmosphere":
		return printAtmosphere(args)
	case "cruise":
		return printCruise(presetName)
	case "curve":
		return printThrustCurve(presetName)
	case "ceiling":
		return printCeiling(presetName)
	case "climb":
		return printClimb(presetName)
	case "range":
		return printRange(presetName)
	case "presets":
		return printPresets()
	case "export":
		return exportBackups(args)
	case "publish":
		return publishReports(args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// resolveAircraft picks the aircraft to analyze: a built-in preset when
// one was named on the command line, otherwise the configured aircraft.
func resolveAircraft(presetName string) (core.AircraftConfig, core.ReportRequest, error) {
	if presetName != "" {
		cfg, err := library.Get(presetName)
		if err != nil {
			return core.AircraftConfig{}, core.ReportRequest{}, err
		}
		req := config.GetReportRequest(cfg.MassKg)
		req.AircraftName = presetName
		return cfg, req, nil
	}

	cfg, err := config.GetAircraftConfig()
	if err != nil {
		return core.AircraftConfig{}, core.ReportRequest{}, err
	}
	req := config.GetReportRequest(cfg.MassKg)
	if req.AircraftName == "" {
		req.AircraftName = "custom"
	}
	return cfg, req, nil
}

// runReport executes the full analysis suite and persists the results
// through the configured storage backend.
func runReport(presetName string) error {
	cfg, req, err := resolveAircraft(presetName)
	if err != nil {
		return err
	}
	RunContext.SetRun(req.Tag, req.AircraftName)

	backend, influxManager, err := initStorage()
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			Logger.Error("Failed to close storage backend", "error", err)
		}
		if influxManager != nil {
			influxManager.Close()
		}
	}()

	r, err := runner.New(runner.Dependencies{
		Backend: backend,
		Influx:  influxManager,
		Meter:   OTelProvider.Meter(ServiceName),
		Logger:  logging.NewRunnerLogger(Logger),
	})
	if err != nil {
		return err
	}

	report, err := r.RunReport(context.Background(), cfg, req)
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

func printReport(report *core.PerformanceReport) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Aircraft\t%s\n", report.Request.AircraftName)
	fmt.Fprintf(w, "Tag\t%s\n", report.Request.Tag)
	fmt.Fprintf(w, "Cruise altitude\t%.0f m\n", report.Request.CruiseAltitudeM)
	fmt.Fprintf(w, "Cruise Mach\t%.3f\n", report.Cruise.Condition.Mach)
	fmt.Fprintf(w, "Cruise TAS\t%.1f m/s\n", report.Cruise.Condition.TrueAirspeedMS)
	fmt.Fprintf(w, "Lift/drag\t%.2f\n", report.Cruise.LiftToDrag)
	fmt.Fprintf(w, "Thrust required\t%.0f N\n", report.Cruise.ThrustRequiredN)
	fmt.Fprintf(w, "Thrust available\t%.0f N\n", report.Cruise.ThrustAvailableN)
	fmt.Fprintf(w, "Service ceiling\t%.0f m (%.0f ft)\n", report.ServiceCeilingM, util.MetersToFeet(report.ServiceCeilingM))
	fmt.Fprintf(w, "Time to climb\t%.0f s\n", report.TimeToClimbS)
	fmt.Fprintf(w, "Range\t%.1f km (%.0f NM)\n", util.MetersToKM(report.RangeM), util.MetersToNM(report.RangeM))
	fmt.Fprintf(w, "Endurance\t%.2f h\n", util.SecondsToHours(report.EnduranceS))
	for _, note := range report.Notes {
		fmt.Fprintf(w, "Note\t%s\n", note)
	}
	w.Flush()
}

func printAtmosphere(args []string) error {
	if len(args) == 0 {
		return errors.New("no altitudes provided")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Altitude (m)\tTemp (K)\tPressure (Pa)\tDensity (kg/m3)\tSpeed of sound (m/s)")
	for _, arg := range args {
		alt, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid altitude %q: %w", arg, err)
		}
		atmos, err := perf.AtmosphereAt(alt)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%.0f\t%.2f\t%.1f\t%.4f\t%.1f\n",
			atmos.AltitudeM, atmos.TemperatureK, atmos.PressurePa, atmos.DensityKgM3, atmos.SpeedOfSoundMS)
	}
	return w.Flush()
}

func printCruise(presetName string) error {
	cfg, req, err := resolveAircraft(presetName)
	if err != nil {
		return err
	}

	point, err := perf.CruisePerformance(cfg, req.WeightKg, req.CruiseAltitudeM, req.CruiseMach)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Altitude\t%.0f m\n", point.Condition.AltitudeM)
	fmt.Fprintf(w, "Mach\t%.3f\n", point.Condition.Mach)
	fmt.Fprintf(w, "TAS\t%.1f m/s\n", point.Condition.TrueAirspeedMS)
	fmt.Fprintf(w, "Weight\t%.0f kg\n", point.Condition.WeightKg)
	fmt.Fprintf(w, "Lift\t%.0f N\n", point.LiftN)
	fmt.Fprintf(w, "Drag\t%.0f N\n", point.DragN)
	fmt.Fprintf(w, "Lift/drag\t%.2f\n", point.LiftToDrag)
	fmt.Fprintf(w, "Thrust required\t%.0f N\n", point.ThrustRequiredN)
	fmt.Fprintf(w, "Thrust available\t%.0f N\n", point.ThrustAvailableN)
	fmt.Fprintf(w, "Power required\t%.0f W\n", point.PowerRequiredW)
	fmt.Fprintf(w, "Fuel flow\t%.4f kg/s\n", point.FuelFlowKgS)
	fmt.Fprintf(w, "Climb margin\t%.2f m/s\n", point.RateOfClimbMS)
	return w.Flush()
}

func printThrustCurve(presetName string) error {
	cfg, req, err := resolveAircraft(presetName)
	if err != nil {
		return err
	}

	curve, err := perf.ThrustMachCurve(cfg, req.CurveAltitudeM, req.CurveMachMin, req.CurveMachMax, req.CurveSamples)
	if err != nil {
		return err
	}

	fmt.Printf("Thrust available at %.0f m:\n", req.CurveAltitudeM)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Mach\tThrust (N)")
	for _, p := range curve {
		fmt.Fprintf(w, "%.3f\t%.0f\n", p.Mach, p.ThrustN)
	}
	return w.Flush()
}

func printCeiling(presetName string) error {
	cfg, req, err := resolveAircraft(presetName)
	if err != nil {
		return err
	}

	ceiling, err := perf.ServiceCeiling(cfg, req.WeightKg, req.CeilingThresholdROC)
	if err != nil {
		var cerr *core.ConvergenceError
		if !errors.As(err, &cerr) {
			return err
		}
		fmt.Printf("Note: %s\n", cerr.Reason)
	}
	fmt.Printf("Service ceiling at %.0f kg (ROC threshold %.3f m/s): %.0f m (%.0f ft)\n",
		req.WeightKg, req.CeilingThresholdROC, ceiling, util.MetersToFeet(ceiling))
	return nil
}

func printClimb(presetName string) error {
	cfg, req, err := resolveAircraft(presetName)
	if err != nil {
		return err
	}

	timeS, profile, err := perf.TimeToClimb(cfg, req.WeightKg, req.ClimbStartM, req.ClimbTargetM, req.ClimbStepM)
	if err != nil {
		var cerr *core.ConvergenceError
		if !errors.As(err, &cerr) {
			return err
		}
		fmt.Printf("Note: climb stopped at %.0f m: %s\n", cerr.AltitudeM, cerr.Reason)
	}

	fmt.Printf("Time to climb %.0f m -> %.0f m: %.0f s\n", req.ClimbStartM, req.ClimbTargetM, timeS)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Altitude (m)\tROC (m/s)\tSpeed (m/s)\tTime (s)")
	for _, p := range profile {
		fmt.Fprintf(w, "%.0f\t%.2f\t%.1f\t%.1f\n", p.AltitudeM, p.RateOfClimbMS, p.VelocityMS, p.TimeS)
	}
	return w.Flush()
}

func printRange(presetName string) error {
	cfg, req, err := resolveAircraft(presetName)
	if err != nil {
		return err
	}

	atmos, err := perf.AtmosphereAt(req.CruiseAltitudeM)
	if err != nil {
		return err
	}
	velocity := req.CruiseMach * atmos.SpeedOfSoundMS

	rangeM, err := perf.BreguetRange(cfg, velocity, req.CruiseAltitudeM, req.WeightKg, req.FinalWeightKg)
	if err != nil {
		return err
	}
	enduranceS, err := perf.Endurance(cfg, velocity, req.CruiseAltitudeM, req.WeightKg, req.FinalWeightKg)
	if err != nil {
		return err
	}

	fmt.Printf("Cruise at %.0f m, Mach %.2f (%.1f m/s), %.0f kg -> %.0f kg\n",
		req.CruiseAltitudeM, req.CruiseMach, velocity, req.WeightKg, req.FinalWeightKg)
	fmt.Printf("Range: %.1f km (%.0f NM)\n", util.MetersToKM(rangeM), util.MetersToNM(rangeM))
	fmt.Printf("Endurance: %.2f h\n", util.SecondsToHours(enduranceS))
	return nil
}

func printPresets() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Name\tMass (kg)\tWing area (m2)\tSL thrust (N)\tCD0\tk")
	for _, name := range library.Names() {
		cfg, err := library.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.0f\t%.1f\t%.0f\t%.4f\t%.4f\n",
			name, cfg.MassKg, cfg.WingAreaM2, cfg.SeaLevelThrustN, cfg.CD0, cfg.InducedDragK)
	}
	return w.Flush()
}
