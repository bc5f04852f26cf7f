package memory

import (
	"compress/gzip"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aeroperf/aeroperf/pkg/core"
)

// ReportExport is the root JSON structure of an exported report file
type ReportExport struct {
	AircraftName string              `json:"aircraftName"`
	Tag          string              `json:"tag"`
	GeneratedAt  string              `json:"generatedAt"`
	Aircraft     core.AircraftConfig `json:"aircraft"`
	Request      core.ReportRequest  `json:"request"`

	Summary *core.PerformanceReport `json:"summary,omitempty"`

	ClimbProfile []core.ClimbProfilePoint `json:"climbProfile,omitempty"`

	ThrustCurveAltitudeM float64                 `json:"thrustCurveAltitudeM,omitempty"`
	ThrustCurve          []core.ThrustCurvePoint `json:"thrustCurve,omitempty"`

	RangeRing *RangeRingJSON `json:"rangeRing,omitempty"`
}

// RangeRingJSON carries the ring origin and geometry as hex-encoded WKB
type RangeRingJSON struct {
	OriginLat float64 `json:"originLat"`
	OriginLon float64 `json:"originLon"`
	RadiusM   float64 `json:"radiusM"`
	RingWKB   string  `json:"ringWkb"`
}

// exportJSON writes the run data to a (optionally gzipped) JSON file
func (b *Backend) exportJSON() error {
	export := b.buildExport()

	// Build filename
	name := strings.ReplaceAll(b.aircraftName, " ", "_")
	name = strings.ReplaceAll(name, ":", "_")
	if name == "" {
		name = "report"
	}
	timestamp := time.Now().UTC().Format("20060102_150405")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.json.gz", name, timestamp)
	} else {
		filename = fmt.Sprintf("%s_%s.json", name, timestamp)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Write file
	if b.cfg.CompressOutput {
		if err := b.writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := b.writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() ReportExport {
	export := ReportExport{
		AircraftName:         b.aircraftName,
		Tag:                  b.request.Tag,
		GeneratedAt:          time.Now().UTC().Format(time.RFC3339),
		Aircraft:             b.aircraft,
		Request:              b.request,
		Summary:              b.summary,
		ClimbProfile:         b.climb,
		ThrustCurveAltitudeM: b.curveAltM,
		ThrustCurve:          b.thrustCurve,
	}

	if b.rangeRing != nil {
		export.RangeRing = &RangeRingJSON{
			OriginLat: b.rangeRing.OriginLat,
			OriginLon: b.rangeRing.OriginLon,
			RadiusM:   b.rangeRing.RadiusM,
			RingWKB:   hex.EncodeToString(b.rangeRing.WKB()),
		}
	}

	return export
}

func (b *Backend) writeJSON(path string, data ReportExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func (b *Backend) writeGzipJSON(path string, data ReportExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}
