package core

import (
	"errors"
	"testing"
)

func validConfig() AircraftConfig {
	return AircraftConfig{
		MassKg:              10000,
		WingAreaM2:          40,
		CD0:                 0.02,
		InducedDragK:        0.045,
		SeaLevelThrustN:     50000,
		ThrustLapseExponent: 0.8,
		SFC:                 2e-5,
		Throttle:            1.0,
	}
}

func TestAircraftConfig_ValidateOK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAircraftConfig_ValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AircraftConfig)
	}{
		{"zero mass", func(c *AircraftConfig) { c.MassKg = 0 }},
		{"negative wing area", func(c *AircraftConfig) { c.WingAreaM2 = -1 }},
		{"negative cd0", func(c *AircraftConfig) { c.CD0 = -0.01 }},
		{"negative k", func(c *AircraftConfig) { c.InducedDragK = -0.1 }},
		{"negative thrust", func(c *AircraftConfig) { c.SeaLevelThrustN = -1 }},
		{"negative lapse exponent", func(c *AircraftConfig) { c.ThrustLapseExponent = -0.5 }},
		{"zero sfc", func(c *AircraftConfig) { c.SFC = 0 }},
		{"throttle above one", func(c *AircraftConfig) { c.Throttle = 1.5 }},
		{"negative throttle", func(c *AircraftConfig) { c.Throttle = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var derr *DomainError
			if !errors.As(err, &derr) {
				t.Errorf("expected DomainError, got %v", err)
			}
		})
	}
}

func TestLinearMachCorrection(t *testing.T) {
	f := LinearMachCorrection(0.9, 0.25)

	if got := f(0.5); got != 1.0 {
		t.Errorf("expected 1.0 below onset, got %f", got)
	}
	if got := f(0.9); got != 1.0 {
		t.Errorf("expected 1.0 at onset, got %f", got)
	}
	at1 := f(1.0)
	if at1 >= 1.0 || at1 <= 0 {
		t.Errorf("expected factor in (0,1) above onset, got %f", at1)
	}
	if f(1.1) >= at1 {
		t.Error("expected monotone decrease above onset")
	}
	if got := f(10); got != 0 {
		t.Errorf("expected clamp at zero, got %f", got)
	}
}

func TestMachFactor_NilMeansUncorrected(t *testing.T) {
	cfg := validConfig()
	if got := cfg.MachFactor(2.0); got != 1.0 {
		t.Errorf("expected 1.0 for nil correction, got %f", got)
	}
}
