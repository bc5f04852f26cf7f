// Package util provides common unit conversions used across the aeroperf CLI
// and sinks. The engine itself works exclusively in SI units; these helpers
// exist for configuration input and display output.
package util

import "github.com/aeroperf/aeroperf/pkg/perf"

// FeetToMeters converts an altitude in feet to meters.
func FeetToMeters(ft float64) float64 {
	return ft * 0.3048
}

// MetersToFeet converts an altitude in meters to feet.
func MetersToFeet(m float64) float64 {
	return m / 0.3048
}

// KnotsToMS converts a speed in knots to meters per second.
func KnotsToMS(kt float64) float64 {
	return kt * 0.514444
}

// MSToKnots converts a speed in meters per second to knots.
func MSToKnots(ms float64) float64 {
	return ms / 0.514444
}

// MSToFPM converts a vertical speed in meters per second to feet per minute.
func MSToFPM(ms float64) float64 {
	return ms * 196.850394
}

// MetersToNM converts a distance in meters to nautical miles.
func MetersToNM(m float64) float64 {
	return m / 1852.0
}

// MetersToKM converts a distance in meters to kilometers.
func MetersToKM(m float64) float64 {
	return m / 1000.0
}

// TSFCHandbookToSI converts a thrust-specific fuel consumption quoted in
// lb/(lbf*h), equivalently kg/(kgf*h), the usual handbook unit, to the
// engine's kg/(N*s). The handbook unit is per unit of thrust *force in
// gravitational units*, so the conversion divides by g as well as by 3600.
func TSFCHandbookToSI(perHour float64) float64 {
	return perHour / 3600.0 / perf.GravityMS2
}

// SecondsToHours converts a duration in seconds to hours.
func SecondsToHours(s float64) float64 {
	return s / 3600.0
}
