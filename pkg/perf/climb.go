// pkg/perf/climb.go
package perf

import (
	"math"

	"github.com/aeroperf/aeroperf/pkg/core"
)

// Search tuning. The brackets and caps are fixed so every search is
// deterministic and terminates in bounded time.
const (
	// climbSearchMinVelocityMS / climbSearchMaxVelocityMS bracket the
	// best-ROC speed search. The range covers everything from light
	// trainers to jet transports below the transonic regime.
	climbSearchMinVelocityMS = 20.0
	climbSearchMaxVelocityMS = 320.0
	// climbSearchCoarseSamples is the number of evenly spaced probes used
	// to locate the unimodal peak before golden-section refinement.
	climbSearchCoarseSamples = 33
	// climbSearchGoldenIters caps the golden-section refinement.
	climbSearchGoldenIters = 48
	// climbSearchToleranceMS stops refinement once the bracket is this narrow.
	climbSearchToleranceMS = 1e-3

	// ceilingSearchMaxIters caps the altitude bisection.
	ceilingSearchMaxIters = 60
	// ceilingSearchToleranceM stops bisection once the window is this narrow.
	ceilingSearchToleranceM = 0.5

	// maxClimbIntegrationSteps bounds TimeToClimb regardless of step size.
	maxClimbIntegrationSteps = 100000
)

// goldenRatioConj is (sqrt(5)-1)/2, the golden-section interval factor.
var goldenRatioConj = (math.Sqrt(5) - 1) / 2

// RateOfClimb returns the instantaneous rate of climb from excess power:
//
//	ROC = (T_available - D) * V / (W * g)
func RateOfClimb(cfg core.AircraftConfig, weightKg, altitudeM, velocityMS float64) (float64, error) {
	if velocityMS <= 0 {
		return 0, core.NewDomainError("velocityMS", velocityMS, "must be positive")
	}

	atmos, err := AtmosphereAt(altitudeM)
	if err != nil {
		return 0, err
	}
	return rateOfClimbAt(cfg, weightKg, atmos, velocityMS)
}

// rateOfClimbAt is RateOfClimb with the atmosphere already evaluated, so
// the speed search does not recompute it per probe.
func rateOfClimbAt(cfg core.AircraftConfig, weightKg float64, atmos core.AtmosphereState, velocityMS float64) (float64, error) {
	mach := velocityMS / atmos.SpeedOfSoundMS

	thrust, err := ThrustAvailable(cfg, atmos.AltitudeM, mach)
	if err != nil {
		return 0, err
	}
	drag, err := DragForce(cfg, weightKg, atmos.DensityKgM3, velocityMS)
	if err != nil {
		return 0, err
	}
	return (thrust - drag) * velocityMS / (weightKg * GravityMS2), nil
}

// BestRateOfClimb finds the speed maximizing ROC at a fixed altitude and
// returns that speed and the ROC there. The search is a coarse scan over
// a fixed bracket followed by golden-section refinement with a fixed
// iteration cap, so identical inputs always give identical results.
func BestRateOfClimb(cfg core.AircraftConfig, weightKg, altitudeM float64) (velocityMS, rocMS float64, err error) {
	if err := cfg.Validate(); err != nil {
		return 0, 0, err
	}
	if weightKg <= 0 {
		return 0, 0, core.NewDomainError("weightKg", weightKg, "must be positive")
	}
	atmos, err := AtmosphereAt(altitudeM)
	if err != nil {
		return 0, 0, err
	}

	// Coarse scan to bracket the peak.
	bestIdx := 0
	bestROC := math.Inf(-1)
	coarseStep := (climbSearchMaxVelocityMS - climbSearchMinVelocityMS) / float64(climbSearchCoarseSamples-1)
	for i := 0; i < climbSearchCoarseSamples; i++ {
		v := climbSearchMinVelocityMS + float64(i)*coarseStep
		roc, err := rateOfClimbAt(cfg, weightKg, atmos, v)
		if err != nil {
			return 0, 0, err
		}
		if roc > bestROC {
			bestROC, bestIdx = roc, i
		}
	}

	lo := climbSearchMinVelocityMS + float64(bestIdx-1)*coarseStep
	hi := climbSearchMinVelocityMS + float64(bestIdx+1)*coarseStep
	if lo < climbSearchMinVelocityMS {
		lo = climbSearchMinVelocityMS
	}
	if hi > climbSearchMaxVelocityMS {
		hi = climbSearchMaxVelocityMS
	}

	// Golden-section refinement of the bracketed maximum.
	a, b := lo, hi
	x1 := b - goldenRatioConj*(b-a)
	x2 := a + goldenRatioConj*(b-a)
	f1, err := rateOfClimbAt(cfg, weightKg, atmos, x1)
	if err != nil {
		return 0, 0, err
	}
	f2, err := rateOfClimbAt(cfg, weightKg, atmos, x2)
	if err != nil {
		return 0, 0, err
	}

	for i := 0; i < climbSearchGoldenIters && b-a > climbSearchToleranceMS; i++ {
		if f1 < f2 {
			a, x1, f1 = x1, x2, f2
			x2 = a + goldenRatioConj*(b-a)
			if f2, err = rateOfClimbAt(cfg, weightKg, atmos, x2); err != nil {
				return 0, 0, err
			}
		} else {
			b, x2, f2 = x2, x1, f1
			x1 = b - goldenRatioConj*(b-a)
			if f1, err = rateOfClimbAt(cfg, weightKg, atmos, x1); err != nil {
				return 0, 0, err
			}
		}
	}

	velocityMS = (a + b) / 2
	rocMS, err = rateOfClimbAt(cfg, weightKg, atmos, velocityMS)
	if err != nil {
		return 0, 0, err
	}
	return velocityMS, rocMS, nil
}

// ServiceCeiling returns the altitude at which the best achievable rate of
// climb falls to thresholdROC (commonly 0.5 m/s; 0 gives the absolute
// ceiling). Max ROC is assumed non-increasing with altitude; the bisection
// has a fixed iteration cap, so pathological inputs still terminate. If
// the threshold is not reached within the model ceiling, the result is the
// model ceiling together with a *core.ConvergenceError.
func ServiceCeiling(cfg core.AircraftConfig, weightKg, thresholdROC float64) (float64, error) {
	if thresholdROC < 0 {
		return 0, core.NewDomainError("thresholdROC", thresholdROC, "must be non-negative")
	}

	_, rocLow, err := BestRateOfClimb(cfg, weightKg, 0)
	if err != nil {
		return 0, err
	}
	if rocLow <= thresholdROC {
		return 0, nil
	}

	_, rocHigh, err := BestRateOfClimb(cfg, weightKg, MaxModelAltitudeM)
	if err != nil {
		return 0, err
	}
	if rocHigh > thresholdROC {
		return MaxModelAltitudeM, &core.ConvergenceError{
			Op:        "service ceiling search",
			AltitudeM: MaxModelAltitudeM,
			Steps:     2,
			Reason:    "best rate of climb still above threshold at the model ceiling",
		}
	}

	lo, hi := 0.0, MaxModelAltitudeM
	for i := 0; i < ceilingSearchMaxIters && hi-lo > ceilingSearchToleranceM; i++ {
		mid := (lo + hi) / 2
		_, roc, err := BestRateOfClimb(cfg, weightKg, mid)
		if err != nil {
			return 0, err
		}
		if roc > thresholdROC {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, nil
}

// TimeToClimb integrates dt = dh / ROC(h) from startAltitudeM to
// targetAltitudeM in fixed steps, flying best-ROC speed at every step.
// It returns the total time and the climb profile. If ROC drops to zero
// or below before the target, the partial time and profile are returned
// together with a *core.ConvergenceError — nothing is silently truncated.
func TimeToClimb(cfg core.AircraftConfig, weightKg, startAltitudeM, targetAltitudeM, stepM float64) (float64, []core.ClimbProfilePoint, error) {
	if stepM <= 0 {
		return 0, nil, core.NewDomainError("stepM", stepM, "must be positive")
	}
	if startAltitudeM < 0 {
		return 0, nil, core.NewDomainError("startAltitudeM", startAltitudeM, "must be non-negative")
	}
	if targetAltitudeM > MaxModelAltitudeM {
		return 0, nil, core.NewDomainError("targetAltitudeM", targetAltitudeM, "exceeds model ceiling of 20 km")
	}
	if targetAltitudeM <= startAltitudeM {
		return 0, nil, core.NewDomainError("targetAltitudeM", targetAltitudeM, "must exceed start altitude")
	}
	if (targetAltitudeM-startAltitudeM)/stepM > maxClimbIntegrationSteps {
		return 0, nil, core.NewDomainError("stepM", stepM, "step too small for altitude span")
	}

	profile := make([]core.ClimbProfilePoint, 0, int((targetAltitudeM-startAltitudeM)/stepM)+2)
	h := startAltitudeM
	t := 0.0

	for h < targetAltitudeM {
		v, roc, err := BestRateOfClimb(cfg, weightKg, h)
		if err != nil {
			return t, profile, err
		}
		if roc <= 0 {
			return t, profile, &core.ConvergenceError{
				Op:        "time to climb",
				AltitudeM: h,
				Steps:     len(profile),
				Reason:    "aircraft cannot climb further",
			}
		}
		profile = append(profile, core.ClimbProfilePoint{
			AltitudeM:     h,
			RateOfClimbMS: roc,
			VelocityMS:    v,
			TimeS:         t,
		})

		dh := stepM
		if h+dh > targetAltitudeM {
			dh = targetAltitudeM - h
		}
		t += dh / roc
		h += dh
	}

	// Terminal sample at the target altitude.
	v, roc, err := BestRateOfClimb(cfg, weightKg, targetAltitudeM)
	if err != nil {
		return t, profile, err
	}
	profile = append(profile, core.ClimbProfilePoint{
		AltitudeM:     targetAltitudeM,
		RateOfClimbMS: roc,
		VelocityMS:    v,
		TimeS:         t,
	})
	return t, profile, nil
}
