// Package auge implements the fatigue/recovery simulation engine: set-level
// drain, exponential decay curves, per-muscle and systemic batteries, and
// the nutrition-recovery interaction. All functions are deterministic,
// side-effect-free transformations over the supplied inputs; callers pass
// the reference time explicitly.
package auge

import (
	"math"
	"time"
)

// decayConstant is chosen so that after exactly one recovery window
// e^-3 (~5%) of the original stress remains.
const decayConstant = 2.9957

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// safeExp guards the exponential against NaN/Inf inputs; any
// non-finite result is coerced to 0.
func safeExp(x float64) float64 {
	r := math.Exp(x)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// decayFactor returns the remaining linear influence of a value set at ts,
// fading from 1 at ts to 0 once windowHours have elapsed. Timestamps in
// the future count as fresh.
func decayFactor(now, ts time.Time, windowHours float64) float64 {
	if windowHours <= 0 {
		return 0
	}
	elapsed := now.Sub(ts).Hours()
	if elapsed <= 0 {
		return 1
	}
	return clamp(1-elapsed/windowHours, 0, 1)
}

// halfLifeDecay returns the fraction of a load remaining after
// hoursSince, given a half-life in hours.
func halfLifeDecay(hoursSince, halfLifeHours float64) float64 {
	if halfLifeHours <= 0 || hoursSince < 0 {
		return 0
	}
	return safeExp(-math.Ln2 / halfLifeHours * hoursSince)
}

func hoursSince(now, t time.Time) float64 {
	h := now.Sub(t).Hours()
	if h < 0 {
		return 0
	}
	return h
}
