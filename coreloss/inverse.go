package coreloss

import (
	"math"

	"github.com/edp1096/magcore/config"
	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/material"
)

// FrequencyFromCoreLosses implements spec §4.5's inverse query: given a
// target volumetric loss density and a fixed peak flux density, find
// the frequency that produces it. Micrometals gets a closed-form
// quadratic (its losses are linear in f plus quadratic in f via the
// eddy term); every other model falls back to bisection.
func FrequencyFromCoreLosses(m material.CoreMaterial, modelKind config.CoreLossesModel, targetVolumetricLosses, bPeak, temperature float64) (float64, error) {
	if modelKind == config.CoreLossesProprietary && m.Proprietary != nil && m.Proprietary.Manufacturer == "Micrometals" {
		c := *m.Proprietary
		denominator := c.A*math.Pow(bPeak, -3) + c.B*math.Pow(bPeak, -2.3) + c.C*math.Pow(bPeak, -1.65)
		if denominator == 0 {
			return 0, magerr.New(magerr.CalculationNaNResult, "Micrometals loss denominator is zero")
		}
		// targetVolumetricLosses = f/denominator + d*B^2*f^2, a quadratic in f.
		a := c.D * bPeak * bPeak
		b := 1 / denominator
		quadraticDiscriminant := b*b + 4*a*targetVolumetricLosses
		if quadraticDiscriminant < 0 {
			return 0, magerr.New(magerr.CalculationNaNResult, "no real frequency solves the Micrometals loss equation for this target")
		}
		if a == 0 {
			return targetVolumetricLosses * denominator, nil
		}
		return (-b + math.Sqrt(quadraticDiscriminant)) / (2 * a), nil
	}

	evaluate := func(frequency float64) (float64, error) {
		return evaluateVolumetricLosses(m, modelKind, frequency, bPeak, temperature)
	}
	return bisectMonotone(evaluate, 1, 1e8, targetVolumetricLosses)
}

// BPeakFromCoreLosses implements spec §4.5's inverse query: given a
// target volumetric loss density and a fixed frequency, find the peak
// flux density that produces it. Magnetics materials get a closed-form
// power law (their loss model is P_v = a*B^b*f^c, b constant).
func BPeakFromCoreLosses(m material.CoreMaterial, modelKind config.CoreLossesModel, targetVolumetricLosses, frequency, temperature float64) (float64, error) {
	if modelKind == config.CoreLossesProprietary && m.Proprietary != nil && m.Proprietary.Manufacturer == "Magnetics" {
		c := *m.Proprietary
		denom := c.A * math.Pow(frequency, c.C)
		if denom <= 0 {
			return 0, magerr.New(magerr.CalculationNaNResult, "Magnetics loss coefficient is non-positive")
		}
		return math.Pow(targetVolumetricLosses/denom, 1/c.B), nil
	}

	evaluate := func(bPeak float64) (float64, error) {
		return evaluateVolumetricLosses(m, modelKind, frequency, bPeak, temperature)
	}
	return bisectMonotone(evaluate, 1e-4, 2.0, targetVolumetricLosses)
}

func evaluateVolumetricLosses(m material.CoreMaterial, modelKind config.CoreLossesModel, frequency, bPeak, temperature float64) (float64, error) {
	if modelKind == config.CoreLossesProprietary {
		return Proprietary(m, frequency, bPeak)
	}
	return Steinmetz(m, frequency, bPeak, bPeak, temperature)
}

// bisectMonotone finds x in [low, high] such that f(x) == target,
// assuming f is monotonically increasing, stopping once the current
// iteration's error exceeds the previous one's, i.e. once the error
// stops shrinking.
func bisectMonotone(f func(float64) (float64, error), low, high, target float64) (float64, error) {
	previousError := math.Inf(1)
	for i := 0; i < 100; i++ {
		mid := (low + high) / 2
		value, err := f(mid)
		if err != nil {
			return 0, err
		}
		currentError := math.Abs(value - target)
		if currentError > previousError {
			return mid, nil
		}
		previousError = currentError
		if value < target {
			low = mid
		} else {
			high = mid
		}
	}
	return (low + high) / 2, nil
}
