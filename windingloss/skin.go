// Package windingloss is the winding-loss engine (spec §4.6, component
// C6): ohmic, skin-effect, and proximity-effect losses per turn,
// aggregated up through layer, section, and winding. Skin and
// proximity factors follow the Dowell layered-conductor model (the
// "classical Bessel/Dowell approximation" spec §4.6 names), since the
// closed hyperbolic form it reduces to needs no special functions.
package windingloss

import (
	"math"

	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/model"
)

// skinDepth is the classical delta = sqrt(rho/(pi*f*mu0)).
func skinDepth(resistivity, frequency float64) float64 {
	const mu0 = 4 * math.Pi * 1e-7
	if frequency <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(resistivity / (math.Pi * frequency * mu0))
}

// conductorThickness returns the dimension Dowell's xi ratio is taken
// against: conductor diameter for round/litz-strand wire, the
// perpendicular-to-field thickness for rectangular/foil wire.
func conductorThickness(wire model.Wire) (float64, error) {
	switch wire.Type {
	case model.WireRound:
		return wire.ConductorDiameter, nil
	case model.WireLitz:
		return wire.StrandDiameter, nil
	case model.WireRectangular, model.WireFoil:
		return wire.Height, nil
	default:
		return 0, magerr.Newf(magerr.InvalidInput, "unknown wire type %q", wire.Type)
	}
}

// dowellXi is the normalised thickness Dowell's formulas are expressed
// in: xi = thickness/skinDepth * sqrt(2).
func dowellXi(thickness, delta float64) float64 {
	if math.IsInf(delta, 1) || delta == 0 {
		return 0
	}
	return thickness / delta * math.Sqrt2
}

// skinEffectFactor is Dowell's own-field term:
// F_R = xi * (sinh(xi)+sin(xi)) / (2 * (cosh(xi)-cos(xi))), the ratio of a
// conductor's AC to DC resistance at this frequency.
func skinEffectFactor(xi float64) float64 {
	if xi == 0 {
		return 1
	}
	numerator := math.Sinh(xi) + math.Sin(xi)
	denominator := math.Cosh(xi) - math.Cos(xi)
	if denominator == 0 {
		return 1
	}
	return xi * numerator / (2 * denominator)
}

// proximityEffectFactor is Dowell's neighbour-field term for a
// conductor sitting at layer position m (1-indexed) within its winding:
// G_R = xi * (2*(m^2-1)/3) * (sinh(xi)-sin(xi)) / (cosh(xi)+cos(xi)).
func proximityEffectFactor(xi float64, layerPosition int) float64 {
	if xi == 0 || layerPosition <= 1 {
		return 0
	}
	numerator := math.Sinh(xi) - math.Sin(xi)
	denominator := math.Cosh(xi) + math.Cos(xi)
	if denominator == 0 {
		return 0
	}
	m := float64(layerPosition)
	return xi * (2 * (m*m - 1) / 3) * numerator / denominator
}

// litzStrandCorrection scales a litz wire's effective xi by the square
// root of its strand count, the standard correction for the bundle
// acting as parallel independent conductors rather than one solid one.
func litzStrandCorrection(wire model.Wire, xi float64) float64 {
	if wire.Type == model.WireLitz && wire.Strands > 0 {
		return xi / math.Sqrt(float64(wire.Strands))
	}
	return xi
}
