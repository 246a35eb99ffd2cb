package coreloss

import (
	"math"

	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/material"
	"github.com/edp1096/magcore/waveform"
)

// hysteresisBranch evaluates the upper branch of the analytic
// B(H) = (H+Hc)/(a+b|H+Hc|) loop spec §4.5 names; the lower branch is
// its point reflection through the origin.
type hysteresisBranch struct {
	coerciveForce float64
	a, b          float64
}

// fitHysteresisBranch solves for a, b so the upper branch passes
// through (H=0, B=remanence) and (H=saturationFieldStrength,
// B=saturationFluxDensity).
func fitHysteresisBranch(coerciveForce, remanence, saturationFieldStrength, saturationFluxDensity float64) (hysteresisBranch, error) {
	if remanence == 0 || saturationFluxDensity == 0 || saturationFieldStrength == 0 {
		return hysteresisBranch{}, magerr.New(magerr.MissingData, "Roshen hysteresis loop needs non-zero coercive force, remanence, and saturation")
	}
	b := ((saturationFieldStrength+coerciveForce)/saturationFluxDensity - coerciveForce/remanence) / saturationFieldStrength
	a := coerciveForce/remanence - b*coerciveForce
	return hysteresisBranch{coerciveForce: coerciveForce, a: a, b: b}, nil
}

func (h hysteresisBranch) upperB(fieldStrength float64) float64 {
	x := fieldStrength + h.coerciveForce
	denominator := h.a + h.b*math.Abs(x)
	if denominator == 0 {
		return 0
	}
	return x / denominator
}

func (h hysteresisBranch) lowerB(fieldStrength float64) float64 {
	return -h.upperB(-fieldStrength)
}

// invertUpperB solves B=(H+Hc)/(a+b(H+Hc)) for H given B, valid while
// 1-b*B does not vanish (true away from the branch's own asymptote).
func (h hysteresisBranch) invertUpperB(fluxDensity float64) (float64, error) {
	denominator := 1 - h.b*fluxDensity
	if denominator == 0 {
		return 0, magerr.New(magerr.CalculationNaNResult, "Roshen hysteresis branch inversion is singular at this flux density")
	}
	return h.a*fluxDensity/denominator - h.coerciveForce, nil
}

// hysteresisLoopArea implements spec §4.5's "minor loop search":
// numerically integrates the analytic loop's enclosed area
// (integral of B dH around the closed path) out to the field
// strength that produces the excitation's peak flux density.
func hysteresisLoopArea(branch hysteresisBranch, peakFluxDensity float64) (float64, error) {
	peakFieldStrength, err := branch.invertUpperB(peakFluxDensity)
	if err != nil {
		return 0, err
	}
	if peakFieldStrength <= 0 {
		return 0, magerr.New(magerr.CalculationNaNResult, "Roshen hysteresis loop has non-positive peak field strength")
	}

	const steps = 500
	step := 2 * peakFieldStrength / steps
	area := 0.0
	h := -peakFieldStrength
	prevDiff := branch.upperB(h) - branch.lowerB(h)
	for i := 1; i <= steps; i++ {
		next := -peakFieldStrength + float64(i)*step
		diff := branch.upperB(next) - branch.lowerB(next)
		area += (prevDiff + diff) / 2 * step
		prevDiff = diff
	}
	if area < 0 {
		return 0, magerr.New(magerr.InvalidInput, "Roshen hysteresis loop area is negative")
	}
	return area, nil
}

// Roshen implements spec §4.5's ROSHEN model: hysteresis, eddy-current,
// and excess loss terms; the excess term is added into the returned
// eddy value, so CoreLosses reports a hysteresis/eddy breakdown.
func Roshen(m material.CoreMaterial, b waveform.Signal, frequency float64, geometry Geometry) (hysteresis, eddy float64, err error) {
	if m.CoerciveForce == 0 || m.RemanenceFlux == 0 || m.SaturationFlux == 0 || m.SaturationFieldStrength == 0 {
		return 0, 0, magerr.Newf(magerr.MaterialDataMissing, "material %q has no Roshen hysteresis-loop parameters", m.Name)
	}
	resistivity, err := material.Resistivity(m, 25)
	if err != nil {
		return 0, 0, err
	}
	if resistivity <= 0 {
		return 0, 0, magerr.New(magerr.InvalidInput, "material resistivity must be positive for Roshen eddy/excess terms")
	}

	processed := waveform.ProcessSignal(b, "magnetic_flux_density")
	peakFluxDensity := processed.PeakToPeak / 2

	branch, err := fitHysteresisBranch(m.CoerciveForce, m.RemanenceFlux, m.SaturationFieldStrength, m.SaturationFlux)
	if err != nil {
		return 0, 0, err
	}
	loopArea, err := hysteresisLoopArea(branch, peakFluxDensity)
	if err != nil {
		return 0, 0, err
	}
	hysteresis = loopArea * frequency

	_, _, dBdt, err := deltaBAndDerivative(b)
	if err != nil {
		return 0, 0, err
	}
	n := len(b.Data)
	period := b.Time[n-1] - b.Time[0] + (b.Time[1] - b.Time[0])

	var eddyIntegral, excessIntegral float64
	dt := period / float64(n)
	for _, slope := range dBdt {
		eddyIntegral += slope * slope * dt
		excessIntegral += math.Pow(math.Abs(slope), 1.5) * dt
	}

	eddy = geometry.ColumnArea / (8 * math.Pi * resistivity) * frequency * eddyIntegral

	excessCoefficient := m.ExcessLossFactor
	if excessCoefficient > 0 {
		excess := math.Sqrt(excessCoefficient/resistivity) * frequency * excessIntegral
		eddy += excess
	}

	return hysteresis, eddy, nil
}
