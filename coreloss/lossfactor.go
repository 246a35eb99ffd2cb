package coreloss

import (
	"math"

	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/material"
)

// LossFactorLosses implements spec §4.5's LOSS_FACTOR model: materials
// with complex-permeability (and so tan(delta)) data expose a series
// resistance R_s = tan(delta)*2*pi*f*L_mag, and losses P = R_s*I_rms^2.
// Unlike the other models this is not volumetric: it needs the coil's
// magnetizing inductance and RMS current directly.
func LossFactorLosses(m material.CoreMaterial, frequency, magnetizingInductance, currentRMS float64) (float64, error) {
	if m.LossTangent == nil || len(m.LossTangent.VsFrequency) == 0 {
		return 0, magerr.Newf(magerr.MaterialDataMissing, "material %q has no loss-tangent curve", m.Name)
	}
	tanDelta, err := evaluateLossTangent(*m.LossTangent, frequency)
	if err != nil {
		return 0, err
	}
	seriesResistance := tanDelta * 2 * math.Pi * frequency * magnetizingInductance
	return seriesResistance * currentRMS * currentRMS, nil
}

func evaluateLossTangent(data material.LossTangentData, frequency float64) (float64, error) {
	points := data.VsFrequency
	if len(points) == 1 {
		return points[0].Y, nil
	}
	for i := 1; i < len(points); i++ {
		if frequency <= points[i].X {
			t := (frequency - points[i-1].X) / (points[i].X - points[i-1].X)
			return points[i-1].Y + t*(points[i].Y-points[i-1].Y), nil
		}
	}
	return points[len(points)-1].Y, nil
}
