package windingloss

import (
	"math"

	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/model"
)

// conductorArea returns a wire's total copper cross-section.
func conductorArea(wire model.Wire) (float64, error) {
	switch wire.Type {
	case model.WireRound:
		radius := wire.ConductorDiameter / 2
		return math.Pi * radius * radius, nil
	case model.WireRectangular, model.WireFoil:
		return wire.Width * wire.Height, nil
	case model.WireLitz:
		if wire.Strands <= 0 {
			return 0, magerr.New(magerr.MissingData, "litz wire strand count is not set")
		}
		radius := wire.StrandDiameter / 2
		return float64(wire.Strands) * math.Pi * radius * radius, nil
	default:
		return 0, magerr.Newf(magerr.InvalidInput, "unknown wire type %q", wire.Type)
	}
}

// dcResistance implements the `R_dc(wire, T)` spec §4.6 names:
// resistivity at temperature, scaled by length per area.
func dcResistance(wire model.Wire, lengthPerTurn, temperature float64) (float64, error) {
	area, err := conductorArea(wire)
	if err != nil {
		return 0, err
	}
	if area <= 0 {
		return 0, magerr.New(magerr.InvalidInput, "wire conductor area must be positive")
	}
	resistivity := wire.Resistivity20C * (1 + wire.TemperatureCoefficient*(temperature-20))
	return resistivity * lengthPerTurn / area, nil
}

// OhmicLoss implements spec §4.6's ohmic term: P_dc = R_dc*I_rms^2.
func OhmicLoss(wire model.Wire, turn model.Turn, temperature, currentRMS float64) (float64, error) {
	resistance, err := dcResistance(wire, turn.LengthPerTurn, temperature)
	if err != nil {
		return 0, err
	}
	return resistance * currentRMS * currentRMS, nil
}
