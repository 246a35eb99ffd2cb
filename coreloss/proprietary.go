package coreloss

import (
	"math"

	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/material"
)

// Proprietary implements spec §6's per-manufacturer closed-form
// volumetric loss equations, dispatched by the material's declared
// coefficients' Manufacturer field.
func Proprietary(m material.CoreMaterial, frequency, bPeak float64) (float64, error) {
	if m.Proprietary == nil {
		return 0, magerr.Newf(magerr.MaterialDataMissing, "material %q has no proprietary loss coefficients", m.Name)
	}
	c := *m.Proprietary

	switch c.Manufacturer {
	case "Micrometals":
		// P_v = f/(a*B^-3 + b*B^-2.3 + c*B^-1.65) + d*B^2*f^2.
		denominator := c.A*math.Pow(bPeak, -3) + c.B*math.Pow(bPeak, -2.3) + c.C*math.Pow(bPeak, -1.65)
		if denominator == 0 {
			return 0, magerr.New(magerr.CalculationNaNResult, "Micrometals loss denominator is zero")
		}
		return frequency/denominator + c.D*bPeak*bPeak*frequency*frequency, nil

	case "Magnetics":
		// P_v = a*B^b*f^c.
		return c.A * math.Pow(bPeak, c.B) * math.Pow(frequency, c.C), nil

	case "Poco":
		// P_v = 1000*(a*(f/1000)*(10B)^b + c*(10B*f/1000)^2).
		tenB := 10 * bPeak
		return 1000 * (c.A*(frequency/1000)*math.Pow(tenB, c.B) + c.C*math.Pow(tenB*frequency/1000, 2)), nil

	case "TDG":
		// P_v = 1000*(10B)^a*(b*f/1000 + c*(f/1000)^d).
		tenB := 10 * bPeak
		return 1000 * math.Pow(tenB, c.A) * (c.B*frequency/1000 + c.C*math.Pow(frequency/1000, c.D)), nil

	case "Magnetec":
		// P_m = 80*(f/1e5)^1.8*(2B/0.3)^2; a mass-loss formula, reported
		// here as-is so CoreLosses multiplies by mass rather than
		// volume when the caller knows the material is Magnetec.
		return 80 * math.Pow(frequency/1e5, 1.8) * math.Pow(2*bPeak/0.3, 2), nil

	default:
		return 0, magerr.Newf(magerr.ModelNotAvailable, "unknown proprietary loss manufacturer %q", c.Manufacturer)
	}
}
