package thermal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/magcore/model"
	"github.com/edp1096/magcore/thermal"
)

func pq2820() model.Core {
	return model.Core{
		Functional: model.FunctionalDescription{
			Shape: model.ShapeRef{Inline: &model.Shape{
				Name:   "PQ 28/20",
				Family: "PQ",
				Dimensions: map[string]float64{
					"effective_area":   0.000119,
					"effective_length": 0.0573,
					"effective_volume": 0.00000680,
					"width":            0.028,
					"height":           0.020,
					"depth":            0.028,
				},
			}},
			Type: model.CoreTypeTwoPieceSet,
		},
	}
}

func TestThermalResistanceMatchesManiktalaFormula(t *testing.T) {
	core := pq2820()
	rth, err := thermal.ThermalResistance(core, model.Lookups{})
	require.NoError(t, err)
	assert.InDelta(t, 53*math.Pow(0.00000680, -0.54), rth, 1e-6)
}

func TestThermalResistanceHonorsProcessedOverride(t *testing.T) {
	core := pq2820()
	_, processed, err := model.Processed(core, model.Lookups{})
	require.NoError(t, err)
	override := 12.5
	processed.ThermalResistance = &override
	core.Processed = &processed

	rth, err := thermal.ThermalResistance(core, model.Lookups{})
	require.NoError(t, err)
	assert.Equal(t, override, rth)
}

func TestTemperatureRiseAndSteadyStateTemperature(t *testing.T) {
	core := pq2820()
	rise, err := thermal.TemperatureRise(core, model.Lookups{}, 2.0)
	require.NoError(t, err)
	assert.Greater(t, rise, 0.0)

	absolute, err := thermal.SteadyStateTemperature(core, model.Lookups{}, 2.0, 25)
	require.NoError(t, err)
	assert.InDelta(t, 25+rise, absolute, 1e-9)
}
