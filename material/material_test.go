package material_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/magcore/material"
)

func TestInitialPermeabilityDefaultsToDeclaredValue(t *testing.T) {
	m := material.CoreMaterial{Name: "N87", InitialPermeability: 2200}
	v, err := material.InitialPermeability(m, 25, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2200.0, v)
}

func TestInitialPermeabilityAppliesTemperatureCurve(t *testing.T) {
	m := material.CoreMaterial{
		Name:                      "N87",
		InitialPermeability:       2200,
		PermeabilityVsTemperature: []material.Point{{X: 25, Y: 2200}, {X: 100, Y: 2600}},
	}
	v, err := material.InitialPermeability(m, 100, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2600, v, 1)
}

func TestInitialPermeabilityDCBiasClampedAboveOne(t *testing.T) {
	m := material.CoreMaterial{
		Name:                 "N87",
		InitialPermeability:  2200,
		PermeabilityVsDCBias: []material.Point{{X: 0, Y: 2200}, {X: 1000, Y: 0}},
	}
	bias := 1000.0
	v, err := material.InitialPermeability(m, 25, &bias, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, 1.0)
}

func TestSaturationFluxDensityRequiresCurve(t *testing.T) {
	_, err := material.SaturationFluxDensity(material.CoreMaterial{Name: "x"}, 25, false)
	assert.Error(t, err)
}

func TestSaturationFluxDensityAppliesProportion(t *testing.T) {
	m := material.CoreMaterial{
		Name:                                "N87",
		SaturationFluxDensityVsTemperature: []material.Point{{X: 25, Y: 0.49}, {X: 100, Y: 0.39}},
	}
	full, err := material.SaturationFluxDensity(m, 25, false)
	require.NoError(t, err)
	derated, err := material.SaturationFluxDensity(m, 25, true)
	require.NoError(t, err)
	assert.Less(t, derated, full)
}

func TestHasFrequencyDependentPermeability(t *testing.T) {
	assert.False(t, material.HasFrequencyDependentPermeability(material.CoreMaterial{}))
	m := material.CoreMaterial{PermeabilityVsFrequency: []material.Point{{X: 0, Y: 1}, {X: 1e6, Y: 0.5}}}
	assert.True(t, material.HasFrequencyDependentPermeability(m))
}

func TestComplexPermeabilitySynthesizedFromFrequencyCurve(t *testing.T) {
	m := material.CoreMaterial{
		Name:                      "N87",
		InitialPermeability:       2200,
		PermeabilityVsFrequency: []material.Point{{X: 1e3, Y: 1}, {X: 1e6, Y: 0.6778}, {X: 5e6, Y: 0.1}},
	}
	real, imag, err := material.ComplexPermeability(m, 1e6)
	require.NoError(t, err)
	assert.Greater(t, real, 0.0)
	assert.NotEqual(t, 0.0, imag)
}

func TestComplexPermeabilityRequiresCurveOrExplicitData(t *testing.T) {
	_, _, err := material.ComplexPermeability(material.CoreMaterial{Name: "x"}, 1e6)
	assert.Error(t, err)
}
