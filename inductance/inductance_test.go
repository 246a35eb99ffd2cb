package inductance_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/magcore/config"
	"github.com/edp1096/magcore/inductance"
	"github.com/edp1096/magcore/material"
	"github.com/edp1096/magcore/model"
	"github.com/edp1096/magcore/waveform"
)

func pq2820Resolved(numberTurns int) inductance.Resolved {
	return inductance.Resolved{
		Core: model.Core{},
		Processed: model.ProcessedDescription{
			EffectiveLength: 0.0573,
			EffectiveArea:   0.000119,
			EffectiveVolume: 0.0573 * 0.000119,
		},
		Material:           material.CoreMaterial{Name: "N87", InitialPermeability: 2200},
		NumberTurnsPrimary: numberTurns,
		NumberWindings:     1,
	}
}

func sineCurrentSignal(peak, frequency float64, samples int) waveform.Signal {
	period := 1 / frequency
	signal := waveform.Signal{Time: make([]float64, samples), Data: make([]float64, samples)}
	for i := 0; i < samples; i++ {
		t := period * float64(i) / float64(samples)
		signal.Time[i] = t
		signal.Data[i] = peak * math.Sin(2*math.Pi*frequency*t)
	}
	return signal
}

func TestCalculateInductanceWithoutOperatingPointReturnsNoFluxWaveform(t *testing.T) {
	resolved := pq2820Resolved(20)
	result, fluxDensity, err := inductance.CalculateInductanceAndFluxDensity(resolved, nil, config.Default())
	require.NoError(t, err)
	assert.Greater(t, result.MagnetizingInductance, 0.0)
	assert.Nil(t, fluxDensity)
}

func TestCalculateInductanceWithCurrentExcitationProducesFluxWaveform(t *testing.T) {
	resolved := pq2820Resolved(20)
	current := sineCurrentSignal(1, 100e3, 64)
	operatingPoint := &model.OperatingPoint{
		ExcitationsPerWinding: []model.OperatingPointExcitation{
			{Frequency: 100e3, Current: &model.SignalDescriptor{Waveform: &current}},
		},
		Conditions: model.Conditions{AmbientTemperature: 25},
	}

	result, fluxDensity, err := inductance.CalculateInductanceAndFluxDensity(resolved, operatingPoint, config.Default())
	require.NoError(t, err)
	assert.Greater(t, result.MagnetizingInductance, 0.0)
	require.NotNil(t, fluxDensity)
	require.NotNil(t, fluxDensity.Waveform)
	assert.Len(t, fluxDensity.Waveform.Data, len(current.Data))
}

func TestCalculateInductanceIncludesAirInductanceWhenConfigured(t *testing.T) {
	resolved := pq2820Resolved(20)
	resolved.Processed.Columns = []model.ColumnElement{{Type: model.ColumnCentral, Shape: model.ColumnShapeRound, Area: 0.000119, Width: 0.0123, Depth: 0.0123}}
	resolved.Processed.WindingWindows = []model.WindingWindowElement{{Area: 0.0093 * 0.0079, Width: 0.0093, Height: 0.0079}}
	resolved.Core.Processed = &resolved.Processed
	settings := config.Default()
	settings.MagnetizingInductanceIncludeAirInductance = true

	without, _, err := inductance.CalculateInductanceAndFluxDensity(resolved, nil, config.Default())
	require.NoError(t, err)
	with, _, err := inductance.CalculateInductanceAndFluxDensity(resolved, nil, settings)
	require.NoError(t, err)

	assert.Greater(t, with.MagnetizingInductance, without.MagnetizingInductance)
}

func TestAirCoredReluctancePositive(t *testing.T) {
	bobbin := model.Bobbin{
		WindingWindowWidth:  0.0093,
		WindingWindowHeight: 0.0079,
		ColumnWidth:         0.0123,
		ColumnDepth:         0.0123,
	}
	r, err := inductance.AirCoredReluctance(bobbin)
	require.NoError(t, err)
	assert.Greater(t, r, 0.0)
}
