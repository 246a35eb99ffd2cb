package coreloss_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/magcore/config"
	"github.com/edp1096/magcore/coreloss"
	"github.com/edp1096/magcore/material"
	"github.com/edp1096/magcore/waveform"
)

func ferrite3C94() material.CoreMaterial {
	return material.CoreMaterial{
		Name: "3C94",
		SteinmetzCoefficients: []material.SteinmetzRange{
			{MinimumFrequency: 10e3, MaximumFrequency: 500e3, K: 0.0696, Alpha: 1.4, Beta: 2.5},
		},
	}
}

func TestSteinmetzIncreasesWithFrequencyAndFlux(t *testing.T) {
	m := ferrite3C94()
	base, err := coreloss.Steinmetz(m, 100e3, 0.1, 0.1, 25)
	require.NoError(t, err)

	higherFrequency, err := coreloss.Steinmetz(m, 200e3, 0.1, 0.1, 25)
	require.NoError(t, err)
	assert.Greater(t, higherFrequency, base)

	higherFlux, err := coreloss.Steinmetz(m, 100e3, 0.2, 0.2, 25)
	require.NoError(t, err)
	assert.Greater(t, higherFlux, base)
}

func TestSteinmetzMissingCoefficientsFails(t *testing.T) {
	_, err := coreloss.Steinmetz(material.CoreMaterial{Name: "unknown"}, 100e3, 0.1, 0.1, 25)
	assert.Error(t, err)
}

func sineFluxDensity(peak, frequency float64, samples int) waveform.Signal {
	period := 1 / frequency
	signal := waveform.Signal{Time: make([]float64, samples), Data: make([]float64, samples)}
	for i := 0; i < samples; i++ {
		t := period * float64(i) / float64(samples)
		signal.Time[i] = t
		signal.Data[i] = peak * math.Sin(2*math.Pi*frequency*t)
	}
	return signal
}

func TestIGSEAgreesWithSteinmetzOnASineWave(t *testing.T) {
	m := ferrite3C94()
	b := sineFluxDensity(0.1, 100e3, 256)

	steinmetz, err := coreloss.Steinmetz(m, 100e3, 0.1, 0.1, 25)
	require.NoError(t, err)

	igse, err := coreloss.IGSE(m, b, 100e3, 25)
	require.NoError(t, err)

	assert.InDelta(t, steinmetz, igse, steinmetz*0.35)
}

func TestProprietaryMicrometals(t *testing.T) {
	m := material.CoreMaterial{
		Name: "Micrometals-26",
		Proprietary: &material.ProprietaryCoefficients{
			Manufacturer: "Micrometals",
			A:            0.148, B: 456, C: 0, D: 1.18e-9,
		},
	}
	losses, err := coreloss.Proprietary(m, 100e3, 0.1)
	require.NoError(t, err)
	assert.Greater(t, losses, 0.0)
}

func TestProprietaryUnknownManufacturer(t *testing.T) {
	m := material.CoreMaterial{Proprietary: &material.ProprietaryCoefficients{Manufacturer: "Acme"}}
	_, err := coreloss.Proprietary(m, 100e3, 0.1)
	assert.Error(t, err)
}

func TestCoreLossesDispatchSteinmetzAndVolume(t *testing.T) {
	m := ferrite3C94()
	b := sineFluxDensity(0.1, 100e3, 256)

	output, err := coreloss.CoreLosses(m, config.CoreLossesSteinmetz, coreloss.Excitation{
		MagneticFluxDensity: b,
		Frequency:           100e3,
	}, 25, coreloss.Geometry{EffectiveVolume: 1e-6})
	require.NoError(t, err)

	require.NotNil(t, output.VolumetricLosses)
	assert.InDelta(t, output.CoreLosses, *output.VolumetricLosses*1e-6, 1e-12)
	assert.Equal(t, "Steinmetz", output.MethodUsed)
}

func TestCoreLossesMagnetecReportsMassNotVolume(t *testing.T) {
	m := material.CoreMaterial{
		Proprietary: &material.ProprietaryCoefficients{Manufacturer: "Magnetec"},
	}
	b := sineFluxDensity(0.15, 100e3, 256)

	output, err := coreloss.CoreLosses(m, config.CoreLossesProprietary, coreloss.Excitation{
		MagneticFluxDensity: b,
		Frequency:           100e3,
	}, 25, coreloss.Geometry{EffectiveVolume: 1e-6, Mass: 0.02})
	require.NoError(t, err)

	require.Nil(t, output.VolumetricLosses)
	require.NotNil(t, output.MassLosses)
	assert.InDelta(t, output.CoreLosses, *output.MassLosses*0.02, 1e-12)
}

func TestFrequencyFromCoreLossesRoundTrips(t *testing.T) {
	m := material.CoreMaterial{
		Proprietary: &material.ProprietaryCoefficients{
			Manufacturer: "Micrometals",
			A:            0.148, B: 456, C: 0, D: 1.18e-9,
		},
	}
	const bPeak = 0.1
	target, err := coreloss.Proprietary(m, 150e3, bPeak)
	require.NoError(t, err)

	frequency, err := coreloss.FrequencyFromCoreLosses(m, config.CoreLossesProprietary, target, bPeak, 25)
	require.NoError(t, err)
	assert.InDelta(t, 150e3, frequency, 150e3*0.05)
}
