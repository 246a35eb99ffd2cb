package coreloss

import (
	"math"

	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/material"
	"github.com/edp1096/magcore/waveform"
)

// Steinmetz implements spec §4.5's STEINMETZ model:
// P_v = k*f^alpha*B_peak^beta, except when beta > 2, where the AC
// peak-of-AC-component is used squared instead:
// P_v = k*f^alpha*B_main^(beta-2)*B_ac^2.
func Steinmetz(m material.CoreMaterial, frequency, bPeak, bAC, temperature float64) (float64, error) {
	r, err := selectRange(m, frequency)
	if err != nil {
		return 0, err
	}

	var volumetric float64
	if r.Beta > 2 {
		volumetric = r.K * math.Pow(frequency, r.Alpha) * math.Pow(bPeak, r.Beta-2) * bAC * bAC
	} else {
		volumetric = r.K * math.Pow(frequency, r.Alpha) * math.Pow(bPeak, r.Beta)
	}
	return volumetric * temperatureFactor(r, temperature), nil
}

// deltaBAndDerivative returns delta-B (peak-to-peak) and the discrete
// time derivative dB/dt at every sample of b (the last sample's step
// wraps around to the first), the
// common groundwork for iGSE/MSE/NSE/Albach.
func deltaBAndDerivative(b waveform.Signal) (deltaB float64, dt []float64, dBdt []float64, err error) {
	n := len(b.Data)
	if n < 2 {
		return 0, nil, nil, magerr.New(magerr.InvalidInput, "flux density waveform must have at least two samples")
	}
	processed := waveform.ProcessSignal(b, "magnetic_flux_density")
	deltaB = processed.PeakToPeak

	period := b.Time[n-1] - b.Time[0] + (b.Time[1] - b.Time[0])

	dt = make([]float64, n)
	dBdt = make([]float64, n)
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		dtValue := b.Time[next] - b.Time[i]
		if next == 0 {
			dtValue = period - b.Time[i] + b.Time[0]
		}
		dt[i] = dtValue
		dBdt[i] = (b.Data[next] - b.Data[i]) / dtValue
	}
	return deltaB, dt, dBdt, nil
}

// igseK converts Steinmetz k into iGSE's k_i:
// k_i = k / ((2*pi)^(alpha-1) * integral(|cos(theta)|^alpha * 2^(beta-alpha) dtheta, 0, 2*pi)).
func igseK(r material.SteinmetzRange) float64 {
	const samples = 2000
	integral := 0.0
	step := 2 * math.Pi / samples
	for i := 0; i < samples; i++ {
		theta := float64(i) * step
		integral += math.Pow(math.Abs(math.Cos(theta)), r.Alpha) * step
	}
	integral *= math.Pow(2, r.Beta-r.Alpha)
	return r.K / (math.Pow(2*math.Pi, r.Alpha-1) * integral)
}

// IGSE implements spec §4.5's iGSE model:
// P_v = k_i*deltaB^(beta-alpha)*f*sum(|dB/dt|^alpha*delta_t).
func IGSE(m material.CoreMaterial, b waveform.Signal, frequency, temperature float64) (float64, error) {
	r, err := selectRange(m, frequency)
	if err != nil {
		return 0, err
	}
	deltaB, dt, dBdt, err := deltaBAndDerivative(b)
	if err != nil {
		return 0, err
	}

	ki := igseK(r)
	var sum float64
	for i := range dBdt {
		sum += math.Pow(math.Abs(dBdt[i]), r.Alpha) * dt[i]
	}

	volumetric := ki * math.Pow(deltaB, r.Beta-r.Alpha) * frequency * sum
	return volumetric * temperatureFactor(r, temperature), nil
}

// equivalentFrequency implements the MSE/Albach family's
// f_eq = (2/(pi^2*deltaB^2)) * sum((dB/dt)^2 * delta_t), the
// "equivalent sinusoidal frequency" spec §4.5 describes.
func equivalentFrequency(deltaB float64, dt, dBdt []float64) float64 {
	if deltaB == 0 {
		return 0
	}
	var sum float64
	for i := range dBdt {
		sum += dBdt[i] * dBdt[i] * dt[i]
	}
	return (2 / (math.Pi * math.Pi * deltaB * deltaB)) * sum
}

// MSE implements spec §4.5's MSE model: Steinmetz evaluated at the
// equivalent frequency instead of the excitation's own frequency.
func MSE(m material.CoreMaterial, b waveform.Signal, frequency, temperature float64) (float64, error) {
	r, err := selectRange(m, frequency)
	if err != nil {
		return 0, err
	}
	deltaB, dt, dBdt, err := deltaBAndDerivative(b)
	if err != nil {
		return 0, err
	}
	fEq := equivalentFrequency(deltaB, dt, dBdt)
	bPeak := deltaB / 2
	volumetric := r.K * math.Pow(fEq, r.Alpha) * math.Pow(bPeak, r.Beta)
	return volumetric * temperatureFactor(r, temperature), nil
}

// NSE implements spec §4.5's NSE model: the same equivalent-frequency
// construction as MSE, normalised instead by the excitation's actual
// frequency so the kernel stays dimensionally anchored to f (the
// "normalised kernel" spec §4.5 names k_n for).
func NSE(m material.CoreMaterial, b waveform.Signal, frequency, temperature float64) (float64, error) {
	r, err := selectRange(m, frequency)
	if err != nil {
		return 0, err
	}
	deltaB, dt, dBdt, err := deltaBAndDerivative(b)
	if err != nil {
		return 0, err
	}
	fEq := equivalentFrequency(deltaB, dt, dBdt)
	bPeak := deltaB / 2
	kn := r.K * math.Pow(frequency/math.Max(fEq, 1e-9), r.Alpha-1)
	volumetric := kn * math.Pow(fEq, r.Alpha) * math.Pow(bPeak, r.Beta)
	return volumetric * temperatureFactor(r, temperature), nil
}

// Albach implements spec §4.5's ALBACH model: MSE-style with the
// equivalent frequency built from the deltaB-normalised integrand
// rather than the raw derivative.
func Albach(m material.CoreMaterial, b waveform.Signal, frequency, temperature float64) (float64, error) {
	r, err := selectRange(m, frequency)
	if err != nil {
		return 0, err
	}
	deltaB, dt, dBdt, err := deltaBAndDerivative(b)
	if err != nil {
		return 0, err
	}
	if deltaB == 0 {
		return 0, nil
	}
	var sum float64
	for i := range dBdt {
		normalised := dBdt[i] * dt[i] / deltaB
		sum += math.Pow(math.Abs(normalised), r.Alpha)
	}
	fEq := sum / (2 * math.Pi)
	bPeak := deltaB / 2
	volumetric := r.K * math.Pow(fEq*frequency, r.Alpha) * math.Pow(bPeak, r.Beta)
	return volumetric * temperatureFactor(r, temperature), nil
}

// bargDutyCycleFactor interpolates the 1.45 -> 1.0 correction table
// spec §4.5 names, linear between 10% and 50% duty cycle and clamped
// outside that range.
func bargDutyCycleFactor(dutyCycle float64) float64 {
	if dutyCycle <= 0.1 {
		return 1.45
	}
	if dutyCycle >= 0.5 {
		return 1.0
	}
	t := (dutyCycle - 0.1) / (0.5 - 0.1)
	return 1.45 + t*(1.0-1.45)
}

// Barg implements spec §4.5's BARG model: Steinmetz with a duty-cycle
// correction factor applied to the volumetric result.
func Barg(m material.CoreMaterial, b waveform.Signal, frequency, temperature, dutyCycle float64) (float64, error) {
	r, err := selectRange(m, frequency)
	if err != nil {
		return 0, err
	}
	processed := waveform.ProcessSignal(b, "magnetic_flux_density")
	bPeak := processed.PeakToPeak / 2
	volumetric := r.K * math.Pow(frequency, r.Alpha) * math.Pow(bPeak, r.Beta)
	return volumetric * temperatureFactor(r, temperature) * bargDutyCycleFactor(dutyCycle), nil
}
