package coreloss

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/optimize"

	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/material"
)

const (
	minimumSamplesThreeUnknowns = 4 // k, alpha, beta
	minimumSamplesSixUnknowns   = 7 // + ct0, ct1, ct2
)

// FitSteinmetzCoefficients implements spec §4.5's fitting step:
// Levenberg-Marquardt in log space against the material's volumetric-
// loss samples. The example corpus carries no dedicated LM package, so
// the fit runs as a derivative-free least-squares minimisation
// (gonum's optimize.NelderMead) over the same log-space residual an LM
// solver would use; spec design note §9 treats the fitter as an opaque
// lm(f, x0) -> x_fit black box, so the substitution preserves its
// contract. Samples spanning more than one frequency decade are first
// partitioned into per-decade ranges (merging undersized chunks into
// their neighbour), and the range covering queryFrequency is fit and
// returned.
func FitSteinmetzCoefficients(samples []material.VolumetricLossPoint, queryFrequency float64) (material.SteinmetzRange, error) {
	if len(samples) < minimumSamplesThreeUnknowns {
		return material.SteinmetzRange{}, magerr.Newf(magerr.MaterialDataMissing, "need at least %d volumetric loss samples to fit Steinmetz coefficients, got %d", minimumSamplesThreeUnknowns, len(samples))
	}

	chunk := selectFrequencyChunk(samples, queryFrequency)
	return fitChunk(chunk)
}

// selectFrequencyChunk partitions samples into decade-wide frequency
// ranges, merges undersized ones, and returns the chunk containing
// (or nearest to) queryFrequency.
func selectFrequencyChunk(samples []material.VolumetricLossPoint, queryFrequency float64) []material.VolumetricLossPoint {
	if len(samples) < minimumSamplesSixUnknowns*2 {
		return samples // too few samples overall to benefit from splitting.
	}

	lowestDecade := math.Floor(math.Log10(minFrequency(samples)))
	highestDecade := math.Ceil(math.Log10(maxFrequency(samples)))
	var ranges []material.SteinmetzRange
	for decade := lowestDecade; decade < highestDecade; decade++ {
		ranges = append(ranges, material.SteinmetzRange{
			MinimumFrequency: math.Pow(10, decade),
			MaximumFrequency: math.Pow(10, decade+1),
		})
	}
	if len(ranges) <= 1 {
		return samples
	}

	chunks := partitionByFrequencyRange(samples, ranges)
	var best []material.VolumetricLossPoint
	bestDistance := math.Inf(1)
	for idx, chunk := range chunks {
		r := ranges[idx]
		var distance float64
		switch {
		case queryFrequency < r.MinimumFrequency:
			distance = r.MinimumFrequency - queryFrequency
		case queryFrequency > r.MaximumFrequency:
			distance = queryFrequency - r.MaximumFrequency
		}
		if distance < bestDistance {
			bestDistance = distance
			best = chunk
		}
	}
	if len(best) < minimumSamplesThreeUnknowns {
		return samples
	}
	return best
}

func fitChunk(samples []material.VolumetricLossPoint) (material.SteinmetzRange, error) {
	logResidual := func(x []float64) float64 {
		logK, alpha, beta := x[0], x[1], x[2]
		var sumSquares float64
		for _, s := range samples {
			predictedLog := logK + alpha*math.Log(s.Frequency) + beta*math.Log(s.MagneticFluxDensityPeak)
			observedLog := math.Log(s.VolumetricLosses)
			diff := predictedLog - observedLog
			sumSquares += diff * diff
		}
		return sumSquares
	}

	problem := optimize.Problem{Func: logResidual}
	initial := []float64{0, 1.3, 2.5} // log(k)=0, alpha, beta seeded near typical ferrite values

	result, err := optimize.Minimize(problem, initial, &optimize.Settings{MajorIterations: 500}, &optimize.NelderMead{})
	if err != nil && result == nil {
		return material.SteinmetzRange{}, magerr.Wrap(magerr.CalculationNaNResult, err, "Steinmetz coefficient fit failed to converge")
	}

	k := math.Exp(result.X[0])
	alpha := result.X[1]
	beta := result.X[2]

	fitted := material.SteinmetzRange{
		MinimumFrequency: minFrequency(samples),
		MaximumFrequency: maxFrequency(samples),
		K:                k,
		Alpha:            alpha,
		Beta:             beta,
	}

	if len(samples) >= minimumSamplesSixUnknowns {
		fitted = fitTemperatureCoefficients(fitted, samples)
	}

	return fitted, nil
}

// fitTemperatureCoefficients extends the fit with the ct0/ct1/ct2
// polynomial once enough samples justify it: ct0 is fixed at 1 and
// ct1/ct2 are fitted alongside k, alpha and beta (five unknowns).
func fitTemperatureCoefficients(base material.SteinmetzRange, samples []material.VolumetricLossPoint) material.SteinmetzRange {
	residual := func(x []float64) float64 {
		logK, alpha, beta, ct1, ct2 := x[0], x[1], x[2], x[3], x[4]
		var sumSquares float64
		for _, s := range samples {
			tempFactor := math.Max(0, 1-ct1*s.Temperature+ct2*s.Temperature*s.Temperature)
			if tempFactor <= 0 {
				tempFactor = 1e-9
			}
			predictedLog := logK + alpha*math.Log(s.Frequency) + beta*math.Log(s.MagneticFluxDensityPeak) + math.Log(tempFactor)
			observedLog := math.Log(s.VolumetricLosses)
			diff := predictedLog - observedLog
			sumSquares += diff * diff
		}
		return sumSquares
	}

	problem := optimize.Problem{Func: residual}
	initial := []float64{math.Log(base.K), base.Alpha, base.Beta, 0, 0}

	result, err := optimize.Minimize(problem, initial, &optimize.Settings{MajorIterations: 500}, &optimize.NelderMead{})
	if err != nil || result == nil {
		return base
	}

	base.K = math.Exp(result.X[0])
	base.Alpha = result.X[1]
	base.Beta = result.X[2]
	base.Ct0 = 1
	base.Ct1 = result.X[3]
	base.Ct2 = result.X[4]
	base.HasTemperatureCoefficients = true
	return base
}

// partitionByFrequencyRange groups samples into the given frequency
// ranges (the per-decade ranges selectFrequencyChunk builds; the
// material's own declared ranges are not used), merging chunks below
// the per-range minimum sample count into the range below them (the
// range above, for the first range).
func partitionByFrequencyRange(samples []material.VolumetricLossPoint, ranges []material.SteinmetzRange) map[int][]material.VolumetricLossPoint {
	chunks := make(map[int][]material.VolumetricLossPoint)
	for _, s := range samples {
		idx := sort.Search(len(ranges), func(i int) bool { return ranges[i].MaximumFrequency >= s.Frequency })
		if idx == len(ranges) {
			idx = len(ranges) - 1
		}
		chunks[idx] = append(chunks[idx], s)
	}

	threshold := minimumSamplesThreeUnknowns
	for idx, chunk := range chunks {
		if len(chunk) < threshold && len(ranges) > 1 {
			neighbour := idx - 1
			if neighbour < 0 {
				neighbour = idx + 1
			}
			if neighbour >= 0 && neighbour < len(ranges) {
				chunks[neighbour] = append(chunks[neighbour], chunk...)
				delete(chunks, idx)
			}
		}
	}
	return chunks
}

func minFrequency(samples []material.VolumetricLossPoint) float64 {
	m := math.Inf(1)
	for _, s := range samples {
		if s.Frequency < m {
			m = s.Frequency
		}
	}
	return m
}

func maxFrequency(samples []material.VolumetricLossPoint) float64 {
	m := math.Inf(-1)
	for _, s := range samples {
		if s.Frequency > m {
			m = s.Frequency
		}
	}
	return m
}
