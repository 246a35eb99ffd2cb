package material

import (
	"math"
	"sort"
	"sync"

	"github.com/edp1096/magcore/magerr"
	"gonum.org/v1/gonum/interp"
)

// splineCache memoises fitted interpolators by an opaque key built from
// the material name and the curve kind. Per spec §5 this is append-only
// and tolerates a double-fit race between goroutines: last write wins,
// which only costs an extra fit, never a wrong answer, since every fit
// of the same (material, curve) input converges to the same function.
var splineCache sync.Map // key string -> interp.FittablePredictor

type fittable interface {
	interp.Predictor
	Fit(xs, ys []float64) error
}

// dedupeSorted sorts points by X and collapses repeated X values,
// keeping the last value seen for a given X (spec §4.2 interpolation
// rules: "deduplicated temperatures/frequencies").
func dedupeSorted(points []Point) ([]float64, []float64) {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	xs := make([]float64, 0, len(sorted))
	ys := make([]float64, 0, len(sorted))
	for _, p := range sorted {
		if len(xs) > 0 && xs[len(xs)-1] == p.X {
			ys[len(ys)-1] = p.Y
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	return xs, ys
}

// evaluate applies the interpolation rules from spec §4.2: <=1 sample is
// constant, 2 samples is linear, >=3 is a monotone cubic Hermite spline
// (Fritsch-Butland, via gonum/interp), memoised by cacheKey when
// non-empty. x is clamped to the sample domain.
func evaluate(cacheKey string, points []Point, x float64) (float64, error) {
	xs, ys := dedupeSorted(points)

	switch len(xs) {
	case 0:
		return 0, magerr.New(magerr.MaterialDataMissing, "no samples for curve")
	case 1:
		return ys[0], nil
	}

	clamped := x
	if clamped < xs[0] {
		clamped = xs[0]
	} else if clamped > xs[len(xs)-1] {
		clamped = xs[len(xs)-1]
	}

	if len(xs) == 2 {
		t := (clamped - xs[0]) / (xs[1] - xs[0])
		return ys[0] + t*(ys[1]-ys[0]), nil
	}

	var predictor fittable
	if cacheKey != "" {
		if cached, ok := splineCache.Load(cacheKey); ok {
			predictor = cached.(fittable)
		}
	}
	if predictor == nil {
		fb := new(interp.FritschButland)
		if err := fb.Fit(xs, ys); err != nil {
			return 0, magerr.Wrap(magerr.CalculationNaNResult, err, "fitting monotone cubic spline")
		}
		predictor = fb
		if cacheKey != "" {
			splineCache.Store(cacheKey, predictor)
		}
	}

	value := predictor.Predict(clamped)
	if math.IsNaN(value) {
		return 0, magerr.New(magerr.CalculationNaNResult, "spline evaluation produced NaN")
	}
	return value, nil
}
