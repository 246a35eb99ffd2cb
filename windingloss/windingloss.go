package windingloss

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/model"
	"github.com/edp1096/magcore/waveform"
)

// minimumHarmonicSamples is the floor passed to StandardizeWaveform
// before extracting a winding current's harmonic content.
const minimumHarmonicSamples = 64

// layerPositionsBySection returns, per section, each layer's 1-indexed
// stacking position in the order its turns first appear — the "m" that
// Dowell's proximity term G_R(xi, m) is evaluated at.
func layerPositionsBySection(coil model.Coil) map[string]map[string]int {
	order := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, t := range coil.Turns {
		if seen[t.Section] == nil {
			seen[t.Section] = make(map[string]bool)
		}
		if !seen[t.Section][t.Layer] {
			seen[t.Section][t.Layer] = true
			order[t.Section] = append(order[t.Section], t.Layer)
		}
	}
	positions := make(map[string]map[string]int)
	for section, layers := range order {
		positions[section] = make(map[string]int)
		for i, l := range layers {
			positions[section][l] = i + 1
		}
	}
	return positions
}

func findWinding(coil model.Coil, name string) (model.WindingDescription, error) {
	for _, w := range coil.Functional {
		if w.Name == name {
			return w, nil
		}
	}
	return model.WindingDescription{}, magerr.Newf(magerr.InvalidInput, "no winding named %q", name)
}

func resolveWindingWire(coil model.Coil, name string, lookup model.WireLookup) (model.Wire, model.WindingDescription, error) {
	winding, err := findWinding(coil, name)
	if err != nil {
		return model.Wire{}, model.WindingDescription{}, err
	}
	wire, err := winding.Wire.Resolve(lookup)
	if err != nil {
		return model.Wire{}, model.WindingDescription{}, err
	}
	return wire, winding, nil
}

func resistivityAt(wire model.Wire, temperature float64) float64 {
	return wire.Resistivity20C * (1 + wire.TemperatureCoefficient*(temperature-20))
}

// CalculateLosses implements spec §4.6's aggregation: ohmic loss from
// each winding's RMS current, plus per-harmonic skin and proximity loss
// from its current's harmonic content, rolled up turn -> layer ->
// section -> winding. excitations holds each winding's current
// waveform keyed by winding name; a winding missing from it is skipped.
func CalculateLosses(coil model.Coil, wireLookup model.WireLookup, excitations map[string]waveform.Signal, temperature float64) (model.WindingLossesOutput, error) {
	positions := layerPositionsBySection(coil)
	turnElements := make([]model.WindingLossElement, len(coil.Turns))

	for _, winding := range coil.Functional {
		current, ok := excitations[winding.Name]
		if !ok {
			continue
		}
		wire, err := winding.Wire.Resolve(wireLookup)
		if err != nil {
			return model.WindingLossesOutput{}, err
		}
		parallels := float64(winding.NumberParallels)
		if parallels <= 0 {
			parallels = 1
		}

		processed := waveform.ProcessSignal(current, winding.Name)
		period := current.Time[len(current.Time)-1] - current.Time[0]
		if period <= 0 {
			return model.WindingLossesOutput{}, magerr.Newf(magerr.InvalidInput, "winding %q current has non-positive period", winding.Name)
		}
		fundamental := 1 / period
		standardized, err := waveform.StandardizeWaveform(current, fundamental, minimumHarmonicSamples)
		if err != nil {
			return model.WindingLossesOutput{}, err
		}
		harmonics, err := waveform.CalculateHarmonicsData(standardized, fundamental)
		if err != nil {
			return model.WindingLossesOutput{}, err
		}

		thickness, err := conductorThickness(wire)
		if err != nil {
			return model.WindingLossesOutput{}, err
		}

		for _, idx := range coil.TurnsIndexesByWinding()[winding.Name] {
			turn := coil.Turns[idx]
			turnCurrentRMS := processed.RMS / parallels
			ohmic, err := OhmicLoss(wire, turn, temperature, turnCurrentRMS)
			if err != nil {
				return model.WindingLossesOutput{}, err
			}
			rdc, err := dcResistance(wire, turn.LengthPerTurn, temperature)
			if err != nil {
				return model.WindingLossesOutput{}, err
			}
			position := positions[turn.Section][turn.Layer]

			var skin, prox model.HarmonicLosses
			for h := 1; h < len(harmonics.Frequencies); h++ {
				frequency := harmonics.Frequencies[h]
				if frequency <= 0 {
					continue
				}
				harmonicRMS := harmonics.Amplitudes[h] / math.Sqrt2 / parallels
				delta := skinDepth(resistivityAt(wire, temperature), frequency)
				xi := litzStrandCorrection(wire, dowellXi(thickness, delta))

				skinLoss := rdc * harmonicRMS * harmonicRMS * (skinEffectFactor(xi) - 1)
				proxLoss := rdc * harmonicRMS * harmonicRMS * proximityEffectFactor(xi, position)

				skin.Frequencies = append(skin.Frequencies, frequency)
				skin.PerHarmonic = append(skin.PerHarmonic, math.Max(0, skinLoss))
				prox.Frequencies = append(prox.Frequencies, frequency)
				prox.PerHarmonic = append(prox.PerHarmonic, math.Max(0, proxLoss))
			}

			turnElements[idx] = model.WindingLossElement{
				Name:                  turn.Name,
				OhmicLosses:           ohmic,
				SkinEffectLosses:      skin,
				ProximityEffectLosses: prox,
			}
		}
	}

	layerElements := aggregate(coil.TurnsIndexesByLayer(), turnElements)
	sectionElements := aggregate(coil.TurnsIndexesBySection(), turnElements)
	windingElements := aggregate(coil.TurnsIndexesByWinding(), turnElements)

	var total float64
	for _, e := range turnElements {
		total += e.Total()
	}

	return model.WindingLossesOutput{
		WindingLosses:           total,
		WindingLossesPerTurn:    turnElements,
		WindingLossesPerLayer:   layerElements,
		WindingLossesPerSection: sectionElements,
		WindingLossesPerWinding: windingElements,
	}, nil
}

// aggregate sums the named groups' member turn elements into one
// WindingLossElement per group name, merging harmonic arrays by index.
func aggregate(groups map[string][]int, turns []model.WindingLossElement) []model.WindingLossElement {
	out := make([]model.WindingLossElement, 0, len(groups))
	for name, indexes := range groups {
		element := model.WindingLossElement{Name: name}
		var skinSum, proxSum map[float64]float64
		skinSum = make(map[float64]float64)
		proxSum = make(map[float64]float64)
		for _, idx := range indexes {
			t := turns[idx]
			element.OhmicLosses += t.OhmicLosses
			for i, f := range t.SkinEffectLosses.Frequencies {
				skinSum[f] += t.SkinEffectLosses.PerHarmonic[i]
			}
			for i, f := range t.ProximityEffectLosses.Frequencies {
				proxSum[f] += t.ProximityEffectLosses.PerHarmonic[i]
			}
		}
		element.SkinEffectLosses = harmonicsFromMap(skinSum)
		element.ProximityEffectLosses = harmonicsFromMap(proxSum)
		out = append(out, element)
	}
	return out
}

func harmonicsFromMap(m map[float64]float64) model.HarmonicLosses {
	h := model.HarmonicLosses{}
	for f, v := range m {
		h.Frequencies = append(h.Frequencies, f)
		h.PerHarmonic = append(h.PerHarmonic, v)
	}
	return h
}

// jointResistance is the shared core of EffectiveResistance and
// ResistanceMatrix: the AC resistance a 1A-RMS current at frequency
// sees across every turn of the named windings combined, using the
// turns' actual physical stacking position for the proximity term.
func jointResistance(coil model.Coil, wireLookup model.WireLookup, windingNames []string, frequency, temperature float64) (float64, error) {
	positions := layerPositionsBySection(coil)
	byWinding := coil.TurnsIndexesByWinding()

	var total float64
	for _, name := range windingNames {
		wire, winding, err := resolveWindingWire(coil, name, wireLookup)
		if err != nil {
			return 0, err
		}
		parallels := float64(winding.NumberParallels)
		if parallels <= 0 {
			parallels = 1
		}
		thickness, err := conductorThickness(wire)
		if err != nil {
			return 0, err
		}
		delta := skinDepth(resistivityAt(wire, temperature), frequency)

		for _, idx := range byWinding[name] {
			turn := coil.Turns[idx]
			rdc, err := dcResistance(wire, turn.LengthPerTurn, temperature)
			if err != nil {
				return 0, err
			}
			xi := litzStrandCorrection(wire, dowellXi(thickness, delta))
			position := positions[turn.Section][turn.Layer]
			factor := skinEffectFactor(xi) + proximityEffectFactor(xi, position)
			total += rdc * factor / (parallels * parallels)
		}
	}
	return total, nil
}

// EffectiveResistance implements spec §4.6's effective_resistance
// operation: the AC resistance a named winding presents at frequency,
// obtained by injecting a virtual 1A-RMS current and dividing the
// resulting loss by I^2 (here folded directly into jointResistance,
// since at I=1A loss and resistance coincide).
func EffectiveResistance(coil model.Coil, wireLookup model.WireLookup, windingName string, frequency, temperature float64) (float64, error) {
	return jointResistance(coil, wireLookup, []string{windingName}, frequency, temperature)
}

// ResistanceMatrix implements spec §4.6's resistance_matrix operation:
// a symmetric matrix whose diagonal is each winding's effective
// resistance and whose off-diagonal Rij follows from the pair-
// excitation identity 2*Rij = P_ij - Rii - Rjj, with P_ij the loss
// produced by exciting windings i and j together at 1A each.
func ResistanceMatrix(coil model.Coil, wireLookup model.WireLookup, frequency, temperature float64) (*mat.SymDense, []string, error) {
	names := make([]string, len(coil.Functional))
	for i, w := range coil.Functional {
		names[i] = w.Name
	}
	n := len(names)
	diagonal := make([]float64, n)
	for i, name := range names {
		r, err := EffectiveResistance(coil, wireLookup, name, frequency, temperature)
		if err != nil {
			return nil, nil, err
		}
		diagonal[i] = r
	}

	matrix := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		matrix.SetSym(i, i, diagonal[i])
		for j := i + 1; j < n; j++ {
			joint, err := jointResistance(coil, wireLookup, []string{names[i], names[j]}, frequency, temperature)
			if err != nil {
				return nil, nil, err
			}
			mutual := (joint - diagonal[i] - diagonal[j]) / 2
			matrix.SetSym(i, j, mutual)
		}
	}
	return matrix, names, nil
}
